package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/plrgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CCTParser loads CCT constant tables from YAML.
type CCTParser struct{}

// NewCCTParser creates a new CCT parser
func NewCCTParser() *CCTParser {
	return &CCTParser{}
}

// LoadCCT returns the compiled-in table when filename is empty, otherwise the
// validated table from the file.
func (cp *CCTParser) LoadCCT(filename string) (domain.CCTConfig, error) {
	if filename == "" {
		return domain.DefaultCCT(), nil
	}
	cfg, err := cp.LoadFromFile(filename)
	if err != nil {
		return domain.CCTConfig{}, err
	}
	return *cfg, nil
}

// LoadFromFile loads a CCT table from a YAML file.
func (cp *CCTParser) LoadFromFile(filename string) (*domain.CCTConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return cp.Parse(data)
}

// Parse decodes and validates a YAML CCT table.
func (cp *CCTParser) Parse(data []byte) (*domain.CCTConfig, error) {
	var cfg domain.CCTConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cp.ValidateCCT(&cfg); err != nil {
		return nil, fmt.Errorf("CCT validation failed: %w", err)
	}
	return &cfg, nil
}

// ValidateCCT checks that every rule is usable by the calculators.
func (cp *CCTParser) ValidateCCT(cfg *domain.CCTConfig) error {
	if err := validateRegra("antecipacao", cfg.Antecipacao, true); err != nil {
		return err
	}
	if err := validateRegra("exercicio", cfg.Exercicio, true); err != nil {
		return err
	}
	if !cfg.Majoracao.Multiplicador.IsPositive() {
		return fmt.Errorf("majoracao.multiplicador must be positive")
	}
	if !cfg.Majoracao.Teto.IsPositive() {
		return fmt.Errorf("majoracao.teto must be positive")
	}
	if !isRate(cfg.ContribuicaoSindical) {
		return fmt.Errorf("contribuicao_sindical must be in [0, 1), got %s", cfg.ContribuicaoSindical)
	}
	if err := validateBrackets(cfg.IRRF); err != nil {
		return fmt.Errorf("irrf: %w", err)
	}

	programs := map[string]domain.ProgramRule{
		"bancos.itau":             cfg.Bancos.Itau,
		"bancos.santander":        cfg.Bancos.Santander,
		"bancos.bradesco":         cfg.Bancos.Bradesco,
		"bancos.bb":               cfg.Bancos.BB,
		"bancos.caixa.plr_social": cfg.Bancos.Caixa.PLRSocial,
	}
	for name, p := range programs {
		if p.Nome == "" {
			return fmt.Errorf("%s.nome is required", name)
		}
		if p.ValorPadrao.IsNegative() || p.ValorBase.IsNegative() {
			return fmt.Errorf("%s values must not be negative", name)
		}
	}
	if err := validateRegra("bancos.caixa.antecipacao", cfg.Bancos.Caixa.Antecipacao, false); err != nil {
		return err
	}
	if !cfg.Bancos.Caixa.TetoMultiplicador.IsPositive() {
		return fmt.Errorf("bancos.caixa.teto_multiplicador must be positive")
	}
	return nil
}

func validateRegra(name string, r domain.RegraBasica, requireParcela bool) error {
	if !r.Percentual.IsPositive() || r.Percentual.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s.percentual must be in (0, 1], got %s", name, r.Percentual)
	}
	if r.ValorFixo.IsNegative() {
		return fmt.Errorf("%s.valor_fixo must not be negative", name)
	}
	if !r.Teto.IsPositive() {
		return fmt.Errorf("%s.teto must be positive", name)
	}
	if requireParcela && r.ParcelaAdicional.IsNegative() {
		return fmt.Errorf("%s.parcela_adicional must not be negative", name)
	}
	return nil
}

func validateBrackets(brackets []domain.IRRFBracket) error {
	if len(brackets) < 2 {
		return fmt.Errorf("at least two brackets are required")
	}
	for i, b := range brackets {
		if !isRate(b.Aliquota) {
			return fmt.Errorf("bracket %d aliquota must be in [0, 1), got %s", i, b.Aliquota)
		}
		if b.Deducao.IsNegative() {
			return fmt.Errorf("bracket %d deducao must not be negative", i)
		}
		if b.Faixa == "" {
			return fmt.Errorf("bracket %d faixa is required", i)
		}
		if i == len(brackets)-1 {
			break
		}
		if !b.Limite.IsPositive() {
			return fmt.Errorf("bracket %d limite must be positive", i)
		}
		if i > 0 && !b.Limite.GreaterThan(brackets[i-1].Limite) {
			return fmt.Errorf("bracket %d limite %s must be greater than %s", i, b.Limite, brackets[i-1].Limite)
		}
	}
	return nil
}

func isRate(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThan(decimal.NewFromInt(1))
}
