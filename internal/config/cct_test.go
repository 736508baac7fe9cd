package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/plrgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCCTParser_DefaultTableIsValid(t *testing.T) {
	cfg := domain.DefaultCCT()
	assert.NoError(t, NewCCTParser().ValidateCCT(&cfg))
}

func TestCCTParser_LoadCCTEmptyFilename(t *testing.T) {
	cfg, err := NewCCTParser().LoadCCT("")
	require.NoError(t, err)
	assert.Equal(t, "2024/2026", cfg.Metadata.Vigencia)
}

func TestCCTParser_RoundTripFile(t *testing.T) {
	cfg := domain.DefaultCCT()
	cfg.Metadata.Vigencia = "2026/2027"
	cfg.Exercicio.ParcelaAdicional = decimal.RequireFromString("8000.00")

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "cct.yaml")
	require.NoError(t, os.WriteFile(file, data, 0o600))

	loaded, err := NewCCTParser().LoadCCT(file)
	require.NoError(t, err)
	assert.Equal(t, "2026/2027", loaded.Metadata.Vigencia)
	assert.True(t, loaded.Exercicio.ParcelaAdicional.Equal(decimal.NewFromInt(8000)))
	assert.Len(t, loaded.IRRF, 5)
	assert.Equal(t, "27,5%", loaded.IRRF[4].Faixa)
}

func TestCCTParser_ParseYAML(t *testing.T) {
	data := []byte(`
metadata:
  vigencia: "teste"
antecipacao: {percentual: "0.5", valor_fixo: "1000", teto: "5000", parcela_adicional: "1000"}
exercicio: {percentual: "0.9", valor_fixo: "2000", teto: "10000", parcela_adicional: "2000"}
majoracao: {multiplicador: "2", teto: "20000"}
contribuicao_sindical: "0.01"
irrf:
  - {limite: "5000", aliquota: "0", deducao: "0", faixa: "Isento"}
  - {limite: "0", aliquota: "0.1", deducao: "500", faixa: "10%"}
bancos:
  itau: {nome: "PCR", valor_padrao: "1000", valor_base: "500"}
  santander: {nome: "PPRS", valor_padrao: "1000"}
  bradesco: {nome: "PRB", valor_padrao: "1000"}
  bb: {nome: "Módulo BB", valor_padrao: "1000"}
  caixa:
    antecipacao: {percentual: "0.4", valor_fixo: "1000", teto: "4000"}
    plr_social: {nome: "PLR Social", valor_padrao: "1000"}
    teto_multiplicador: "3"
`)

	cfg, err := NewCCTParser().Parse(data)
	require.NoError(t, err)
	assert.True(t, cfg.Majoracao.Multiplicador.Equal(decimal.NewFromInt(2)))
	assert.True(t, cfg.Bancos.Itau.ValorBase.Equal(decimal.NewFromInt(500)))
}

func TestCCTParser_ValidateCCT(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *domain.CCTConfig)
		contains string
	}{
		{"zero percentage", func(c *domain.CCTConfig) { c.Antecipacao.Percentual = decimal.Zero }, "antecipacao.percentual"},
		{"missing teto", func(c *domain.CCTConfig) { c.Exercicio.Teto = decimal.Zero }, "exercicio.teto"},
		{"majoração multiplier", func(c *domain.CCTConfig) { c.Majoracao.Multiplicador = decimal.Zero }, "majoracao.multiplicador"},
		{"union rate", func(c *domain.CCTConfig) { c.ContribuicaoSindical = decimal.NewFromInt(1) }, "contribuicao_sindical"},
		{"too few brackets", func(c *domain.CCTConfig) { c.IRRF = c.IRRF[:1] }, "at least two brackets"},
		{"brackets out of order", func(c *domain.CCTConfig) { c.IRRF[2].Limite = decimal.NewFromInt(100) }, "must be greater than"},
		{"bracket rate", func(c *domain.CCTConfig) { c.IRRF[1].Aliquota = decimal.NewFromFloat(1.5) }, "aliquota"},
		{"program name", func(c *domain.CCTConfig) { c.Bancos.BB.Nome = "" }, "bancos.bb.nome"},
		{"caixa cap", func(c *domain.CCTConfig) { c.Bancos.Caixa.TetoMultiplicador = decimal.Zero }, "teto_multiplicador"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultCCT()
			tt.mutate(&cfg)
			err := NewCCTParser().ValidateCCT(&cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestCCTParser_LoadFromFileErrors(t *testing.T) {
	_, err := NewCCTParser().LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("antecipacao: [not, a, map"), 0o600))
	_, err = NewCCTParser().LoadFromFile(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestCCTParser_SampleFileMatchesDefaults(t *testing.T) {
	cfg, err := NewCCTParser().LoadFromFile(filepath.Join("..", "..", "configs", "cct-2024-2026.yaml"))
	require.NoError(t, err)
	def := domain.DefaultCCT()

	assert.Equal(t, def.Metadata, cfg.Metadata)
	for _, pair := range [][2]decimal.Decimal{
		{def.Antecipacao.ValorFixo, cfg.Antecipacao.ValorFixo},
		{def.Antecipacao.Teto, cfg.Antecipacao.Teto},
		{def.Exercicio.Percentual, cfg.Exercicio.Percentual},
		{def.Exercicio.ParcelaAdicional, cfg.Exercicio.ParcelaAdicional},
		{def.Majoracao.Teto, cfg.Majoracao.Teto},
		{def.ContribuicaoSindical, cfg.ContribuicaoSindical},
		{def.Bancos.Itau.ValorPadrao, cfg.Bancos.Itau.ValorPadrao},
		{def.Bancos.Santander.ValorBase, cfg.Bancos.Santander.ValorBase},
		{def.Bancos.Caixa.Antecipacao.Teto, cfg.Bancos.Caixa.Antecipacao.Teto},
		{def.Bancos.Caixa.TetoMultiplicador, cfg.Bancos.Caixa.TetoMultiplicador},
	} {
		assert.True(t, pair[0].Equal(pair[1]), "expected %s, got %s", pair[0], pair[1])
	}

	require.Len(t, cfg.IRRF, len(def.IRRF))
	for i, b := range def.IRRF {
		assert.True(t, b.Limite.Equal(cfg.IRRF[i].Limite), "limite %d", i)
		assert.True(t, b.Aliquota.Equal(cfg.IRRF[i].Aliquota), "aliquota %d", i)
		assert.True(t, b.Deducao.Equal(cfg.IRRF[i].Deducao), "deducao %d", i)
		assert.Equal(t, b.Faixa, cfg.IRRF[i].Faixa)
	}
	assert.Equal(t, def.Bancos.BB.Nome, cfg.Bancos.BB.Nome)
}
