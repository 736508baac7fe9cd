package domain

import (
	"github.com/shopspring/decimal"
)

// CCTConfig holds every numeric constant of one collective-agreement
// vintage. The defaults model CCT FENABAN 2024/2026; a YAML file with the
// same shape replaces them for another vintage.
type CCTConfig struct {
	Metadata             CCTMetadata     `yaml:"metadata" json:"metadata"`
	Antecipacao          RegraBasica     `yaml:"antecipacao" json:"antecipacao"`
	Exercicio            RegraBasica     `yaml:"exercicio" json:"exercicio"`
	Majoracao            MajoracaoRule   `yaml:"majoracao" json:"majoracao"`
	ContribuicaoSindical decimal.Decimal `yaml:"contribuicao_sindical" json:"contribuicao_sindical"`
	IRRF                 []IRRFBracket   `yaml:"irrf" json:"irrf"`
	Bancos               BankRules       `yaml:"bancos" json:"bancos"`
}

// CCTMetadata describes the vintage.
type CCTMetadata struct {
	Vigencia    string `yaml:"vigencia" json:"vigencia"`
	Reajuste    string `yaml:"reajuste" json:"reajuste"`
	Description string `yaml:"description" json:"description"`
}

// RegraBasica is the "percentage of salary plus fixed amount, capped" rule.
// ParcelaAdicional is the flat additional installment paid with it.
type RegraBasica struct {
	Percentual       decimal.Decimal `yaml:"percentual" json:"percentual"`
	ValorFixo        decimal.Decimal `yaml:"valor_fixo" json:"valor_fixo"`
	Teto             decimal.Decimal `yaml:"teto" json:"teto"`
	ParcelaAdicional decimal.Decimal `yaml:"parcela_adicional" json:"parcela_adicional"`
}

// MajoracaoRule raises the exercício regra básica to Multiplicador × salary,
// up to Teto, when that beats the standard formula.
type MajoracaoRule struct {
	Multiplicador decimal.Decimal `yaml:"multiplicador" json:"multiplicador"`
	Teto          decimal.Decimal `yaml:"teto" json:"teto"`
}

// IRRFBracket is one row of the exclusive PLR withholding table. The last
// row's Limite is ignored (unbounded).
type IRRFBracket struct {
	Limite   decimal.Decimal `yaml:"limite" json:"limite"`
	Aliquota decimal.Decimal `yaml:"aliquota" json:"aliquota"`
	Deducao  decimal.Decimal `yaml:"deducao" json:"deducao"`
	Faixa    string          `yaml:"faixa" json:"faixa"`
}

// ProgramRule configures a bank's supplemental program.
// ValorBase is only used by banks that accept a multiplier input.
type ProgramRule struct {
	Nome        string          `yaml:"nome" json:"nome"`
	ValorPadrao decimal.Decimal `yaml:"valor_padrao" json:"valor_padrao"`
	ValorBase   decimal.Decimal `yaml:"valor_base,omitempty" json:"valor_base,omitempty"`
}

// CaixaRules groups the public savings bank's own structure.
type CaixaRules struct {
	Antecipacao       RegraBasica     `yaml:"antecipacao" json:"antecipacao"`
	PLRSocial         ProgramRule     `yaml:"plr_social" json:"plr_social"`
	TetoMultiplicador decimal.Decimal `yaml:"teto_multiplicador" json:"teto_multiplicador"`
}

// BankRules holds the per-bank deltas on top of the base rule.
type BankRules struct {
	Itau      ProgramRule `yaml:"itau" json:"itau"`
	Santander ProgramRule `yaml:"santander" json:"santander"`
	Bradesco  ProgramRule `yaml:"bradesco" json:"bradesco"`
	BB        ProgramRule `yaml:"bb" json:"bb"`
	Caixa     CaixaRules  `yaml:"caixa" json:"caixa"`
}

// PCR tiers published by Itaú for the modeled vintage.
var (
	PCRPrimeiroPatamar = Money(3908.05)
	PCRSegundoPatamar  = Money(4299.86)
)

// DefaultCCT returns the CCT FENABAN 2024/2026 constant table.
func DefaultCCT() CCTConfig {
	return CCTConfig{
		Metadata: CCTMetadata{
			Vigencia:    "2024/2026",
			Reajuste:    "5,68%",
			Description: "CCT FENABAN 2024/2026 - valores corrigidos",
		},
		Antecipacao: RegraBasica{
			Percentual:       decimal.NewFromFloat(0.54),
			ValorFixo:        Money(2119.75),
			Teto:             Money(11371.44),
			ParcelaAdicional: Money(3668.29),
		},
		Exercicio: RegraBasica{
			Percentual:       decimal.NewFromFloat(0.90),
			ValorFixo:        Money(3532.92),
			Teto:             Money(18952.40),
			ParcelaAdicional: Money(7336.60),
		},
		Majoracao: MajoracaoRule{
			Multiplicador: decimal.NewFromFloat(2.2),
			Teto:          Money(41695.29),
		},
		ContribuicaoSindical: decimal.NewFromFloat(0.015),
		IRRF: []IRRFBracket{
			{Limite: Money(7640.80), Aliquota: decimal.Zero, Deducao: decimal.Zero, Faixa: "Isento"},
			{Limite: Money(9922.28), Aliquota: decimal.NewFromFloat(0.075), Deducao: Money(573.06), Faixa: "7,5%"},
			{Limite: Money(13167.00), Aliquota: decimal.NewFromFloat(0.15), Deducao: Money(1317.23), Faixa: "15%"},
			{Limite: Money(16380.38), Aliquota: decimal.NewFromFloat(0.225), Deducao: Money(2304.76), Faixa: "22,5%"},
			{Limite: decimal.Zero, Aliquota: decimal.NewFromFloat(0.275), Deducao: Money(3123.78), Faixa: "27,5%"},
		},
		Bancos: BankRules{
			Itau: ProgramRule{
				Nome:        "PCR (Programa Complementar de Resultados)",
				ValorPadrao: PCRSegundoPatamar,
				ValorBase:   Money(1429.54),
			},
			Santander: ProgramRule{
				Nome:        "PPRS (Programa Próprio de Resultados Santander)",
				ValorPadrao: Money(3880.84),
				ValorBase:   Money(1188.18),
			},
			Bradesco: ProgramRule{
				Nome:        "PRB (Programa de Participação nos Resultados Bradesco)",
				ValorPadrao: Money(2500),
			},
			BB: ProgramRule{
				Nome:        "Módulo BB (4% do lucro líquido)",
				ValorPadrao: Money(3500),
			},
			Caixa: CaixaRules{
				Antecipacao: RegraBasica{
					Percentual: decimal.NewFromFloat(0.45),
					ValorFixo:  Money(1766.46),
					Teto:       Money(9476.20),
				},
				PLRSocial: ProgramRule{
					Nome:        "PLR Social (4% do lucro líquido)",
					ValorPadrao: Money(3200),
				},
				TetoMultiplicador: decimal.NewFromInt(3),
			},
		},
	}
}
