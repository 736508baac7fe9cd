package calculation

import (
	"testing"

	"github.com/rgehrsitz/plrgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIrrfCalculator_Calculate(t *testing.T) {
	calc := NewIrrfCalculator2024()

	tests := []struct {
		name     string
		total    string
		irrf     string
		faixa    string
		aliquota string
	}{
		{"zero", "0", "0", "Isento", "0"},
		{"negative", "-100", "0", "Isento", "0"},
		{"exempt", "5000", "0", "Isento", "0"},
		{"exempt upper limit inclusive", "7640.80", "0", "Isento", "0"},
		{"one cent above exempt", "7640.81", "0", "7,5%", "0.075"},
		{"7.5% upper limit", "9922.28", "171.11", "7,5%", "0.075"},
		{"15% lower edge", "9922.29", "171.11", "15%", "0.15"},
		{"15% middle", "11000", "332.77", "15%", "0.15"},
		{"15% upper limit", "13167.00", "657.82", "15%", "0.15"},
		{"22.5% lower edge", "13167.01", "657.82", "22,5%", "0.225"},
		{"22.5% safra reference", "15369.52", "1153.38", "22,5%", "0.225"},
		{"22.5% upper limit", "16380.38", "1380.83", "22,5%", "0.225"},
		{"27.5% lower edge", "16380.39", "1380.83", "27,5%", "0.275"},
		{"27.5% itaú reference", "29236.46", "4916.25", "27,5%", "0.275"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.Calculate(money(tt.total))
			assertMoney(t, tt.irrf, result.IRRF)
			assert.Equal(t, tt.faixa, result.Faixa)
			assertMoney(t, tt.aliquota, result.Aliquota)
			assertMoney(t, tt.total, result.TotalPlr)
		})
	}
}

func TestIrrfCalculator_ContinuityAtBoundaries(t *testing.T) {
	calc := NewIrrfCalculator2024()
	cent := money("0.01")
	limit := money("0.10")

	for _, b := range calc.Brackets[:len(calc.Brackets)-1] {
		at := calc.Calculate(b.Limite).IRRF
		above := calc.Calculate(b.Limite.Add(cent)).IRRF
		assert.True(t, at.Sub(above).Abs().LessThan(limit),
			"tax jumps at %s: %s -> %s", b.Limite, at, above)
	}
}

func TestIrrfCalculator_MonotonicNonNegative(t *testing.T) {
	calc := NewIrrfCalculator2024()
	eps := money("0.01")

	prev := decimal.Zero
	for v := decimal.Zero; v.LessThanOrEqual(money("40000")); v = v.Add(money("37.13")) {
		irrf := calc.Calculate(v).IRRF
		assert.False(t, irrf.IsNegative(), "irrf negative at %s", v)
		assert.True(t, irrf.Add(eps).GreaterThanOrEqual(prev), "irrf decreased at %s: %s < %s", v, irrf, prev)
		prev = irrf
	}
}

func TestNewIrrfCalculatorWithConfig(t *testing.T) {
	custom := []domain.IRRFBracket{
		{Limite: money("1000"), Aliquota: decimal.Zero, Faixa: "Isento"},
		{Limite: decimal.Zero, Aliquota: money("0.1"), Deducao: money("100"), Faixa: "10%"},
	}
	calc := NewIrrfCalculatorWithConfig(custom)

	assertMoney(t, "0", calc.Calculate(money("1000")).IRRF)
	assertMoney(t, "100", calc.Calculate(money("2000")).IRRF)

	custom[0].Limite = money("5000")
	assertMoney(t, "100", calc.Calculate(money("2000")).IRRF, "calculator should copy its brackets")

	fallback := NewIrrfCalculatorWithConfig(nil)
	assert.Len(t, fallback.Brackets, 5)
}
