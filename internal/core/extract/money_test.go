package extract_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/purchasestore/shein-finance-extract/internal/core/extract"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		// O valor é tratado como centavos e dividido por 100; o caso abaixo
		// documenta a transformação exata: "1.234,56" -> 1234.56 -> 12.3456.
		{name: "prefixo BRL com milhar", raw: "BRL 1.234,56", want: "12.3456"},
		{name: "dez mil", raw: "BRL 10.000,00", want: "100"},
		{name: "negativo", raw: "BRL -500,00", want: "-5"},
		{name: "sem prefixo", raw: "1.234,56", want: "12.3456"},
		{name: "vazio vira zero", raw: "", want: "0"},
		{name: "só espaços vira zero", raw: "   ", want: "0"},
		{name: "ilegível vira zero", raw: "a receber", want: "0"},
		{name: "zero", raw: "BRL 0,00", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := decimal.RequireFromString(tt.want)
			got := extract.ParseAmount(tt.raw)
			assert.True(t, want.Equal(got), "esperado %s, obtido %s", want, got)
		})
	}
}
