package extract

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencyPrefix é o token que os relatórios da Shein antepõem ao valor.
const currencyPrefix = "BRL "

var oneHundred = decimal.NewFromInt(100)

// ParseAmount converts a raw "Contas a receber" cell into a signed amount in
// reais. Absent or unparsable values degrade to zero.
//
// O valor analisado é tratado como centavos e dividido por 100
// incondicionalmente: "BRL 1.234,56" resulta em 12.3456. Esse comportamento
// reproduz exatamente o extrator original e não deve ser "corrigido" sem
// revalidar os relatórios gerados até hoje.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		s = "0"
	}
	s = strings.Replace(s, currencyPrefix, "", 1)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d.Div(oneHundred)
}
