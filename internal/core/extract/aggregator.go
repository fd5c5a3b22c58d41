package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/purchasestore/shein-finance-extract/internal/domain"
)

// Aggregate computes the derived metrics of every group in place and emits
// the display-formatted output rows in group order. The progress callback,
// when non-nil, is invoked every 10 groups with (done, total).
func Aggregate(groups []domain.DateGroup, progress func(done, total int)) []domain.OutputRow {
	rows := make([]domain.OutputRow, 0, len(groups))

	for i := range groups {
		if progress != nil && i%10 == 0 {
			progress(i, len(groups))
		}

		g := &groups[i]
		g.FixedAmount = g.Income.Sub(g.Expense)

		if !g.Income.IsZero() {
			g.ExpensePercent = g.Expense.Div(g.Income).Mul(oneHundred)
		} else {
			g.ExpensePercent = decimal.Zero
		}

		if g.OrderCount != 0 {
			g.AveragePerOrder = g.FixedAmount.Div(decimal.NewFromInt(int64(g.OrderCount)))
		} else {
			g.AveragePerOrder = decimal.Zero
		}

		rows = append(rows, domain.OutputRow{
			GroupedDate:       g.Date.Format("02-01-2006"),
			Renda:             FormatReal(g.Income),
			Despesa:           FormatReal(g.Expense),
			MontanteFixo:      FormatReal(g.FixedAmount),
			PercentualDespesa: FormatPercent(g.ExpensePercent),
			PedidosRecebidos:  g.OrderCount,
			RecebimentoMedio:  FormatReal(g.AveragePerOrder),
		})
	}

	return rows
}

// FormatReal renders an amount as pt-BR currency: "R$ 1.234,56".
// Valores negativos ficam com o sinal antes do símbolo: "-R$ 500,00".
func FormatReal(v decimal.Decimal) string {
	fixed := v.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if v.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString("R$ ")

	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// FormatPercent renders a percentage with exactly two decimal digits and a
// trailing "%" ("5.00%"), keeping the dot decimal of the original reports.
func FormatPercent(v decimal.Decimal) string {
	return v.StringFixed(2) + "%"
}
