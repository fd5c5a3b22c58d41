// package domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord mapeia o nome da coluna (como lido do cabeçalho da planilha)
// para o valor bruto da célula. Células vazias são nil; o leitor de planilhas
// preserva todos os valores como string para evitar perda de formato.
type RawRecord map[string]any

// CleanedRecord is a RawRecord after trimming and normalization of the
// settlement date and receivable amount columns.
type CleanedRecord struct {
	Fields         map[string]string
	SettlementDate time.Time
	Receivable     decimal.Decimal
}

// DateGroup accumulates records whose settlement dates fall within the
// one-day proximity chain of its representative date. Derived fields are
// filled in by the aggregation step and are zero before it runs.
type DateGroup struct {
	Date       time.Time       `json:"date"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	OrderCount int             `json:"order_count"`

	FixedAmount     decimal.Decimal `json:"fixed_amount"`
	ExpensePercent  decimal.Decimal `json:"expense_percent"`
	AveragePerOrder decimal.Decimal `json:"average_per_order"`
}

// OutputRow é uma linha formatada da tabela final. A ordem dos campos segue
// a ordem de colunas esperada pelos exportadores e não deve mudar.
type OutputRow struct {
	GroupedDate       string `json:"Grouped Date"`
	Renda             string `json:"Renda"`
	Despesa           string `json:"Despesa"`
	MontanteFixo      string `json:"Montante Fixo"`
	PercentualDespesa string `json:"Percentual Despesa"`
	PedidosRecebidos  int    `json:"Pedidos recebidos"`
	RecebimentoMedio  string `json:"Recebimento médio por pedido"`
}

// OutputColumns returns the column names of OutputRow in display order.
func OutputColumns() []string {
	return []string{
		"Grouped Date",
		"Renda",
		"Despesa",
		"Montante Fixo",
		"Percentual Despesa",
		"Pedidos recebidos",
		"Recebimento médio por pedido",
	}
}

// Values returns the row's cell values in the same order as OutputColumns.
func (r OutputRow) Values() []any {
	return []any{
		r.GroupedDate,
		r.Renda,
		r.Despesa,
		r.MontanteFixo,
		r.PercentualDespesa,
		r.PedidosRecebidos,
		r.RecebimentoMedio,
	}
}

// Result carries both the display-formatted rows and the unformatted numeric
// groups, so callers that re-export with other locale rules can recompute
// from the numbers instead of reparsing strings.
type Result struct {
	Rows   []OutputRow `json:"rows"`
	Groups []DateGroup `json:"groups"`
}

// EventKind identifica o tipo de evento emitido por uma execução do pipeline.
type EventKind string

// Tipos de evento do pipeline.
const (
	EventProgress EventKind = "progress"
	EventResult   EventKind = "result"
	EventError    EventKind = "error"
)

// Event is a discrete message emitted by a pipeline run: progress updates in
// [0,100] followed by exactly one terminal result or error event. Value only
// travels em eventos de progresso; nos demais o campo é omitido.
type Event struct {
	Kind    EventKind   `json:"kind"`
	Value   int         `json:"value,omitempty"`
	Rows    []OutputRow `json:"rows,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Terminal reports whether the event ends a run.
func (e Event) Terminal() bool {
	return e.Kind == EventResult || e.Kind == EventError
}
