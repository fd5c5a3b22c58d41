package extract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purchasestore/shein-finance-extract/internal/core/extract"
	"github.com/purchasestore/shein-finance-extract/internal/domain"
)

func newService() extract.Service {
	return extract.NewService(dateColumn, amountColumn)
}

func collectEvents(svc extract.Service, records []domain.RawRecord, startDate *time.Time) []domain.Event {
	var events []domain.Event
	svc.Process(records, startDate, func(ev domain.Event) {
		events = append(events, ev)
	})
	return events
}

func TestProcessEndToEnd(t *testing.T) {
	records := []domain.RawRecord{
		{dateColumn: "15 março 2024", amountColumn: "BRL 10.000,00"},
		{dateColumn: "16 março 2024", amountColumn: "BRL -500,00"},
	}

	events := collectEvents(newService(), records, nil)
	require.NotEmpty(t, events)

	final := events[len(events)-1]
	require.Equal(t, domain.EventResult, final.Kind)
	require.Len(t, final.Rows, 1)

	row := final.Rows[0]
	assert.Equal(t, "15-03-2024", row.GroupedDate)
	assert.Equal(t, "R$ 100,00", row.Renda)
	assert.Equal(t, "R$ 5,00", row.Despesa)
	assert.Equal(t, "R$ 95,00", row.MontanteFixo)
	assert.Equal(t, "5.00%", row.PercentualDespesa)
	assert.Equal(t, 1, row.PedidosRecebidos)
	assert.Equal(t, "R$ 95,00", row.RecebimentoMedio)
}

func TestProcessProgressIsMonotonicWithSingleTerminal(t *testing.T) {
	var records []domain.RawRecord
	for i := 0; i < 1000; i++ {
		day := 1 + i%28
		records = append(records, domain.RawRecord{
			dateColumn:   time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC).Format("02/01/2006"),
			amountColumn: "BRL 1.000,00",
		})
	}

	events := collectEvents(newService(), records, nil)
	require.NotEmpty(t, events)

	terminals := 0
	lastProgress := -1
	for i, ev := range events {
		switch ev.Kind {
		case domain.EventProgress:
			assert.GreaterOrEqual(t, ev.Value, 0)
			assert.LessOrEqual(t, ev.Value, 100)
			assert.Greater(t, ev.Value, lastProgress, "progresso regrediu no evento %d", i)
			lastProgress = ev.Value
		case domain.EventResult, domain.EventError:
			terminals++
			assert.Equal(t, len(events)-1, i, "evento terminal antes do fim")
		}
	}
	assert.Equal(t, 1, terminals)
	assert.Equal(t, 100, lastProgress)
}

func TestProcessDropsRecordsWithoutDate(t *testing.T) {
	records := []domain.RawRecord{
		{dateColumn: nil, amountColumn: "BRL 1,00"},
		{dateColumn: "", amountColumn: "BRL 2,00"},
		{dateColumn: "sem data", amountColumn: "BRL 3,00"},
		{dateColumn: "15/03/2024", amountColumn: "BRL 4,00"},
	}

	result, err := newService().ProcessSync(records, nil)
	require.NoError(t, err)
	require.Len(t, result.Groups, 1)
	assert.Equal(t, 1, result.Groups[0].OrderCount)
}

func TestProcessSyncStartDateFilter(t *testing.T) {
	records := []domain.RawRecord{
		{dateColumn: "10/03/2024", amountColumn: "BRL 1,00"},
		{dateColumn: "15/03/2024", amountColumn: "BRL 2,00"},
		{dateColumn: "20/03/2024", amountColumn: "BRL 3,00"},
	}

	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	result, err := newService().ProcessSync(records, &start)
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, "15-03-2024", result.Rows[0].GroupedDate)
	assert.Equal(t, "20-03-2024", result.Rows[1].GroupedDate)
}

func TestProcessSyncEmptyInput(t *testing.T) {
	result, err := newService().ProcessSync(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Empty(t, result.Groups)
}

func TestProcessSyncKeepsNumericGroups(t *testing.T) {
	records := []domain.RawRecord{
		{dateColumn: "15 março 2024", amountColumn: "BRL 10.000,00"},
		{dateColumn: "16 março 2024", amountColumn: "BRL -500,00"},
	}

	result, err := newService().ProcessSync(records, nil)
	require.NoError(t, err)
	require.Len(t, result.Groups, 1)

	g := result.Groups[0]
	assert.Equal(t, "100", g.Income.String())
	assert.Equal(t, "5", g.Expense.String())
	assert.Equal(t, "95", g.FixedAmount.String())
	assert.Equal(t, 1, g.OrderCount)
}
