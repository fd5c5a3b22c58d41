package extract_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purchasestore/shein-finance-extract/internal/core/extract"
	"github.com/purchasestore/shein-finance-extract/internal/domain"
)

func cleaned(d time.Time, amount string) domain.CleanedRecord {
	return domain.CleanedRecord{
		SettlementDate: d,
		Receivable:     decimal.RequireFromString(amount),
	}
}

func TestGroupRecordsProximity(t *testing.T) {
	d15 := date(2024, time.March, 15)
	d16 := date(2024, time.March, 16)
	d17 := date(2024, time.March, 17)

	tests := []struct {
		name      string
		records   []domain.CleanedRecord
		wantDates []time.Time
	}{
		{
			name:      "mesma data num só grupo",
			records:   []domain.CleanedRecord{cleaned(d15, "10"), cleaned(d15, "20")},
			wantDates: []time.Time{d15},
		},
		{
			name:      "um dia de distância junta",
			records:   []domain.CleanedRecord{cleaned(d15, "10"), cleaned(d16, "20")},
			wantDates: []time.Time{d15},
		},
		{
			name:      "dois dias de distância separa",
			records:   []domain.CleanedRecord{cleaned(d15, "10"), cleaned(d17, "20")},
			wantDates: []time.Time{d15, d17},
		},
		{
			name:      "terceiro dia abre grupo novo",
			records:   []domain.CleanedRecord{cleaned(d15, "10"), cleaned(d16, "20"), cleaned(d17, "30")},
			wantDates: []time.Time{d15, d17},
		},
		{
			name:      "entrada fora de ordem é ordenada antes de agrupar",
			records:   []domain.CleanedRecord{cleaned(d17, "30"), cleaned(d15, "10")},
			wantDates: []time.Time{d15, d17},
		},
		{
			name:      "vazio",
			records:   nil,
			wantDates: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := extract.GroupRecords(tt.records, nil, nil)
			require.Len(t, groups, len(tt.wantDates))
			for i, want := range tt.wantDates {
				assert.True(t, want.Equal(groups[i].Date), "grupo %d: esperado %s, obtido %s", i, want, groups[i].Date)
			}
		})
	}
}

func TestGroupRecordsAccumulation(t *testing.T) {
	d := date(2024, time.March, 15)
	groups := extract.GroupRecords([]domain.CleanedRecord{
		cleaned(d, "100"),
		cleaned(d, "50.5"),
		cleaned(d, "-30"),
		cleaned(d, "0"),
	}, nil, nil)

	require.Len(t, groups, 1)
	g := groups[0]

	assert.True(t, decimal.RequireFromString("150.5").Equal(g.Income), "renda: %s", g.Income)
	assert.True(t, decimal.RequireFromString("30").Equal(g.Expense), "despesa: %s", g.Expense)
	// só valores positivos contam como pedido; zero entra como despesa nula
	assert.Equal(t, 2, g.OrderCount)
	assert.False(t, g.Income.IsNegative())
	assert.False(t, g.Expense.IsNegative())
}

func TestGroupRecordsStartDateFilter(t *testing.T) {
	d10 := date(2024, time.March, 10)
	d15 := date(2024, time.March, 15)
	d20 := date(2024, time.March, 20)
	records := []domain.CleanedRecord{
		cleaned(d10, "10"),
		cleaned(d15, "20"),
		cleaned(d20, "30"),
	}

	t.Run("limite inferior é inclusivo", func(t *testing.T) {
		groups := extract.GroupRecords(records, &d15, nil)
		require.Len(t, groups, 2)
		assert.True(t, d15.Equal(groups[0].Date))
		assert.True(t, d20.Equal(groups[1].Date))
	})

	t.Run("sem filtro mantém tudo", func(t *testing.T) {
		groups := extract.GroupRecords(records, nil, nil)
		assert.Len(t, groups, 3)
	})

	t.Run("filtro depois de tudo zera a saída", func(t *testing.T) {
		after := date(2024, time.April, 1)
		groups := extract.GroupRecords(records, &after, nil)
		assert.Empty(t, groups)
	})
}

func TestGroupRecordsMonotonicOrder(t *testing.T) {
	var records []domain.CleanedRecord
	// datas espalhadas e embaralhadas
	for _, day := range []int{28, 3, 17, 1, 9, 25, 5, 21, 13} {
		records = append(records, cleaned(date(2024, time.March, day), "10"))
	}

	groups := extract.GroupRecords(records, nil, nil)
	for i := 1; i < len(groups); i++ {
		assert.False(t, groups[i].Date.Before(groups[i-1].Date),
			"grupos fora de ordem: %s antes de %s", groups[i].Date, groups[i-1].Date)
	}
}

func TestGroupRecordsProgressCallback(t *testing.T) {
	var records []domain.CleanedRecord
	for i := 0; i < 250; i++ {
		records = append(records, cleaned(date(2024, time.March, 15), "1"))
	}

	var calls [][2]int
	extract.GroupRecords(records, nil, func(done, total int) {
		calls = append(calls, [2]int{done, total})
	})

	require.Equal(t, [][2]int{{0, 250}, {100, 250}, {200, 250}}, calls)
}
