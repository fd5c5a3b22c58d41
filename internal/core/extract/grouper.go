package extract

import (
	"sort"
	"time"

	"github.com/purchasestore/shein-finance-extract/internal/domain"
)

// GroupRecords sorts cleaned records chronologically, applies the optional
// inclusive lower-bound filter and merges temporally adjacent records into
// date groups. A record within one day of the previous record's group date
// joins that group, so a contiguous daily chain keeps extending the same
// group beyond its anchor's two-day window.
//
// The progress callback, when non-nil, is invoked every 100 records with
// (done, total).
func GroupRecords(records []domain.CleanedRecord, startDate *time.Time, progress func(done, total int)) []domain.DateGroup {
	sorted := make([]domain.CleanedRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SettlementDate.Before(sorted[j].SettlementDate)
	})

	if startDate != nil {
		filtered := sorted[:0]
		for _, rec := range sorted {
			if !rec.SettlementDate.Before(*startDate) {
				filtered = append(filtered, rec)
			}
		}
		sorted = filtered
	}

	var groups []domain.DateGroup
	var previousDate time.Time
	hasPrevious := false

	for i, rec := range sorted {
		if progress != nil && i%100 == 0 {
			progress(i, len(sorted))
		}

		groupDate := rec.SettlementDate
		if hasPrevious && daysBetween(previousDate, rec.SettlementDate) <= 1 {
			groupDate = previousDate
		}

		if len(groups) == 0 || !groups[len(groups)-1].Date.Equal(groupDate) {
			groups = append(groups, domain.DateGroup{Date: groupDate})
		}
		g := &groups[len(groups)-1]

		if rec.Receivable.IsPositive() {
			g.Income = g.Income.Add(rec.Receivable)
			g.OrderCount++
		} else {
			g.Expense = g.Expense.Add(rec.Receivable.Abs())
		}

		previousDate = groupDate
		hasPrevious = true
	}

	return groups
}
