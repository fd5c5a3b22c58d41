package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/metakeule/fmtdate"
)

// Os relatórios de liquidação da Shein trazem a data por extenso em
// português ("15 março 2024"); o parser de datas do Go só conhece os nomes
// em inglês, então substituímos o mês antes de tentar o formato primário.
var monthPtToEn = []struct{ pt, en string }{
	{"janeiro", "january"},
	{"fevereiro", "february"},
	{"março", "march"},
	{"abril", "april"},
	{"maio", "may"},
	{"junho", "june"},
	{"julho", "july"},
	{"agosto", "august"},
	{"setembro", "september"},
	{"outubro", "october"},
	{"novembro", "november"},
	{"dezembro", "december"},
}

// fallbackMasks são tentadas em ordem quando o formato primário falha.
var fallbackMasks = []string{"DD/MM/YYYY", "YYYY-MM-DD", "MM/DD/YYYY"}

// looseLayouts cobre datas que escapam dos formatos conhecidos, espelhando o
// comportamento de um parse genérico.
var looseLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseSettlementDate converts a raw settlement date cell into a calendar
// date with no time-of-day component. A missing or unparsable value is a
// normal outcome, reported as ok=false; this function never errors.
func ParseSettlementDate(raw string) (time.Time, bool) {
	dateStr := strings.ToLower(strings.TrimSpace(raw))
	if dateStr == "" {
		return time.Time{}, false
	}

	for _, m := range monthPtToEn {
		if strings.Contains(dateStr, m.pt) {
			dateStr = strings.Replace(dateStr, m.pt, m.en, 1)
			break
		}
	}

	if t, err := time.Parse("2 January 2006", dateStr); err == nil {
		return dateOnly(t), true
	}

	for _, mask := range fallbackMasks {
		if t, err := fmtdate.Parse(mask, dateStr); err == nil {
			return dateOnly(t), true
		}
	}

	return parseLooseDate(raw)
}

// parseLooseDate tenta reconhecer o valor original cru: layouts adicionais e
// números de série do Excel dentro de um intervalo plausível.
func parseLooseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range looseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t), true
		}
	}

	// Serial Excel entre 35000 (≈1995) e 47000 (≈2028) — evita confundir
	// valores numéricos comuns com datas.
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 35000 && f < 47000 {
		return dateOnly(excelSerialToDate(f)), true
	}

	return time.Time{}, false
}

func excelSerialToDate(serial float64) time.Time {
	// base do serial Excel -> 1899-12-30
	base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	frac := serial - float64(int64(serial))
	duration := time.Duration(int64(serial)*24) * time.Hour
	duration += time.Duration(frac * 24 * float64(time.Hour))
	return base.Add(duration)
}

// dateOnly drops the time-of-day component, pinning the date to UTC so that
// whole-day differences are exact.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole-day difference b-a between two dates
// produced by ParseSettlementDate.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
