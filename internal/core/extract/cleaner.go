package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/schollz/closestmatch"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/purchasestore/shein-finance-extract/internal/domain"
)

var nonAlphanumericRegex = regexp.MustCompile(`[^A-Z0-9 ]+`)
var whitespaceRegex = regexp.MustCompile(`\s+`)

// normalizeHeader remove acentos e pontuação e colapsa espaços, para que
// "Data de início da liquidação" case com variações de caixa/acentuação
// vindas de exportações diferentes.
func normalizeHeader(str string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, str)
	result = strings.ToUpper(result)
	result = nonAlphanumericRegex.ReplaceAllString(result, " ")
	result = whitespaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// ResolveColumns maps the configured date and amount column names onto the
// actual (trimmed) header keys of the input. Lookup order: exact trimmed
// match, accent/case-insensitive match, fuzzy match over the headers.
// When nothing matches the configured name is returned unchanged and the
// per-record lookup simply misses, which degrades per the cleaning rules.
func ResolveColumns(sample domain.RawRecord, dateColumn, amountColumn string) (string, string) {
	keys := make([]string, 0, len(sample))
	seen := make(map[string]bool, len(sample))
	for k := range sample {
		trimmed := strings.TrimSpace(k)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		keys = append(keys, trimmed)
	}
	sort.Strings(keys)

	return resolveColumn(keys, dateColumn), resolveColumn(keys, amountColumn)
}

func resolveColumn(keys []string, want string) string {
	want = strings.TrimSpace(want)
	for _, k := range keys {
		if k == want {
			return k
		}
	}

	wantNorm := normalizeHeader(want)
	normToKey := make(map[string]string, len(keys))
	normKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		n := normalizeHeader(k)
		if n == "" {
			continue
		}
		if _, ok := normToKey[n]; !ok {
			normToKey[n] = k
			normKeys = append(normKeys, n)
		}
	}
	if k, ok := normToKey[wantNorm]; ok {
		return k
	}

	if len(normKeys) > 0 {
		// closestmatch indexa a lista em minúsculas mas não minusculiza a
		// consulta; os dois lados precisam chegar já em minúsculas.
		lowerToKey := make(map[string]string, len(normKeys))
		lowerKeys := make([]string, 0, len(normKeys))
		for _, n := range normKeys {
			l := strings.ToLower(n)
			if _, ok := lowerToKey[l]; !ok {
				lowerToKey[l] = normToKey[n]
				lowerKeys = append(lowerKeys, l)
			}
		}
		cm := closestmatch.New(lowerKeys, []int{3, 4, 5})
		if match := cm.Closest(strings.ToLower(wantNorm)); match != "" {
			if k, ok := lowerToKey[match]; ok {
				return k
			}
		}
	}

	return want
}

// CleanRecord trims keys and string values of a raw record and normalizes
// the settlement date and receivable amount columns. A record whose date
// cannot be parsed is dropped (ok=false). Cleaning is independent per
// record, so callers may chunk or parallelize it freely.
func CleanRecord(rec domain.RawRecord, dateKey, amountKey string) (domain.CleanedRecord, bool) {
	fields := make(map[string]string, len(rec))

	// Ordena as chaves brutas para que colisões de chaves que diferem só em
	// espaços resolvam de forma determinística ("última chave vence").
	rawKeys := make([]string, 0, len(rec))
	for k := range rec {
		rawKeys = append(rawKeys, k)
	}
	sort.Strings(rawKeys)

	for _, k := range rawKeys {
		trimmed := strings.TrimSpace(k)
		if trimmed == "" {
			continue
		}
		fields[trimmed] = strings.TrimSpace(cellString(rec[k]))
	}

	date, ok := ParseSettlementDate(fields[dateKey])
	if !ok {
		return domain.CleanedRecord{}, false
	}

	return domain.CleanedRecord{
		Fields:         fields,
		SettlementDate: date,
		Receivable:     ParseAmount(fields[amountKey]),
	}, true
}

// cellString renders a raw cell value as string; nil (célula vazia) vira "".
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
