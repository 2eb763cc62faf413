package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatCurrency(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

type mappingEntry struct {
	key   string
	value float64
	text  string
}

// renderMapping prints entries as {k: v, ...}, largest value first and ties by key.
// The order is for readability only.
func renderMapping(entries []mappingEntry) string {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].key < entries[j].key
	})

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s: %s", e.key, e.text)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func quoteKey(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

func formatCounts(counts map[string]int) string {
	entries := make([]mappingEntry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, mappingEntry{key: quoteKey(k), value: float64(v), text: strconv.Itoa(v)})
	}
	return renderMapping(entries)
}

func formatPercentages(rates map[string]float64) string {
	entries := make([]mappingEntry, 0, len(rates))
	for k, v := range rates {
		entries = append(entries, mappingEntry{key: quoteKey(k), value: v, text: formatPercent(v)})
	}
	return renderMapping(entries)
}

func formatClassPercentages(rates map[int]float64) string {
	entries := make([]mappingEntry, 0, len(rates))
	for k, v := range rates {
		entries = append(entries, mappingEntry{key: strconv.Itoa(k), value: v, text: formatPercent(v)})
	}
	return renderMapping(entries)
}
