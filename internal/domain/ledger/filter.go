package ledger

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizer remove acentos (marcas combinantes) para busca tolerante:
// "cafe" encontra "Café".
var normalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold normaliza um texto para comparação: minúsculas e sem acentos.
func fold(s string) string {
	out, _, err := transform.String(normalizer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// matches informa se query (já normalizada via fold) é substring de algum dos campos.
func matches(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(fold(f), query) {
			return true
		}
	}
	return false
}

// FilterSummaries filtra o razão por texto (nome do produto) e intervalo de
// dias inclusivo, em AND. Os saldos nunca são recalculados aqui.
//
// fromDay/toDay usam DayLayout; vazio = sem limite. Apenas fromDay informado
// equivale a um intervalo de um único dia. A filtragem é idempotente.
func FilterSummaries(items []DailySummary, query, fromDay, toDay string) []DailySummary {
	if fromDay != "" && toDay == "" {
		toDay = fromDay
	}
	q := fold(strings.TrimSpace(query))

	out := make([]DailySummary, 0, len(items))
	for _, s := range items {
		if fromDay != "" && s.Day < fromDay {
			continue
		}
		if toDay != "" && s.Day > toDay {
			continue
		}
		if q != "" && !matches(q, s.ProductName) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterStock filtra a visão de estoque ao vivo por texto, comparando nome e
// categoria do produto.
func FilterStock(items []ProductWithStock, query string) []ProductWithStock {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]ProductWithStock, 0, len(items))
	for _, p := range items {
		if matches(q, p.Name, p.Category) {
			out = append(out, p)
		}
	}
	return out
}
