// Package ledger reconstrói o razão diário de estoque a partir do fluxo
// desordenado de movimentações e projeta o saldo atual por produto.
// Todo o pacote é puro: nenhuma função toca repositórios ou estado global.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gestaoloja/estoque-api/internal/domain/entity"
)

// DayLayout é o formato de corte diário do razão (data local).
const DayLayout = "2006-01-02"

// DailySummary é o resumo derivado de um (dia, produto) com atividade.
// Não é persistido; é reconstruído por inteiro a cada leitura.
//
// Invariante: para um produto, FinalStock do dia N é igual ao InitialStock do
// próximo dia com atividade — o saldo corrente nunca reinicia.
type DailySummary struct {
	Day          string // DayLayout
	ProductID    string
	ProductName  string
	InitialStock decimal.Decimal
	Entries      decimal.Decimal // soma das quantidades positivas do dia
	Exits        decimal.Decimal // magnitude da soma das negativas
	FinalStock   decimal.Decimal // InitialStock + Entries - Exits
	Details      []entity.StockMovement
}

// balances é o acumulador de saldos correntes por produto. É tratado como
// valor: cada passo do fold recebe um acumulador e devolve o próximo, em vez
// de mutar um mapa compartilhado.
type balances struct {
	byProduct map[string]decimal.Decimal
}

func newBalances() balances {
	return balances{byProduct: map[string]decimal.Decimal{}}
}

// of devolve o saldo corrente do produto (zero se nunca visto).
func (b balances) of(productID string) decimal.Decimal {
	return b.byProduct[productID]
}

// with devolve um novo acumulador com o saldo do produto atualizado.
func (b balances) with(productID string, v decimal.Decimal) balances {
	next := make(map[string]decimal.Decimal, len(b.byProduct)+1)
	for k, val := range b.byProduct {
		next[k] = val
	}
	next[productID] = v
	return balances{byProduct: next}
}

// Build converte movimentações em qualquer ordem no razão diário por produto,
// ordenado do dia mais recente para o mais antigo (ordem de exibição).
//
// A ordenação interna é total: data ascendente com desempate pelo ID da
// movimentação, então embaralhar a entrada produz saída idêntica.
func Build(movements []entity.StockMovement) []DailySummary {
	if len(movements) == 0 {
		return []DailySummary{}
	}

	sorted := make([]entity.StockMovement, len(movements))
	copy(sorted, movements)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})

	// Agrupamento em dois níveis: dia -> produto -> movimentações do dia.
	// O slice interno preserva a ordem cronológica do sort acima.
	byDay := map[string]map[string][]entity.StockMovement{}
	var days []string
	for _, m := range sorted {
		day := m.Date.Local().Format(DayLayout)
		if byDay[day] == nil {
			byDay[day] = map[string][]entity.StockMovement{}
			days = append(days, day)
		}
		byDay[day][m.ProductID] = append(byDay[day][m.ProductID], m)
	}
	sort.Strings(days) // DayLayout ordena lexicograficamente

	acc := newBalances()
	summaries := make([]DailySummary, 0, len(days))
	for _, day := range days {
		var daySummaries []DailySummary
		daySummaries, acc = applyDay(day, byDay[day], acc)
		summaries = append(summaries, daySummaries...)
	}

	// Mais recente primeiro.
	for i, j := 0, len(summaries)-1; i < j; i, j = i+1, j-1 {
		summaries[i], summaries[j] = summaries[j], summaries[i]
	}
	return summaries
}

// applyDay resume um dia inteiro: um DailySummary por produto com atividade,
// devolvendo também o acumulador de saldos atualizado.
func applyDay(day string, byProduct map[string][]entity.StockMovement, acc balances) ([]DailySummary, balances) {
	productIDs := make([]string, 0, len(byProduct))
	for id := range byProduct {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	out := make([]DailySummary, 0, len(productIDs))
	for _, productID := range productIDs {
		movs := byProduct[productID]

		entries := decimal.Zero
		exits := decimal.Zero
		for _, m := range movs {
			switch {
			case m.Quantity.IsPositive():
				entries = entries.Add(m.Quantity)
			case m.Quantity.IsNegative():
				exits = exits.Add(m.Quantity.Abs())
			}
			// Quantidade exatamente zero (registro legado): não entra em
			// Entries nem em Exits, mas permanece em Details.
		}

		initial := acc.of(productID)
		final := initial.Add(entries).Sub(exits)
		acc = acc.with(productID, final)

		out = append(out, DailySummary{
			Day:          day,
			ProductID:    productID,
			ProductName:  movs[len(movs)-1].ProductName,
			InitialStock: initial,
			Entries:      entries,
			Exits:        exits,
			FinalStock:   final,
			Details:      movs,
		})
	}
	return out, acc
}
