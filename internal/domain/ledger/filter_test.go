package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaoloja/estoque-api/internal/domain/entity"
	"github.com/gestaoloja/estoque-api/internal/domain/ledger"
)

func summary(day, productID, productName string, final int64) ledger.DailySummary {
	return ledger.DailySummary{
		Day:         day,
		ProductID:   productID,
		ProductName: productName,
		FinalStock:  decimal.NewFromInt(final),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// FilterSummaries
// ──────────────────────────────────────────────────────────────────────────────

// A busca ignora caixa e acentos: "cafe" encontra "Café".
func TestFilterSummaries_BuscaSemAcentos(t *testing.T) {
	items := []ledger.DailySummary{
		summary("2026-03-10", "A", "Café Torrado", 7),
		summary("2026-03-10", "B", "Açúcar Cristal", 3),
	}

	out := ledger.FilterSummaries(items, "cafe", "", "")
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].ProductID)

	out = ledger.FilterSummaries(items, "AÇUCAR", "", "")
	require.Len(t, out, 1)
	assert.Equal(t, "B", out[0].ProductID)
}

// Apenas "from" informado equivale a um intervalo de um único dia.
func TestFilterSummaries_ApenasFromEquivaleAUmDia(t *testing.T) {
	items := []ledger.DailySummary{
		summary("2026-03-12", "A", "Café", 12),
		summary("2026-03-11", "A", "Café", 9),
		summary("2026-03-10", "A", "Café", 7),
	}

	out := ledger.FilterSummaries(items, "", "2026-03-11", "")
	require.Len(t, out, 1)
	assert.Equal(t, "2026-03-11", out[0].Day)
}

// Intervalo inclusivo nas duas pontas.
func TestFilterSummaries_IntervaloInclusivo(t *testing.T) {
	items := []ledger.DailySummary{
		summary("2026-03-13", "A", "Café", 15),
		summary("2026-03-12", "A", "Café", 12),
		summary("2026-03-11", "A", "Café", 9),
		summary("2026-03-10", "A", "Café", 7),
	}

	out := ledger.FilterSummaries(items, "", "2026-03-11", "2026-03-12")
	require.Len(t, out, 2)
	assert.Equal(t, "2026-03-12", out[0].Day)
	assert.Equal(t, "2026-03-11", out[1].Day)
}

// Texto e intervalo compõem em AND.
func TestFilterSummaries_TextoEIntervaloEmAnd(t *testing.T) {
	items := []ledger.DailySummary{
		summary("2026-03-12", "A", "Café", 12),
		summary("2026-03-12", "B", "Açúcar", 3),
		summary("2026-03-10", "A", "Café", 7),
	}

	out := ledger.FilterSummaries(items, "café", "2026-03-12", "2026-03-12")
	require.Len(t, out, 1)
	assert.Equal(t, "2026-03-12", out[0].Day)
	assert.Equal(t, "A", out[0].ProductID)
}

// Filtrar é idempotente e nunca recalcula saldos: as linhas saem intactas.
func TestFilterSummaries_IdempotenteESemRecalculo(t *testing.T) {
	items := []ledger.DailySummary{
		summary("2026-03-12", "A", "Café", 12),
		summary("2026-03-10", "A", "Café", 7),
	}

	uma := ledger.FilterSummaries(items, "cafe", "2026-03-10", "2026-03-12")
	duas := ledger.FilterSummaries(uma, "cafe", "2026-03-10", "2026-03-12")
	assert.Equal(t, uma, duas)

	// A linha filtrada é a mesma linha do razão completo, saldo incluído.
	require.Len(t, uma, 2)
	assert.True(t, uma[0].FinalStock.Equal(decimal.NewFromInt(12)))
	assert.True(t, uma[1].FinalStock.Equal(decimal.NewFromInt(7)))
}

func TestFilterSummaries_SemFiltroDevolveTudo(t *testing.T) {
	items := []ledger.DailySummary{
		summary("2026-03-12", "A", "Café", 12),
		summary("2026-03-10", "B", "Açúcar", 7),
	}
	assert.Equal(t, items, ledger.FilterSummaries(items, "", "", ""))
	assert.Equal(t, items, ledger.FilterSummaries(items, "   ", "", ""))
}

// ──────────────────────────────────────────────────────────────────────────────
// FilterStock
// ──────────────────────────────────────────────────────────────────────────────

func TestFilterStock_BuscaPorNomeECategoria(t *testing.T) {
	items := []ledger.ProductWithStock{
		{Product: entity.Product{ID: "A", Name: "Café Torrado", Category: "Bebidas"}},
		{Product: entity.Product{ID: "B", Name: "Açúcar", Category: "Mercearia"}},
		{Product: entity.Product{ID: "C", Name: "Chá Verde", Category: "Bebidas"}},
	}

	porNome := ledger.FilterStock(items, "cha")
	require.Len(t, porNome, 1)
	assert.Equal(t, "C", porNome[0].ID)

	porCategoria := ledger.FilterStock(items, "bebidas")
	require.Len(t, porCategoria, 2)
}

func TestFilterStock_QueryVaziaDevolveTudo(t *testing.T) {
	items := []ledger.ProductWithStock{
		{Product: entity.Product{ID: "A", Name: "Café"}},
	}
	assert.Equal(t, items, ledger.FilterStock(items, ""))
}
