package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/gestaoloja/estoque-api/internal/domain/entity"
)

// ProductWithStock é a visão de estoque ao vivo: o produto mais a soma
// assinada de todas as suas movimentações, sem recorte de data.
type ProductWithStock struct {
	entity.Product
	Stock decimal.Decimal
}

// CurrentStock projeta o estoque total atual de cada produto ativo.
//
// As movimentações são indexadas por produto antes da soma (O(P+M)).
// O resultado independe da ordem de chegada: soma pura. Produtos sem
// movimentação aparecem com estoque zero.
func CurrentStock(products []entity.Product, movements []entity.StockMovement) []ProductWithStock {
	sums := make(map[string]decimal.Decimal, len(products))
	for _, m := range movements {
		sums[m.ProductID] = sums[m.ProductID].Add(m.Quantity)
	}

	out := make([]ProductWithStock, 0, len(products))
	for _, p := range products {
		out = append(out, ProductWithStock{Product: p, Stock: sums[p.ID]})
	}
	return out
}
