package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto ou SKU do catálogo de uma filial.
//
// O estoque nunca é gravado aqui: o saldo atual é sempre derivado da soma das
// movimentações, evitando o problema de dupla escrita ao custo de recomputar
// a soma em cada leitura.
type Product struct {
	ID        string
	BranchID  string
	SKU       string // código único por filial; usado no match da NF-e
	Name      string
	Category  string
	Price     decimal.Decimal
	DeletedAt *time.Time // soft delete; nil = ativo
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active informa se o produto não foi excluído (soft delete).
func (p *Product) Active() bool {
	return p.DeletedAt == nil
}
