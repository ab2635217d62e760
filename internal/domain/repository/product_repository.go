package repository

import (
	"context"

	"github.com/gestaoloja/estoque-api/internal/domain/entity"
)

// ProductRepository define a porta de persistência para Product (DIP).
// Nenhum método grava estoque: saldo é sempre derivado das movimentações.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, branchID, sku string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	SoftDelete(ctx context.Context, id string) error
	// ListActiveByBranch devolve todos os produtos não excluídos da filial.
	ListActiveByBranch(ctx context.Context, branchID string) ([]entity.Product, error)
}
