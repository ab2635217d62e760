package repository

import (
	"context"

	"github.com/gestaoloja/estoque-api/internal/domain/entity"
)

// StockMovementRepository define a porta de persistência do razão de
// movimentações. O razão é append-only: não existem Update nem Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// ListByBranch devolve o conjunto completo de movimentações da filial
	// (as visões derivadas são sempre reconstruídas do snapshot inteiro).
	ListByBranch(ctx context.Context, branchID string) ([]entity.StockMovement, error)
}
