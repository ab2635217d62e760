package repository

import (
	"context"

	"github.com/gestaoloja/estoque-api/internal/domain/entity"
)

// BranchRepository define a porta de persistência para Branch.
type BranchRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	List(ctx context.Context) ([]entity.Branch, error)
}
