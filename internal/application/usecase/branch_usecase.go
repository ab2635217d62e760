package usecase

import (
	"context"

	"github.com/gestaoloja/estoque-api/internal/application/dto"
	"github.com/gestaoloja/estoque-api/internal/domain/repository"
)

// BranchUseCase consultas de filiais.
type BranchUseCase struct {
	repo repository.BranchRepository
}

// NewBranchUseCase constrói o caso de uso.
func NewBranchUseCase(repo repository.BranchRepository) *BranchUseCase {
	return &BranchUseCase{repo: repo}
}

// List devolve todas as filiais.
func (uc *BranchUseCase) List(ctx context.Context) ([]dto.BranchResponse, error) {
	branches, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, dto.ToBranchResponse(b))
	}
	return out, nil
}
