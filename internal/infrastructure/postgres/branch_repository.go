package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestaoloja/estoque-api/internal/domain/entity"
	"github.com/gestaoloja/estoque-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementação sobre PostgreSQL.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository constrói o adaptador.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// GetByID busca uma filial por ID (nil se não existir).
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM branches WHERE id = $1`
	var b entity.Branch
	err := r.q.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return &b, nil
}

// List devolve todas as filiais.
func (r *BranchRepo) List(ctx context.Context) ([]entity.Branch, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM branches ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var list []entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
