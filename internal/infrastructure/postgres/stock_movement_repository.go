package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gestaoloja/estoque-api/internal/domain/entity"
	"github.com/gestaoloja/estoque-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementação sobre PostgreSQL (usável com pool ou tx).
// A tabela stock_movements é append-only: só INSERT e SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, branch_id, product_id, product_name, type, quantity, date, user_name, notes, created_at`

// Create persiste uma movimentação de estoque.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.BranchID, m.ProductID, m.ProductName, m.Type,
		m.Quantity, m.Date, m.UserName, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID busca uma movimentação por ID (nil se não existir).
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.BranchID, &m.ProductID, &m.ProductName, &m.Type,
		&m.Quantity, &m.Date, &m.UserName, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByBranch devolve o conjunto completo de movimentações da filial.
// A ordenação de exibição é responsabilidade do razão, não do SQL.
func (r *StockMovementRepo) ListByBranch(ctx context.Context, branchID string) ([]entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE branch_id = $1`
	rows, err := r.q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list movements by branch: %w", err)
	}
	defer rows.Close()

	var list []entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.BranchID, &m.ProductID, &m.ProductName, &m.Type,
			&m.Quantity, &m.Date, &m.UserName, &m.Notes, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
