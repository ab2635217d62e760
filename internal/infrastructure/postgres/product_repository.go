package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gestaoloja/estoque-api/internal/domain"
	"github.com/gestaoloja/estoque-api/internal/domain/entity"
	"github.com/gestaoloja/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementação sobre PostgreSQL (usável com pool ou tx).
// A tabela não tem coluna de estoque: saldo é derivado das movimentações.
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, branch_id, sku, name, category, price, deleted_at, created_at, updated_at`

// Create persiste um produto. SKU duplicado na filial devolve ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.BranchID, p.SKU, p.Name, p.Category, p.Price,
		p.DeletedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID busca um produto por ID, excluídos inclusive (nil se não existir).
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetBySKU busca um produto ativo pelo SKU dentro da filial.
func (r *ProductRepo) GetBySKU(ctx context.Context, branchID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE branch_id = $1 AND sku = $2 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(ctx, query, branchID, sku))
}

// Update atualiza os campos editáveis do produto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category = $3, price = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Category, p.Price, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca o produto como excluído; o histórico permanece intacto.
func (r *ProductRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE products SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActiveByBranch devolve todos os produtos não excluídos da filial.
func (r *ProductRepo) ListActiveByBranch(ctx context.Context, branchID string) ([]entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE branch_id = $1 AND deleted_at IS NULL
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list products by branch: %w", err)
	}
	defer rows.Close()

	var list []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.BranchID, &p.SKU, &p.Name, &p.Category, &p.Price,
			&p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.BranchID, &p.SKU, &p.Name, &p.Category, &p.Price,
		&p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
