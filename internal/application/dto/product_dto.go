package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestaoloja/estoque-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Price    decimal.Decimal `json:"price"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionais).
type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty"`
	Category *string          `json:"category,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}

// ProductResponse representação JSON de um produto (sem estoque: o saldo vive
// na visão derivada, nunca no cadastro).
type ProductResponse struct {
	ID        string          `json:"id"`
	BranchID  string          `json:"branch_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToProductResponse converte a entidade para o DTO.
func ToProductResponse(p *entity.Product) *ProductResponse {
	return &ProductResponse{
		ID:        p.ID,
		BranchID:  p.BranchID,
		SKU:       p.SKU,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// BranchResponse representação JSON de uma filial.
type BranchResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// ToBranchResponse converte a entidade para o DTO.
func ToBranchResponse(b entity.Branch) BranchResponse {
	return BranchResponse{ID: b.ID, Name: b.Name, Address: b.Address}
}
