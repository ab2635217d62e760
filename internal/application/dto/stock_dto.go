package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestaoloja/estoque-api/internal/domain"
	"github.com/gestaoloja/estoque-api/internal/domain/entity"
	"github.com/gestaoloja/estoque-api/internal/domain/ledger"
)

// RegisterMovementRequest body para POST /api/stock/movements.
// Date aceita RFC3339 ou "2006-01-02"; vazio usa o horário do servidor.
// Para TRANSFER, ToBranchID é a filial de destino; para CANCELLATION,
// RefMovementID identifica a venda estornada.
type RegisterMovementRequest struct {
	ProductID     string          `json:"product_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Date          string          `json:"date,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	ToBranchID    string          `json:"to_branch_id,omitempty"`
	RefMovementID string          `json:"ref_movement_id,omitempty"`
}

// movementDateLayouts são os formatos aceitos na ingestão.
var movementDateLayouts = []string{time.RFC3339, ledger.DayLayout}

// ParseMovementDate interpreta a data de uma movimentação na ingestão.
// Vazio significa "agora" (data atribuída pelo servidor na criação);
// qualquer valor malformado devolve DateParseError — nunca fallback.
func ParseMovementDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now(), nil
	}
	for _, layout := range movementDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &domain.DateParseError{Raw: raw}
}

// MovementDTO representação JSON de uma movimentação.
type MovementDTO struct {
	ID          string          `json:"id"`
	BranchID    string          `json:"branch_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Date        time.Time       `json:"date"`
	UserName    string          `json:"user_name,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// DailySummaryDTO uma linha do razão diário (dia, produto).
type DailySummaryDTO struct {
	Day          string          `json:"day"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	InitialStock decimal.Decimal `json:"initial_stock"`
	Entries      decimal.Decimal `json:"entries"`
	Exits        decimal.Decimal `json:"exits"`
	FinalStock   decimal.Decimal `json:"final_stock"`
	Details      []MovementDTO   `json:"details"`
}

// ProductWithStockDTO produto com o saldo derivado de todas as movimentações.
type ProductWithStockDTO struct {
	ID       string          `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Stock    decimal.Decimal `json:"stock"`
}

// NFEImportResult resumo de uma importação de NF-e.
type NFEImportResult struct {
	InvoiceNumber string   `json:"invoice_number"`
	Imported      int      `json:"imported"`
	UnknownCodes  []string `json:"unknown_codes,omitempty"`
}

// ToMovementDTO converte a entidade para o DTO.
func ToMovementDTO(m entity.StockMovement) MovementDTO {
	return MovementDTO{
		ID:          m.ID,
		BranchID:    m.BranchID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Date:        m.Date,
		UserName:    m.UserName,
		Notes:       m.Notes,
	}
}

// ToDailySummaryDTO converte um resumo diário derivado para o DTO.
func ToDailySummaryDTO(s ledger.DailySummary) DailySummaryDTO {
	details := make([]MovementDTO, 0, len(s.Details))
	for _, m := range s.Details {
		details = append(details, ToMovementDTO(m))
	}
	return DailySummaryDTO{
		Day:          s.Day,
		ProductID:    s.ProductID,
		ProductName:  s.ProductName,
		InitialStock: s.InitialStock,
		Entries:      s.Entries,
		Exits:        s.Exits,
		FinalStock:   s.FinalStock,
		Details:      details,
	}
}

// ToProductWithStockDTO converte a visão de estoque ao vivo para o DTO.
func ToProductWithStockDTO(p ledger.ProductWithStock) ProductWithStockDTO {
	return ProductWithStockDTO{
		ID:       p.ID,
		SKU:      p.SKU,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Stock:    p.Stock,
	}
}
