package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimentação de estoque. A classificação é informativa:
// a aritmética de saldo usa apenas o sinal de Quantity.
const (
	MovementTypeEntry        = "ENTRY"        // entrada manual ou importação de NF-e
	MovementTypeAdjustment   = "ADJUSTMENT"   // ajuste (positivo ou negativo)
	MovementTypeSale         = "SALE"         // venda no PDV (sempre negativa)
	MovementTypeTransfer     = "TRANSFER"     // transferência entre filiais
	MovementTypeCancellation = "CANCELLATION" // estorno de venda (positiva)
)

// ValidMovementType informa se o tipo é um dos cinco reconhecidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntry, MovementTypeAdjustment, MovementTypeSale,
		MovementTypeTransfer, MovementTypeCancellation:
		return true
	}
	return false
}

// StockMovement é um evento imutável do razão de estoque (append-only):
// nunca é alterado nem removido depois de criado.
//
// ProductName é um snapshot do nome do produto no momento da movimentação e
// nunca é ressincronizado — renomear o produto não reescreve o histórico.
type StockMovement struct {
	ID          string
	BranchID    string
	ProductID   string
	ProductName string
	Type        string
	Quantity    decimal.Decimal // positiva = entrada, negativa = saída
	Date        time.Time       // autoritativa para ordenação e corte por dia
	UserName    string
	Notes       string
	CreatedAt   time.Time
}
