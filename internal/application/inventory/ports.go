package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestaoloja/estoque-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando um
// repositório de movimentações atado a essa tx. Garante a atomicidade do par
// de lançamentos de uma TRANSFER.
type TxRunner interface {
	Run(ctx context.Context, fn func(movRepo repository.StockMovementRepository) error) error
}

// ViewNotifier avisa as assinaturas ao vivo de que o conjunto de
// movimentações de uma filial mudou.
type ViewNotifier interface {
	PublishMovements(ctx context.Context, branchID string)
}

// NFEItem é um item de NF-e já interpretado (det/prod).
type NFEItem struct {
	Code        string // cProd: casado com o SKU do produto
	Description string
	Quantity    decimal.Decimal
}

// NFEInvoice é o resultado da interpretação de um XML de NF-e de entrada.
type NFEInvoice struct {
	Number   string
	Supplier string
	IssuedAt time.Time
	Items    []NFEItem
}

// NFEParser interpreta o XML bruto de uma NF-e.
// Datas de emissão malformadas devolvem domain.DateParseError.
type NFEParser interface {
	Parse(data []byte) (*NFEInvoice, error)
}
