package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestaoloja/estoque-api/internal/domain"
	"github.com/gestaoloja/estoque-api/internal/domain/entity"
	"github.com/gestaoloja/estoque-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimentações de estoque
// (ENTRY, ADJUSTMENT, SALE, TRANSFER, CANCELLATION) no razão append-only.
//
// O nome do produto é congelado na movimentação no momento do registro e
// nunca ressincronizado. O caso de uso não mantém saldo materializado:
// validação de tipo e sinal acontece aqui, aritmética de saldo só no razão.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.StockMovementRepository
	productRepo  repository.ProductRepository
	branchRepo   repository.BranchRepository
	notifier     ViewNotifier
}

// NewRegisterMovementUseCase constrói o caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	notifier ViewNotifier,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		productRepo:  productRepo,
		branchRepo:   branchRepo,
		notifier:     notifier,
	}
}

// MovementInput entrada para registrar uma movimentação.
// Quantity chega positiva para ENTRY/SALE/TRANSFER (o sinal de armazenamento
// é decidido pelo tipo) e assinada para ADJUSTMENT. Date já vem interpretada
// (a ingestão rejeita datas malformadas com DateParseError antes daqui).
type MovementInput struct {
	BranchID      string
	UserName      string
	ProductID     string
	Type          string
	Quantity      decimal.Decimal
	Date          time.Time
	Notes         string
	ToBranchID    string // apenas TRANSFER
	RefMovementID string // apenas CANCELLATION: venda a estornar
}

// Register valida a entrada, grava a(s) movimentação(ões) e avisa a visão ao
// vivo da(s) filial(is) afetada(s). Devolve a movimentação da filial de origem.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if !entity.ValidMovementType(input.Type) || input.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	if input.Type == entity.MovementTypeCancellation {
		return uc.registerCancellation(ctx, input)
	}

	if input.ProductID == "" || input.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.BranchID != input.BranchID {
		return nil, domain.ErrForbidden
	}
	if !product.Active() {
		return nil, domain.ErrProductDeleted
	}

	switch input.Type {
	case entity.MovementTypeEntry:
		if !input.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		return uc.createOne(ctx, product, input, input.Quantity)

	case entity.MovementTypeSale:
		if !input.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		return uc.createOne(ctx, product, input, input.Quantity.Neg())

	case entity.MovementTypeAdjustment:
		// Sinal como informado: ajuste positivo soma, negativo subtrai.
		return uc.createOne(ctx, product, input, input.Quantity)

	case entity.MovementTypeTransfer:
		return uc.registerTransfer(ctx, product, input)
	}
	return nil, domain.ErrInvalidInput
}

// createOne grava uma única movimentação com a quantidade assinada indicada.
func (uc *RegisterMovementUseCase) createOne(
	ctx context.Context,
	product *entity.Product,
	input MovementInput,
	quantity decimal.Decimal,
) (*entity.StockMovement, error) {
	mov := newMovement(input.BranchID, product, input.Type, quantity, input)
	if err := uc.movementRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	uc.notify(ctx, input.BranchID)
	return mov, nil
}

// registerTransfer grava o par saída-origem / entrada-destino na mesma
// transação. As duas movimentações compartilham a observação.
//
// O catálogo é por filial: o lançamento de entrada pertence ao produto do
// destino, casado pelo SKU (mesmo mecanismo da importação de NF-e). Sem
// produto ativo correspondente no destino, a transferência não acontece.
func (uc *RegisterMovementUseCase) registerTransfer(
	ctx context.Context,
	product *entity.Product,
	input MovementInput,
) (*entity.StockMovement, error) {
	if !input.Quantity.IsPositive() || input.ToBranchID == "" || input.ToBranchID == input.BranchID {
		return nil, domain.ErrInvalidInput
	}
	dest, err := uc.branchRepo.GetByID(ctx, input.ToBranchID)
	if err != nil {
		return nil, err
	}
	if dest == nil {
		return nil, domain.ErrNotFound
	}
	destProduct, err := uc.productRepo.GetBySKU(ctx, input.ToBranchID, product.SKU)
	if err != nil {
		return nil, err
	}
	if destProduct == nil {
		return nil, domain.ErrNotFound
	}

	out := newMovement(input.BranchID, product, entity.MovementTypeTransfer, input.Quantity.Neg(), input)
	in := newMovement(input.ToBranchID, destProduct, entity.MovementTypeTransfer, input.Quantity, input)

	err = uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository) error {
		if err := movRepo.Create(ctx, out); err != nil {
			return err
		}
		return movRepo.Create(ctx, in)
	})
	if err != nil {
		return nil, fmt.Errorf("registrar transferência: %w", err)
	}
	uc.notify(ctx, input.BranchID)
	uc.notify(ctx, input.ToBranchID)
	return out, nil
}

// registerCancellation estorna uma venda: grava a quantidade espelhada
// (positiva) referenciando a movimentação original. Produto e nome vêm do
// snapshot da venda, preservando o histórico mesmo se o produto mudou.
func (uc *RegisterMovementUseCase) registerCancellation(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if input.RefMovementID == "" {
		return nil, domain.ErrInvalidInput
	}
	ref, err := uc.movementRepo.GetByID(ctx, input.RefMovementID)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, domain.ErrNotFound
	}
	if ref.BranchID != input.BranchID {
		return nil, domain.ErrForbidden
	}
	if ref.Type != entity.MovementTypeSale {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		BranchID:    ref.BranchID,
		ProductID:   ref.ProductID,
		ProductName: ref.ProductName,
		Type:        entity.MovementTypeCancellation,
		Quantity:    ref.Quantity.Neg(), // venda é negativa, estorno devolve ao estoque
		Date:        input.Date,
		UserName:    input.UserName,
		Notes:       fmt.Sprintf("estorno da venda %s", ref.ID),
		CreatedAt:   now,
	}
	if input.Notes != "" {
		mov.Notes = input.Notes
	}
	if err := uc.movementRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	uc.notify(ctx, input.BranchID)
	return mov, nil
}

func (uc *RegisterMovementUseCase) notify(ctx context.Context, branchID string) {
	if uc.notifier != nil {
		uc.notifier.PublishMovements(ctx, branchID)
	}
}

// newMovement monta a entidade com o snapshot do nome do produto.
func newMovement(
	branchID string,
	product *entity.Product,
	movType string,
	quantity decimal.Decimal,
	input MovementInput,
) *entity.StockMovement {
	return &entity.StockMovement{
		ID:          uuid.New().String(),
		BranchID:    branchID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Type:        movType,
		Quantity:    quantity,
		Date:        input.Date,
		UserName:    input.UserName,
		Notes:       input.Notes,
		CreatedAt:   time.Now(),
	}
}
