package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gestaoloja/estoque-api/internal/application/dto"
	"github.com/gestaoloja/estoque-api/internal/domain"
	"github.com/gestaoloja/estoque-api/internal/domain/entity"
	"github.com/gestaoloja/estoque-api/internal/domain/repository"
)

// ProductNotifier avisa as assinaturas ao vivo de que o catálogo da filial mudou.
type ProductNotifier interface {
	PublishProducts(ctx context.Context, branchID string)
}

// ProductUseCase casos de uso CRUD para produtos. Estoque não se cadastra nem
// se edita aqui: o saldo é sempre derivado das movimentações.
type ProductUseCase struct {
	repo     repository.ProductRepository
	notifier ProductNotifier
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(repo repository.ProductRepository, notifier ProductNotifier) *ProductUseCase {
	return &ProductUseCase{repo: repo, notifier: notifier}
}

// Create cria um produto na filial. SKU duplicado devolve ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, branchID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(ctx, branchID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		BranchID:  branchID,
		SKU:       in.SKU,
		Name:      in.Name,
		Category:  in.Category,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.notify(ctx, branchID)
	return dto.ToProductResponse(product), nil
}

// GetByID devolve um produto da filial (nil se não existir).
func (uc *ProductUseCase) GetByID(ctx context.Context, branchID, id string) (*dto.ProductResponse, error) {
	product, err := uc.getOwned(ctx, branchID, id)
	if err != nil || product == nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Update altera nome, categoria ou preço. Renomear não reescreve o histórico:
// as movimentações guardam o nome da época.
func (uc *ProductUseCase) Update(ctx context.Context, branchID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.getOwned(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.notify(ctx, branchID)
	return dto.ToProductResponse(product), nil
}

// Delete faz soft delete; o histórico de movimentações do produto permanece.
func (uc *ProductUseCase) Delete(ctx context.Context, branchID, id string) error {
	product, err := uc.getOwned(ctx, branchID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	uc.notify(ctx, branchID)
	return nil
}

// List devolve os produtos ativos da filial.
func (uc *ProductUseCase) List(ctx context.Context, branchID string) ([]dto.ProductResponse, error) {
	products, err := uc.repo.ListActiveByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *dto.ToProductResponse(&products[i]))
	}
	return out, nil
}

// getOwned carrega o produto e confere a filial (ErrForbidden se for de outra).
func (uc *ProductUseCase) getOwned(ctx context.Context, branchID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	if product.BranchID != branchID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func (uc *ProductUseCase) notify(ctx context.Context, branchID string) {
	if uc.notifier != nil {
		uc.notifier.PublishProducts(ctx, branchID)
	}
}
