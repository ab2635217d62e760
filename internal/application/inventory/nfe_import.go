package inventory

import (
	"context"
	"fmt"

	"github.com/gestaoloja/estoque-api/internal/application/dto"
	"github.com/gestaoloja/estoque-api/internal/domain/entity"
	"github.com/gestaoloja/estoque-api/internal/domain/repository"
)

// ImportNFEUseCase importa uma NF-e de entrada: cada item com SKU conhecido
// vira uma movimentação ENTRY datada da emissão da nota. Códigos sem produto
// correspondente são devolvidos no resultado, nunca descartados em silêncio.
type ImportNFEUseCase struct {
	parser      NFEParser
	productRepo repository.ProductRepository
	register    *RegisterMovementUseCase
}

// NewImportNFEUseCase constrói o caso de uso.
func NewImportNFEUseCase(
	parser NFEParser,
	productRepo repository.ProductRepository,
	register *RegisterMovementUseCase,
) *ImportNFEUseCase {
	return &ImportNFEUseCase{parser: parser, productRepo: productRepo, register: register}
}

// Import interpreta o XML e registra as entradas da filial.
// Erros de parse (inclusive DateParseError) abortam a importação inteira.
func (uc *ImportNFEUseCase) Import(ctx context.Context, branchID, userName string, xmlData []byte) (*dto.NFEImportResult, error) {
	invoice, err := uc.parser.Parse(xmlData)
	if err != nil {
		return nil, err
	}

	result := &dto.NFEImportResult{InvoiceNumber: invoice.Number}
	for _, item := range invoice.Items {
		product, err := uc.productRepo.GetBySKU(ctx, branchID, item.Code)
		if err != nil {
			return nil, err
		}
		if product == nil {
			result.UnknownCodes = append(result.UnknownCodes, item.Code)
			continue
		}
		_, err = uc.register.Register(ctx, MovementInput{
			BranchID:  branchID,
			UserName:  userName,
			ProductID: product.ID,
			Type:      entity.MovementTypeEntry,
			Quantity:  item.Quantity,
			Date:      invoice.IssuedAt,
			Notes:     fmt.Sprintf("NF-e %s", invoice.Number),
		})
		if err != nil {
			return nil, fmt.Errorf("importar item %s: %w", item.Code, err)
		}
		result.Imported++
	}
	return result, nil
}
