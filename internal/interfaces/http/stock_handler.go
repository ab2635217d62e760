package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gestaoloja/estoque-api/internal/application/dto"
	"github.com/gestaoloja/estoque-api/internal/application/inventory"
	"github.com/gestaoloja/estoque-api/internal/application/stockview"
	"github.com/gestaoloja/estoque-api/internal/domain"
	"github.com/gestaoloja/estoque-api/internal/domain/ledger"
	"github.com/gestaoloja/estoque-api/pkg/logger"
)

// StockHandler trata as rotas de movimentações, razão diário e estoque ao vivo
// (protegido pelo escopo de filial).
type StockHandler struct {
	register *inventory.RegisterMovementUseCase
	nfe      *inventory.ImportNFEUseCase
	view     *stockview.Service
	log      *logger.Logger
}

// NewStockHandler constrói o handler.
func NewStockHandler(
	register *inventory.RegisterMovementUseCase,
	nfe *inventory.ImportNFEUseCase,
	view *stockview.Service,
	log *logger.Logger,
) *StockHandler {
	return &StockHandler{register: register, nfe: nfe, view: view, log: log}
}

// RegisterMovement godoc
// @Summary      Registrar movimentação de estoque
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (ENTRY|ADJUSTMENT|SALE|TRANSFER|CANCELLATION), quantity, date opcional"
// @Success      201   {object}  dto.MovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	userName := GetUserName(c)
	if branchID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	movement, err := h.register.RegisterFromRequest(c.Context(), branchID, userName, in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementDTO(*movement))
}

// ImportNFE godoc
// @Summary      Importar NF-e de entrada (XML)
// @Description  Cada item com SKU conhecido vira uma ENTRY datada da emissão
//
//	da nota. Códigos sem produto cadastrado voltam em unknown_codes.
//
// @Tags         stock
// @Security     Bearer
// @Accept       application/xml
// @Produce      json
// @Success      200  {object}  dto.NFEImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/nfe-import [post]
func (h *StockHandler) ImportNFE(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	userName := GetUserName(c)
	if branchID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "XML da NF-e obrigatório"})
	}
	result, err := h.nfe.Import(c.Context(), branchID, userName, body)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(result)
}

// GetStock godoc
// @Summary      Estoque ao vivo da filial
// @Description  Produtos ativos com o saldo derivado de todas as movimentações.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Busca por nome ou categoria (sem distinção de caixa ou acentos)"
// @Success      200  {array}   dto.ProductWithStockDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	view, err := h.view.View(c.Context(), branchID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	stock := ledger.FilterStock(view.Stock, c.Query("q"))
	out := make([]dto.ProductWithStockDTO, 0, len(stock))
	for _, p := range stock {
		out = append(out, dto.ToProductWithStockDTO(p))
	}
	return c.JSON(out)
}

// GetLedger godoc
// @Summary      Razão diário da filial
// @Description  Resumos por (dia, produto) com saldo inicial, entradas, saídas
//
//	e saldo final, do mais recente para o mais antigo. Filtro por texto e
//	intervalo de dias em AND; os saldos nunca são recalculados pelo filtro.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        q     query  string  false  "Busca por nome do produto"
// @Param        from  query  string  false  "Dia inicial (YYYY-MM-DD); sozinho equivale a um único dia"
// @Param        to    query  string  false  "Dia final (YYYY-MM-DD)"
// @Success      200  {array}   dto.DailySummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock/ledger [get]
func (h *StockHandler) GetLedger(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	view, err := h.view.View(c.Context(), branchID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	summaries := ledger.FilterSummaries(view.Ledger, c.Query("q"), c.Query("from"), c.Query("to"))
	out := make([]dto.DailySummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.ToDailySummaryDTO(s))
	}
	return c.JSON(out)
}

// mapError traduz erros de domínio para o status HTTP. Datas malformadas são
// rejeitadas com registro de auditoria: nunca entram no razão com fallback.
func (h *StockHandler) mapError(c *fiber.Ctx, err error) error {
	var dateErr *domain.DateParseError
	if errors.As(err, &dateErr) {
		h.log.Warn().Str("branch_id", GetBranchID(c)).Str("raw_date", dateErr.Raw).
			Msg("movimentação rejeitada por data malformada")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: err.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso não encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acesso negado ao recurso"})
	case errors.Is(err, domain.ErrProductDeleted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRODUCT_DELETED", Message: "produto excluído"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
