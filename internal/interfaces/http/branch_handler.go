package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestaoloja/estoque-api/internal/application/dto"
	"github.com/gestaoloja/estoque-api/internal/application/usecase"
)

// BranchHandler trata as consultas de filiais.
type BranchHandler struct {
	uc *usecase.BranchUseCase
}

// NewBranchHandler constrói o handler.
func NewBranchHandler(uc *usecase.BranchUseCase) *BranchHandler {
	return &BranchHandler{uc: uc}
}

// List godoc
// @Summary      Listar filiais
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.BranchResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/branches [get]
func (h *BranchHandler) List(c *fiber.Ctx) error {
	branches, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(branches)
}
