package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestaoloja/estoque-api/internal/application/inventory"
	"github.com/gestaoloja/estoque-api/internal/application/stockview"
	"github.com/gestaoloja/estoque-api/internal/application/usecase"
	"github.com/gestaoloja/estoque-api/pkg/logger"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	BranchUC         *usecase.BranchUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	ImportNFE        *inventory.ImportNFEUseCase
	StockView        *stockview.Service
	Logger           *logger.Logger
	JWTSecret        string
}

// Router registra as rotas da API. Todas as rotas de dados exigem Bearer Token
// com filial: o escopo de leitura e escrita vem sempre do token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rotas protegidas (requerem Bearer Token com filial)
	protected := api.Group("/", BranchMiddleware(deps.JWTSecret))

	// Stock: movimentações, razão diário e estoque ao vivo
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.RegisterMovement, deps.ImportNFE, deps.StockView, deps.Logger)
	stock.Post("/movements", stockHandler.RegisterMovement)
	stock.Post("/nfe-import", stockHandler.ImportNFE)
	stock.Get("/ledger", stockHandler.GetLedger)
	stock.Get("/", stockHandler.GetStock)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Branches (protegido)
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Get("/", branchHandler.List)
}
