package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gestaoloja/estoque-api/internal/application/inventory"
	"github.com/gestaoloja/estoque-api/internal/application/stockview"
	"github.com/gestaoloja/estoque-api/internal/application/usecase"
	infranfe "github.com/gestaoloja/estoque-api/internal/infrastructure/nfe"
	"github.com/gestaoloja/estoque-api/internal/infrastructure/postgres"
	httpRouter "github.com/gestaoloja/estoque-api/internal/interfaces/http"
	"github.com/gestaoloja/estoque-api/pkg/config"
	"github.com/gestaoloja/estoque-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	movementRepo := postgres.NewStockMovementRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Feed ao vivo por filial + serviço que mantém razão e estoque derivados
	hub := stockview.NewHub(movementRepo, productRepo, log)
	viewService := stockview.NewService(hub, movementRepo, productRepo, log)
	defer viewService.Close()

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, movementRepo, productRepo, branchRepo, hub)
	importNFEUC := inventory.NewImportNFEUseCase(infranfe.NewParser(), productRepo, registerMovementUC)
	productUC := usecase.NewProductUseCase(productRepo, hub)
	branchUC := usecase.NewBranchUseCase(branchRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Estoque API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		BranchUC:         branchUC,
		RegisterMovement: registerMovementUC,
		ImportNFE:        importNFEUC,
		StockView:        viewService,
		Logger:           log,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
