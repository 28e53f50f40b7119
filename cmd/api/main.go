package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Inventario-tiendas/internal/application/auth"
	"github.com/jhoicas/Inventario-tiendas/internal/application/csvimport"
	"github.com/jhoicas/Inventario-tiendas/internal/application/usecase"
	"github.com/jhoicas/Inventario-tiendas/internal/domain/repository"
	"github.com/jhoicas/Inventario-tiendas/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-tiendas/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/Inventario-tiendas/internal/interfaces/http"
	"github.com/jhoicas/Inventario-tiendas/pkg/config"
	"github.com/jhoicas/Inventario-tiendas/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repo, txRunner, closeDB, err := openStorage(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer closeDB()

	inventoryUC := usecase.NewInventoryUseCase(repo)
	importUC := csvimport.NewImportCSVUseCase(txRunner)

	// Login solo si hay secreto y operadores configurados.
	var authUC *auth.AuthUseCase
	if cfg.JWT.Secret != "" && len(cfg.JWT.Operators) > 0 {
		authUC = auth.NewAuthUseCase(cfg.JWT.Operators, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		// Margen sobre el límite del archivo para las cabeceras multipart.
		BodyLimit: cfg.Upload.MaxBytes + 64*1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario por tienda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC:    inventoryUC,
		ImportUC:       importUC,
		AuthUC:         authUC,
		UploadMaxBytes: int64(cfg.Upload.MaxBytes),
		JWTSecret:      cfg.JWT.Secret,
		Log:            log,
	})
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: rutas de inventario sin autenticación")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre el backend configurado y aplica el esquema.
func openStorage(ctx context.Context, cfg config.DBConfig) (repository.InventoryRepository, csvimport.TxRunner, func(), error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := sqlite.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return sqlite.NewInventoryRepository(db), sqlite.NewTxRunner(db), func() { db.Close() }, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		return postgres.NewInventoryRepository(pool), postgres.NewTxRunner(pool), pool.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("driver de base de datos no soportado: %q", cfg.Driver)
	}
}
