package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-tiendas/internal/application/auth"
	"github.com/jhoicas/Inventario-tiendas/internal/application/csvimport"
	"github.com/jhoicas/Inventario-tiendas/internal/application/usecase"
	"github.com/jhoicas/Inventario-tiendas/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC    *usecase.InventoryUseCase
	ImportUC       *csvimport.ImportCSVUseCase
	AuthUC         *auth.AuthUseCase // nil = sin /api/auth/login
	UploadMaxBytes int64
	JWTSecret      string // vacío = rutas sin autenticación
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))

	var guard []fiber.Handler
	if deps.JWTSecret != "" {
		guard = append(guard, AuthMiddleware(deps.JWTSecret))
	}

	if deps.AuthUC != nil {
		app.Post("/api/auth/login", NewAuthHandler(deps.AuthUC).Login)
	}

	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventories := app.Group("/api/inventories", guard...)
	inventories.Get("/", inventoryHandler.List)
	inventories.Post("/", inventoryHandler.Create)
	inventories.Put("/:id", inventoryHandler.Update)
	inventories.Delete("/:id", inventoryHandler.Delete)

	importHandler := NewImportHandler(deps.ImportUC, deps.UploadMaxBytes, deps.Log)
	app.Post("/upload-csv", append(guard, importHandler.UploadCSV)...)
}
