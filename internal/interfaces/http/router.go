package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/activos-ti/internal/application/accounts"
	"github.com/jhoicas/activos-ti/internal/application/catalog"
	"github.com/jhoicas/activos-ti/internal/application/ledger"
	"github.com/jhoicas/activos-ti/internal/application/licensing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog   *catalog.CatalogUseCase
	Ledger    *ledger.LedgerUseCase
	Licensing *licensing.LicensingUseCase
	Accounts  *accounts.AccountUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de productos y categorías
	productHandler := NewProductHandler(deps.Catalog)
	api.Post("/products", productHandler.CreateProduct)
	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Post("/categories", productHandler.CreateCategory)
	api.Get("/categories", productHandler.ListCategories)

	// Libro de movimientos
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	api.Post("/inventory/movements", inventoryHandler.ApplyMovement)
	api.Get("/products/:id/movements", inventoryHandler.GetHistory)

	// Licencias: pool de puestos y clave cifrada
	licenses := api.Group("/licenses")
	licenseHandler := NewLicenseHandler(deps.Licensing)
	licenses.Get("/:id", licenseHandler.GetStatus)
	licenses.Post("/:id/assignments", licenseHandler.Assign)
	licenses.Delete("/:id/assignments/:productID", licenseHandler.Unassign)
	licenses.Put("/:id/key", licenseHandler.SetKey)
	licenses.Get("/:id/key", licenseHandler.RevealKey)

	// Secretos de cuentas y equipos
	accountHandler := NewAccountHandler(deps.Accounts)
	api.Put("/accounts/:id/password", accountHandler.SetPassword)
	api.Get("/accounts/:id/password", accountHandler.RevealPassword)
	api.Put("/devices/:id/password", accountHandler.SetDevicePassword)
	api.Get("/devices/:id/password", accountHandler.RevealDevicePassword)

	// Métricas Prometheus
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
