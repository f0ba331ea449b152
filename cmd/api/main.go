package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jackc/pgx/v5/stdlib" // driver database/sql para goose
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/activos-ti/internal/application/accounts"
	"github.com/jhoicas/activos-ti/internal/application/catalog"
	"github.com/jhoicas/activos-ti/internal/application/codes"
	"github.com/jhoicas/activos-ti/internal/application/ledger"
	"github.com/jhoicas/activos-ti/internal/application/licensing"
	"github.com/jhoicas/activos-ti/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/activos-ti/internal/interfaces/http"
	"github.com/jhoicas/activos-ti/internal/vault"
	"github.com/jhoicas/activos-ti/pkg/config"
	"github.com/jhoicas/activos-ti/pkg/logger"
)

// runMigrations aplica las migraciones SQL pendientes al arrancar.
func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	log.Info().Msg("migraciones aplicadas")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// El vault exige clave externa: sin ninguna configurada no hay arranque,
	// porque un secreto cifrado con clave efímera se pierde en el reinicio.
	secretsVault, err := vault.New(vault.Config{
		Keys: map[string]string{
			vault.DomainLicense: cfg.Vault.LicenseKey,
			vault.DomainAccount: cfg.Vault.AccountKey,
			vault.DomainDevice:  cfg.Vault.DeviceKey,
		},
		DefaultKey: cfg.Vault.DefaultKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar vault")
	}

	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	movementTypeRepo := postgres.NewMovementTypeRepository(pool)
	licenseRepo := postgres.NewLicenseRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	deviceRepo := postgres.NewDeviceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogUC := catalog.NewCatalogUseCase(productRepo, categoryRepo, codes.NewGenerator(categoryRepo))
	ledgerUC := ledger.NewLedgerUseCase(txRunner, movementTypeRepo, movementRepo, productRepo)
	licensingUC := licensing.NewLicensingUseCase(txRunner, licenseRepo, productRepo, secretsVault)
	accountUC := accounts.NewAccountUseCase(accountRepo, deviceRepo, secretsVault)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Catalog:   catalogUC,
		Ledger:    ledgerUC,
		Licensing: licensingUC,
		Accounts:  accountUC,
	})

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
