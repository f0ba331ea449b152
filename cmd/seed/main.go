// Seed inicial: tipos de movimiento y catálogo mínimo para un entorno nuevo.
// Idempotente: los registros ya existentes se dejan como están.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/activos-ti/internal/domain"
	"github.com/jhoicas/activos-ti/internal/domain/entity"
	"github.com/jhoicas/activos-ti/internal/infrastructure/postgres"
	"github.com/jhoicas/activos-ti/pkg/config"
	"github.com/jhoicas/activos-ti/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	movementTypes := []struct {
		name         string
		inbound      bool
		affectsStock bool
	}{
		{"Compra", true, true},
		{"Devolución", true, true},
		{"Salida por asignación", false, true},
		{"Baja por daño", false, true},
		{"Reubicación", true, false},
	}
	for _, mt := range movementTypes {
		query := `
			INSERT INTO movement_types (id, name, inbound, affects_stock, active)
			VALUES ($1, $2, $3, $4, true)
			ON CONFLICT (name) DO NOTHING`
		if _, err := pool.Exec(ctx, query, uuid.New().String(), mt.name, mt.inbound, mt.affectsStock); err != nil {
			log.Fatal().Err(err).Str("type", mt.name).Msg("seed tipo de movimiento")
		}
	}
	log.Info().Int("count", len(movementTypes)).Msg("tipos de movimiento listos")

	categoryRepo := postgres.NewCategoryRepository(pool)
	for _, name := range []string{"Computadores", "Impresoras", "Periféricos", "Redes"} {
		err := categoryRepo.Create(&entity.Category{
			ID:        uuid.New().String(),
			Name:      name,
			Active:    true,
			CreatedAt: time.Now(),
		})
		if err != nil && err != domain.ErrDuplicate {
			log.Fatal().Err(err).Str("category", name).Msg("seed categoría")
		}
	}
	log.Info().Msg("categorías listas")
}
