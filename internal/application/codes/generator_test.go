package codes_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-ti/internal/application/codes"
	"github.com/jhoicas/activos-ti/internal/domain"
	"github.com/jhoicas/activos-ti/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria del repositorio de categorías
// ──────────────────────────────────────────────────────────────────────────────

type catRepoFake struct {
	categories map[string]*entity.Category
	counters   map[string]int64
}

func newCatRepoFake() *catRepoFake {
	return &catRepoFake{
		categories: make(map[string]*entity.Category),
		counters:   make(map[string]int64),
	}
}

func (r *catRepoFake) Create(c *entity.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *catRepoFake) GetByID(id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *catRepoFake) NextCodeSeq(categoryID string) (int64, error) {
	r.counters[categoryID]++
	return r.counters[categoryID], nil
}

func (r *catRepoFake) List() ([]*entity.Category, error) { return nil, nil }

func (r *catRepoFake) add(name string) string {
	id := uuid.New().String()
	r.categories[id] = &entity.Category{ID: id, Name: name, Active: true}
	return id
}

// ──────────────────────────────────────────────────────────────────────────────
// Generate
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_SequencePerCategory(t *testing.T) {
	repo := newCatRepoFake()
	gen := codes.NewGenerator(repo)

	computadores := repo.add("Computadores")
	impresion := repo.add("Impresión")

	code, err := gen.Generate(computadores)
	require.NoError(t, err)
	assert.Equal(t, "COM-00001", code)

	code, err = gen.Generate(computadores)
	require.NoError(t, err)
	assert.Equal(t, "COM-00002", code, "el correlativo avanza por categoría")

	// Otra categoría arranca su propio correlativo.
	code, err = gen.Generate(impresion)
	require.NoError(t, err)
	assert.Equal(t, "IMP-00001", code, "las tildes se pliegan en el prefijo")
}

func TestGenerate_UnknownCategory(t *testing.T) {
	gen := codes.NewGenerator(newCatRepoFake())

	_, err := gen.Generate(uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = gen.Generate("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Prefix
// ──────────────────────────────────────────────────────────────────────────────

func TestPrefix(t *testing.T) {
	cases := []struct {
		name     string
		expected string
	}{
		{"Computadores", "COM"},
		{"Impresión", "IMP"},
		{"Cámaras", "CAM"},
		{"Équipos de red", "EQU"},
		{"TV", "TVX"},     // nombre corto: relleno con X
		{"7 Zonas", "ZON"}, // dígitos y espacios se descartan
		{"", "XXX"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, codes.Prefix(tc.name), "nombre %q", tc.name)
	}
}
