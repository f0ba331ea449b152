// Package catalog gestiona productos y categorías: el alta de un producto
// recibe su código generado por categoría (ver application/codes).
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/activos-ti/internal/application/codes"
	"github.com/jhoicas/activos-ti/internal/domain"
	"github.com/jhoicas/activos-ti/internal/domain/entity"
	"github.com/jhoicas/activos-ti/internal/domain/repository"
)

// CatalogUseCase altas y consultas de productos y categorías.
type CatalogUseCase struct {
	prodRepo repository.ProductRepository
	catRepo  repository.CategoryRepository
	codes    *codes.Generator
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	prodRepo repository.ProductRepository,
	catRepo repository.CategoryRepository,
	gen *codes.Generator,
) *CatalogUseCase {
	return &CatalogUseCase{prodRepo: prodRepo, catRepo: catRepo, codes: gen}
}

// ProductInput datos de alta de un producto. La cantidad inicial es siempre
// cero: el stock entra después por el libro de movimientos.
type ProductInput struct {
	Name        string
	Description string
	CategoryID  string
	Brand       string
	Model       string
	Serial      string
	LocationID  *string
	AssigneeID  *string
	UnitPrice   string // decimal como texto (ej. "1250.50")
}

// CreateProduct valida la entrada, genera el código de la categoría y
// persiste el producto en estado activo con cantidad cero.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, input ProductInput) (*entity.Product, error) {
	if input.Name == "" || input.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	price := decimal.Zero
	if input.UnitPrice != "" {
		parsed, err := decimal.NewFromString(input.UnitPrice)
		if err != nil || parsed.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		price = parsed
	}
	cat, err := uc.catRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	if !cat.Active {
		return nil, domain.ErrInvalidInput
	}
	code, err := uc.codes.Generate(input.CategoryID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Brand:       input.Brand,
		Model:       input.Model,
		Serial:      input.Serial,
		LocationID:  input.LocationID,
		AssigneeID:  input.AssigneeID,
		State:       entity.ProductStateActive,
		Quantity:    0,
		UnitPrice:   price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.prodRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct obtiene un producto por ID.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.prodRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// GetProductByCode obtiene un producto por su código único.
func (uc *CatalogUseCase) GetProductByCode(ctx context.Context, code string) (*entity.Product, error) {
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.prodRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListProducts lista productos paginados.
func (uc *CatalogUseCase) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.prodRepo.List(limit, offset)
}

// CreateCategory da de alta una categoría activa.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, name, description string) (*entity.Category, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	cat := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.catRepo.Create(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// ListCategories lista las categorías activas.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return uc.catRepo.List()
}
