package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-ti/internal/application/catalog"
	"github.com/jhoicas/activos-ti/internal/application/dto"
	"github.com/jhoicas/activos-ti/internal/domain/entity"
)

// ProductHandler maneja el catálogo de productos y categorías.
type ProductHandler struct {
	catalog *catalog.CatalogUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.CatalogUseCase) *ProductHandler {
	return &ProductHandler{catalog: uc}
}

// CreateProduct da de alta un producto con su código generado.
// POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.catalog.CreateProduct(c.Context(), catalog.ProductInput{
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Brand:       in.Brand,
		Model:       in.Model,
		Serial:      in.Serial,
		LocationID:  in.LocationID,
		AssigneeID:  in.AssigneeID,
		UnitPrice:   in.UnitPrice,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
}

// GetProduct obtiene un producto por ID, o por código con ?code=.
// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.catalog.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toProductResponse(product))
}

// ListProducts lista productos paginados.
// GET /api/products
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	if code := c.Query("code"); code != "" {
		product, err := h.catalog.GetProductByCode(c.Context(), code)
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON([]dto.ProductResponse{toProductResponse(product)})
	}

	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	products, err := h.catalog.ListProducts(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(out)
}

// CreateCategory da de alta una categoría.
// POST /api/categories
func (h *ProductHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cat, err := h.catalog.CreateCategory(c.Context(), in.Name, in.Description)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		Active:      cat.Active,
	})
}

// ListCategories lista las categorías activas.
// GET /api/categories
func (h *ProductHandler) ListCategories(c *fiber.Ctx) error {
	cats, err := h.catalog.ListCategories(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, dto.CategoryResponse{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			Active:      cat.Active,
		})
	}
	return c.JSON(out)
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Brand:       p.Brand,
		Model:       p.Model,
		Serial:      p.Serial,
		LocationID:  p.LocationID,
		AssigneeID:  p.AssigneeID,
		State:       p.State,
		Quantity:    p.Quantity,
		UnitPrice:   p.UnitPrice.String(),
		TotalValue:  p.TotalValue().String(),
		CreatedAt:   p.CreatedAt,
	}
}
