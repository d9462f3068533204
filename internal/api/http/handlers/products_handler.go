package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/stuffshop/backend/internal/api/dto"
	"github.com/stuffshop/backend/internal/domain"
	"github.com/stuffshop/backend/internal/problem"
	"github.com/stuffshop/backend/internal/service"
)

// ProductsHandler exposes the catalog endpoints.
type ProductsHandler struct {
	products  *service.ProductService
	uploadDir string
}

// NewProductsHandler constructs the handler.
func NewProductsHandler(products *service.ProductService, uploadDir string) *ProductsHandler {
	return &ProductsHandler{products: products, uploadDir: uploadDir}
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "products fetched", dto.FromProducts(products))
}

// Search handles GET /products/search?q=.
func (h *ProductsHandler) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return problem.NewMissingParameter("q")
	}

	products, err := h.products.Search(c.UserContext(), query)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "products fetched", dto.FromProducts(products))
}

// Get handles GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	product, err := h.products.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "product fetched", dto.FromProduct(product))
}

// Create handles POST /products (admin only).
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return problem.NewMalformedBody(err)
	}
	if fields := req.Validate(); len(fields) > 0 {
		return problem.NewValidation(fields...)
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	}
	if err := h.products.Create(c.UserContext(), product); err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "product created", dto.FromProduct(product))
}

// UploadImage handles POST /products/:id/image (admin only).
func (h *ProductsHandler) UploadImage(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return problem.NewFileUpload(err)
	}

	filename := filepath.Base(file.Filename)
	if err := c.SaveFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		return problem.NewFileUpload(err)
	}

	if err := h.products.AttachImage(c.UserContext(), id, filename); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "image uploaded", fiber.Map{"image": filename})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, problem.NewConstraintViolation("id: must be a positive numeric identifier")
	}
	return id, nil
}
