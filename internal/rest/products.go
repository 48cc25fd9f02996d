package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"microMart/domain"
)

// Catalog contract interface
type Catalog interface {
	Products() []domain.Product
	Product(id string) (domain.Product, bool)
	Contents() []domain.Content
	Content(id string) (domain.Content, bool)
}

type ProductsHandler struct {
	catalog Catalog
}

func NewProductsHandler(catalog Catalog) *ProductsHandler {
	return &ProductsHandler{
		catalog: catalog,
	}
}

func (h *ProductsHandler) GetProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": h.catalog.Products(),
	})
}
