package eshopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/Apurer/go-gin-eshop/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-eshop/internal/domains/catalog/ports"
)

// CatalogAPI lists the products orders can reference.
type CatalogAPI struct {
	products catalogports.Repository
}

func NewCatalogAPI(products catalogports.Repository) CatalogAPI {
	return CatalogAPI{products: products}
}

// Get /v1/products
// Lists products with their remaining stock
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	list, err := api.products.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProducts(list))
}
