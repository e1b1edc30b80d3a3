package eshopserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	cart "github.com/Apurer/go-gin-eshop/internal/domains/cart/domain"
	catalogports "github.com/Apurer/go-gin-eshop/internal/domains/catalog/ports"
	ordershttpmapper "github.com/Apurer/go-gin-eshop/internal/domains/orders/adapters/http/mapper"
	ordersports "github.com/Apurer/go-gin-eshop/internal/domains/orders/ports"
	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
	apierrors "github.com/Apurer/go-gin-eshop/internal/shared/errors"
)

// OrderAPI fills a cart from the catalog and commits it as an order.
type OrderAPI struct {
	service  ordersports.Service
	products catalogports.Repository
}

func NewOrderAPI(service ordersports.Service, products catalogports.Repository) OrderAPI {
	return OrderAPI{service: service, products: products}
}

// Post /v1/orders
// Places an order and requests its shipment
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload ordershttpmapper.PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	ctx := c.Request.Context()

	basket := cart.NewCart()
	for i, item := range payload.Items {
		product, err := api.products.GetByName(ctx, item.Product)
		if err != nil {
			if errors.Is(err, catalogports.ErrNotFound) {
				respondProblem(c, apierrors.NewNotFoundProblem("product", item.Product))
				return
			}
			respondError(c, err)
			return
		}
		if err := basket.AddProduct(product, item.Quantity); err != nil {
			respondError(c, fmt.Errorf("items[%d]: %w", i, err))
			return
		}
	}
	total := basket.CalculateTotal().String()

	order, err := api.service.CreateOrder(ctx, basket)
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := api.service.PlaceOrder(ctx, order, ordershttpmapper.ToPlaceOrderInput(payload)); err != nil {
		var publishErr *shippingports.PublishError
		if errors.As(err, &publishErr) {
			respondProblem(c, apierrors.ErrUpstream.
				WithDetail(err.Error()).
				WithExtension("orderId", order.ID).
				WithExtension("shippingId", publishErr.ShippingID))
			return
		}
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordershttpmapper.FromDomainOrder(order, total))
}

// Get /v1/orders/:orderId
// Finds an order by ID
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id := c.Param("orderId")
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ordersports.ErrNotFound) {
			respondProblem(c, apierrors.NewNotFoundProblem("order", id))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrder(order, ""))
}
