package eshopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of each API area.
type ApiHandleFunctions struct {
	CatalogAPI  CatalogAPI
	OrderAPI    OrderAPI
	ShipmentAPI ShipmentAPI
	HealthAPI   HealthAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	return NewRouterWithGinEngine(gin.New(), handleFunctions, middleware...)
}

// NewRouterWithGinEngine adds the eshop routes to an existing engine. Middleware runs before every route.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router.Use(gin.Recovery())
	router.Use(middleware...)
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Healthz",
			http.MethodGet,
			"/healthz",
			handleFunctions.HealthAPI.Healthz,
		},
		{
			"Metrics",
			http.MethodGet,
			"/metrics",
			handleFunctions.HealthAPI.Metrics,
		},
		{
			"ListProducts",
			http.MethodGet,
			"/v1/products",
			handleFunctions.CatalogAPI.ListProducts,
		},
		{
			"PlaceOrder",
			http.MethodPost,
			"/v1/orders",
			handleFunctions.OrderAPI.PlaceOrder,
		},
		{
			"GetOrder",
			http.MethodGet,
			"/v1/orders/:orderId",
			handleFunctions.OrderAPI.GetOrder,
		},
		{
			"GetShipmentStatus",
			http.MethodGet,
			"/v1/shipments/:shippingId/status",
			handleFunctions.ShipmentAPI.GetShipmentStatus,
		},
		{
			"ProcessShipment",
			http.MethodPost,
			"/v1/shipments/:shippingId/process",
			handleFunctions.ShipmentAPI.ProcessShipment,
		},
		{
			"ReconcileShipments",
			http.MethodPost,
			"/v1/shipments/reconcile",
			handleFunctions.ShipmentAPI.ReconcileShipments,
		},
	}
}
