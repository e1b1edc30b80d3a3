//go:build pact
// +build pact

package provider_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pacttest "github.com/Apurer/go-gin-eshop/test/pact"

	eshopserver "github.com/Apurer/go-gin-eshop/go"
	catalogmemory "github.com/Apurer/go-gin-eshop/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/go-gin-eshop/internal/domains/catalog/domain"
	ordersmemory "github.com/Apurer/go-gin-eshop/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-eshop/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/go-gin-eshop/internal/domains/orders/application"
	shippingmemory "github.com/Apurer/go-gin-eshop/internal/domains/shipping/adapters/memory"
	shippingobs "github.com/Apurer/go-gin-eshop/internal/domains/shipping/adapters/observability"
	shippingworkflows "github.com/Apurer/go-gin-eshop/internal/domains/shipping/adapters/workflows"
	shippingapp "github.com/Apurer/go-gin-eshop/internal/domains/shipping/application"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestEshopProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t, pacttest.WidgetStock)
			return nil, nil
		},
		pacttest.StateWidgetLowStock: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t, pacttest.WidgetLowStock)
			return nil, nil
		},
		pacttest.StateNoShipments: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t, pacttest.WidgetStock)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

// contractProviderApp rebuilds the in-memory stack for every provider state.
type contractProviderApp struct {
	mu      sync.RWMutex
	handler http.Handler
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t, pacttest.WidgetStock)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		h := app.handler
		app.mu.RUnlock()
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB, widgetStock int) {
	t.Helper()
	widget, err := catalogdomain.NewProduct(pacttest.WidgetName, decimal.RequireFromString(pacttest.WidgetPrice), widgetStock)
	require.NoError(t, err)
	gadget, err := catalogdomain.NewProduct(pacttest.GadgetName, decimal.RequireFromString(pacttest.GadgetPrice), pacttest.GadgetStock)
	require.NoError(t, err)
	products := catalogmemory.NewRepository(widget, gadget)

	shipping := shippingobs.New(shippingapp.NewService(shippingmemory.NewRepository(), shippingmemory.NewPublisher()))
	orders := ordersobs.New(ordersapp.NewService(ordersmemory.NewRepository(), shipping))

	router := eshopserver.NewRouter(eshopserver.ApiHandleFunctions{
		CatalogAPI:  eshopserver.NewCatalogAPI(products),
		OrderAPI:    eshopserver.NewOrderAPI(orders, products),
		ShipmentAPI: eshopserver.NewShipmentAPI(shipping, shippingworkflows.NewInlineReconciliation(shipping)),
		HealthAPI:   eshopserver.NewHealthAPI(http.NotFoundHandler()),
	})

	a.mu.Lock()
	a.handler = router
	a.mu.Unlock()
}
