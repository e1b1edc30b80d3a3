//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-eshop/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type productPayload struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	Available int    `json:"available"`
}

type orderPayload struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ShippingID string `json:"shippingId"`
	Total      string `json:"total"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status  int
	problem problemDetail
}

func (e apiError) Error() string {
	msg := e.problem.Title
	if msg == "" {
		msg = "api error"
	}
	if e.problem.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.problem.Detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func TestStorefrontContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	problemContentType := matchers.S("application/problem+json")

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("a request to list products").
		WithRequest("GET", "/v1/products").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.EachLike(matchers.Map{
				"name":      matchers.Like(pacttest.WidgetName),
				"price":     matchers.Term(pacttest.WidgetPrice, `^\d+(\.\d+)?$`),
				"available": matchers.Like(pacttest.WidgetStock),
			}, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("a request to place an order for three widgets").
		WithRequest("POST", "/v1/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleOrderRequest(3))
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":         matchers.Like("0b6f6a4e-8f7b-4a53-9a44-3f5d2c1a7e90"),
				"status":     matchers.S("shipped"),
				"shippingId": matchers.Like("6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f"),
				"total":      matchers.S("150"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateWidgetLowStock).
		UponReceiving("a request to order more widgets than are in stock").
		WithRequest("POST", "/v1/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleOrderRequest(3))
		}).
		WillRespondWith(http.StatusConflict, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/insufficient-stock"),
				"title":  matchers.S("Insufficient Stock"),
				"status": matchers.Like(http.StatusConflict),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateNoShipments).
		UponReceiving("a request for the status of an unknown shipment").
		WithRequest("GET", fmt.Sprintf("/v1/shipments/%s/status", pacttest.MissingShipmentID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newStorefrontClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		products, err := client.ListProducts(ctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		if len(products) == 0 || products[0].Name == "" {
			return fmt.Errorf("expected at least one named product, got %+v", products)
		}

		order, err := client.PlaceOrder(ctx, pacttest.ExampleOrderRequest(3))
		if err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if order.Status != "shipped" || order.ShippingID == "" {
			return fmt.Errorf("expected shipped order with shipping id, got %+v", order)
		}

		if _, err := client.PlaceOrder(ctx, pacttest.ExampleOrderRequest(3)); err == nil {
			return fmt.Errorf("expected 409 for an oversized order")
		} else if apiErr, ok := err.(apiError); !ok || apiErr.status != http.StatusConflict {
			return fmt.Errorf("expected 409, got %v", err)
		}

		if _, err := client.ShipmentStatus(ctx, pacttest.MissingShipmentID); err == nil {
			return fmt.Errorf("expected 404 for shipment %s", pacttest.MissingShipmentID)
		} else if apiErr, ok := err.(apiError); !ok || apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}

type storefrontClient struct {
	baseURL    string
	httpClient *http.Client
}

func newStorefrontClient(config pactconsumer.MockServerConfig) *storefrontClient {
	return &storefrontClient{
		baseURL:    fmt.Sprintf("http://%s:%d", config.Host, config.Port),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *storefrontClient) ListProducts(ctx context.Context) ([]productPayload, error) {
	var out []productPayload
	if err := c.do(ctx, http.MethodGet, "/v1/products", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storefrontClient) PlaceOrder(ctx context.Context, body map[string]any) (*orderPayload, error) {
	var out orderPayload
	if err := c.do(ctx, http.MethodPost, "/v1/orders", body, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *storefrontClient) ShipmentStatus(ctx context.Context, shippingID string) (map[string]string, error) {
	out := map[string]string{}
	if err := c.do(ctx, http.MethodGet, "/v1/shipments/"+shippingID+"/status", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storefrontClient) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var problem problemDetail
		_ = json.NewDecoder(resp.Body).Decode(&problem)
		return apiError{status: resp.StatusCode, problem: problem}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
