//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "eshop-api"
	ConsumerName = "storefront"

	StateCatalogSeeded  = "catalog with Widget and Gadget"
	StateWidgetLowStock = "Widget has 2 units left"
	StateNoShipments    = "no shipments exist"
)

const (
	WidgetName        = "Widget"
	WidgetPrice       = "50"
	WidgetStock       = 10
	WidgetLowStock    = 2
	GadgetName        = "Gadget"
	GadgetPrice       = "19.99"
	GadgetStock       = 25
	MissingShipmentID = "ghost-shipment"

	ShippingType = "Нова Пошта"
	// DueDate stays in the future for the lifetime of the contract.
	DueDate = "2099-06-12T10:00:00Z"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderRequest is the placement body the storefront sends.
func ExampleOrderRequest(quantity int) map[string]any {
	return map[string]any{
		"items":        []map[string]any{{"product": WidgetName, "quantity": quantity}},
		"shippingType": ShippingType,
		"dueDate":      DueDate,
	}
}

func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
