package api

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	catalogdomain "github.com/Apurer/go-gin-eshop/internal/domains/catalog/domain"
)

type catalogFile struct {
	Products []catalogEntry `yaml:"products"`
}

// catalogEntry keeps the price as a string so no float rounding reaches decimal.
type catalogEntry struct {
	Name      string `yaml:"name"`
	Price     string `yaml:"price"`
	Available int    `yaml:"available"`
}

var defaultCatalog = []catalogEntry{
	{Name: "Widget", Price: "50.00", Available: 10},
	{Name: "Gadget", Price: "19.99", Available: 25},
	{Name: "Gizmo", Price: "120.00", Available: 3},
}

// LoadCatalog reads the product seed from a YAML file. An empty path yields the built-in catalog.
func LoadCatalog(path string) ([]*catalogdomain.Product, error) {
	entries := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		entries = file.Products
	}
	return buildProducts(entries)
}

func buildProducts(entries []catalogEntry) ([]*catalogdomain.Product, error) {
	products := make([]*catalogdomain.Product, 0, len(entries))
	seen := map[string]struct{}{}
	for i, e := range entries {
		price, err := decimal.NewFromString(e.Price)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): invalid price %q: %w", i, e.Name, e.Price, err)
		}
		p, err := catalogdomain.NewProduct(e.Name, price, e.Available)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): %w", i, e.Name, err)
		}
		if _, dup := seen[p.Key()]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate product %q", i, e.Name)
		}
		seen[p.Key()] = struct{}{}
		products = append(products, p)
	}
	return products, nil
}
