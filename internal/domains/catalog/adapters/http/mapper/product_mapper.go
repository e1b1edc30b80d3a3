package mapper

import catalogdomain "github.com/Apurer/go-gin-eshop/internal/domains/catalog/domain"

// Product is the transport representation of a catalog entry. Price is a decimal string.
type Product struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	Available int    `json:"available"`
}

func FromDomainProduct(p *catalogdomain.Product) Product {
	if p == nil {
		return Product{}
	}
	return Product{Name: p.Name(), Price: p.Price().String(), Available: p.Available()}
}

func FromDomainProducts(list []*catalogdomain.Product) []Product {
	out := make([]Product, 0, len(list))
	for _, p := range list {
		out = append(out, FromDomainProduct(p))
	}
	return out
}
