package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	ordersdomain "github.com/Apurer/go-gin-eshop/internal/domains/orders/domain"
	shippingdomain "github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
)

func TestToPlaceOrderInput(t *testing.T) {
	due := time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)
	input := ToPlaceOrderInput(PlaceOrderRequest{ShippingType: "Нова Пошта", DueDate: &due})
	assert.Equal(t, shippingdomain.TypeNovaPoshta, input.ShippingType)
	assert.Equal(t, &due, input.DueDate)
}

func TestFromDomainOrder(t *testing.T) {
	created := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	pending := FromDomainOrder(&ordersdomain.Order{ID: "o1", Status: ordersdomain.StatusPending, CreatedAt: created}, "")
	assert.Nil(t, pending.PlacedAt)
	assert.Equal(t, "pending", pending.Status)

	shipped := &ordersdomain.Order{ID: "o1", CreatedAt: created}
	shipped.MarkShipped("s1", created.Add(time.Minute))
	out := FromDomainOrder(shipped, "150")
	assert.Equal(t, "s1", out.ShippingID)
	assert.Equal(t, "150", out.Total)
	if assert.NotNil(t, out.PlacedAt) {
		assert.Equal(t, created.Add(time.Minute), *out.PlacedAt)
	}

	assert.Equal(t, Order{}, FromDomainOrder(nil, ""))
}
