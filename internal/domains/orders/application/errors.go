package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-eshop/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyCart) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
