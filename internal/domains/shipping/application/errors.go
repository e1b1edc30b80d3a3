package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
)

var (
	// ErrInvalidInput signals the request violated a shipment invariant.
	ErrInvalidInput = errors.New("invalid shipment input")
	// ErrStatusUpdateRejected is returned when the repository acknowledges a status update with a non-2xx code.
	ErrStatusUpdateRejected = errors.New("shipment status update rejected")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrUnsupportedShippingType) ||
		errors.Is(err, domain.ErrInvalidDueDate) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
