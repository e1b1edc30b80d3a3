package eshopserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	cart "github.com/Apurer/go-gin-eshop/internal/domains/cart/domain"
	catalogdomain "github.com/Apurer/go-gin-eshop/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-eshop/internal/domains/catalog/ports"
	ordersapp "github.com/Apurer/go-gin-eshop/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-eshop/internal/domains/orders/ports"
	shippingapp "github.com/Apurer/go-gin-eshop/internal/domains/shipping/application"
	shippingdomain "github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
	apierrors "github.com/Apurer/go-gin-eshop/internal/shared/errors"
)

var (
	responder         = apierrors.NewChainedResponder("", mapShippingError, mapStockError, mapValidationError, mapNotFoundError, mapUpstreamError)
	upstreamResponder = responder.WithFallback(apierrors.ErrUpstream)
)

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondError renders unmapped errors as 500.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondUpstreamError renders unmapped errors as 502: they come from the shipment repository or broker.
func respondUpstreamError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	upstreamResponder.RespondError(c, err)
}

func mapShippingError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, shippingdomain.ErrUnsupportedShippingType):
		return apierrors.ErrUnsupportedShipping.
			WithDetail(err.Error()).
			WithExtension("supportedTypes", shippingdomain.SupportedTypes()), true
	case errors.Is(err, shippingdomain.ErrInvalidDueDate):
		return apierrors.ErrInvalidDueDate.WithDetail(err.Error()), true
	case errors.Is(err, shippingdomain.ErrInvalidTransition):
		return apierrors.ErrInvalidTransition.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapStockError(err error) (apierrors.ProblemDetail, bool) {
	var stockErr *catalogdomain.InsufficientStockError
	if !errors.As(err, &stockErr) {
		return apierrors.ProblemDetail{}, false
	}
	return apierrors.ErrInsufficientStock.
		WithDetail(err.Error()).
		WithExtension("product", stockErr.Product).
		WithExtension("requested", stockErr.Requested).
		WithExtension("available", stockErr.Available), true
}

func mapValidationError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, ordersapp.ErrInvalidInput) ||
		errors.Is(err, shippingapp.ErrInvalidInput) ||
		errors.Is(err, catalogdomain.ErrInvalidAmount) ||
		errors.Is(err, cart.ErrNilProduct) {
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapNotFoundError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, ordersports.ErrNotFound) ||
		errors.Is(err, shippingports.ErrNotFound) ||
		errors.Is(err, catalogports.ErrNotFound) {
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapUpstreamError(err error) (apierrors.ProblemDetail, bool) {
	var publishErr *shippingports.PublishError
	if errors.As(err, &publishErr) || errors.Is(err, shippingapp.ErrStatusUpdateRejected) {
		return apierrors.ErrUpstream.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
