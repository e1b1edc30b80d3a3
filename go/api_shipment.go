package eshopserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	shippinghttpmapper "github.com/Apurer/go-gin-eshop/internal/domains/shipping/adapters/http/mapper"
	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
	apierrors "github.com/Apurer/go-gin-eshop/internal/shared/errors"
)

// ShipmentAPI exposes the shipment lifecycle.
type ShipmentAPI struct {
	service        shippingports.Service
	reconciliation shippingports.ReconciliationOrchestrator
}

// NewShipmentAPI wires the shipping service; reconciliation falls back to the in-process batch when nil.
func NewShipmentAPI(service shippingports.Service, reconciliation shippingports.ReconciliationOrchestrator) ShipmentAPI {
	return ShipmentAPI{service: service, reconciliation: reconciliation}
}

// Get /v1/shipments/:shippingId/status
// Reads the current status of a shipment
func (api *ShipmentAPI) GetShipmentStatus(c *gin.Context) {
	id := c.Param("shippingId")
	status, err := api.service.CheckStatus(c.Request.Context(), id)
	if err != nil {
		respondShipmentError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, shippinghttpmapper.FromStatus(id, status))
}

// Post /v1/shipments/:shippingId/process
// Finalizes a shipment against its due date
func (api *ShipmentAPI) ProcessShipment(c *gin.Context) {
	id := c.Param("shippingId")
	status, err := api.service.ProcessShipping(c.Request.Context(), id)
	if err != nil {
		respondShipmentError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, shippinghttpmapper.FromStatus(id, status))
}

// Post /v1/shipments/reconcile
// Runs one batch reconciliation pass
func (api *ShipmentAPI) ReconcileShipments(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		summary *shippingports.ReconciliationSummary
		err     error
	)
	if api.reconciliation != nil {
		summary, err = api.reconciliation.Reconcile(ctx)
	} else {
		var result *shippingports.BatchResult
		result, err = api.service.ProcessShippingBatch(ctx)
		summary = shippingports.SummaryFromBatch(result)
	}
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, shippinghttpmapper.FromSummary(summary))
}

func respondShipmentError(c *gin.Context, id string, err error) {
	if errors.Is(err, shippingports.ErrNotFound) {
		respondProblem(c, apierrors.NewNotFoundProblem("shipment", id))
		return
	}
	respondUpstreamError(c, err)
}
