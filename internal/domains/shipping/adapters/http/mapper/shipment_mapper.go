package mapper

import (
	shippingdomain "github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
)

// ShipmentStatus answers status and process requests.
type ShipmentStatus struct {
	ShippingID string `json:"shippingId"`
	Status     string `json:"status"`
}

// ReconciliationOutcome is one line of a reconciliation response.
type ReconciliationOutcome struct {
	ShippingID string `json:"shippingId"`
	Status     string `json:"status,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ReconciliationResult is the body of POST /v1/shipments/reconcile.
type ReconciliationResult struct {
	Processed int                     `json:"processed"`
	Failed    int                     `json:"failed"`
	Outcomes  []ReconciliationOutcome `json:"outcomes"`
}

func FromStatus(shippingID string, status shippingdomain.Status) ShipmentStatus {
	return ShipmentStatus{ShippingID: shippingID, Status: string(status)}
}

func FromSummary(summary *shippingports.ReconciliationSummary) ReconciliationResult {
	result := ReconciliationResult{Outcomes: []ReconciliationOutcome{}}
	if summary == nil {
		return result
	}
	for _, o := range summary.Outcomes {
		result.Outcomes = append(result.Outcomes, ReconciliationOutcome{ShippingID: o.ShippingID, Status: o.Status, Error: o.Error})
		if o.Error != "" {
			result.Failed++
		}
	}
	result.Processed = len(summary.Outcomes)
	return result
}
