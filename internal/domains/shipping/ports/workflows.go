package ports

import "context"

// ReconciliationOutcome is the serializable form of Outcome used across workflow boundaries.
type ReconciliationOutcome struct {
	ShippingID string
	Status     string
	Error      string
}

// ReconciliationSummary lists the outcomes of one reconciliation pass.
type ReconciliationSummary struct {
	Outcomes []ReconciliationOutcome
}

// ReconciliationOrchestrator runs a batch reconciliation pass, durably or inline.
type ReconciliationOrchestrator interface {
	Reconcile(ctx context.Context) (*ReconciliationSummary, error)
}

// SummaryFromBatch converts a batch result into its serializable summary.
func SummaryFromBatch(result *BatchResult) *ReconciliationSummary {
	summary := &ReconciliationSummary{}
	if result == nil {
		return summary
	}
	summary.Outcomes = make([]ReconciliationOutcome, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		out := ReconciliationOutcome{ShippingID: o.ShippingID, Status: string(o.Status)}
		if o.Err != nil {
			out.Error = o.Err.Error()
		}
		summary.Outcomes = append(summary.Outcomes, out)
	}
	return summary
}
