package response

import "taskilo_finance/internal/domain/entities"

type SyncOutcomeResponse struct {
	Success    bool     `json:"success"`
	InvoiceID  string   `json:"invoice_id,omitempty"`
	CustomerID string   `json:"customer_id,omitempty"`
	Errors     []string `json:"errors"`
	Warnings   []string `json:"warnings"`
}

type OrderSyncResultResponse struct {
	OrderID string `json:"order_id"`
	SyncOutcomeResponse
}

type BatchSyncResponse struct {
	TotalProcessed int                       `json:"total_processed"`
	Successful     int                       `json:"successful"`
	Failed         int                       `json:"failed"`
	Results        []OrderSyncResultResponse `json:"results"`
}

func FromSyncOutcome(o entities.SyncOutcome) SyncOutcomeResponse {
	return SyncOutcomeResponse{
		Success:    o.Success,
		InvoiceID:  o.InvoiceID,
		CustomerID: o.CustomerID,
		Errors:     nonNil(o.Errors),
		Warnings:   nonNil(o.Warnings),
	}
}

func FromBatchSyncResult(r entities.BatchSyncResult) BatchSyncResponse {
	results := make([]OrderSyncResultResponse, 0, len(r.Results))
	for _, item := range r.Results {
		results = append(results, OrderSyncResultResponse{
			OrderID:             item.OrderID,
			SyncOutcomeResponse: FromSyncOutcome(item.SyncOutcome),
		})
	}
	return BatchSyncResponse{
		TotalProcessed: r.TotalProcessed,
		Successful:     r.Successful,
		Failed:         r.Failed,
		Results:        results,
	}
}

// Errors and warnings serialize as [] rather than null.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
