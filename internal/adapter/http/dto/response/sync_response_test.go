package response

import (
	"testing"

	"taskilo_finance/internal/domain/entities"
)

func TestFromSyncOutcome(t *testing.T) {
	res := FromSyncOutcome(entities.SyncOutcome{
		Success:    true,
		InvoiceID:  "inv-1",
		CustomerID: "cust-1",
		Warnings:   []string{"Updated existing invoice"},
	})

	if !res.Success || res.InvoiceID != "inv-1" || res.CustomerID != "cust-1" {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
	if res.Errors == nil || len(res.Errors) != 0 {
		t.Fatalf("nil errors must map to empty slice, got %v", res.Errors)
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != "Updated existing invoice" {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestFromBatchSyncResult(t *testing.T) {
	res := FromBatchSyncResult(entities.BatchSyncResult{
		TotalProcessed: 2,
		Successful:     1,
		Failed:         1,
		Results: []entities.OrderSyncResult{
			{OrderID: "order-1", SyncOutcome: entities.SyncOutcome{Success: true, InvoiceID: "inv-1"}},
			{OrderID: "order-2", SyncOutcome: entities.SyncOutcome{Success: false, Errors: []string{"Taskilo order not found"}}},
		},
	})

	if res.TotalProcessed != 2 || res.Successful != 1 || res.Failed != 1 {
		t.Fatalf("unexpected counters: %+v", res)
	}
	if len(res.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res.Results))
	}
	if res.Results[0].OrderID != "order-1" || !res.Results[0].Success {
		t.Fatalf("unexpected first result: %+v", res.Results[0])
	}
	if res.Results[1].Warnings == nil {
		t.Fatalf("warnings must map to empty slice")
	}
}

func TestFromBatchSyncResult_Empty(t *testing.T) {
	res := FromBatchSyncResult(entities.BatchSyncResult{})
	if res.Results == nil || len(res.Results) != 0 {
		t.Fatalf("results must map to empty slice, got %v", res.Results)
	}
}
