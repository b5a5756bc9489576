package interfaces

import (
	"context"

	"taskilo_finance/internal/domain/entities"
)

// ITimeTrackingRepository aggregates time-tracking entries per order.
//
// SummaryByOrderID returns nil (not an error) when the order has no
// entries; time tracking is optional enrichment for invoicing.

type ITimeTrackingRepository interface {
	SummaryByOrderID(ctx context.Context, orderID, companyID string) (*entities.TimeTrackingSummary, error)
}
