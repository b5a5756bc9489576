package entities

import "time"

// Order is the Taskilo order record as loaded for synchronization.
//
// Orders are owned by the Taskilo side of the product; this service only
// reads them. Monetary fields are converted to cents by the repository at
// load time (the source stores euros).

type Order struct {
	ID                 string
	CompanyID          string
	CustomerID         string
	CustomerEmail      string
	CustomerName       string
	ServiceDescription string
	HourlyRateCents    int64 // 0 = not set on the order
	EstimatedHours     float64
	ActualHours        float64
	TotalAmountCents   int64
	Status             string
	CreatedAt          time.Time
	CompletedAt        *time.Time
}
