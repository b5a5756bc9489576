package entities

import "time"

// InvoiceStatus represents the invoice lifecycle.
//
// The order sync only writes DRAFT (on creation) and SENT (optional final
// step); the remaining values exist for the surrounding finance product.

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusViewed    InvoiceStatus = "VIEWED"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
	InvoiceStatusRefunded  InvoiceStatus = "REFUNDED"
)

// SyncSource tags where a synchronized invoice originated.

type SyncSource string

const (
	SyncSourceTaskiloOrder SyncSource = "TASKILO_ORDER"
)

type LineItem struct {
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	UnitPriceCents int64   `json:"unit_price"`
	TaxRate        float64 `json:"tax_rate"`
	Unit           string  `json:"unit"`
	Category       string  `json:"category"`
}

// InvoiceSyncData links an invoice back to the source order it was
// generated from. Rewritten on every sync of the order.
type InvoiceSyncData struct {
	SourceType          SyncSource `json:"source_type"`
	SourceOrderID       string     `json:"source_order_id"`
	OriginalAmountCents int64      `json:"original_amount"`
	ActualAmountCents   int64      `json:"actual_amount"`
	HoursPlanned        float64    `json:"hours_planned"`
	HoursActual         float64    `json:"hours_actual"`
	AutoGenerated       bool       `json:"auto_generated"`
	SyncedAt            time.Time  `json:"synced_at"`
}

// InvoiceDraft carries the caller-provided fields of a new or overwritten
// invoice. Identity, number, and status are assigned by the repository.
// SourceOrderID doubles as the uniqueness key: at most one invoice exists
// per source order and company.
type InvoiceDraft struct {
	SourceOrderID string
	CustomerID    string
	ServiceDate   time.Time
	LineItems     []LineItem
	Introduction  string
	Conclusion    string
	Notes         string
}

type Invoice struct {
	ID            string
	CompanyID     string
	CustomerID    string
	InvoiceNumber string
	Status        InvoiceStatus
	ServiceDate   time.Time
	LineItems     []LineItem
	Introduction  string
	Conclusion    string
	Notes         string
	SyncData      *InvoiceSyncData
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedBy     string
}
