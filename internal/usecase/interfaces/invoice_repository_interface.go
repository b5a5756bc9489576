package interfaces

import (
	"context"
	"errors"

	"taskilo_finance/internal/domain/entities"
)

// ErrInvoiceAlreadyExists is returned by Create when an invoice for the
// same source order already landed in the table (conditional-write
// rejection). The sync treats it as the non-error "already exists" case.
var ErrInvoiceAlreadyExists = errors.New("invoice already exists for this source order")

// ErrInvoiceNotFound is returned by Update when the invoice disappeared
// (or turned out to belong to another company) between the caller's lookup
// and the overwrite.
var ErrInvoiceNotFound = errors.New("invoice not found")

// IInvoiceRepository abstracts persistence for invoices.
//
// FindBySourceOrderID resolves the invoice previously generated from a
// Taskilo order, scoped to the company. Not-found is a zero-value Invoice
// with a nil error.

type IInvoiceRepository interface {
	Create(ctx context.Context, draft entities.InvoiceDraft, userID, companyID string) (entities.Invoice, error)
	Update(ctx context.Context, invoiceID string, draft entities.InvoiceDraft, userID, companyID string) (entities.Invoice, error)
	UpdateSyncData(ctx context.Context, invoiceID string, data entities.InvoiceSyncData, userID, companyID string) error
	UpdateStatus(ctx context.Context, invoiceID string, status entities.InvoiceStatus, userID, companyID string) error
	FindBySourceOrderID(ctx context.Context, orderID, companyID string) (entities.Invoice, error)
}
