package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"taskilo_finance/internal/domain/entities"
	"taskilo_finance/internal/usecase/interfaces"
)

var (
	ErrInsufficientCustomerData = errors.New("insufficient customer data - need at least name or email")
)

// Product defaults. Literal today; a tenant configuration source should be
// able to replace them without touching the sync algorithm.
const (
	defaultHourlyRateCents int64   = 5000
	defaultTaxRate         float64 = 19

	lineItemUnit     = "Stunden"
	lineItemCategory = "Service"

	autoCreatedCustomerFallbackName = "Unbekannter Kunde"
)

// IOrderSyncUseCase synchronizes Taskilo orders into finance invoices.
//
// Both operations are boundaries: they never return an error and never
// panic toward the caller. Every expected failure resolves to an outcome
// with Success=false and a descriptive entry in Errors.

type IOrderSyncUseCase interface {
	SyncOrderToInvoice(ctx context.Context, orderID, companyID, userID string, opts entities.SyncOptions) entities.SyncOutcome
	BatchSyncOrders(ctx context.Context, orderIDs []string, companyID, userID string, opts entities.BatchSyncOptions) entities.BatchSyncResult
}

type OrderSyncUseCase struct {
	orders       interfaces.IOrderRepository
	timeTracking interfaces.ITimeTrackingRepository
	customers    interfaces.ICustomerRepository
	invoices     interfaces.IInvoiceRepository
}

var _ IOrderSyncUseCase = (*OrderSyncUseCase)(nil)

func NewOrderSyncUseCase(
	orders interfaces.IOrderRepository,
	timeTracking interfaces.ITimeTrackingRepository,
	customers interfaces.ICustomerRepository,
	invoices interfaces.IInvoiceRepository,
) *OrderSyncUseCase {
	return &OrderSyncUseCase{
		orders:       orders,
		timeTracking: timeTracking,
		customers:    customers,
		invoices:     invoices,
	}
}

// SyncOrderToInvoice loads a Taskilo order, resolves or creates the matching
// customer, and creates (or, with ForceOverwrite, updates) the invoice
// generated from it. Idempotent by default: when an invoice for the order
// already exists and ForceOverwrite is off, the call succeeds without writes
// and only warns.
func (u *OrderSyncUseCase) SyncOrderToInvoice(ctx context.Context, orderID, companyID, userID string, opts entities.SyncOptions) entities.SyncOutcome {
	syncErrors := []string{}
	warnings := []string{}

	orderID = strings.TrimSpace(orderID)
	companyID = strings.TrimSpace(companyID)
	userID = strings.TrimSpace(userID)
	if orderID == "" || companyID == "" || userID == "" {
		log.Printf("[sync][usecase] invalid input order_id=%q company_id=%q user_id=%q", orderID, companyID, userID)
		syncErrors = append(syncErrors, "Sync failed: order id, company id and user id are required")
		return entities.SyncOutcome{Success: false, Errors: syncErrors, Warnings: warnings}
	}

	log.Printf("[sync][usecase] starting sync order_id=%s company_id=%s", orderID, companyID)

	// 1. Load the source order, scoped to the company.
	order, err := u.orders.GetByID(ctx, orderID, companyID)
	if err != nil {
		// Cross-company access and read failures surface the same way.
		log.Printf("[sync][usecase] order load failed order_id=%s err=%v", orderID, err)
		syncErrors = append(syncErrors, fmt.Sprintf("Sync failed: %v", err))
		return entities.SyncOutcome{Success: false, Errors: syncErrors, Warnings: warnings}
	}
	if order.ID == "" {
		log.Printf("[sync][usecase] order not found order_id=%s", orderID)
		syncErrors = append(syncErrors, "Taskilo order not found")
		return entities.SyncOutcome{Success: false, Errors: syncErrors, Warnings: warnings}
	}

	// 2. An invoice may already be linked to this order.
	existing := u.findExistingInvoice(ctx, orderID, companyID)
	if existing.ID != "" && !opts.ForceOverwrite {
		log.Printf("[sync][usecase] invoice already exists order_id=%s invoice_id=%s", orderID, existing.ID)
		warnings = append(warnings, "Invoice already exists: "+existing.InvoiceNumber)
		return entities.SyncOutcome{
			Success:    true,
			InvoiceID:  existing.ID,
			CustomerID: existing.CustomerID,
			Errors:     syncErrors,
			Warnings:   warnings,
		}
	}

	// 3. Resolve or create the customer. Runs before the dry-run short
	// circuit, so a dry run can still create a customer record.
	customerID, customerCreated, err := u.syncOrCreateCustomer(ctx, order, userID, companyID)
	if err != nil {
		if errors.Is(err, ErrInsufficientCustomerData) {
			log.Printf("[sync][usecase] insufficient customer data order_id=%s", orderID)
			syncErrors = append(syncErrors, err.Error())
		} else {
			log.Printf("[sync][usecase] customer sync failed order_id=%s err=%v", orderID, err)
			syncErrors = append(syncErrors, fmt.Sprintf("Customer sync failed: %v", err))
		}
		return entities.SyncOutcome{Success: false, Errors: syncErrors, Warnings: warnings}
	}
	if customerCreated {
		log.Printf("[sync][usecase] created new customer customer_id=%s order_id=%s", customerID, orderID)
	} else {
		log.Printf("[sync][usecase] found existing customer customer_id=%s order_id=%s", customerID, orderID)
	}

	// 4. Time tracking is optional enrichment; absence or a failed load is
	// not an error.
	timeTracking := u.loadTimeTracking(ctx, orderID, companyID)

	// 5. Transform into an invoice draft.
	draft := buildInvoiceDraft(order, customerID, timeTracking)

	// 6. Create or overwrite the invoice. Dry run stops right before the
	// first invoice write.
	var invoice entities.Invoice
	if existing.ID != "" && opts.ForceOverwrite {
		if opts.DryRun {
			log.Printf("[sync][usecase] dry run - would update invoice order_id=%s invoice_id=%s", orderID, existing.ID)
			warnings = append(warnings, "Dry run - no changes made")
			return entities.SyncOutcome{
				Success:    true,
				InvoiceID:  existing.ID,
				CustomerID: customerID,
				Errors:     syncErrors,
				Warnings:   warnings,
			}
		}

		invoice, err = u.invoices.Update(ctx, existing.ID, draft, userID, companyID)
		if err != nil {
			log.Printf("[sync][usecase] invoice update failed order_id=%s invoice_id=%s err=%v", orderID, existing.ID, err)
			syncErrors = append(syncErrors, fmt.Sprintf("Sync failed: %v", err))
			return entities.SyncOutcome{Success: false, Errors: syncErrors, Warnings: warnings}
		}
		warnings = append(warnings, "Updated existing invoice")
	} else {
		if opts.DryRun {
			log.Printf("[sync][usecase] dry run - would create invoice order_id=%s", orderID)
			warnings = append(warnings, "Dry run - no changes made")
			return entities.SyncOutcome{
				Success:    true,
				CustomerID: customerID,
				Errors:     syncErrors,
				Warnings:   warnings,
			}
		}

		invoice, err = u.invoices.Create(ctx, draft, userID, companyID)
		if err != nil {
			if errors.Is(err, interfaces.ErrInvoiceAlreadyExists) {
				// A concurrent sync won the check-then-write race; same
				// contract as the early existence check above.
				dup := u.findExistingInvoice(ctx, orderID, companyID)
				log.Printf("[sync][usecase] concurrent sync created invoice first order_id=%s invoice_id=%s", orderID, dup.ID)
				warnings = append(warnings, "Invoice already exists: "+dup.InvoiceNumber)
				return entities.SyncOutcome{
					Success:    true,
					InvoiceID:  dup.ID,
					CustomerID: customerID,
					Errors:     syncErrors,
					Warnings:   warnings,
				}
			}
			log.Printf("[sync][usecase] invoice create failed order_id=%s err=%v", orderID, err)
			syncErrors = append(syncErrors, fmt.Sprintf("Sync failed: %v", err))
			return entities.SyncOutcome{Success: false, Errors: syncErrors, Warnings: warnings}
		}
	}

	// 7. Always (re)write the sync metadata after the invoice write.
	if err := u.invoices.UpdateSyncData(ctx, invoice.ID, buildSyncData(order, timeTracking), userID, companyID); err != nil {
		log.Printf("[sync][usecase] sync data update failed order_id=%s invoice_id=%s err=%v", orderID, invoice.ID, err)
		syncErrors = append(syncErrors, fmt.Sprintf("Sync failed: %v", err))
		return entities.SyncOutcome{Success: false, Errors: syncErrors, Warnings: warnings}
	}

	// 8. Optional status transition to SENT.
	if opts.AutoSendInvoice {
		if err := u.invoices.UpdateStatus(ctx, invoice.ID, entities.InvoiceStatusSent, userID, companyID); err != nil {
			log.Printf("[sync][usecase] auto send failed order_id=%s invoice_id=%s err=%v", orderID, invoice.ID, err)
			syncErrors = append(syncErrors, fmt.Sprintf("Sync failed: %v", err))
			return entities.SyncOutcome{Success: false, Errors: syncErrors, Warnings: warnings}
		}
		warnings = append(warnings, "Invoice automatically sent")
	}

	log.Printf("[sync][usecase] sync success order_id=%s invoice_id=%s customer_id=%s", orderID, invoice.ID, customerID)

	return entities.SyncOutcome{
		Success:    true,
		InvoiceID:  invoice.ID,
		CustomerID: customerID,
		Errors:     syncErrors,
		Warnings:   warnings,
	}
}

// BatchSyncOrders applies SyncOrderToInvoice sequentially to each order.
// A failed outcome stops the loop unless ContinueOnError is set; orders
// after the stop never appear in Results.
func (u *OrderSyncUseCase) BatchSyncOrders(ctx context.Context, orderIDs []string, companyID, userID string, opts entities.BatchSyncOptions) entities.BatchSyncResult {
	result := entities.BatchSyncResult{
		Results: make([]entities.OrderSyncResult, 0, len(orderIDs)),
	}

	singleOpts := entities.SyncOptions{
		ForceOverwrite:  opts.ForceOverwrite,
		DryRun:          opts.DryRun,
		AutoSendInvoice: opts.AutoSendInvoices,
	}

	log.Printf("[sync][usecase] batch sync start company_id=%s orders=%d continue_on_error=%t", companyID, len(orderIDs), opts.ContinueOnError)

	for _, orderID := range orderIDs {
		outcome := u.syncOneGuarded(ctx, orderID, companyID, userID, singleOpts)
		result.Results = append(result.Results, entities.OrderSyncResult{
			OrderID:     orderID,
			SyncOutcome: outcome,
		})

		if outcome.Success {
			result.Successful++
			continue
		}

		result.Failed++
		if !opts.ContinueOnError {
			log.Printf("[sync][usecase] batch sync stopped on failed order order_id=%s", orderID)
			break
		}
	}

	result.TotalProcessed = len(result.Results)
	log.Printf("[sync][usecase] batch sync done company_id=%s processed=%d successful=%d failed=%d", companyID, result.TotalProcessed, result.Successful, result.Failed)
	return result
}

// syncOneGuarded shields the batch loop from a panicking iteration. The
// single-order operation contractually does not panic; this is the second
// guard.
func (u *OrderSyncUseCase) syncOneGuarded(ctx context.Context, orderID, companyID, userID string, opts entities.SyncOptions) (outcome entities.SyncOutcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[sync][usecase] batch sync recovered order_id=%s panic=%v", orderID, r)
			outcome = entities.SyncOutcome{
				Success:  false,
				Errors:   []string{fmt.Sprintf("Batch sync error: %v", r)},
				Warnings: []string{},
			}
		}
	}()

	return u.SyncOrderToInvoice(ctx, orderID, companyID, userID, opts)
}

// syncOrCreateCustomer resolves the customer for an order: first by the
// Taskilo customer id, then by exact (case-insensitive) email match among
// the company's customers, and finally by creating a placeholder customer.
// The returned bool reports whether a customer was created.
func (u *OrderSyncUseCase) syncOrCreateCustomer(ctx context.Context, order entities.Order, userID, companyID string) (string, bool, error) {
	if order.CustomerID != "" {
		customer, err := u.customers.FindByTaskiloID(ctx, order.CustomerID, companyID)
		if err != nil {
			return "", false, err
		}
		if customer.ID != "" {
			return customer.ID, false, nil
		}
	}

	if order.CustomerEmail != "" {
		matches, err := u.customers.Search(ctx, companyID, order.CustomerEmail)
		if err != nil {
			return "", false, err
		}
		for _, customer := range matches {
			if customer.HasEmail(order.CustomerEmail) {
				return customer.ID, false, nil
			}
		}
	}

	if order.CustomerName == "" && order.CustomerEmail == "" {
		return "", false, ErrInsufficientCustomerData
	}

	displayName := order.CustomerName
	if displayName == "" {
		displayName = order.CustomerEmail
	}
	if displayName == "" {
		displayName = autoCreatedCustomerFallbackName
	}
	firstName, lastName := splitCustomerName(order.CustomerName)

	customer := entities.Customer{
		Type:        entities.CustomerTypeIndividual,
		DisplayName: displayName,
		FirstName:   firstName,
		LastName:    lastName,
		// Placeholder billing address; the real one arrives when the
		// customer is completed in the finance UI.
		BillingAddress: entities.BillingAddress{
			Street:     "Noch nicht angegeben",
			PostalCode: "00000",
			City:       "Noch nicht angegeben",
			Country:    "DE",
		},
		TaskiloCustomerID: order.CustomerID,
		Notes:             fmt.Sprintf("Automatisch erstellt bei Sync von Auftrag: %s", order.ID),
		Tags:              []string{"auto-created", "from-taskilo"},
	}
	if order.CustomerEmail != "" {
		customer.Contacts = []entities.Contact{
			{Type: entities.ContactTypeEmail, Value: order.CustomerEmail, IsPrimary: true},
		}
	}

	created, err := u.customers.Create(ctx, customer, userID, companyID)
	if err != nil {
		return "", false, err
	}
	return created.ID, true, nil
}

func (u *OrderSyncUseCase) loadTimeTracking(ctx context.Context, orderID, companyID string) *entities.TimeTrackingSummary {
	summary, err := u.timeTracking.SummaryByOrderID(ctx, orderID, companyID)
	if err != nil {
		log.Printf("[sync][usecase] time tracking load failed, continuing without order_id=%s err=%v", orderID, err)
		return nil
	}
	return summary
}

func (u *OrderSyncUseCase) findExistingInvoice(ctx context.Context, orderID, companyID string) entities.Invoice {
	invoice, err := u.invoices.FindBySourceOrderID(ctx, orderID, companyID)
	if err != nil {
		log.Printf("[sync][usecase] existing invoice lookup failed, assuming none order_id=%s err=%v", orderID, err)
		return entities.Invoice{}
	}
	return invoice
}

// buildInvoiceDraft turns the order plus optional time tracking into an
// invoice draft with a single hourly line item.
func buildInvoiceDraft(order entities.Order, customerID string, timeTracking *entities.TimeTrackingSummary) entities.InvoiceDraft {
	hours := resolveBillableHours(order, timeTracking)

	hourlyRateCents := order.HourlyRateCents
	if hourlyRateCents == 0 {
		hourlyRateCents = defaultHourlyRateCents
	}

	lineItems := []entities.LineItem{
		{
			Description:    order.ServiceDescription,
			Quantity:       hours,
			UnitPriceCents: hourlyRateCents,
			TaxRate:        defaultTaxRate,
			Unit:           lineItemUnit,
			Category:       lineItemCategory,
		},
	}

	conclusion := order.ServiceDescription
	if timeTracking != nil && len(timeTracking.DailyEntries) > 0 {
		var b strings.Builder
		b.WriteString(order.ServiceDescription)
		b.WriteString("\n\nAufschlüsselung der Arbeitszeiten:\n")
		for _, entry := range timeTracking.DailyEntries {
			b.WriteString("• ")
			b.WriteString(entry.Date)
			b.WriteString(": ")
			b.WriteString(formatHours(entry.Hours))
			b.WriteString("h")
			if entry.Description != "" {
				b.WriteString(" - ")
				b.WriteString(entry.Description)
			}
			b.WriteString("\n")
		}
		conclusion = b.String()
	}

	serviceDate := order.CreatedAt
	if order.CompletedAt != nil {
		serviceDate = *order.CompletedAt
	}

	return entities.InvoiceDraft{
		SourceOrderID: order.ID,
		CustomerID:    customerID,
		ServiceDate:   serviceDate,
		LineItems:     lineItems,
		Introduction:  fmt.Sprintf("Rechnung für die erbrachten Dienstleistungen gemäß Auftrag %s.", order.ID),
		Conclusion:    conclusion,
		Notes:         fmt.Sprintf("Automatisch generiert aus Taskilo-Auftrag: %s", order.ID),
	}
}

func buildSyncData(order entities.Order, timeTracking *entities.TimeTrackingSummary) entities.InvoiceSyncData {
	hoursActual := order.ActualHours
	if timeTracking != nil && timeTracking.TotalHours != 0 {
		hoursActual = timeTracking.TotalHours
	}

	return entities.InvoiceSyncData{
		SourceType:          entities.SyncSourceTaskiloOrder,
		SourceOrderID:       order.ID,
		OriginalAmountCents: order.TotalAmountCents,
		ActualAmountCents:   order.TotalAmountCents,
		HoursPlanned:        order.EstimatedHours,
		HoursActual:         hoursActual,
		AutoGenerated:       true,
		SyncedAt:            time.Now().UTC(),
	}
}

// resolveBillableHours picks the billed quantity: tracked hours win over
// actual hours, which win over the estimate.
func resolveBillableHours(order entities.Order, timeTracking *entities.TimeTrackingSummary) float64 {
	if timeTracking != nil && timeTracking.TotalHours != 0 {
		return timeTracking.TotalHours
	}
	if order.ActualHours != 0 {
		return order.ActualHours
	}
	if order.EstimatedHours != 0 {
		return order.EstimatedHours
	}
	return 0
}

func splitCustomerName(fullName string) (string, string) {
	parts := strings.Fields(strings.TrimSpace(fullName))
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
