package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"taskilo_finance/internal/domain/entities"
	"taskilo_finance/internal/usecase/interfaces"
	mock_interfaces "taskilo_finance/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type syncMocks struct {
	orders       *mock_interfaces.MockIOrderRepository
	timeTracking *mock_interfaces.MockITimeTrackingRepository
	customers    *mock_interfaces.MockICustomerRepository
	invoices     *mock_interfaces.MockIInvoiceRepository
}

func newSyncMocks(ctrl *gomock.Controller) syncMocks {
	return syncMocks{
		orders:       mock_interfaces.NewMockIOrderRepository(ctrl),
		timeTracking: mock_interfaces.NewMockITimeTrackingRepository(ctrl),
		customers:    mock_interfaces.NewMockICustomerRepository(ctrl),
		invoices:     mock_interfaces.NewMockIInvoiceRepository(ctrl),
	}
}

func (m syncMocks) useCase() *OrderSyncUseCase {
	return NewOrderSyncUseCase(m.orders, m.timeTracking, m.customers, m.invoices)
}

func testOrder() entities.Order {
	return entities.Order{
		ID:                 "order-1",
		CompanyID:          "comp-1",
		CustomerID:         "taskilo-cust-1",
		CustomerEmail:      "kunde@example.com",
		CustomerName:       "Max Mustermann",
		ServiceDescription: "Webseite Relaunch",
		HourlyRateCents:    8500,
		EstimatedHours:     10,
		ActualHours:        8,
		TotalAmountCents:   85000,
		Status:             "COMPLETED",
		CreatedAt:          time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func hasEntry(entries []string, want string) bool {
	for _, e := range entries {
		if e == want {
			return true
		}
	}
	return false
}

func TestOrderSyncUseCase_SyncOrderToInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("blank ids", func(t *testing.T) {
		uc := NewOrderSyncUseCase(nil, nil, nil, nil)

		outcome := uc.SyncOrderToInvoice(ctx, "  ", "comp-1", "user-1", entities.SyncOptions{})
		if outcome.Success {
			t.Fatalf("expected failure, got success")
		}
		if !hasEntry(outcome.Errors, "Sync failed: order id, company id and user id are required") {
			t.Fatalf("unexpected errors: %v", outcome.Errors)
		}
	})

	t.Run("order load error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(entities.Order{}, errors.New("db"))

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{})
		if outcome.Success {
			t.Fatalf("expected failure, got success")
		}
		if !hasEntry(outcome.Errors, "Sync failed: db") {
			t.Fatalf("unexpected errors: %v", outcome.Errors)
		}
	})

	t.Run("order of different company", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(entities.Order{}, interfaces.ErrOrderAccessDenied)

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{})
		if outcome.Success {
			t.Fatalf("expected failure, got success")
		}
		if !hasEntry(outcome.Errors, "Sync failed: access denied: order belongs to different company") {
			t.Fatalf("unexpected errors: %v", outcome.Errors)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(entities.Order{}, nil)

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{})
		if outcome.Success {
			t.Fatalf("expected failure, got success")
		}
		if !hasEntry(outcome.Errors, "Taskilo order not found") {
			t.Fatalf("unexpected errors: %v", outcome.Errors)
		}
	})

	t.Run("existing invoice without overwrite is idempotent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(testOrder(), nil)
		m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), "order-1", "comp-1").
			Return(entities.Invoice{ID: "inv-1", InvoiceNumber: "RE-AB12CD34", CustomerID: "cust-1"}, nil)

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{})
		if !outcome.Success {
			t.Fatalf("expected success, got errors: %v", outcome.Errors)
		}
		if outcome.InvoiceID != "inv-1" || outcome.CustomerID != "cust-1" {
			t.Fatalf("unexpected ids: invoice=%q customer=%q", outcome.InvoiceID, outcome.CustomerID)
		}
		if !hasEntry(outcome.Warnings, "Invoice already exists: RE-AB12CD34") {
			t.Fatalf("unexpected warnings: %v", outcome.Warnings)
		}
	})

	t.Run("create success with tracked hours", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		tracking := &entities.TimeTrackingSummary{
			TotalHours: 6.5,
			DailyEntries: []entities.TimeTrackingEntry{
				{Date: "2025-03-11", Hours: 4, Description: "Umsetzung"},
				{Date: "2025-03-12", Hours: 2.5},
			},
		}

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(testOrder(), nil)
		m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), "order-1", "comp-1").Return(entities.Invoice{}, nil)
		m.customers.EXPECT().FindByTaskiloID(gomock.Any(), "taskilo-cust-1", "comp-1").Return(entities.Customer{ID: "cust-1"}, nil)
		m.timeTracking.EXPECT().SummaryByOrderID(gomock.Any(), "order-1", "comp-1").Return(tracking, nil)

		var gotDraft entities.InvoiceDraft
		m.invoices.EXPECT().Create(gomock.Any(), gomock.Any(), "user-1", "comp-1").
			DoAndReturn(func(_ context.Context, draft entities.InvoiceDraft, _, _ string) (entities.Invoice, error) {
				gotDraft = draft
				return entities.Invoice{ID: "inv-new", InvoiceNumber: "RE-NEW"}, nil
			})

		var gotSync entities.InvoiceSyncData
		m.invoices.EXPECT().UpdateSyncData(gomock.Any(), "inv-new", gomock.Any(), "user-1", "comp-1").
			DoAndReturn(func(_ context.Context, _ string, data entities.InvoiceSyncData, _, _ string) error {
				gotSync = data
				return nil
			})

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{})
		if !outcome.Success {
			t.Fatalf("expected success, got errors: %v", outcome.Errors)
		}
		if outcome.InvoiceID != "inv-new" || outcome.CustomerID != "cust-1" {
			t.Fatalf("unexpected ids: invoice=%q customer=%q", outcome.InvoiceID, outcome.CustomerID)
		}
		if len(outcome.Warnings) != 0 {
			t.Fatalf("unexpected warnings: %v", outcome.Warnings)
		}

		if gotDraft.SourceOrderID != "order-1" || gotDraft.CustomerID != "cust-1" {
			t.Fatalf("unexpected draft linkage: %+v", gotDraft)
		}
		if len(gotDraft.LineItems) != 1 {
			t.Fatalf("expected single line item, got %d", len(gotDraft.LineItems))
		}
		item := gotDraft.LineItems[0]
		if item.Quantity != 6.5 {
			t.Fatalf("tracked hours should win, got quantity %v", item.Quantity)
		}
		if item.UnitPriceCents != 8500 || item.TaxRate != 19 || item.Unit != "Stunden" || item.Category != "Service" {
			t.Fatalf("unexpected line item: %+v", item)
		}
		if !strings.Contains(gotDraft.Conclusion, "Aufschlüsselung der Arbeitszeiten:") {
			t.Fatalf("conclusion misses breakdown: %q", gotDraft.Conclusion)
		}
		if !strings.Contains(gotDraft.Conclusion, "• 2025-03-11: 4h - Umsetzung\n") {
			t.Fatalf("conclusion misses entry with description: %q", gotDraft.Conclusion)
		}
		if !strings.Contains(gotDraft.Conclusion, "• 2025-03-12: 2.5h\n") {
			t.Fatalf("conclusion misses entry without description: %q", gotDraft.Conclusion)
		}

		if gotSync.SourceType != entities.SyncSourceTaskiloOrder || gotSync.SourceOrderID != "order-1" {
			t.Fatalf("unexpected sync data source: %+v", gotSync)
		}
		if gotSync.HoursPlanned != 10 || gotSync.HoursActual != 6.5 {
			t.Fatalf("unexpected sync data hours: %+v", gotSync)
		}
		if gotSync.OriginalAmountCents != 85000 || !gotSync.AutoGenerated {
			t.Fatalf("unexpected sync data amounts: %+v", gotSync)
		}
	})

	t.Run("default hourly rate on unset", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		order := testOrder()
		order.HourlyRateCents = 0

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(order, nil)
		m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), "order-1", "comp-1").Return(entities.Invoice{}, nil)
		m.customers.EXPECT().FindByTaskiloID(gomock.Any(), "taskilo-cust-1", "comp-1").Return(entities.Customer{ID: "cust-1"}, nil)
		m.timeTracking.EXPECT().SummaryByOrderID(gomock.Any(), "order-1", "comp-1").Return(nil, nil)

		m.invoices.EXPECT().Create(gomock.Any(), gomock.Any(), "user-1", "comp-1").
			DoAndReturn(func(_ context.Context, draft entities.InvoiceDraft, _, _ string) (entities.Invoice, error) {
				if draft.LineItems[0].UnitPriceCents != 5000 {
					t.Fatalf("expected default rate 5000, got %d", draft.LineItems[0].UnitPriceCents)
				}
				return entities.Invoice{ID: "inv-new"}, nil
			})
		m.invoices.EXPECT().UpdateSyncData(gomock.Any(), "inv-new", gomock.Any(), "user-1", "comp-1").Return(nil)

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{})
		if !outcome.Success {
			t.Fatalf("expected success, got errors: %v", outcome.Errors)
		}
	})

	t.Run("force overwrite updates existing invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(testOrder(), nil)
		m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), "order-1", "comp-1").
			Return(entities.Invoice{ID: "inv-1", InvoiceNumber: "RE-AB12CD34"}, nil)
		m.customers.EXPECT().FindByTaskiloID(gomock.Any(), "taskilo-cust-1", "comp-1").Return(entities.Customer{ID: "cust-1"}, nil)
		m.timeTracking.EXPECT().SummaryByOrderID(gomock.Any(), "order-1", "comp-1").Return(nil, nil)
		m.invoices.EXPECT().Update(gomock.Any(), "inv-1", gomock.Any(), "user-1", "comp-1").
			Return(entities.Invoice{ID: "inv-1"}, nil)
		m.invoices.EXPECT().UpdateSyncData(gomock.Any(), "inv-1", gomock.Any(), "user-1", "comp-1").Return(nil)

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{ForceOverwrite: true})
		if !outcome.Success {
			t.Fatalf("expected success, got errors: %v", outcome.Errors)
		}
		if outcome.InvoiceID != "inv-1" {
			t.Fatalf("unexpected invoice id %q", outcome.InvoiceID)
		}
		if !hasEntry(outcome.Warnings, "Updated existing invoice") {
			t.Fatalf("unexpected warnings: %v", outcome.Warnings)
		}
	})

	t.Run("overwrite fails when invoice disappeared", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(testOrder(), nil)
		m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), "order-1", "comp-1").
			Return(entities.Invoice{ID: "inv-1", InvoiceNumber: "RE-AB12CD34"}, nil)
		m.customers.EXPECT().FindByTaskiloID(gomock.Any(), "taskilo-cust-1", "comp-1").Return(entities.Customer{ID: "cust-1"}, nil)
		m.timeTracking.EXPECT().SummaryByOrderID(gomock.Any(), "order-1", "comp-1").Return(nil, nil)
		m.invoices.EXPECT().Update(gomock.Any(), "inv-1", gomock.Any(), "user-1", "comp-1").
			Return(entities.Invoice{}, interfaces.ErrInvoiceNotFound)

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{ForceOverwrite: true})
		if outcome.Success {
			t.Fatalf("expected failure, got success")
		}
		if !hasEntry(outcome.Errors, "Sync failed: invoice not found") {
			t.Fatalf("unexpected errors: %v", outcome.Errors)
		}
	})

	t.Run("dry run still creates customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		order := testOrder()
		order.CustomerID = ""

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(order, nil)
		m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), "order-1", "comp-1").Return(entities.Invoice{}, nil)
		m.customers.EXPECT().Search(gomock.Any(), "comp-1", "kunde@example.com").Return(nil, nil)

		var gotCustomer entities.Customer
		m.customers.EXPECT().Create(gomock.Any(), gomock.Any(), "user-1", "comp-1").
			DoAndReturn(func(_ context.Context, c entities.Customer, _, _ string) (entities.Customer, error) {
				gotCustomer = c
				c.ID = "cust-new"
				return c, nil
			})
		m.timeTracking.EXPECT().SummaryByOrderID(gomock.Any(), "order-1", "comp-1").Return(nil, nil)

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{DryRun: true})
		if !outcome.Success {
			t.Fatalf("expected success, got errors: %v", outcome.Errors)
		}
		if outcome.InvoiceID != "" {
			t.Fatalf("dry run must not report an invoice id, got %q", outcome.InvoiceID)
		}
		if outcome.CustomerID != "cust-new" {
			t.Fatalf("unexpected customer id %q", outcome.CustomerID)
		}
		if !hasEntry(outcome.Warnings, "Dry run - no changes made") {
			t.Fatalf("unexpected warnings: %v", outcome.Warnings)
		}

		if gotCustomer.Type != entities.CustomerTypeIndividual {
			t.Fatalf("unexpected customer type %q", gotCustomer.Type)
		}
		if gotCustomer.DisplayName != "Max Mustermann" || gotCustomer.FirstName != "Max" || gotCustomer.LastName != "Mustermann" {
			t.Fatalf("unexpected customer names: %+v", gotCustomer)
		}
		if gotCustomer.BillingAddress.Street != "Noch nicht angegeben" || gotCustomer.BillingAddress.Country != "DE" {
			t.Fatalf("unexpected billing address: %+v", gotCustomer.BillingAddress)
		}
		if len(gotCustomer.Contacts) != 1 || gotCustomer.Contacts[0].Type != entities.ContactTypeEmail || !gotCustomer.Contacts[0].IsPrimary {
			t.Fatalf("unexpected contacts: %+v", gotCustomer.Contacts)
		}
		if len(gotCustomer.Tags) != 2 || gotCustomer.Tags[0] != "auto-created" || gotCustomer.Tags[1] != "from-taskilo" {
			t.Fatalf("unexpected tags: %v", gotCustomer.Tags)
		}
	})

	t.Run("dry run with existing invoice and overwrite", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(testOrder(), nil)
		m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), "order-1", "comp-1").
			Return(entities.Invoice{ID: "inv-1", InvoiceNumber: "RE-AB12CD34"}, nil)
		m.customers.EXPECT().FindByTaskiloID(gomock.Any(), "taskilo-cust-1", "comp-1").Return(entities.Customer{ID: "cust-1"}, nil)
		m.timeTracking.EXPECT().SummaryByOrderID(gomock.Any(), "order-1", "comp-1").Return(nil, nil)

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{ForceOverwrite: true, DryRun: true})
		if !outcome.Success {
			t.Fatalf("expected success, got errors: %v", outcome.Errors)
		}
		if outcome.InvoiceID != "inv-1" {
			t.Fatalf("unexpected invoice id %q", outcome.InvoiceID)
		}
		if !hasEntry(outcome.Warnings, "Dry run - no changes made") {
			t.Fatalf("unexpected warnings: %v", outcome.Warnings)
		}
	})

	t.Run("customer matched by email case-insensitively", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		order := testOrder()
		order.CustomerID = ""
		order.CustomerEmail = "Kunde@Example.COM"

		match := entities.Customer{
			ID: "cust-9",
			Contacts: []entities.Contact{
				{Type: entities.ContactTypeEmail, Value: "kunde@example.com", IsPrimary: true},
			},
		}

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(order, nil)
		m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), "order-1", "comp-1").Return(entities.Invoice{}, nil)
		m.customers.EXPECT().Search(gomock.Any(), "comp-1", "Kunde@Example.COM").Return([]entities.Customer{match}, nil)
		m.timeTracking.EXPECT().SummaryByOrderID(gomock.Any(), "order-1", "comp-1").Return(nil, nil)
		m.invoices.EXPECT().Create(gomock.Any(), gomock.Any(), "user-1", "comp-1").Return(entities.Invoice{ID: "inv-new"}, nil)
		m.invoices.EXPECT().UpdateSyncData(gomock.Any(), "inv-new", gomock.Any(), "user-1", "comp-1").Return(nil)

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{})
		if !outcome.Success {
			t.Fatalf("expected success, got errors: %v", outcome.Errors)
		}
		if outcome.CustomerID != "cust-9" {
			t.Fatalf("expected email match cust-9, got %q", outcome.CustomerID)
		}
	})

	t.Run("insufficient customer data", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		order := testOrder()
		order.CustomerName = ""
		order.CustomerEmail = ""

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(order, nil)
		m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), "order-1", "comp-1").Return(entities.Invoice{}, nil)
		m.customers.EXPECT().FindByTaskiloID(gomock.Any(), "taskilo-cust-1", "comp-1").Return(entities.Customer{}, nil)

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{})
		if outcome.Success {
			t.Fatalf("expected failure, got success")
		}
		if !hasEntry(outcome.Errors, "insufficient customer data - need at least name or email") {
			t.Fatalf("unexpected errors: %v", outcome.Errors)
		}
	})

	t.Run("customer lookup failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(testOrder(), nil)
		m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), "order-1", "comp-1").Return(entities.Invoice{}, nil)
		m.customers.EXPECT().FindByTaskiloID(gomock.Any(), "taskilo-cust-1", "comp-1").Return(entities.Customer{}, errors.New("db"))

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{})
		if outcome.Success {
			t.Fatalf("expected failure, got success")
		}
		if !hasEntry(outcome.Errors, "Customer sync failed: db") {
			t.Fatalf("unexpected errors: %v", outcome.Errors)
		}
	})

	t.Run("time tracking failure degrades to none", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(testOrder(), nil)
		m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), "order-1", "comp-1").Return(entities.Invoice{}, nil)
		m.customers.EXPECT().FindByTaskiloID(gomock.Any(), "taskilo-cust-1", "comp-1").Return(entities.Customer{ID: "cust-1"}, nil)
		m.timeTracking.EXPECT().SummaryByOrderID(gomock.Any(), "order-1", "comp-1").Return(nil, errors.New("gsi throttled"))

		m.invoices.EXPECT().Create(gomock.Any(), gomock.Any(), "user-1", "comp-1").
			DoAndReturn(func(_ context.Context, draft entities.InvoiceDraft, _, _ string) (entities.Invoice, error) {
				if draft.LineItems[0].Quantity != 8 {
					t.Fatalf("expected fallback to actual hours, got %v", draft.LineItems[0].Quantity)
				}
				return entities.Invoice{ID: "inv-new"}, nil
			})
		m.invoices.EXPECT().UpdateSyncData(gomock.Any(), "inv-new", gomock.Any(), "user-1", "comp-1").Return(nil)

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{})
		if !outcome.Success {
			t.Fatalf("expected success, got errors: %v", outcome.Errors)
		}
	})

	t.Run("create loses race against concurrent sync", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(testOrder(), nil)
		first := m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), "order-1", "comp-1").Return(entities.Invoice{}, nil)
		m.customers.EXPECT().FindByTaskiloID(gomock.Any(), "taskilo-cust-1", "comp-1").Return(entities.Customer{ID: "cust-1"}, nil)
		m.timeTracking.EXPECT().SummaryByOrderID(gomock.Any(), "order-1", "comp-1").Return(nil, nil)
		m.invoices.EXPECT().Create(gomock.Any(), gomock.Any(), "user-1", "comp-1").
			Return(entities.Invoice{}, interfaces.ErrInvoiceAlreadyExists)
		m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), "order-1", "comp-1").
			Return(entities.Invoice{ID: "inv-race", InvoiceNumber: "RE-RACE"}, nil).After(first)

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{})
		if !outcome.Success {
			t.Fatalf("expected success, got errors: %v", outcome.Errors)
		}
		if outcome.InvoiceID != "inv-race" {
			t.Fatalf("unexpected invoice id %q", outcome.InvoiceID)
		}
		if !hasEntry(outcome.Warnings, "Invoice already exists: RE-RACE") {
			t.Fatalf("unexpected warnings: %v", outcome.Warnings)
		}
	})

	t.Run("auto send after sync data", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(testOrder(), nil)
		m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), "order-1", "comp-1").Return(entities.Invoice{}, nil)
		m.customers.EXPECT().FindByTaskiloID(gomock.Any(), "taskilo-cust-1", "comp-1").Return(entities.Customer{ID: "cust-1"}, nil)
		m.timeTracking.EXPECT().SummaryByOrderID(gomock.Any(), "order-1", "comp-1").Return(nil, nil)
		m.invoices.EXPECT().Create(gomock.Any(), gomock.Any(), "user-1", "comp-1").Return(entities.Invoice{ID: "inv-new"}, nil)

		gomock.InOrder(
			m.invoices.EXPECT().UpdateSyncData(gomock.Any(), "inv-new", gomock.Any(), "user-1", "comp-1").Return(nil),
			m.invoices.EXPECT().UpdateStatus(gomock.Any(), "inv-new", entities.InvoiceStatusSent, "user-1", "comp-1").Return(nil),
		)

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{AutoSendInvoice: true})
		if !outcome.Success {
			t.Fatalf("expected success, got errors: %v", outcome.Errors)
		}
		if !hasEntry(outcome.Warnings, "Invoice automatically sent") {
			t.Fatalf("unexpected warnings: %v", outcome.Warnings)
		}
	})

	t.Run("auto send failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").Return(testOrder(), nil)
		m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), "order-1", "comp-1").Return(entities.Invoice{}, nil)
		m.customers.EXPECT().FindByTaskiloID(gomock.Any(), "taskilo-cust-1", "comp-1").Return(entities.Customer{ID: "cust-1"}, nil)
		m.timeTracking.EXPECT().SummaryByOrderID(gomock.Any(), "order-1", "comp-1").Return(nil, nil)
		m.invoices.EXPECT().Create(gomock.Any(), gomock.Any(), "user-1", "comp-1").Return(entities.Invoice{ID: "inv-new"}, nil)
		m.invoices.EXPECT().UpdateSyncData(gomock.Any(), "inv-new", gomock.Any(), "user-1", "comp-1").Return(nil)
		m.invoices.EXPECT().UpdateStatus(gomock.Any(), "inv-new", entities.InvoiceStatusSent, "user-1", "comp-1").Return(errors.New("db"))

		outcome := uc.SyncOrderToInvoice(ctx, "order-1", "comp-1", "user-1", entities.SyncOptions{AutoSendInvoice: true})
		if outcome.Success {
			t.Fatalf("expected failure, got success")
		}
		if !hasEntry(outcome.Errors, "Sync failed: db") {
			t.Fatalf("unexpected errors: %v", outcome.Errors)
		}
		if hasEntry(outcome.Warnings, "Invoice automatically sent") {
			t.Fatalf("sent warning must not appear on failure: %v", outcome.Warnings)
		}
	})
}

func TestOrderSyncUseCase_BatchSyncOrders(t *testing.T) {
	ctx := context.Background()

	// expectSyncSuccess wires the full happy path for one order id.
	expectSyncSuccess := func(m syncMocks, orderID string) {
		order := testOrder()
		order.ID = orderID

		m.orders.EXPECT().GetByID(gomock.Any(), orderID, "comp-1").Return(order, nil)
		m.invoices.EXPECT().FindBySourceOrderID(gomock.Any(), orderID, "comp-1").Return(entities.Invoice{}, nil)
		m.customers.EXPECT().FindByTaskiloID(gomock.Any(), "taskilo-cust-1", "comp-1").Return(entities.Customer{ID: "cust-1"}, nil)
		m.timeTracking.EXPECT().SummaryByOrderID(gomock.Any(), orderID, "comp-1").Return(nil, nil)
		m.invoices.EXPECT().Create(gomock.Any(), gomock.Any(), "user-1", "comp-1").Return(entities.Invoice{ID: "inv-" + orderID}, nil)
		m.invoices.EXPECT().UpdateSyncData(gomock.Any(), "inv-"+orderID, gomock.Any(), "user-1", "comp-1").Return(nil)
	}

	t.Run("stops on first failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		expectSyncSuccess(m, "order-1")
		m.orders.EXPECT().GetByID(gomock.Any(), "order-2", "comp-1").Return(entities.Order{}, nil)
		// order-3 never reached

		result := uc.BatchSyncOrders(ctx, []string{"order-1", "order-2", "order-3"}, "comp-1", "user-1", entities.BatchSyncOptions{})
		if result.TotalProcessed != 2 || result.Successful != 1 || result.Failed != 1 {
			t.Fatalf("unexpected counters: %+v", result)
		}
		if len(result.Results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(result.Results))
		}
		if result.Results[0].OrderID != "order-1" || !result.Results[0].Success {
			t.Fatalf("unexpected first result: %+v", result.Results[0])
		}
		if result.Results[1].OrderID != "order-2" || result.Results[1].Success {
			t.Fatalf("unexpected second result: %+v", result.Results[1])
		}
		if !hasEntry(result.Results[1].Errors, "Taskilo order not found") {
			t.Fatalf("unexpected errors: %v", result.Results[1].Errors)
		}
	})

	t.Run("continue on error processes all", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		expectSyncSuccess(m, "order-1")
		m.orders.EXPECT().GetByID(gomock.Any(), "order-2", "comp-1").Return(entities.Order{}, nil)
		expectSyncSuccess(m, "order-3")

		result := uc.BatchSyncOrders(ctx, []string{"order-1", "order-2", "order-3"}, "comp-1", "user-1", entities.BatchSyncOptions{ContinueOnError: true})
		if result.TotalProcessed != 3 || result.Successful != 2 || result.Failed != 1 {
			t.Fatalf("unexpected counters: %+v", result)
		}
	})

	t.Run("empty order list", func(t *testing.T) {
		uc := NewOrderSyncUseCase(nil, nil, nil, nil)

		result := uc.BatchSyncOrders(ctx, nil, "comp-1", "user-1", entities.BatchSyncOptions{})
		if result.TotalProcessed != 0 || len(result.Results) != 0 {
			t.Fatalf("unexpected result: %+v", result)
		}
	})

	t.Run("recovers from panicking dependency", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newSyncMocks(ctrl)
		uc := m.useCase()

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1", "comp-1").
			DoAndReturn(func(context.Context, string, string) (entities.Order, error) {
				panic("boom")
			})

		result := uc.BatchSyncOrders(ctx, []string{"order-1"}, "comp-1", "user-1", entities.BatchSyncOptions{})
		if result.TotalProcessed != 1 || result.Failed != 1 {
			t.Fatalf("unexpected counters: %+v", result)
		}
		if !hasEntry(result.Results[0].Errors, "Batch sync error: boom") {
			t.Fatalf("unexpected errors: %v", result.Results[0].Errors)
		}
	})
}

func TestResolveBillableHours(t *testing.T) {
	cases := []struct {
		name     string
		order    entities.Order
		tracking *entities.TimeTrackingSummary
		want     float64
	}{
		{
			name:     "tracked hours win",
			order:    entities.Order{ActualHours: 8, EstimatedHours: 10},
			tracking: &entities.TimeTrackingSummary{TotalHours: 6.5},
			want:     6.5,
		},
		{
			name:  "actual hours over estimate",
			order: entities.Order{ActualHours: 8, EstimatedHours: 10},
			want:  8,
		},
		{
			name:  "estimate as last resort",
			order: entities.Order{EstimatedHours: 10},
			want:  10,
		},
		{
			name:     "zero tracked total falls through",
			order:    entities.Order{EstimatedHours: 10},
			tracking: &entities.TimeTrackingSummary{TotalHours: 0},
			want:     10,
		},
		{
			name: "nothing known",
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveBillableHours(tc.order, tc.tracking); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSplitCustomerName(t *testing.T) {
	cases := []struct {
		in    string
		first string
		last  string
	}{
		{"Max Mustermann", "Max", "Mustermann"},
		{"Max", "Max", ""},
		{"Anna Maria von Berg", "Anna", "Maria von Berg"},
		{"   ", "", ""},
	}

	for _, tc := range cases {
		first, last := splitCustomerName(tc.in)
		if first != tc.first || last != tc.last {
			t.Fatalf("splitCustomerName(%q) = %q, %q; want %q, %q", tc.in, first, last, tc.first, tc.last)
		}
	}
}

func TestBuildInvoiceDraft_ServiceDate(t *testing.T) {
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	completed := time.Date(2025, 3, 20, 17, 0, 0, 0, time.UTC)

	t.Run("completed order", func(t *testing.T) {
		order := testOrder()
		order.CompletedAt = &completed

		draft := buildInvoiceDraft(order, "cust-1", nil)
		if !draft.ServiceDate.Equal(completed) {
			t.Fatalf("expected completion date, got %v", draft.ServiceDate)
		}
	})

	t.Run("open order falls back to creation", func(t *testing.T) {
		order := testOrder()
		order.CreatedAt = created

		draft := buildInvoiceDraft(order, "cust-1", nil)
		if !draft.ServiceDate.Equal(created) {
			t.Fatalf("expected creation date, got %v", draft.ServiceDate)
		}
	})
}
