package request

import "strings"

// SyncOrderRequest is the body of a single-order sync call. The order id
// travels in the path, the acting identity in the body.
type SyncOrderRequest struct {
	CompanyID       string `json:"company_id" binding:"required"`
	UserID          string `json:"user_id" binding:"required"`
	ForceOverwrite  bool   `json:"force_overwrite"`
	DryRun          bool   `json:"dry_run"`
	AutoSendInvoice bool   `json:"auto_send_invoice"`
}

func (r SyncOrderRequest) ResolveCompanyID() string {
	return strings.TrimSpace(r.CompanyID)
}

func (r SyncOrderRequest) ResolveUserID() string {
	return strings.TrimSpace(r.UserID)
}

// BatchSyncRequest is the body of a batch sync call.
type BatchSyncRequest struct {
	OrderIDs         []string `json:"order_ids" binding:"required,min=1"`
	CompanyID        string   `json:"company_id" binding:"required"`
	UserID           string   `json:"user_id" binding:"required"`
	ForceOverwrite   bool     `json:"force_overwrite"`
	DryRun           bool     `json:"dry_run"`
	AutoSendInvoices bool     `json:"auto_send_invoices"`
	ContinueOnError  bool     `json:"continue_on_error"`
}

func (r BatchSyncRequest) ResolveCompanyID() string {
	return strings.TrimSpace(r.CompanyID)
}

func (r BatchSyncRequest) ResolveUserID() string {
	return strings.TrimSpace(r.UserID)
}

// ResolveOrderIDs drops blank entries while keeping the request order.
func (r BatchSyncRequest) ResolveOrderIDs() []string {
	ids := make([]string, 0, len(r.OrderIDs))
	for _, id := range r.OrderIDs {
		if v := strings.TrimSpace(id); v != "" {
			ids = append(ids, v)
		}
	}
	return ids
}
