package entities

// SyncOutcome is the contract returned by the order sync. It is never
// partial in the throwing sense: every expected failure resolves to
// Success=false plus descriptive entries in Errors. Warnings are
// informational and accompany successful outcomes.
type SyncOutcome struct {
	Success    bool
	InvoiceID  string
	CustomerID string
	Errors     []string
	Warnings   []string
}

// SyncOptions controls a single-order sync. All flags default to off.
type SyncOptions struct {
	ForceOverwrite  bool
	DryRun          bool
	AutoSendInvoice bool
}

// BatchSyncOptions controls a batch sync. AutoSendInvoices applies to every
// order; ContinueOnError keeps the loop going past failed orders.
type BatchSyncOptions struct {
	ForceOverwrite   bool
	DryRun           bool
	AutoSendInvoices bool
	ContinueOnError  bool
}

// OrderSyncResult embeds the per-order outcome in a batch result.
type OrderSyncResult struct {
	OrderID string
	SyncOutcome
}

// BatchSyncResult summarizes a batch run. TotalProcessed equals
// len(Results), which can be shorter than the requested order list when
// the batch stopped on a failure.
type BatchSyncResult struct {
	TotalProcessed int
	Successful     int
	Failed         int
	Results        []OrderSyncResult
}
