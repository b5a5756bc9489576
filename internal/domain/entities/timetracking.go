package entities

// TimeTrackingEntry is one tracked day of work on an order.
type TimeTrackingEntry struct {
	Date        string // YYYY-MM-DD
	Hours       float64
	Description string
}

// TimeTrackingSummary aggregates all time-tracking entries of an order.
//
// Entries keep the order they were loaded in; callers must not assume a
// chronological sort.
type TimeTrackingSummary struct {
	TotalHours   float64
	DailyEntries []TimeTrackingEntry
}
