package events

import "time"

const (
	ReportStartedEvent   = "report.started"
	ViewComputedEvent    = "report.view.computed"
	ReportCompletedEvent = "report.completed"
)

type ReportStarted struct {
	Views           []string `json:"views"`
	Orders          int      `json:"orders"`
	Invoices        int      `json:"invoices"`
	SkippedInvoices int      `json:"skipped_invoices"`
}

type ViewComputed struct {
	View string `json:"view"`
	Rows int    `json:"rows"`
}

type ReportCompleted struct {
	Views    int           `json:"views"`
	Duration time.Duration `json:"duration"`
}

func NewReportStartedEvent(runID string, data ReportStarted) Event {
	return NewEvent(ReportStartedEvent, runID, data)
}

func NewViewComputedEvent(runID, view string, rows int) Event {
	return NewEvent(ViewComputedEvent, runID, ViewComputed{View: view, Rows: rows})
}

func NewReportCompletedEvent(runID string, views int, duration time.Duration) Event {
	return NewEvent(ReportCompletedEvent, runID, ReportCompleted{Views: views, Duration: duration})
}
