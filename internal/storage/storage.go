// internal/storage/storage.go
package storage

import "github.com/fortkit/extension/pkg/core"

// ReportLog is the write side of the host's report log, as used by the
// announcement appender. Calls must be serialized by the caller.
type ReportLog interface {
	// Allocate returns a zero-initialized report owned by the store.
	Allocate() *core.Report

	// NextReportID returns the next unused report id and advances the counter.
	NextReportID() int

	AppendReport(r *core.Report)
	AppendAnnouncement(r *core.Report)

	// SetDisplayTimer sets the countdown, in ticks, for the new-announcement banner.
	SetDisplayTimer(ticks int)
}

// Backend is the interface all report log implementations must satisfy
type Backend interface {
	ReportLog

	// Lifecycle
	Init() error
	Close() error

	// Read access for host queries; returned slices are copies
	Reports() []core.Report
	Announcements() []core.Report
	DisplayTimer() int
	PeekNextReportID() int

	// Tick counts the display timer down by n ticks, stopping at zero.
	Tick(n int)
}
