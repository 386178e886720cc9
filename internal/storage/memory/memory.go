// internal/storage/memory/memory.go
package memory

import (
	"sync"

	"github.com/fortkit/extension/internal/config"
	"github.com/fortkit/extension/pkg/core"
)

// Backend keeps the report log in memory
type Backend struct {
	cfg config.MemoryConfig

	reports       []*core.Report
	announcements []*core.Report

	nextReportID int
	displayTimer int
	mu           sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:          cfg,
		nextReportID: cfg.FirstReportID,
	}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// Allocate returns a fresh zero-valued report
func (b *Backend) Allocate() *core.Report {
	return &core.Report{}
}

// NextReportID hands out the current id and advances the counter
func (b *Backend) NextReportID() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextReportID
	b.nextReportID++
	return id
}

// PeekNextReportID returns the id the next report will get
func (b *Backend) PeekNextReportID() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.nextReportID
}

// AppendReport adds r to the end of the full report list
func (b *Backend) AppendReport(r *core.Report) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reports = append(b.reports, r)
}

// AppendAnnouncement adds r to the end of the announcement list
func (b *Backend) AppendAnnouncement(r *core.Report) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.announcements = append(b.announcements, r)
}

// SetDisplayTimer sets the new-announcement banner countdown
func (b *Backend) SetDisplayTimer(ticks int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.displayTimer = ticks
}

// DisplayTimer returns the remaining banner countdown
func (b *Backend) DisplayTimer() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.displayTimer
}

// Tick counts the banner down by n ticks
func (b *Backend) Tick(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.displayTimer = max(b.displayTimer-n, 0)
}

// Reports returns a copy of every report in insertion order
func (b *Backend) Reports() []core.Report {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return copyReports(b.reports)
}

// Announcements returns a copy of the announcement reports in insertion order
func (b *Backend) Announcements() []core.Report {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return copyReports(b.announcements)
}

func copyReports(src []*core.Report) []core.Report {
	out := make([]core.Report, len(src))
	for i, r := range src {
		out[i] = *r
	}
	return out
}
