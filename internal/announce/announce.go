// Package announce splits announcement text into report-sized chunks and
// appends them to the host's report log.
package announce

import (
	"context"

	"github.com/fortkit/extension/internal/storage"
	"github.com/fortkit/extension/pkg/core"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/fortkit/extension/internal/announce"

const (
	// TextWidth is the maximum number of characters in one report
	TextWidth = 73

	// DisplayTicks is how long the new-announcement banner stays up
	DisplayTicks = 2000
)

// Style holds the optional presentation flags of an announcement.
// A nil field leaves the report's zero value in place.
type Style struct {
	Color  *int
	Bright *bool
}

// Colored returns a style with only the color set.
func Colored(color int) Style {
	return Style{Color: &color}
}

// WithBright returns a copy of s with the bright flag set.
func (s Style) WithBright(bright bool) Style {
	s.Bright = &bright
	return s
}

// Appender writes announcements into a report log.
type Appender struct {
	log      storage.ReportLog
	appended metric.Int64Counter
}

// New creates an appender over log.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(log storage.ReportLog) (*Appender, error) {
	a := &Appender{log: log}

	var err error
	a.appended, err = otel.Meter(instrumentationName).Int64Counter(
		"announce.reports",
		metric.WithDescription("Total announcement reports appended"),
	)
	if err != nil {
		return nil, err
	}

	return a, nil
}

// Add appends text as one or more announcement reports stamped with clock and
// returns how many were appended. Empty text appends nothing and leaves the
// id counter and display timer untouched.
func (a *Appender) Add(text string, style Style, clock core.Clock) int {
	rest := []rune(text)
	n := 0

	for len(rest) > 0 {
		rep := a.log.Allocate()
		if style.Color != nil {
			rep.Color = *style.Color
		}
		if style.Bright != nil {
			rep.Bright = *style.Bright
		}
		rep.Year = clock.Year
		rep.Tick = clock.Tick
		rep.Continuation = n > 0
		rep.Announcement = true

		cut := min(len(rest), TextWidth)
		rep.Text = string(rest[:cut])
		rest = rest[cut:]

		rep.ID = a.log.NextReportID()
		a.log.AppendReport(rep)
		a.log.AppendAnnouncement(rep)
		a.log.SetDisplayTimer(DisplayTicks)
		n++
	}

	if n > 0 {
		a.appended.Add(context.Background(), int64(n))
	}
	return n
}
