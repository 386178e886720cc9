package monitor

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fortkit"

// Collector exposes the status snapshot as Prometheus metrics. Values are
// read on every scrape.
type Collector struct {
	svc *Service

	reports       *prometheus.Desc
	announcements *prometheus.Desc
	nextReportID  *prometheus.Desc
	displayTimer  *prometheus.Desc
	screenDepth   *prometheus.Desc
}

// NewCollector creates a collector reading from svc
func NewCollector(svc *Service) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}
	return &Collector{
		svc:           svc,
		reports:       desc("reports_total", "Reports in the report log."),
		announcements: desc("announcements_total", "Announcement reports in the report log."),
		nextReportID:  desc("next_report_id", "Id the next report will get."),
		displayTimer:  desc("display_timer_ticks", "Ticks left on the new-announcement banner."),
		screenDepth:   desc("screen_depth", "Open screens including the root."),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.reports
	ch <- c.announcements
	ch <- c.nextReportID
	ch <- c.displayTimer
	ch <- c.screenDepth
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.svc.GetStatus()
	ch <- prometheus.MustNewConstMetric(c.reports, prometheus.CounterValue, float64(st.Reports))
	ch <- prometheus.MustNewConstMetric(c.announcements, prometheus.CounterValue, float64(st.Announcements))
	ch <- prometheus.MustNewConstMetric(c.nextReportID, prometheus.GaugeValue, float64(st.NextReportID))
	ch <- prometheus.MustNewConstMetric(c.displayTimer, prometheus.GaugeValue, float64(st.DisplayTimer))
	ch <- prometheus.MustNewConstMetric(c.screenDepth, prometheus.GaugeValue, float64(st.ScreenDepth))
}

// NewRegistry returns a registry with the status collector and the standard
// Go runtime and process collectors.
func NewRegistry(svc *Service) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	for _, c := range []prometheus.Collector{
		NewCollector(svc),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// ServeMetrics serves /metrics from reg on addr until ctx is done. It returns
// once the listener is closed.
func ServeMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Prometheus /metrics available", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
