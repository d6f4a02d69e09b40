package app

import (
	"dcfclock/pkg/clock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// decoderCollector exports the counters of the dcf77 receiver and the clock state.
type decoderCollector struct {
	app *App

	syncs      *prometheus.Desc
	bits       *prometheus.Desc
	frames     *prometheus.Desc
	faults     *prometheus.Desc
	synced     *prometheus.Desc
	lastSync   *prometheus.Desc
	clockRadio *prometheus.Desc
}

func newDecoderCollector(app *App) *decoderCollector {
	return &decoderCollector{
		app: app,
		syncs: prometheus.NewDesc("dcf77_minute_marks_total",
			"Number of detected minute marks", nil, nil),
		bits: prometheus.NewDesc("dcf77_bits_total",
			"Number of accepted data bits", nil, nil),
		frames: prometheus.NewDesc("dcf77_frames_total",
			"Number of decoded frames", nil, nil),
		faults: prometheus.NewDesc("dcf77_discarded_frames_total",
			"Number of discarded frames by reason", []string{"reason"}, nil),
		synced: prometheus.NewDesc("dcf77_receiving",
			"1 while a frame is received", nil, nil),
		lastSync: prometheus.NewDesc("dcfclock_last_sync_timestamp_seconds",
			"Unix time of the last clock sync by a decoded frame", nil, nil),
		clockRadio: prometheus.NewDesc("dcfclock_radio_synced",
			"1 if the clock was set by a decoded frame", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *decoderCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.syncs
	ch <- c.bits
	ch <- c.frames
	ch <- c.faults
	ch <- c.synced
	ch <- c.lastSync
	ch <- c.clockRadio
}

// Collect implements prometheus.Collector.
func (c *decoderCollector) Collect(ch chan<- prometheus.Metric) {
	if r := c.app.receiver; r != nil {
		s := r.Stats()

		ch <- prometheus.MustNewConstMetric(c.syncs, prometheus.CounterValue, float64(s.Syncs))
		ch <- prometheus.MustNewConstMetric(c.bits, prometheus.CounterValue, float64(s.Bits))
		ch <- prometheus.MustNewConstMetric(c.frames, prometheus.CounterValue, float64(s.Frames))
		ch <- prometheus.MustNewConstMetric(c.faults, prometheus.CounterValue, float64(s.TimingFaults), "timing")
		ch <- prometheus.MustNewConstMetric(c.faults, prometheus.CounterValue, float64(s.ParityFaults), "parity")
		ch <- prometheus.MustNewConstMetric(c.faults, prometheus.CounterValue, float64(s.Restarts), "restart")
		ch <- prometheus.MustNewConstMetric(c.synced, prometheus.GaugeValue, boolValue(r.Synced()))
	}

	t := c.app.clock.Now()
	if !t.Synced.IsZero() {
		ch <- prometheus.MustNewConstMetric(c.lastSync, prometheus.GaugeValue, float64(t.Synced.Unix()))
	}
	ch <- prometheus.MustNewConstMetric(c.clockRadio, prometheus.GaugeValue, boolValue(t.Source == clock.SourceRadio))
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// initMetrics registers the application metrics in its own registry.
func (app *App) initMetrics() {
	app.registry = prometheus.NewRegistry()

	app.rejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dcfclock_rejected_times_total",
		Help: "Number of decoded times with values out of range",
	})

	app.registry.MustRegister(
		app.rejected,
		newDecoderCollector(app),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}
