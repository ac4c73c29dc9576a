package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"critvue/internal/db"
)

var slotStatusDesc = prometheus.NewDesc(
	"critvue_slots",
	"Current review slot count by status",
	[]string{"status"},
	nil,
)

// SlotStatusCollector is a custom Prometheus collector that reads slot
// counts from the database on each scrape.
type SlotStatusCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *SlotStatusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- slotStatusDesc
}

// Collect queries the database for slot counts and emits them as gauges.
func (c *SlotStatusCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.db.CountSlotsByStatus(context.Background())
	if err != nil {
		slog.Error("failed to collect slot status metrics", "error", err)
		return
	}
	for status, count := range counts {
		ch <- prometheus.MustNewConstMetric(
			slotStatusDesc,
			prometheus.GaugeValue,
			float64(count),
			string(status),
		)
	}
}

var (
	transitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "critvue_slot_transitions_total",
			Help: "Total slot lifecycle transitions by destination status and trigger",
		},
		[]string{"to", "trigger"},
	)

	sweepRunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "critvue_auto_accept_sweeps_total",
			Help: "Total auto-accept sweep runs",
		},
	)

	sweepAcceptedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "critvue_auto_accepted_slots_total",
			Help: "Total slots auto-accepted by deadline sweeps",
		},
	)
)

var initOnce sync.Once

// Init registers all collectors. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(transitionsTotal, sweepRunsTotal, sweepAcceptedTotal)
		prometheus.MustRegister(&SlotStatusCollector{db: database})
	})
}

// RecordTransition counts a committed lifecycle transition.
func RecordTransition(to, trigger string) {
	transitionsTotal.WithLabelValues(to, trigger).Inc()
}

// RecordSweep counts a sweep run and how many slots it auto-accepted.
func RecordSweep(accepted int) {
	sweepRunsTotal.Inc()
	sweepAcceptedTotal.Add(float64(accepted))
}
