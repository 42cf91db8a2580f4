package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MaintenanceMetricsCollector handles repair, refit and warehouse metrics.
// It implements the application layer's MaintenanceMetrics port.
type MaintenanceMetricsCollector struct {
	repairsTotal      *prometheus.CounterVec
	partsDestroyed    *prometheus.CounterVec
	refitTransitions  *prometheus.CounterVec
	warehouseStock    prometheus.Gauge
	daysAdvancedTotal prometheus.Counter
}

// NewMaintenanceMetricsCollector creates a new maintenance metrics collector
func NewMaintenanceMetricsCollector() *MaintenanceMetricsCollector {
	return &MaintenanceMetricsCollector{
		repairsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "repairs_total",
				Help:      "Total resolved repair rolls by outcome",
			},
			[]string{"outcome"},
		),
		partsDestroyed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "parts_destroyed_total",
				Help:      "Total parts destroyed by failed repairs, by kind",
			},
			[]string{"kind"},
		),
		refitTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "refit_transitions_total",
				Help:      "Total refit lifecycle transitions by resulting status",
			},
			[]string{"status"},
		),
		warehouseStock: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "warehouse_stock_units",
				Help:      "Current warehouse stock including stacked quantities",
			},
		),
		daysAdvancedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "days_advanced_total",
				Help:      "Total simulated days processed",
			},
		),
	}
}

// Register registers all maintenance metrics with the Prometheus registry
func (c *MaintenanceMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.repairsTotal,
		c.partsDestroyed,
		c.refitTransitions,
		c.warehouseStock,
		c.daysAdvancedTotal,
	}
	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordRepair records one resolved repair roll
func (c *MaintenanceMetricsCollector) RecordRepair(outcome string) {
	c.repairsTotal.WithLabelValues(outcome).Inc()
}

// RecordPartDestroyed records a terminal part loss
func (c *MaintenanceMetricsCollector) RecordPartDestroyed(kind string) {
	c.partsDestroyed.WithLabelValues(kind).Inc()
}

// RecordRefitTransition records a refit lifecycle transition
func (c *MaintenanceMetricsCollector) RecordRefitTransition(status string) {
	c.refitTransitions.WithLabelValues(status).Inc()
}

// SetWarehouseStock updates the stock gauge
func (c *MaintenanceMetricsCollector) SetWarehouseStock(quantity int) {
	c.warehouseStock.Set(float64(quantity))
}

// RecordDayAdvanced counts one processed campaign day
func (c *MaintenanceMetricsCollector) RecordDayAdvanced() {
	c.daysAdvancedTotal.Inc()
}
