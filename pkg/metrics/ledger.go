package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics métricas del ledger de stock y del generador de alertas.
// Todos los métodos toleran receptor nil (métricas deshabilitadas).
type LedgerMetrics struct {
	movements       *prometheus.CounterVec
	movementLatency *prometheus.HistogramVec
	alertsCreated   prometheus.Counter
	scans           *prometheus.CounterVec
}

// NewLedgerMetrics registra las métricas en el registerer indicado.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	movements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_movements_total",
		Help: "Intentos de movimiento de stock por tipo y resultado.",
	}, []string{"kind", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stock_movement_duration_seconds",
		Help:    "Duración de la transacción de movimiento de stock.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	alerts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stock_alerts_created_total",
		Help: "Alertas de stock bajo creadas.",
	})
	scans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_alert_scans_total",
		Help: "Ejecuciones del escaneo de alertas por resultado.",
	}, []string{"result"})
	reg.MustRegister(movements, latency, alerts, scans)
	return &LedgerMetrics{
		movements:       movements,
		movementLatency: latency,
		alertsCreated:   alerts,
		scans:           scans,
	}
}

// ObserveMovement registra el resultado y la duración de un movimiento.
func (m *LedgerMetrics) ObserveMovement(kind, outcome string, seconds float64) {
	if m == nil || m.movements == nil {
		return
	}
	m.movements.WithLabelValues(kind, outcome).Inc()
	m.movementLatency.WithLabelValues(kind).Observe(seconds)
}

// ObserveScan registra una ejecución del escaneo y cuántas alertas creó.
func (m *LedgerMetrics) ObserveScan(created int, err error) {
	if m == nil || m.scans == nil {
		return
	}
	if err != nil {
		m.scans.WithLabelValues("failure").Inc()
		return
	}
	m.scans.WithLabelValues("success").Inc()
	m.alertsCreated.Add(float64(created))
}
