// Package metrics exposes prometheus instrumentation for device
// interactions. Registration is opt-in: a nil *Metrics is a no-op, so
// the wallet layer never forces a registry on its host application.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels for device calls.
const (
	OutcomeOK             = "ok"
	OutcomeDeviceError    = "device_error"
	OutcomeTransportError = "transport_error"
)

// Reason labels for app guard failures.
const (
	ReasonMissingCoin    = "missing_coin"
	ReasonUnknownMapping = "unknown_mapping"
	ReasonWrongApp       = "wrong_app"
)

// Metrics holds the wallet-layer collectors.
type Metrics struct {
	deviceCalls        *prometheus.CounterVec
	appGuardFailures   *prometheus.CounterVec
	unsupportedBatches prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		deviceCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hdwallet",
			Subsystem: "device",
			Name:      "calls_total",
			Help:      "Device transport round-trips by method and outcome.",
		}, []string{"method", "outcome"}),
		appGuardFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hdwallet",
			Subsystem: "device",
			Name:      "app_guard_failures_total",
			Help:      "Pre-operation app state guard rejections by reason.",
		}, []string{"reason"}),
		unsupportedBatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hdwallet",
			Subsystem: "device",
			Name:      "unsupported_app_batches_total",
			Help:      "Batched key requests rejected because no backend matches the active app.",
		}),
	}
	reg.MustRegister(m.deviceCalls, m.appGuardFailures, m.unsupportedBatches)
	return m
}

// ObserveDeviceCall counts one transport round-trip.
func (m *Metrics) ObserveDeviceCall(method, outcome string) {
	if m == nil {
		return
	}
	m.deviceCalls.WithLabelValues(method, outcome).Inc()
}

// ObserveGuardFailure counts one app guard rejection.
func (m *Metrics) ObserveGuardFailure(reason string) {
	if m == nil {
		return
	}
	m.appGuardFailures.WithLabelValues(reason).Inc()
}

// ObserveUnsupportedBatch counts one rejected key request batch.
func (m *Metrics) ObserveUnsupportedBatch() {
	if m == nil {
		return
	}
	m.unsupportedBatches.Inc()
}
