package bolt

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the optional instrumentation surface a Connection reports
// through, grounded on the prometheus/client_golang collectors
// ClusterCockpit-cc-backend and runZeroInc-conniver's exporter package
// wire directly into their own transport/socket layers. A nil *Metrics is
// valid and every method on it is a no-op, so instrumentation never
// becomes a hard dependency of opening a connection.
type Metrics struct {
	bytesSent     prometheus.Counter
	bytesReceived prometheus.Counter
	requests      prometheus.Counter
	status        *prometheus.GaugeVec
}

// NewMetrics registers a connection's counters/gauges against reg. Pass a
// nil reg to build an unregistered (but still usable) Metrics, useful in
// tests.
func NewMetrics(reg prometheus.Registerer, connLabel string) *Metrics {
	m := &Metrics{
		bytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bolt_connection_bytes_sent_total",
			Help:        "Bytes written to the connection's socket.",
			ConstLabels: prometheus.Labels{"connection": connLabel},
		}),
		bytesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bolt_connection_bytes_received_total",
			Help:        "Bytes read from the connection's socket.",
			ConstLabels: prometheus.Labels{"connection": connLabel},
		}),
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bolt_connection_requests_total",
			Help:        "Requests packed onto this connection.",
			ConstLabels: prometheus.Labels{"connection": connLabel},
		}),
		status: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "bolt_connection_status",
			Help:        "1 for the connection's current status, 0 otherwise.",
			ConstLabels: prometheus.Labels{"connection": connLabel},
		}, []string{"status"}),
	}
	if reg != nil {
		reg.MustRegister(m.bytesSent, m.bytesReceived, m.requests, m.status)
	}
	return m
}

func (m *Metrics) addSent(n int) {
	if m == nil {
		return
	}
	m.bytesSent.Add(float64(n))
}

func (m *Metrics) addReceived(n int) {
	if m == nil {
		return
	}
	m.bytesReceived.Add(float64(n))
}

func (m *Metrics) incRequests() {
	if m == nil {
		return
	}
	m.requests.Inc()
}

func (m *Metrics) setStatus(s Status) {
	if m == nil {
		return
	}
	for _, label := range statusLabels {
		if label == s.String() {
			m.status.WithLabelValues(label).Set(1)
		} else {
			m.status.WithLabelValues(label).Set(0)
		}
	}
}

var statusLabels = []string{
	Disconnected.String(),
	Connected.String(),
	Ready.String(),
	Failed.String(),
	Defunct.String(),
}
