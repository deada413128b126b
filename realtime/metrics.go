package realtime

import "github.com/prometheus/client_golang/prometheus"

const (
	OutcomeDelivered = "delivered"
	OutcomeOffline   = "offline"
	OutcomeDropped   = "dropped"
)

type Metrics struct {
	Connections prometheus.Gauge
	OnlineUsers prometheus.Gauge
	Pushes      *prometheus.CounterVec
}

// NewMetrics registers the live-layer collectors on reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "messenger",
			Subsystem: "realtime",
			Name:      "connections",
			Help:      "Live connections attached to the hub.",
		}),
		OnlineUsers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "messenger",
			Subsystem: "realtime",
			Name:      "online_users",
			Help:      "Users with an entry in the presence registry.",
		}),
		Pushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "messenger",
			Subsystem: "realtime",
			Name:      "pushes_total",
			Help:      "Outbound events by name and outcome.",
		}, []string{"event", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.Connections, m.OnlineUsers, m.Pushes)
	}
	return m
}

func (m *Metrics) setConnections(n int) {
	if m != nil {
		m.Connections.Set(float64(n))
	}
}

func (m *Metrics) setOnline(n int) {
	if m != nil {
		m.OnlineUsers.Set(float64(n))
	}
}

func (m *Metrics) push(event, outcome string) {
	if m != nil {
		m.Pushes.WithLabelValues(event, outcome).Inc()
	}
}
