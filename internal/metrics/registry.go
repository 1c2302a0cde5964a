package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"netdash/internal/models"
	"netdash/internal/topology"
)

// Registry holds the dashboard's Prometheus collectors.
type Registry struct {
	registry *prometheus.Registry

	TrafficBandwidth   prometheus.Gauge
	TrafficLatency     prometheus.Gauge
	TrafficPacketLoss  prometheus.Gauge
	TrafficThroughput  prometheus.Gauge
	TrafficConnections prometheus.Gauge

	DevicesByStatus *prometheus.GaugeVec
	TogglesTotal    *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	WebsocketClients    prometheus.Gauge
}

// NewRegistry creates a registry with every collector registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(reg)
	r := &Registry{registry: reg}

	r.TrafficBandwidth = factory.NewGauge(prometheus.GaugeOpts{
		Name: "netdash_traffic_bandwidth_percent",
		Help: "Current synthetic bandwidth usage",
	})
	r.TrafficLatency = factory.NewGauge(prometheus.GaugeOpts{
		Name: "netdash_traffic_latency_milliseconds",
		Help: "Current synthetic network latency",
	})
	r.TrafficPacketLoss = factory.NewGauge(prometheus.GaugeOpts{
		Name: "netdash_traffic_packet_loss_percent",
		Help: "Current synthetic packet loss",
	})
	r.TrafficThroughput = factory.NewGauge(prometheus.GaugeOpts{
		Name: "netdash_traffic_throughput_mbps",
		Help: "Current synthetic throughput",
	})
	r.TrafficConnections = factory.NewGauge(prometheus.GaugeOpts{
		Name: "netdash_traffic_active_connections",
		Help: "Current synthetic active connection count",
	})

	r.DevicesByStatus = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "netdash_topology_devices",
			Help: "Number of topology devices per status",
		},
		[]string{"status"},
	)
	r.TogglesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netdash_topology_toggles_total",
			Help: "Device power toggles by device category",
		},
		[]string{"category"},
	)

	r.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netdash_http_requests_total",
			Help: "HTTP requests handled",
		},
		[]string{"method", "route", "code"},
	)
	r.HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netdash_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	r.WebsocketClients = factory.NewGauge(prometheus.GaugeOpts{
		Name: "netdash_websocket_clients",
		Help: "Connected live dashboard clients",
	})

	return r
}

// Handler exposes the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer returns the underlying registry for inspection.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// RecordTraffic publishes a traffic sample.
func (r *Registry) RecordTraffic(s models.TrafficSample) {
	r.TrafficBandwidth.Set(float64(s.Bandwidth))
	r.TrafficLatency.Set(float64(s.Latency))
	r.TrafficPacketLoss.Set(s.PacketLoss)
	r.TrafficThroughput.Set(float64(s.Throughput))
	r.TrafficConnections.Set(float64(s.Connections))
}

// RecordTopology publishes per-status device counts.
func (r *Registry) RecordTopology(sum topology.Summary) {
	r.DevicesByStatus.WithLabelValues(string(topology.StatusOnline)).Set(float64(sum.Online))
	r.DevicesByStatus.WithLabelValues(string(topology.StatusWarning)).Set(float64(sum.Warning))
	r.DevicesByStatus.WithLabelValues(string(topology.StatusOffline)).Set(float64(sum.Offline))
}

// RecordToggle counts a device toggle.
func (r *Registry) RecordToggle(category topology.Category) {
	r.TogglesTotal.WithLabelValues(string(category)).Inc()
}

// RecordHTTPRequest records a handled request.
func (r *Registry) RecordHTTPRequest(method, route, code string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
