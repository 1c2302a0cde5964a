package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netdash/internal/models"
	"netdash/internal/topology"
)

func TestRecordTraffic(t *testing.T) {
	r := NewRegistry()
	r.RecordTraffic(models.TrafficSample{Bandwidth: 80, Latency: 25, PacketLoss: 1.5, Throughput: 900, Connections: 300})

	var metric dto.Metric
	require.NoError(t, r.TrafficLatency.Write(&metric))
	assert.Equal(t, 25.0, metric.GetGauge().GetValue())

	metric.Reset()
	require.NoError(t, r.TrafficPacketLoss.Write(&metric))
	assert.Equal(t, 1.5, metric.GetGauge().GetValue())
}

func TestRecordTopology(t *testing.T) {
	r := NewRegistry()
	r.RecordTopology(topology.Summary{Total: 5, Online: 3, Warning: 1, Offline: 1})

	gauge, err := r.DevicesByStatus.GetMetricWithLabelValues("online")
	require.NoError(t, err)
	var metric dto.Metric
	require.NoError(t, gauge.Write(&metric))
	assert.Equal(t, 3.0, metric.GetGauge().GetValue())
}

func TestRecordToggleAndHTTP(t *testing.T) {
	r := NewRegistry()
	r.RecordToggle(topology.CategorySwitch)
	r.RecordToggle(topology.CategorySwitch)
	r.RecordHTTPRequest("GET", "/api/topology", "200", 10*time.Millisecond)

	counter, err := r.TogglesTotal.GetMetricWithLabelValues("switch")
	require.NoError(t, err)
	var metric dto.Metric
	require.NoError(t, counter.Write(&metric))
	assert.Equal(t, 2.0, metric.GetCounter().GetValue())

	families, err := r.Gatherer().Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["netdash_http_requests_total"])
	assert.True(t, names["netdash_http_request_duration_seconds"])
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRegistry()
	r.RecordTraffic(models.TrafficSample{Bandwidth: 60})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "netdash_traffic_bandwidth_percent 60"))
}

func TestComputeAvailability(t *testing.T) {
	a := ComputeAvailability(topology.Summary{Total: 3, Online: 2, Warning: 1})
	assert.Equal(t, 66.67, a.UptimePercent)
	assert.Equal(t, 1, a.Warning)

	assert.Equal(t, 0.0, ComputeAvailability(topology.Summary{}).UptimePercent)
}
