package metrics

import (
	"math"

	"netdash/internal/topology"
)

// Availability summarises how much of the topology is reachable.
type Availability struct {
	Total         int     `json:"total"`
	Online        int     `json:"online"`
	Warning       int     `json:"warning"`
	Offline       int     `json:"offline"`
	UptimePercent float64 `json:"uptime_percent"`
}

// ComputeAvailability derives the online share of the devices in a summary.
func ComputeAvailability(sum topology.Summary) Availability {
	uptime := 0.0
	if sum.Total > 0 {
		uptime = float64(sum.Online) / float64(sum.Total) * 100
	}
	return Availability{
		Total:         sum.Total,
		Online:        sum.Online,
		Warning:       sum.Warning,
		Offline:       sum.Offline,
		UptimePercent: round2(uptime),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
