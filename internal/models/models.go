package models

import (
	"time"
)

// TrafficSample is one synthetic reading of network-wide traffic counters.
type TrafficSample struct {
	Timestamp   time.Time `json:"timestamp"`
	Bandwidth   int       `json:"bandwidth"`
	Latency     int       `json:"latency"`
	PacketLoss  float64   `json:"packetLoss"`
	Throughput  int       `json:"throughput"`
	Connections int       `json:"connections"`
}
