package alerts

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"netdash/internal/models"
	"netdash/internal/topology"
)

// DefaultLimit bounds how many alerts the feed retains.
const DefaultLimit = 100

// Feed is a bounded, newest-first alert log.
type Feed struct {
	mu     sync.RWMutex
	limit  int
	alerts []models.Alert // oldest first
	now    func() time.Time
}

// NewFeed creates a feed that retains up to limit alerts.
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Feed{limit: limit, now: time.Now}
}

// Seed returns the alerts present when the console first opens.
func Seed(now time.Time) []models.Alert {
	return []models.Alert{
		{Severity: models.SeverityInfo, Message: "Scheduled maintenance completed", Device: "R1-Core", Timestamp: now.Add(-2 * time.Hour)},
		{Severity: models.SeverityWarning, Message: "Bandwidth threshold exceeded", Device: "SW1-Access", Timestamp: now.Add(-1 * time.Hour)},
		{Severity: models.SeverityWarning, Message: "High CPU usage on FW1-ASA", Device: "FW1-ASA", Timestamp: now.Add(-5 * time.Minute)},
		{Severity: models.SeverityCritical, Message: "PC4 is offline", Device: "PC4", Timestamp: now.Add(-2 * time.Minute)},
	}
}

// Add appends an alert, assigning an id and timestamp when missing.
func (f *Feed) Add(alert models.Alert) models.Alert {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if alert.Timestamp.IsZero() {
		alert.Timestamp = f.now().UTC()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.alerts = append(f.alerts, alert)
	if len(f.alerts) > f.limit {
		f.alerts = f.alerts[len(f.alerts)-f.limit:]
	}
	return alert
}

// Recent returns up to n alerts, newest first. n <= 0 returns all.
func (f *Feed) Recent(n int) []models.Alert {
	f.mu.RLock()
	defer f.mu.RUnlock()

	total := len(f.alerts)
	if n <= 0 || n > total {
		n = total
	}
	out := make([]models.Alert, 0, n)
	for i := total - 1; i >= total-n; i-- {
		out = append(out, f.alerts[i])
	}
	return out
}

// RecordChange turns a topology toggle into alerts: one for the toggled
// device and one warning per neighbour that left the online state.
func (f *Feed) RecordChange(state *topology.State, change topology.Change) []models.Alert {
	name := displayName(change.Device)
	var added []models.Alert

	if change.To == topology.StatusOffline {
		added = append(added, f.Add(models.Alert{
			Severity: models.SeverityCritical,
			Message:  fmt.Sprintf("%s is offline", name),
			Device:   name,
		}))
	} else {
		added = append(added, f.Add(models.Alert{
			Severity: models.SeverityInfo,
			Message:  fmt.Sprintf("%s is back online", name),
			Device:   name,
		}))
	}

	for _, tr := range change.Neighbors {
		if tr.To == topology.StatusOnline || tr.From == tr.To {
			continue
		}
		neighbor := tr.ID
		if d, ok := state.Device(tr.ID); ok {
			neighbor = displayName(d)
		}
		added = append(added, f.Add(models.Alert{
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("%s is %s after %s went offline", neighbor, tr.To, name),
			Device:   neighbor,
		}))
	}
	return added
}

func displayName(d topology.Device) string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}
