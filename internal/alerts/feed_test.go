package alerts

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netdash/internal/models"
	"netdash/internal/topology"
)

func TestFeedNewestFirst(t *testing.T) {
	f := NewFeed(10)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	for _, a := range Seed(now) {
		f.Add(a)
	}

	recent := f.Recent(0)
	require.Len(t, recent, 4)
	assert.Equal(t, "PC4 is offline", recent[0].Message)
	assert.Equal(t, models.SeverityCritical, recent[0].Severity)
	for _, a := range recent {
		assert.NotEmpty(t, a.ID)
	}

	assert.Len(t, f.Recent(2), 2)
}

func TestFeedBounded(t *testing.T) {
	f := NewFeed(3)
	for i := 0; i < 5; i++ {
		f.Add(models.Alert{Severity: models.SeverityInfo, Message: fmt.Sprintf("m%d", i)})
	}

	recent := f.Recent(10)
	require.Len(t, recent, 3)
	assert.Equal(t, "m4", recent[0].Message)
	assert.Equal(t, "m2", recent[2].Message)
}

func TestRecordChange(t *testing.T) {
	state := topology.New(topology.DefaultDevices())
	f := NewFeed(0)

	change, ok := state.Toggle("switch1")
	require.True(t, ok)
	added := f.RecordChange(state, change)

	require.Len(t, added, 4)
	assert.Equal(t, models.SeverityCritical, added[0].Severity)
	assert.Equal(t, "SW1-Access is offline", added[0].Message)
	for _, a := range added[1:] {
		assert.Equal(t, models.SeverityWarning, a.Severity)
	}
	assert.Equal(t, "AP1-Wireless is warning after SW1-Access went offline", added[3].Message)

	change, _ = state.Toggle("switch1")
	added = f.RecordChange(state, change)
	require.Len(t, added, 1)
	assert.Equal(t, models.SeverityInfo, added[0].Severity)
}
