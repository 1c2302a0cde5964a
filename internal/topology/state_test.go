package topology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitialisesStatuses(t *testing.T) {
	s := New(DefaultDevices())

	st, ok := s.Status("firewall1")
	require.True(t, ok)
	assert.Equal(t, StatusWarning, st)

	st, ok = s.Status("host4")
	require.True(t, ok)
	assert.Equal(t, StatusOffline, st)

	assert.Len(t, s.Devices(), 18)
	assert.Equal(t, Summary{Total: 18, Online: 16, Warning: 1, Offline: 1}, s.Summary())
}

func TestNewKeepsFirstDuplicate(t *testing.T) {
	s := New([]Device{
		{ID: "a", Name: "first", Category: CategoryHost, Status: StatusOnline},
		{ID: "a", Name: "second", Category: CategoryHost, Status: StatusOffline},
	})
	d, ok := s.Device("a")
	require.True(t, ok)
	assert.Equal(t, "first", d.Name)
	assert.Len(t, s.Devices(), 1)
}

func TestToggleHostAffectsOnlyItself(t *testing.T) {
	s := New(DefaultDevices())
	before := s.Statuses()

	change, ok := s.Toggle("host1")
	require.True(t, ok)
	assert.Equal(t, StatusOnline, change.From)
	assert.Equal(t, StatusOffline, change.To)
	assert.Empty(t, change.Neighbors)

	after := s.Statuses()
	for id, st := range before {
		if id == "host1" {
			continue
		}
		assert.Equal(t, st, after[id], id)
	}
}

func TestToggleFirewallDegradesSwitch(t *testing.T) {
	s := New(DefaultDevices())

	// firewall1 starts in warning, so the first toggle brings it online.
	_, ok := s.Toggle("firewall1")
	require.True(t, ok)
	st, _ := s.Status("firewall1")
	require.Equal(t, StatusOnline, st)

	change, ok := s.Toggle("firewall1")
	require.True(t, ok)
	assert.Equal(t, StatusOffline, change.To)
	st, _ = s.Status("switch3")
	assert.Equal(t, StatusWarning, st)
	assert.Equal(t, []Transition{{ID: "switch3", From: StatusOnline, To: StatusWarning}}, change.Neighbors)

	_, ok = s.Toggle("firewall1")
	require.True(t, ok)
	st, _ = s.Status("switch3")
	assert.Equal(t, StatusOnline, st)
}

func TestToggleSwitchOfflineHostsOfflineOthersWarning(t *testing.T) {
	s := New(DefaultDevices())

	_, ok := s.Toggle("switch1")
	require.True(t, ok)

	statuses := s.Statuses()
	assert.Equal(t, StatusOffline, statuses["switch1"])
	assert.Equal(t, StatusOffline, statuses["host1"])
	assert.Equal(t, StatusOffline, statuses["host2"])
	assert.Equal(t, StatusWarning, statuses["ap1"])

	// Two hops away: untouched.
	assert.Equal(t, StatusOnline, statuses["mobile1"])
	assert.Equal(t, StatusOnline, statuses["laptop1"])
}

func TestToggleBackOnlineRestoresNeighbours(t *testing.T) {
	s := New(DefaultDevices())

	s.Toggle("switch2")
	s.Toggle("switch2")

	statuses := s.Statuses()
	assert.Equal(t, StatusOnline, statuses["switch2"])
	assert.Equal(t, StatusOnline, statuses["host3"])
	// host4 started offline; restoring its switch brings it up unconditionally.
	assert.Equal(t, StatusOnline, statuses["host4"])
	assert.Equal(t, StatusOnline, statuses["server1"])
}

func TestToggleSkipsCloudNeighbours(t *testing.T) {
	s := New([]Device{
		{ID: "r", Category: CategoryRouter, Status: StatusOnline, Connections: []string{"wan", "h"}},
		{ID: "wan", Category: CategoryCloud, Status: StatusOnline},
		{ID: "h", Category: CategoryHost, Status: StatusOnline},
	})

	change, ok := s.Toggle("r")
	require.True(t, ok)
	require.Len(t, change.Neighbors, 1)
	assert.Equal(t, "h", change.Neighbors[0].ID)

	st, _ := s.Status("wan")
	assert.Equal(t, StatusOnline, st)
}

func TestToggleIgnoresDanglingConnections(t *testing.T) {
	s := New([]Device{
		{ID: "sw", Category: CategorySwitch, Status: StatusOnline, Connections: []string{"ghost", "srv"}},
		{ID: "srv", Category: CategoryServer, Status: StatusOnline},
	})

	_, ok := s.Toggle("sw")
	require.True(t, ok)

	statuses := s.Statuses()
	assert.Len(t, statuses, 2)
	assert.Equal(t, StatusWarning, statuses["srv"])
	assert.Len(t, s.Links(), 1)
}

func TestToggleUnknownIsNoop(t *testing.T) {
	s := New(DefaultDevices())
	before := s.Statuses()

	_, ok := s.Toggle("nope")
	assert.False(t, ok)
	assert.Equal(t, before, s.Statuses())
}

func TestLinksFlags(t *testing.T) {
	s := New(DefaultDevices())

	links := s.Links()
	byPair := make(map[string]Link, len(links))
	for _, l := range links {
		byPair[l.Source+">"+l.Target] = l
	}

	assert.True(t, byPair["switch2>host4"].Down)
	assert.False(t, byPair["switch2>host3"].Down)
	assert.True(t, byPair["switch1>ap1"].Wireless)
	assert.True(t, byPair["ap1>mobile1"].Wireless)
	assert.False(t, byPair["router1>router2"].Wireless)
}

func TestSnapshotAnnotatesDevices(t *testing.T) {
	s := New(DefaultDevices())
	s.Toggle("router2")

	snap := s.Snapshot()
	require.Len(t, snap.Devices, 18)
	for _, v := range snap.Devices {
		if v.ID == "router2" {
			assert.Equal(t, StatusOffline, v.Current)
			assert.Equal(t, "#ef4444", v.StatusColor)
			assert.Equal(t, "router", v.Appearance.Icon)
			// The declared starting status is not rewritten.
			assert.Equal(t, StatusOnline, v.Status)
		}
	}
	assert.Equal(t, Summary{Total: 18, Online: 14, Warning: 2, Offline: 2}, snap.Summary)
	assert.Len(t, snap.Links, 17)
}

func TestExport(t *testing.T) {
	s := New(DefaultDevices())
	s.Toggle("host1")

	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	doc := s.Export(now)

	assert.Equal(t, now, doc.ExportDate)
	assert.Len(t, doc.Devices, 18)
	assert.Len(t, doc.Connections, len(s.Links()))
	for _, d := range doc.Devices {
		if d.ID == "host1" {
			assert.Equal(t, StatusOffline, d.Status)
		}
	}
}
