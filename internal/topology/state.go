package topology

import (
	"sync"
)

// Transition records a single status change caused by a toggle.
type Transition struct {
	ID   string `json:"id"`
	From Status `json:"from"`
	To   Status `json:"to"`
}

// Change describes the effect of one Toggle call.
type Change struct {
	Device    Device       `json:"device"`
	From      Status       `json:"from"`
	To        Status       `json:"to"`
	Neighbors []Transition `json:"neighbors"`
}

// Link is a drawable edge between two resolved devices.
type Link struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Down     bool   `json:"down"`
	Wireless bool   `json:"wireless"`
}

// Summary counts devices per status.
type Summary struct {
	Total   int `json:"total"`
	Online  int `json:"online"`
	Warning int `json:"warning"`
	Offline int `json:"offline"`
}

// DeviceView is a device annotated with its current status and appearance.
type DeviceView struct {
	Device
	Current     Status     `json:"current"`
	StatusColor string     `json:"statusColor"`
	Appearance  Appearance `json:"appearance"`
}

// Snapshot is a consistent view of the whole topology.
type Snapshot struct {
	Devices []DeviceView `json:"devices"`
	Links   []Link       `json:"links"`
	Summary Summary      `json:"summary"`
}

// State owns the device list and the mutable status map.
type State struct {
	devices []Device
	index   map[string]int

	mu       sync.RWMutex
	statuses map[string]Status
}

// New builds a state from the given devices. When ids repeat, the first
// occurrence wins.
func New(devices []Device) *State {
	s := &State{
		devices:  make([]Device, 0, len(devices)),
		index:    make(map[string]int, len(devices)),
		statuses: make(map[string]Status, len(devices)),
	}
	for _, d := range devices {
		if _, dup := s.index[d.ID]; dup {
			continue
		}
		if !d.Status.Valid() {
			d.Status = StatusOnline
		}
		s.index[d.ID] = len(s.devices)
		s.devices = append(s.devices, d.clone())
		s.statuses[d.ID] = d.Status
	}
	return s
}

// Toggle flips a device between online and offline. Routers, switches and
// firewalls also update their direct, non-cloud neighbours: hosts follow the
// device offline, other neighbours drop to warning, and everything is
// restored to online when the device comes back. Propagation stops after one
// hop. An unknown id leaves the state untouched and returns false.
func (s *State) Toggle(id string) (Change, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[id]
	if !ok {
		return Change{}, false
	}
	device := s.devices[idx]

	from := s.statuses[id]
	to := StatusOnline
	if from == StatusOnline {
		to = StatusOffline
	}
	s.statuses[id] = to

	change := Change{Device: device.clone(), From: from, To: to}
	if !device.Category.Critical() {
		return change, true
	}

	for _, connID := range device.Connections {
		nidx, ok := s.index[connID]
		if !ok {
			continue
		}
		neighbor := s.devices[nidx]
		if neighbor.Category == CategoryCloud {
			continue
		}
		next := StatusOnline
		if to == StatusOffline {
			next = StatusWarning
			if neighbor.Category == CategoryHost {
				next = StatusOffline
			}
		}
		prev := s.statuses[connID]
		s.statuses[connID] = next
		change.Neighbors = append(change.Neighbors, Transition{ID: connID, From: prev, To: next})
	}
	return change, true
}

// Status returns the current status of a device.
func (s *State) Status(id string) (Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.statuses[id]
	return st, ok
}

// Statuses returns a copy of the status map.
func (s *State) Statuses() map[string]Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Status, len(s.statuses))
	for id, st := range s.statuses {
		out[id] = st
	}
	return out
}

// Device looks a device up by id.
func (s *State) Device(id string) (Device, bool) {
	idx, ok := s.index[id]
	if !ok {
		return Device{}, false
	}
	return s.devices[idx].clone(), true
}

// Devices returns a copy of the device list in declaration order.
func (s *State) Devices() []Device {
	out := make([]Device, len(s.devices))
	for i, d := range s.devices {
		out[i] = d.clone()
	}
	return out
}

// Links returns every edge whose target resolves, in declaration order.
func (s *State) Links() []Link {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.linksLocked()
}

func (s *State) linksLocked() []Link {
	links := make([]Link, 0, len(s.devices))
	for _, d := range s.devices {
		for _, target := range d.Connections {
			tidx, ok := s.index[target]
			if !ok {
				continue
			}
			t := s.devices[tidx]
			links = append(links, Link{
				Source:   d.ID,
				Target:   target,
				Down:     s.statuses[d.ID] == StatusOffline || s.statuses[target] == StatusOffline,
				Wireless: d.Category == CategoryAccessPoint || t.Category == CategoryAccessPoint,
			})
		}
	}
	return links
}

// Snapshot captures devices, links and counts under a single read lock.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]DeviceView, 0, len(s.devices))
	for _, d := range s.devices {
		current := s.statuses[d.ID]
		views = append(views, DeviceView{
			Device:      d.clone(),
			Current:     current,
			StatusColor: current.Color(),
			Appearance:  d.Category.Appearance(),
		})
	}
	return Snapshot{
		Devices: views,
		Links:   s.linksLocked(),
		Summary: summarize(s.statuses),
	}
}

// Summary counts devices per status.
func (s *State) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return summarize(s.statuses)
}

func summarize(statuses map[string]Status) Summary {
	sum := Summary{Total: len(statuses)}
	for _, st := range statuses {
		switch st {
		case StatusOnline:
			sum.Online++
		case StatusWarning:
			sum.Warning++
		case StatusOffline:
			sum.Offline++
		}
	}
	return sum
}
