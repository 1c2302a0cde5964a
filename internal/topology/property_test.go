package topology

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func defaultIDs() []string {
	devices := DefaultDevices()
	ids := make([]string, 0, len(devices))
	for _, d := range devices {
		ids = append(ids, d.ID)
	}
	return ids
}

func neighbors(s *State, id string) map[string]struct{} {
	out := make(map[string]struct{})
	d, ok := s.Device(id)
	if !ok {
		return out
	}
	for _, c := range d.Connections {
		out[c] = struct{}{}
	}
	return out
}

// TestToggleProperties checks the one-hop rule after an arbitrary sequence
// of earlier toggles.
func TestToggleProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	ids := defaultIDs()
	history := gen.SliceOfN(12, gen.IntRange(0, len(ids)-1))
	pick := gen.IntRange(0, len(ids)-1)

	properties.Property("only the device and its direct neighbours change", prop.ForAll(
		func(prefix []int, pickIdx int) bool {
			s := New(DefaultDevices())
			for _, idx := range prefix {
				s.Toggle(ids[idx])
			}
			target := ids[pickIdx]
			before := s.Statuses()
			s.Toggle(target)
			after := s.Statuses()

			d, _ := s.Device(target)
			direct := neighbors(s, target)
			for id, st := range after {
				if id == target {
					continue
				}
				_, isNeighbor := direct[id]
				if (!d.Category.Critical() || !isNeighbor) && st != before[id] {
					return false
				}
			}
			return true
		},
		history,
		pick,
	))

	properties.Property("toggled device alternates between online and offline", prop.ForAll(
		func(prefix []int, pickIdx int) bool {
			s := New(DefaultDevices())
			for _, idx := range prefix {
				s.Toggle(ids[idx])
			}
			target := ids[pickIdx]
			before, _ := s.Status(target)
			change, ok := s.Toggle(target)
			if !ok {
				return false
			}
			if before == StatusOnline {
				return change.To == StatusOffline
			}
			return change.To == StatusOnline
		},
		history,
		pick,
	))

	properties.Property("critical neighbours follow the documented rule", prop.ForAll(
		func(prefix []int, pickIdx int) bool {
			s := New(DefaultDevices())
			for _, idx := range prefix {
				s.Toggle(ids[idx])
			}
			target := ids[pickIdx]
			change, _ := s.Toggle(target)
			for _, tr := range change.Neighbors {
				n, _ := s.Device(tr.ID)
				switch {
				case n.Category == CategoryCloud:
					return false
				case change.To == StatusOnline && tr.To != StatusOnline:
					return false
				case change.To == StatusOffline && n.Category == CategoryHost && tr.To != StatusOffline:
					return false
				case change.To == StatusOffline && n.Category != CategoryHost && tr.To != StatusWarning:
					return false
				}
			}
			return true
		},
		history,
		pick,
	))

	properties.TestingRun(t)
}
