package topology

import "time"

// Connection is an exported edge.
type Connection struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Document is the portable form of a topology, used for export and for
// loading a custom topology at startup.
type Document struct {
	Devices     []Device     `json:"devices"`
	Connections []Connection `json:"connections"`
	ExportDate  time.Time    `json:"exportDate"`
}

// Export captures the devices with their current statuses as a document.
func (s *State) Export(now time.Time) Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := Document{
		Devices:    make([]Device, 0, len(s.devices)),
		ExportDate: now.UTC(),
	}
	for _, d := range s.devices {
		d = d.clone()
		d.Status = s.statuses[d.ID]
		doc.Devices = append(doc.Devices, d)
	}
	links := s.linksLocked()
	doc.Connections = make([]Connection, 0, len(links))
	for _, l := range links {
		doc.Connections = append(doc.Connections, Connection{Source: l.Source, Target: l.Target})
	}
	return doc
}
