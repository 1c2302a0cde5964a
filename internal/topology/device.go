package topology

// Device is a node of the topology diagram. Devices are fixed for the
// lifetime of a State.
type Device struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"type" yaml:"type"`
	X           int      `json:"x" yaml:"x"`
	Y           int      `json:"y" yaml:"y"`
	Status      Status   `json:"status" yaml:"status"`
	IP          string   `json:"ip,omitempty" yaml:"ip,omitempty"`
	Model       string   `json:"model,omitempty" yaml:"model,omitempty"`
	Ports       int      `json:"ports,omitempty" yaml:"ports,omitempty"`
	Connections []string `json:"connections" yaml:"connections"`
}

func (d Device) clone() Device {
	if d.Connections != nil {
		conns := make([]string, len(d.Connections))
		copy(conns, d.Connections)
		d.Connections = conns
	}
	return d
}

// DefaultDevices returns the reference topology shown when no document is
// configured.
func DefaultDevices() []Device {
	return []Device{
		{ID: "internet", Name: "Internet", Category: CategoryCloud, X: 400, Y: 80, Status: StatusOnline,
			Connections: []string{"router1"}},

		{ID: "router1", Name: "R1-Core", Category: CategoryRouter, X: 400, Y: 200, Status: StatusOnline,
			IP: "10.0.0.1", Model: "Cisco 2911", Ports: 4, Connections: []string{"router2", "router3", "firewall1"}},
		{ID: "router2", Name: "R2-Branch", Category: CategoryRouter, X: 200, Y: 320, Status: StatusOnline,
			IP: "10.0.1.1", Model: "Cisco 1941", Ports: 2, Connections: []string{"switch1"}},
		{ID: "router3", Name: "R3-Branch", Category: CategoryRouter, X: 600, Y: 320, Status: StatusOnline,
			IP: "10.0.2.1", Model: "Cisco 1941", Ports: 2, Connections: []string{"switch2"}},

		{ID: "firewall1", Name: "FW1-ASA", Category: CategoryFirewall, X: 400, Y: 320, Status: StatusWarning,
			IP: "192.168.100.1", Model: "ASA 5506-X", Connections: []string{"switch3"}},

		{ID: "switch1", Name: "SW1-Access", Category: CategorySwitch, X: 200, Y: 450, Status: StatusOnline,
			IP: "10.0.1.10", Model: "Catalyst 2960", Ports: 24, Connections: []string{"host1", "host2", "ap1"}},
		{ID: "switch2", Name: "SW2-Access", Category: CategorySwitch, X: 600, Y: 450, Status: StatusOnline,
			IP: "10.0.2.10", Model: "Catalyst 2960", Ports: 24, Connections: []string{"host3", "host4", "server1"}},
		{ID: "switch3", Name: "SW3-DMZ", Category: CategorySwitch, X: 400, Y: 450, Status: StatusOnline,
			IP: "192.168.100.10", Model: "Catalyst 3560", Ports: 48, Connections: []string{"server2", "server3"}},

		{ID: "host1", Name: "PC1", Category: CategoryHost, X: 100, Y: 580, Status: StatusOnline,
			IP: "10.0.1.101", Connections: []string{}},
		{ID: "host2", Name: "PC2", Category: CategoryHost, X: 200, Y: 580, Status: StatusOnline,
			IP: "10.0.1.102", Connections: []string{}},
		{ID: "ap1", Name: "AP1-Wireless", Category: CategoryAccessPoint, X: 300, Y: 580, Status: StatusOnline,
			IP: "10.0.1.50", Model: "Aironet 2702i", Connections: []string{"mobile1", "laptop1"}},

		{ID: "mobile1", Name: "Mobile-01", Category: CategoryHost, X: 280, Y: 680, Status: StatusOnline,
			IP: "10.0.1.201", Connections: []string{}},
		{ID: "laptop1", Name: "Laptop-01", Category: CategoryHost, X: 320, Y: 680, Status: StatusOnline,
			IP: "10.0.1.202", Connections: []string{}},

		{ID: "host3", Name: "PC3", Category: CategoryHost, X: 550, Y: 580, Status: StatusOnline,
			IP: "10.0.2.101", Connections: []string{}},
		{ID: "host4", Name: "PC4", Category: CategoryHost, X: 650, Y: 580, Status: StatusOffline,
			IP: "10.0.2.102", Connections: []string{}},
		{ID: "server1", Name: "File-Server", Category: CategoryServer, X: 700, Y: 580, Status: StatusOnline,
			IP: "10.0.2.200", Model: "Dell R740", Connections: []string{}},

		{ID: "server2", Name: "Web-Server", Category: CategoryServer, X: 350, Y: 580, Status: StatusOnline,
			IP: "192.168.100.10", Model: "Dell R640", Connections: []string{}},
		{ID: "server3", Name: "Mail-Server", Category: CategoryServer, X: 450, Y: 580, Status: StatusOnline,
			IP: "192.168.100.11", Model: "Dell R630", Connections: []string{}},
	}
}
