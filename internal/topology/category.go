package topology

import "strings"

// Category is the declared kind of a device.
type Category string

const (
	CategoryRouter      Category = "router"
	CategorySwitch      Category = "switch"
	CategoryServer      Category = "server"
	CategoryHost        Category = "host"
	CategoryFirewall    Category = "firewall"
	CategoryAccessPoint Category = "access-point"
	CategoryCloud       Category = "cloud"
)

// Status is the operational state of a device.
type Status string

const (
	StatusOnline  Status = "online"
	StatusWarning Status = "warning"
	StatusOffline Status = "offline"
)

// Appearance holds the presentation attributes the console draws for a category.
type Appearance struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

const fallbackColor = "#6b7280"

var appearances = map[Category]Appearance{
	CategoryRouter:      {Label: "Router", Icon: "router", Color: "#1e40af"},
	CategorySwitch:      {Label: "Switch", Icon: "network", Color: "#7c3aed"},
	CategoryServer:      {Label: "Server", Icon: "server", Color: "#dc2626"},
	CategoryHost:        {Label: "Host/PC", Icon: "monitor", Color: "#374151"},
	CategoryFirewall:    {Label: "Firewall", Icon: "shield", Color: "#dc2626"},
	CategoryAccessPoint: {Label: "Access Point", Icon: "wifi", Color: "#059669"},
	CategoryCloud:       {Label: "Internet", Icon: "globe", Color: "#0891b2"},
}

var statusColors = map[Status]string{
	StatusOnline:  "#22c55e",
	StatusWarning: "#f59e0b",
	StatusOffline: "#ef4444",
}

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryRouter,
		CategorySwitch,
		CategoryServer,
		CategoryHost,
		CategoryFirewall,
		CategoryAccessPoint,
		CategoryCloud,
	}
}

// ParseCategory normalises a raw category name. "internet" is accepted as an
// alias of cloud.
func ParseCategory(raw string) (Category, bool) {
	value := Category(strings.ToLower(strings.TrimSpace(raw)))
	if value == "internet" {
		return CategoryCloud, true
	}
	_, ok := appearances[value]
	return value, ok
}

// UnmarshalText implements encoding.TextUnmarshaler so documents may use the
// "internet" spelling. Unknown names are kept verbatim.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, _ := ParseCategory(string(text))
	*c = parsed
	return nil
}

// Appearance returns the presentation attributes for the category.
func (c Category) Appearance() Appearance {
	if a, ok := appearances[c]; ok {
		return a
	}
	return Appearance{Label: string(c), Icon: "monitor", Color: fallbackColor}
}

// Critical reports whether the category degrades its neighbours when offline.
func (c Category) Critical() bool {
	switch c {
	case CategoryRouter, CategorySwitch, CategoryFirewall:
		return true
	default:
		return false
	}
}

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	_, ok := statusColors[s]
	return ok
}

// Color returns the indicator colour for the status.
func (s Status) Color() string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return fallbackColor
}
