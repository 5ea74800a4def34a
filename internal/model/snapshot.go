package model

import "time"

// InventorySnapshot is a point-in-time export of the inventory index.
type InventorySnapshot struct {
	Source      string           `json:"source"`       // Inventory file path
	GeneratedAt time.Time        `json:"generated_at"` // Export time
	Port        int              `json:"port"`         // Port used for enriched targets
	Groups      []*GroupSnapshot `json:"groups"`       // Groups in query order
	TotalHosts  int              `json:"total_hosts"`  // Host entries across all groups, duplicates included
	Version     string           `json:"version"`      // Tool version
}

// GroupSnapshot holds the hosts of one group.
type GroupSnapshot struct {
	Name    string   `json:"name"`
	Hosts   []string `json:"hosts"`   // Raw host identifiers
	Targets []string `json:"targets"` // Enriched "host:port" identifiers
}
