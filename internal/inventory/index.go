package inventory

import (
	"fmt"
	"sort"
	"time"

	"inventory-api/internal/model"
)

// ExporterPort is the port appended to host identifiers when enrichment is requested.
// It is the node_exporter port scraped by the dashboard's Prometheus datasource.
const ExporterPort = 9100

// Index is an immutable, query-ready view of an inventory document.
// All lists are sorted at build time and queries hand out copies, so an Index
// is safe for concurrent use.
type Index struct {
	source string
	port   int

	groups   []string            // descending
	raw      map[string][]string // group -> hosts, descending
	enriched map[string][]string // group -> host:port, descending

	allRaw      []string
	allEnriched []string
	hostCount   int
}

// Build constructs an Index from a parsed inventory document.
// It fails with *ConfigurationError if doc lacks the all.children section.
func Build(doc *model.InventoryDocument) (*Index, error) {
	if reason := checkShape(doc); reason != "" {
		return nil, &ConfigurationError{Reason: reason}
	}

	children := doc.All.Children
	idx := &Index{
		port:     ExporterPort,
		groups:   make([]string, 0, len(children)),
		raw:      make(map[string][]string, len(children)),
		enriched: make(map[string][]string, len(children)),
	}

	for name, record := range children {
		hosts := record.HostNames()

		raw := make([]string, len(hosts))
		copy(raw, hosts)
		enriched := enrich(hosts, idx.port)

		idx.groups = append(idx.groups, name)
		idx.raw[name] = sortDescending(raw)
		idx.enriched[name] = sortDescending(enriched)

		idx.allRaw = append(idx.allRaw, raw...)
		idx.allEnriched = append(idx.allEnriched, enriched...)
		idx.hostCount += len(hosts)
	}

	sortDescending(idx.groups)
	if idx.allRaw == nil {
		idx.allRaw = []string{}
		idx.allEnriched = []string{}
	}
	sortDescending(idx.allRaw)
	sortDescending(idx.allEnriched)

	return idx, nil
}

// ListGroups returns all group names in descending lexicographic order.
func (i *Index) ListGroups() []string {
	return clone(i.groups)
}

// ListHosts returns the hosts of group in descending lexicographic order.
// With enrich set every host is rendered as "host:port" before sorting.
// An unknown group yields an empty list.
func (i *Index) ListHosts(group string, enrich bool) []string {
	source := i.raw
	if enrich {
		source = i.enriched
	}
	hosts, ok := source[group]
	if !ok {
		return []string{}
	}
	return clone(hosts)
}

// ListAllHosts returns the hosts of every group concatenated, duplicates kept,
// in descending lexicographic order.
func (i *Index) ListAllHosts(enrich bool) []string {
	if enrich {
		return clone(i.allEnriched)
	}
	return clone(i.allRaw)
}

// HasGroup reports whether group is a known group name.
func (i *Index) HasGroup(group string) bool {
	_, ok := i.raw[group]
	return ok
}

// GroupCount returns the number of known groups.
func (i *Index) GroupCount() int {
	return len(i.groups)
}

// HostCount returns the number of host entries across all groups, duplicates included.
func (i *Index) HostCount() int {
	return i.hostCount
}

// Source returns the path the index was loaded from, empty if built in memory.
func (i *Index) Source() string {
	return i.source
}

// Port returns the port used for enrichment.
func (i *Index) Port() int {
	return i.port
}

// Summary returns the status line served on the root endpoint.
func (i *Index) Summary() string {
	return fmt.Sprintf("Ansible inventory API, relevant keys=%d", len(i.groups))
}

// Snapshot exports the index for report writers.
func (i *Index) Snapshot(version string) *model.InventorySnapshot {
	snapshot := &model.InventorySnapshot{
		Source:      i.source,
		GeneratedAt: time.Now(),
		Port:        i.port,
		Groups:      make([]*model.GroupSnapshot, 0, len(i.groups)),
		TotalHosts:  i.hostCount,
		Version:     version,
	}
	for _, name := range i.groups {
		snapshot.Groups = append(snapshot.Groups, &model.GroupSnapshot{
			Name:    name,
			Hosts:   clone(i.raw[name]),
			Targets: clone(i.enriched[name]),
		})
	}
	return snapshot
}

// enrich renders every host as "host:port".
func enrich(hosts []string, port int) []string {
	out := make([]string, len(hosts))
	for n, host := range hosts {
		out[n] = fmt.Sprintf("%s:%d", host, port)
	}
	return out
}

func sortDescending(s []string) []string {
	sort.Sort(sort.Reverse(sort.StringSlice(s)))
	return s
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
