package inventory

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"inventory-api/internal/model"
)

const sampleInventory = `
all:
  children:
    web:
      hosts: [h2, h1]
    db:
      hosts: [h3]
`

func mustParse(t *testing.T, content string) *model.InventoryDocument {
	t.Helper()
	var doc model.InventoryDocument
	require.NoError(t, yaml.Unmarshal([]byte(content), &doc))
	return &doc
}

func mustBuild(t *testing.T, content string) *Index {
	t.Helper()
	idx, err := Build(mustParse(t, content))
	require.NoError(t, err)
	return idx
}

func TestBuild_InvalidShape(t *testing.T) {
	tests := []struct {
		name string
		doc  *model.InventoryDocument
	}{
		{"nil document", nil},
		{"missing all", &model.InventoryDocument{}},
		{"missing children", &model.InventoryDocument{All: &model.InventoryRoot{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := Build(tt.doc)
			assert.Nil(t, idx)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
		})
	}
}

func TestBuild_EmptyChildren(t *testing.T) {
	idx := mustBuild(t, "all:\n  children: {}\n")

	assert.Equal(t, 0, idx.GroupCount())
	assert.Equal(t, []string{}, idx.ListGroups())
	assert.Equal(t, []string{}, idx.ListAllHosts(true))
	assert.Equal(t, "Ansible inventory API, relevant keys=0", idx.Summary())
}

func TestIndex_ListGroups(t *testing.T) {
	idx := mustBuild(t, `
all:
  children:
    alpha: {hosts: [a]}
    web: {hosts: [w]}
    db: {hosts: [d]}
    Zeta: {hosts: [z]}
`)

	assert.Equal(t, []string{"web", "db", "alpha", "Zeta"}, idx.ListGroups())
}

func TestIndex_ListHosts(t *testing.T) {
	idx := mustBuild(t, sampleInventory)

	t.Run("raw hosts sorted descending", func(t *testing.T) {
		assert.Equal(t, []string{"h2", "h1"}, idx.ListHosts("web", false))
	})

	t.Run("enriched hosts carry exporter port", func(t *testing.T) {
		assert.Equal(t, []string{"h2:9100", "h1:9100"}, idx.ListHosts("web", true))
	})

	t.Run("unknown group is empty, not nil", func(t *testing.T) {
		hosts := idx.ListHosts("missing", false)
		assert.NotNil(t, hosts)
		assert.Empty(t, hosts)
		assert.Empty(t, idx.ListHosts("missing", true))
	})

	t.Run("nested hosts are flattened before sorting", func(t *testing.T) {
		nested := mustBuild(t, `
all:
  children:
    mixed:
      hosts: ["a", ["b", "c"]]
`)
		assert.Equal(t, []string{"c", "b", "a"}, nested.ListHosts("mixed", false))
	})

	t.Run("group without hosts", func(t *testing.T) {
		empty := mustBuild(t, `
all:
  children:
    placeholder:
    novars: {}
`)
		assert.Equal(t, []string{"placeholder", "novars"}, empty.ListGroups())
		assert.Equal(t, []string{}, empty.ListHosts("placeholder", true))
		assert.Equal(t, []string{}, empty.ListHosts("novars", false))
	})
}

func TestIndex_ListHosts_EnrichBeforeSort(t *testing.T) {
	idx := mustBuild(t, `
all:
  children:
    nodes:
      hosts: [h1, h10]
`)

	// ':' sorts after '0', so enrichment changes the relative order.
	assert.Equal(t, []string{"h10", "h1"}, idx.ListHosts("nodes", false))
	assert.Equal(t, []string{"h1:9100", "h10:9100"}, idx.ListHosts("nodes", true))
}

func TestIndex_ListAllHosts(t *testing.T) {
	idx := mustBuild(t, `
all:
  children:
    web:
      hosts: [h2, h1]
    db:
      hosts: [h3, h1]
`)

	assert.Equal(t, []string{"h3", "h2", "h1", "h1"}, idx.ListAllHosts(false))
	assert.Equal(t, []string{"h3:9100", "h2:9100", "h1:9100", "h1:9100"}, idx.ListAllHosts(true))
	assert.Equal(t, 4, idx.HostCount())
}

func TestIndex_Summary(t *testing.T) {
	idx := mustBuild(t, sampleInventory)

	assert.Equal(t, "Ansible inventory API, relevant keys=2", idx.Summary())
	assert.Equal(t, 2, idx.GroupCount())
	assert.True(t, idx.HasGroup("db"))
	assert.False(t, idx.HasGroup("missing"))
	assert.Equal(t, ExporterPort, idx.Port())
}

func TestIndex_ResultsAreCopies(t *testing.T) {
	idx := mustBuild(t, sampleInventory)

	groups := idx.ListGroups()
	groups[0] = "mutated"
	hosts := idx.ListHosts("web", false)
	hosts[0] = "mutated"
	all := idx.ListAllHosts(true)
	all[0] = "mutated"

	assert.Equal(t, []string{"web", "db"}, idx.ListGroups())
	assert.Equal(t, []string{"h2", "h1"}, idx.ListHosts("web", false))
	assert.Equal(t, "h3:9100", idx.ListAllHosts(true)[0])
}

func TestIndex_Idempotent(t *testing.T) {
	idx := mustBuild(t, sampleInventory)

	assert.Equal(t, idx.ListGroups(), idx.ListGroups())
	assert.Equal(t, idx.ListHosts("web", true), idx.ListHosts("web", true))
	assert.Equal(t, idx.ListAllHosts(false), idx.ListAllHosts(false))
	assert.Equal(t, idx.Summary(), idx.Summary())
}

func TestIndex_ConcurrentQueries(t *testing.T) {
	idx := mustBuild(t, sampleInventory)

	var wg sync.WaitGroup
	for n := range 50 {
		wg.Add(1)
		go func(enrich bool) {
			defer wg.Done()
			assert.Equal(t, []string{"web", "db"}, idx.ListGroups())
			assert.Len(t, idx.ListHosts("web", enrich), 2)
			assert.Len(t, idx.ListAllHosts(enrich), 3)
		}(n%2 == 0)
	}
	wg.Wait()
}

func TestIndex_Snapshot(t *testing.T) {
	idx := mustBuild(t, sampleInventory)

	snapshot := idx.Snapshot("1.2.3")

	require.Len(t, snapshot.Groups, 2)
	assert.Equal(t, "web", snapshot.Groups[0].Name)
	assert.Equal(t, []string{"h2", "h1"}, snapshot.Groups[0].Hosts)
	assert.Equal(t, []string{"h2:9100", "h1:9100"}, snapshot.Groups[0].Targets)
	assert.Equal(t, "db", snapshot.Groups[1].Name)
	assert.Equal(t, 3, snapshot.TotalHosts)
	assert.Equal(t, 9100, snapshot.Port)
	assert.Equal(t, "1.2.3", snapshot.Version)
	assert.False(t, snapshot.GeneratedAt.IsZero())
}
