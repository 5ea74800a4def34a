// Package html provides HTML export of inventory snapshots.
// It implements the report.ReportWriter interface to generate a single
// self-contained .html page listing groups, hosts and exporter targets.
package html

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inventory-api/internal/model"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Writer implements report.ReportWriter for HTML format.
type Writer struct {
	timezone     *time.Location
	templatePath string // User-defined template path (optional)
}

// TemplateData holds all data passed to the HTML template.
type TemplateData struct {
	Title       string
	Source      string
	GeneratedAt string
	Port        int
	GroupCount  int
	TotalHosts  int
	Groups      []*GroupData
	Version     string
}

// GroupData represents a group formatted for template rendering.
type GroupData struct {
	Name    string
	Anchor  string
	Hosts   []string
	Targets []string
	Empty   bool
}

// NewWriter creates a new HTML report writer.
// If timezone is nil, it defaults to UTC.
// If templatePath is empty, the embedded default template will be used.
func NewWriter(timezone *time.Location, templatePath string) *Writer {
	if timezone == nil {
		timezone = time.UTC
	}
	return &Writer{
		timezone:     timezone,
		templatePath: templatePath,
	}
}

// Format returns the format identifier for this writer.
func (w *Writer) Format() string {
	return "html"
}

// Write generates an HTML page from the inventory snapshot.
func (w *Writer) Write(snapshot *model.InventorySnapshot, outputPath string) (string, error) {
	if snapshot == nil {
		return "", fmt.Errorf("inventory snapshot is nil")
	}

	// Ensure output path has .html extension
	if !strings.HasSuffix(strings.ToLower(outputPath), ".html") {
		outputPath = outputPath + ".html"
	}

	tmpl, err := w.loadTemplate()
	if err != nil {
		return "", fmt.Errorf("failed to load template: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := tmpl.Execute(file, w.prepareTemplateData(snapshot)); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return outputPath, nil
}

// loadTemplate loads the HTML template.
// It first tries to load a user-defined template, then falls back to the embedded default.
func (w *Writer) loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	if w.templatePath != "" {
		if _, err := os.Stat(w.templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(w.templatePath)).Funcs(funcMap).ParseFiles(w.templatePath)
			if err != nil {
				return nil, fmt.Errorf("failed to parse user template: %w", err)
			}
			return tmpl, nil
		}
		// User template not found, fall through to default
	}

	tmpl, err := template.New("inventory.html").Funcs(funcMap).ParseFS(embeddedTemplates, "templates/inventory.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

// prepareTemplateData converts the snapshot to TemplateData for rendering.
func (w *Writer) prepareTemplateData(snapshot *model.InventorySnapshot) *TemplateData {
	groups := make([]*GroupData, 0, len(snapshot.Groups))
	anchors := make(map[string]struct{}, len(snapshot.Groups))
	for _, group := range snapshot.Groups {
		groups = append(groups, &GroupData{
			Name:    group.Name,
			Anchor:  uniqueAnchor(group.Name, anchors),
			Hosts:   group.Hosts,
			Targets: group.Targets,
			Empty:   len(group.Hosts) == 0,
		})
	}

	return &TemplateData{
		Title:       "Ansible Inventory",
		Source:      snapshot.Source,
		GeneratedAt: snapshot.GeneratedAt.In(w.timezone).Format("2006-01-02 15:04:05 MST"),
		Port:        snapshot.Port,
		GroupCount:  len(snapshot.Groups),
		TotalHosts:  snapshot.TotalHosts,
		Groups:      groups,
		Version:     snapshot.Version,
	}
}

// anchor turns a group name into an id usable as a URL fragment.
func anchor(name string) string {
	var sb strings.Builder
	sb.WriteString("group-")
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('-')
		}
	}
	return sb.String()
}

// uniqueAnchor returns anchor(name), suffixed with -2, -3, ... when that id is already used.
func uniqueAnchor(name string, used map[string]struct{}) string {
	base := anchor(name)
	id := base
	for n := 2; ; n++ {
		if _, taken := used[id]; !taken {
			break
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
	used[id] = struct{}{}
	return id
}
