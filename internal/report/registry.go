package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"inventory-api/internal/model"
	"inventory-api/internal/report/excel"
	"inventory-api/internal/report/html"
)

// Registry manages report writers for different formats.
type Registry struct {
	writers  map[string]ReportWriter
	timezone *time.Location
}

// NewRegistry creates a new report registry with pre-registered Excel and HTML writers.
// If timezone is nil, defaults to UTC.
// htmlTemplatePath is optional; if empty, the HTML writer uses the embedded default template.
func NewRegistry(timezone *time.Location, htmlTemplatePath string) *Registry {
	if timezone == nil {
		timezone = time.UTC
	}

	excelWriter := excel.NewWriter(timezone)
	htmlWriter := html.NewWriter(timezone, htmlTemplatePath)

	r := &Registry{
		writers:  make(map[string]ReportWriter),
		timezone: timezone,
	}
	r.writers[excelWriter.Format()] = excelWriter
	r.writers[htmlWriter.Format()] = htmlWriter

	return r
}

// Get returns a writer for the specified format.
// Format names are case-insensitive (e.g., "Excel", "EXCEL", "excel" all work).
func (r *Registry) Get(format string) (ReportWriter, error) {
	normalizedFormat := strings.ToLower(strings.TrimSpace(format))

	writer, ok := r.writers[normalizedFormat]
	if !ok {
		return nil, fmt.Errorf("unsupported report format %q, supported formats: %s",
			format, strings.Join(r.GetAll(), ", "))
	}

	return writer, nil
}

// GetAll returns all supported format names in sorted order.
func (r *Registry) GetAll() []string {
	formats := make([]string, 0, len(r.writers))
	for format := range r.writers {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

// Has checks if the specified format is supported.
func (r *Registry) Has(format string) bool {
	_, ok := r.writers[strings.ToLower(strings.TrimSpace(format))]
	return ok
}

// Export writes snapshot in every requested format under outputDir.
// The base file name is rendered from filenameTemplate, which may reference {{.Date}}.
// It returns the written file paths in format order.
func (r *Registry) Export(snapshot *model.InventorySnapshot, formats []string, outputDir, filenameTemplate string) ([]string, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("inventory snapshot is nil")
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no report formats requested")
	}

	// Resolve writers first so an unknown format fails before anything is written
	writers := make([]ReportWriter, 0, len(formats))
	for _, format := range formats {
		writer, err := r.Get(format)
		if err != nil {
			return nil, err
		}
		writers = append(writers, writer)
	}

	baseName, err := r.renderFilename(filenameTemplate, snapshot.GeneratedAt)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(writers))
	for _, writer := range writers {
		path, err := writer.Write(snapshot, filepath.Join(outputDir, baseName))
		if err != nil {
			return paths, fmt.Errorf("failed to write %s report: %w", writer.Format(), err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// renderFilename expands the filename template for the given export time.
func (r *Registry) renderFilename(filenameTemplate string, at time.Time) (string, error) {
	if filenameTemplate == "" {
		filenameTemplate = "inventory_{{.Date}}"
	}

	tmpl, err := template.New("filename").Parse(filenameTemplate)
	if err != nil {
		return "", fmt.Errorf("invalid filename template: %w", err)
	}

	var buf bytes.Buffer
	data := struct{ Date string }{Date: at.In(r.timezone).Format("20060102_150405")}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render filename template: %w", err)
	}

	name := strings.TrimSpace(buf.String())
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid report file name %q", name)
	}
	return name, nil
}
