// Package report exports inventory snapshots to files.
// It defines the ReportWriter interface and provides implementations for
// Excel and HTML output.
package report

import (
	"inventory-api/internal/model"
)

// ReportWriter defines the interface for exporting inventory snapshots.
type ReportWriter interface {
	// Write renders the snapshot and saves it to outputPath. The writer adds
	// its file extension when outputPath lacks it and returns the final path.
	Write(snapshot *model.InventorySnapshot, outputPath string) (string, error)

	// Format returns the format identifier for this writer ("excel", "html").
	Format() string
}
