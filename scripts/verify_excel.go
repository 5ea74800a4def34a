//go:build ignore
// +build ignore

// This script exports a sample inventory to Excel and HTML for manual verification.
// Run with: go run scripts/verify_excel.go
package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"inventory-api/internal/inventory"
	"inventory-api/internal/model"
	"inventory-api/internal/report"
)

const sampleInventory = `
all:
  children:
    web:
      hosts:
        - web-1.example.com
        - web-10.example.com
        - web-2.example.com
    db:
      hosts:
        - [db-primary, db-replica]
    cache:
      hosts:
        redis-1:
        redis-2:
    decommissioned:
`

func main() {
	var doc model.InventoryDocument
	if err := yaml.Unmarshal([]byte(sampleInventory), &doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing sample inventory: %v\n", err)
		os.Exit(1)
	}

	idx, err := inventory.Build(&doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building index: %v\n", err)
		os.Exit(1)
	}

	tz, _ := time.LoadLocation("Asia/Shanghai")
	registry := report.NewRegistry(tz, "")

	paths, err := registry.Export(idx.Snapshot("sample"), []string{"excel", "html"}, ".", "sample_inventory")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
		os.Exit(1)
	}

	for _, path := range paths {
		fmt.Printf("✅ Report generated: %s\n", path)
	}
	fmt.Println("\nPlease open the files to verify:")
	fmt.Println("  - Generated At is in Asia/Shanghai timezone")
	fmt.Println("  - Groups are listed web, decommissioned, db, cache")
	fmt.Println("  - decommissioned is highlighted as an empty group")
	fmt.Println("  - Every host has a host:9100 target")
	fmt.Println("\nRun scripts/read_excel.go to dump the workbook.")
}
