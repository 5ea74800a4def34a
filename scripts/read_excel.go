//go:build ignore
// +build ignore

// This script reads and displays the contents of an inventory export for verification.
// Run with: go run scripts/read_excel.go [file.xlsx]
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

func main() {
	path := "sample_inventory.xlsx"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	defer f.Close()

	fmt.Println("📊 Sheets:", f.GetSheetList())

	for _, sheet := range []string{"Summary", "Groups", "Hosts"} {
		rows, err := f.GetRows(sheet)
		if err != nil {
			fmt.Printf("\n⚠️  %s: %v\n", sheet, err)
			continue
		}

		fmt.Println()
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  %s (%d rows)\n", sheet, len(rows))
		fmt.Println("═══════════════════════════════════════")
		for _, row := range rows {
			if len(row) == 0 {
				continue
			}
			fmt.Println("  " + strings.Join(row, " | "))
		}
	}
}
