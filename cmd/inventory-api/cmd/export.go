package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"inventory-api/internal/inventory"
	"inventory-api/internal/report"
)

// Command flags
var (
	exportFormats      []string // Output formats (excel, html)
	exportOutputDir    string   // Output directory
	exportHTMLTemplate string   // Custom HTML template path
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the inventory to Excel or HTML",
	Long: `Load the inventory file and write its groups, hosts and exporter targets
to report files.

Examples:
  # Export using report settings from the config
  inventory-api export -c config.yaml

  # Export only HTML into ./out
  inventory-api export -f html -o ./out`,
	Run: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringSliceVarP(&exportFormats, "format", "f", nil, "output formats (excel,html), comma separated")
	exportCmd.Flags().StringVarP(&exportOutputDir, "output", "o", "", "output directory")
	exportCmd.Flags().StringVar(&exportHTMLTemplate, "html-template", "", "custom HTML template path")
}

// runExport writes the inventory snapshot in every requested format.
func runExport(cmd *cobra.Command, args []string) {
	cfg, logger := loadConfig(cmd)

	formats := cfg.Report.Formats
	if len(exportFormats) > 0 {
		formats = exportFormats
	}
	outputDir := cfg.Report.OutputDir
	if exportOutputDir != "" {
		outputDir = exportOutputDir
	}

	timezone := time.UTC
	if cfg.Report.Timezone != "" {
		tz, err := time.LoadLocation(cfg.Report.Timezone)
		if err != nil {
			logger.Warn().Err(err).Str("timezone", cfg.Report.Timezone).Msg("invalid timezone, using UTC")
		} else {
			timezone = tz
		}
	}

	idx, err := inventory.LoadIndex(cfg.Inventory.File)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.Inventory.File).Msg("failed to load inventory")
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	registry := report.NewRegistry(timezone, exportHTMLTemplate)
	paths, err := registry.Export(idx.Snapshot(Version), formats, outputDir, cfg.Report.FilenameTemplate)
	if err != nil {
		logger.Error().Err(err).Strs("formats", formats).Str("output_dir", outputDir).Msg("export failed")
		fmt.Fprintf(os.Stderr, "❌ export failed: %v\n", err)
		os.Exit(1)
	}

	for _, path := range paths {
		fmt.Printf("📄 %s\n", path)
	}
	logger.Info().Strs("files", paths).Int("groups", idx.GroupCount()).Msg("inventory exported")
}
