package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inventory-api/internal/inventory"
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and inventory file",
	Long:  "Load the configuration and the inventory file exactly as serve would, report the group and host counts, and exit non-zero on any error.",
	Run:   runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate executes the validate command logic.
func runValidate(cmd *cobra.Command, args []string) {
	cfg, _ := loadConfig(cmd)

	idx, err := inventory.LoadIndex(cfg.Inventory.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ inventory validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ inventory is valid: %s\n", cfg.Inventory.File)
	fmt.Printf("   groups: %d\n", idx.GroupCount())
	fmt.Printf("   host entries: %d\n", idx.HostCount())
}
