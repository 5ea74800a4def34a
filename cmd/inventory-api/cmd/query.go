package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"inventory-api/internal/client/remote"
)

// Command flags
var (
	queryServer string // API endpoint override
	queryAll    bool   // Query hosts of every group
	queryEnrich bool   // Request host:port targets
	queryStatus bool   // Print the status line only
)

// queryCmd represents the query command.
var queryCmd = &cobra.Command{
	Use:   "query [group]",
	Short: "Query a running inventory API",
	Long: `Call a running inventory API and print the result one item per line.

Without arguments the group names are listed. With a group argument the
hosts of that group are listed.

Examples:
  inventory-api query
  inventory-api query web --enrich=false
  inventory-api query --all --server http://inventory:8000`,
	Args: cobra.MaximumNArgs(1),
	Run:  runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVarP(&queryServer, "server", "s", "", "inventory API endpoint (overrides client.endpoint)")
	queryCmd.Flags().BoolVarP(&queryAll, "all", "a", false, "list hosts of every group")
	queryCmd.Flags().BoolVar(&queryEnrich, "enrich", true, "request host:port targets")
	queryCmd.Flags().BoolVar(&queryStatus, "status", false, "print the API status line")
}

// runQuery executes the query command logic.
func runQuery(cmd *cobra.Command, args []string) {
	cfg, logger := loadConfig(cmd)
	if queryServer != "" {
		cfg.Client.Endpoint = queryServer
	}

	client := remote.NewClient(&cfg.Client, logger)
	req := queryRequest{status: queryStatus, all: queryAll, enrich: queryEnrich}
	if len(args) == 1 {
		req.group = args[0]
	}

	if err := executeQuery(cmd.Context(), client, req, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "❌ query failed: %v\n", err)
		os.Exit(1)
	}
}

// queryRequest selects which endpoint executeQuery calls.
type queryRequest struct {
	group  string
	status bool
	all    bool
	enrich bool
}

// executeQuery calls the endpoint selected by req and prints the result to out.
func executeQuery(ctx context.Context, client *remote.Client, req queryRequest, out io.Writer) error {
	if req.status {
		status, err := client.Status(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, status)
		return err
	}

	if req.group != "" && req.all {
		return fmt.Errorf("--all cannot be combined with a group argument")
	}

	var (
		items []string
		err   error
	)
	switch {
	case req.group != "":
		items, err = client.Hosts(ctx, req.group, req.enrich)
	case req.all:
		items, err = client.AllHosts(ctx, req.enrich)
	default:
		items, err = client.Groups(ctx)
	}
	if err != nil {
		return err
	}

	for _, item := range items {
		if _, err := fmt.Fprintln(out, item); err != nil {
			return err
		}
	}
	return nil
}
