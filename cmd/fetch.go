package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"sheetform/internal/dataset"
	"sheetform/internal/logger"
	"sheetform/internal/sheets"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var fetchCmd = &cobra.Command{
	Use:     "fetch",
	Aliases: []string{"f"},
	Short:   "Print every stored row",
	Long: `Fetch every stored row from fetch_url once, log it and print it.

The request carries action=getAllData unless fetch.attach_action is false.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("output", "o", "json", "output format (json, yaml)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("output")
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported output format %q", format)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireFetchURL(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fetcher := dataset.NewFetcher(sheets.NewClient(nil, cfg.Endpoints()), logger.L())
	data, err := fetcher.Init(ctx)
	if err != nil {
		return err
	}
	return writeDataset(cmd.OutOrStdout(), data, format)
}

func writeDataset(out io.Writer, data any, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
}
