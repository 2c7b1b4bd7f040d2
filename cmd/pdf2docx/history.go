// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2docx/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversions",
	Long: `History lists the most recent conversions from the local journal,
newest first. Use --json or --yaml for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", journal.DefaultLimit, "maximum entries to show")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")
	historyCmd.Flags().Bool("yaml", false, "output entries as YAML")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	if asJSON && asYAML {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}

	cfg := loadConfig(viper.GetViper())
	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		return journal.ExportJSON(out, entries)
	case asYAML:
		return journal.ExportYAML(out, entries)
	}
	formatHistory(out, entries)
	return nil
}

func formatHistory(w io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-19s  %-9s  %-9s  %5s  %-40s\n",
		"ID", "Started", "Status", "Backend", "Pages", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 96))

	for _, e := range entries {
		src := e.Source
		if len(src) > 40 {
			src = "..." + src[len(src)-37:]
		}
		fmt.Fprintf(w, "%-4d  %-19s  %-9s  %-9s  %5d  %-40s\n",
			e.ID, e.StartedAt.Local().Format(time.DateTime), e.Status, e.Backend, e.Pages, src)
		if e.Error != "" {
			fmt.Fprintf(w, "      error: %s\n", e.Error)
		}
	}
	fmt.Fprintf(w, "\n%d entries\n", len(entries))
}
