// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2docx/internal/convert"
	"github.com/pdiddy/pdf2docx/internal/fetch"
	"github.com/pdiddy/pdf2docx/internal/journal"
	"github.com/pdiddy/pdf2docx/internal/source"
	"github.com/pdiddy/pdf2docx/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files-or-urls...]",
	Short: "Convert PDF files into .docx documents",
	Long: `Convert reads each PDF (a local path or an http(s) URL), rebuilds the
text lines of every page, and writes <name>.docx into the output directory.
Existing outputs are skipped unless --overwrite is given.

Backends: native (pure Go PDF reader) or pdftotext (poppler-utils on PATH).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("backend", string(types.BackendNative), "text extraction backend: native or pdftotext")
	convertCmd.Flags().StringP("out-dir", "o", defaultOutputDir, "directory for .docx output")
	convertCmd.Flags().Bool("overwrite", false, "replace existing output files")
	convertCmd.Flags().Bool("no-journal", false, "do not record conversions in the journal")
	convertCmd.Flags().Bool("quiet", false, "suppress per-page progress")

	viper.BindPFlag("conversion.backend", convertCmd.Flags().Lookup("backend"))
	viper.BindPFlag("conversion.output_dir", convertCmd.Flags().Lookup("out-dir"))
	viper.BindPFlag("conversion.overwrite", convertCmd.Flags().Lookup("overwrite"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	noJournal, _ := cmd.Flags().GetBool("no-journal")
	quiet, _ := cmd.Flags().GetBool("quiet")

	loader, err := source.ByName(cfg.Conversion.Backend)
	if err != nil {
		return err
	}

	ctx, stop := interruptContext(cmd)
	defer stop()

	conv := convert.New(loader, convert.Config{
		LineThreshold:    cfg.Conversion.LineThreshold,
		CompressionLevel: cfg.Conversion.CompressionLevel,
		Logger:           slog.Default(),
	})

	opts := convert.BatchOptions{
		OutputDir: cfg.Conversion.OutputDir,
		Overwrite: cfg.Conversion.Overwrite,
		Open:      openInput(&http.Client{Timeout: cfg.HTTP.Timeout}, cfg.HTTP),
	}
	if !quiet {
		opts.Progress = progressPrinter(cmd.ErrOrStderr())
	}

	result := convert.ConvertBatch(ctx, conv, args, opts, cmd.OutOrStdout())

	if !noJournal {
		if err := recordBatch(ctx, cfg.Journal.Path, loader.Name(), result); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: journal not updated: %v\n", err)
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// openInput routes URLs to the fetcher and everything else to the local
// file reader.
func openInput(client *http.Client, cfg types.HTTPConfig) convert.OpenFunc {
	return func(ctx context.Context, input string) (types.Source, error) {
		if fetch.IsURL(input) {
			return fetch.Fetch(ctx, client, input, cfg)
		}
		return convert.ReadFile(ctx, input)
	}
}

// interruptContext derives the command context, cancelled on Ctrl-C.
func interruptContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt)
}

func progressPrinter(w io.Writer) convert.ProgressFunc {
	return func(percent float64, message string) {
		fmt.Fprintf(w, "  [%3.0f%%] %s\n", percent, message)
	}
}

func recordBatch(ctx context.Context, path, backend string, result convert.BatchResult) error {
	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	// Record even after an interrupt so finished files are not lost.
	ctx = context.WithoutCancel(ctx)
	for _, fr := range result.Files {
		if _, err := j.Record(ctx, journalEntry(backend, fr)); err != nil {
			return err
		}
	}
	return nil
}

func journalEntry(backend string, fr convert.FileResult) journal.Entry {
	e := journal.Entry{
		Source:    fr.Input,
		Output:    fr.Output,
		Backend:   backend,
		Status:    fr.Status,
		Pages:     fr.Pages,
		Lines:     fr.Lines,
		Bytes:     fr.Bytes,
		StartedAt: fr.Started,
		Duration:  fr.Duration,
	}
	if fr.Err != nil {
		e.Error = fr.Err.Error()
	}
	return e
}
