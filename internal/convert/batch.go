// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

// OpenFunc resolves a batch input (a path or URL) to a PDF source.
type OpenFunc func(ctx context.Context, input string) (types.Source, error)

// BatchOptions controls ConvertFile and ConvertBatch.
type BatchOptions struct {
	// OutputDir receives the .docx files. It is created if missing.
	OutputDir string

	// Overwrite replaces existing outputs instead of skipping them.
	Overwrite bool

	// Open loads each input. Defaults to ReadFile.
	Open OpenFunc

	// Progress, if set, receives the per-file progress of every run.
	Progress ProgressFunc
}

// FileResult is the outcome of converting one input.
type FileResult struct {
	Input    string
	Output   string
	Status   types.ConversionStatus
	Pages    int
	Lines    int
	Bytes    int
	Err      error
	Started  time.Time
	Duration time.Duration
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
	Files     []FileResult
}

// Total returns the total number of inputs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any input failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ReadFile loads a local PDF. The content type is sniffed from the data.
func ReadFile(_ context.Context, path string) (types.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Source{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return types.Source{
		Name:        filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

// ConvertFile converts one input and writes the package into
// opts.OutputDir. If the output already exists and opts.Overwrite is false,
// it skips the conversion and reports ConversionNone. A status line is
// written to w.
func ConvertFile(ctx context.Context, c *Converter, input string, opts BatchOptions, w io.Writer) FileResult {
	if opts.Open == nil {
		opts.Open = ReadFile
	}
	fr := FileResult{Input: input, Started: time.Now()}
	done := func(status types.ConversionStatus, err error) FileResult {
		fr.Status = status
		fr.Err = err
		fr.Duration = time.Since(fr.Started)
		switch status {
		case types.ConversionDone:
			fmt.Fprintf(w, "converted: %s -> %s (%d pages)\n", input, fr.Output, fr.Pages)
		case types.ConversionNone:
			fmt.Fprintf(w, "skipped: %s (%s already exists)\n", input, fr.Output)
		default:
			fmt.Fprintf(w, "failed:  %s (%v)\n", input, err)
		}
		return fr
	}

	src, err := opts.Open(ctx, input)
	if err != nil {
		return done(types.ConversionFailed, err)
	}

	fr.Output = filepath.Join(opts.OutputDir, OutputName(src.Name))
	if !opts.Overwrite {
		if _, err := os.Stat(fr.Output); err == nil {
			return done(types.ConversionNone, nil)
		}
	}

	res, err := c.Convert(ctx, src, opts.Progress)
	if err != nil {
		return done(types.ConversionFailed, err)
	}
	fr.Pages, fr.Lines, fr.Bytes = res.Pages, res.Lines, len(res.Data)

	if err := writeOutput(fr.Output, res.Data); err != nil {
		return done(types.ConversionFailed, err)
	}
	return done(types.ConversionDone, nil)
}

// ConvertBatch converts inputs in order, printing per-file status to w and
// returning a summary. It stops early when ctx is cancelled.
func ConvertBatch(ctx context.Context, c *Converter, inputs []string, opts BatchOptions, w io.Writer) BatchResult {
	var result BatchResult
	for _, in := range inputs {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "cancelled: %d input(s) not processed\n", len(inputs)-result.Total())
			break
		}
		fr := ConvertFile(ctx, c, in, opts, w)
		result.Files = append(result.Files, fr)
		switch fr.Status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// writeOutput writes data to a temporary file next to path and renames it
// into place, so a failed write never leaves a truncated package.
func writeOutput(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".pdf2docx-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
