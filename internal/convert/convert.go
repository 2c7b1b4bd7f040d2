// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns PDF documents into .docx packages.
//
// A Converter drives one run per call through the states
// idle → file loaded → extracting text → serializing → packaging → done.
// Pages are processed strictly in order; progress is reported to a
// caller-supplied callback at fixed milestones.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdf2docx/internal/archive"
	"github.com/pdiddy/pdf2docx/internal/lines"
	"github.com/pdiddy/pdf2docx/internal/ooxml"
	"github.com/pdiddy/pdf2docx/internal/source"
	"github.com/pdiddy/pdf2docx/pkg/types"
)

const (
	mediaTypePDF = "application/pdf"
	extPDF       = ".pdf"
	extDocx      = ".docx"
)

// Progress milestones, in percent. Page extraction fills the range
// [pctExtractStart, pctExtractStart+pctExtractSpan].
const (
	pctExtractStart = 5
	pctExtractSpan  = 50
	pctSerialize    = 60
	pctStructure    = 65
	pctContent      = 75
	pctFinalize     = 90
	pctDone         = 100
)

// ProgressFunc receives the completion percentage (0-100) and a status
// message. Within one run percentages never decrease.
type ProgressFunc func(percent float64, message string)

// Config tunes a Converter.
type Config struct {
	// LineThreshold is passed to the line reconstructor. Zero selects
	// lines.DefaultThreshold.
	LineThreshold float64

	// CompressionLevel is the deflate level of the output archive.
	CompressionLevel int

	// Logger receives debug messages. Defaults to slog.Default().
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.LineThreshold <= 0 {
		c.LineThreshold = lines.DefaultThreshold
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Result is the output of a successful run.
type Result struct {
	// Filename is the source base name with its extension replaced by .docx.
	Filename string

	// Data is the .docx package.
	Data []byte

	// Pages is the number of source pages processed.
	Pages int

	// Lines is the number of reconstructed lines across all pages.
	Lines int
}

// Converter converts PDFs with a fixed loader and configuration. It keeps
// no per-run state, so concurrent Convert calls are independent.
type Converter struct {
	loader source.Loader
	cfg    Config
	logger *slog.Logger
}

// New creates a Converter. A nil loader is accepted; Convert then fails
// with ErrDependencyUnavailable.
func New(loader source.Loader, cfg Config) *Converter {
	cfg.defaults()
	return &Converter{
		loader: loader,
		cfg:    cfg,
		logger: cfg.Logger,
	}
}

// Backend returns the loader name, or "" when none is configured.
func (c *Converter) Backend() string {
	if c.loader == nil {
		return ""
	}
	return c.loader.Name()
}

// Convert runs the full pipeline over src. progress may be nil.
//
// Before the file is loaded, Convert fails with ErrInvalidInput,
// ErrDependencyUnavailable, or an error wrapping ErrUnreadablePDF. Later
// failures are returned as *ConversionError wrapping the cause; a cancelled
// ctx yields a cause matching both ErrCancelled and ctx.Err().
func (c *Converter) Convert(ctx context.Context, src types.Source, progress ProgressFunc) (*Result, error) {
	r := &run{
		conv:     c,
		progress: progress,
		recon:    lines.Reconstructor{Threshold: c.cfg.LineThreshold},
	}
	res, err := r.execute(ctx, src)
	if err != nil {
		c.logger.Debug("conversion failed", "source", src.Name, "state", r.state, "error", err)
		return nil, err
	}
	return res, nil
}

// IsPDF reports whether src declares a PDF content type or has a .pdf name.
func IsPDF(src types.Source) bool {
	if strings.HasPrefix(strings.ToLower(src.ContentType), mediaTypePDF) {
		return true
	}
	return strings.EqualFold(filepath.Ext(src.Name), extPDF)
}

// OutputName derives the .docx file name from a source name.
func OutputName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "document"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + extDocx
}

// run holds the working state of one conversion.
type run struct {
	conv     *Converter
	progress ProgressFunc
	recon    lines.Reconstructor

	state   State
	percent float64
	pages   []types.PageContent
	lines   int
}

func (r *run) execute(ctx context.Context, src types.Source) (*Result, error) {
	doc, err := r.load(ctx, src)
	if err != nil {
		r.state = StateFailed
		return nil, err
	}
	r.advance(StateFileLoaded)
	r.report(pctExtractStart, "Extracting text from PDF...")

	if err := r.extract(ctx, doc); err != nil {
		return nil, r.fail(err)
	}

	r.advance(StateSerializing)
	r.report(pctSerialize, "Generating Word document...")
	body := ooxml.Body(r.pages)

	r.advance(StatePackaging)
	data, err := r.pack(body)
	if err != nil {
		return nil, r.fail(err)
	}

	r.advance(StateDone)
	r.report(pctDone, "Conversion complete!")

	return &Result{
		Filename: OutputName(src.Name),
		Data:     data,
		Pages:    len(r.pages),
		Lines:    r.lines,
	}, nil
}

func (r *run) load(ctx context.Context, src types.Source) (source.Document, error) {
	if !IsPDF(src) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, src.Name)
	}
	loader := r.conv.loader
	if loader == nil {
		return nil, fmt.Errorf("%w: no loader configured", ErrDependencyUnavailable)
	}
	if err := loader.Available(); err != nil {
		return nil, err
	}

	doc, err := loader.Open(ctx, src.Data)
	if err != nil {
		return nil, fmt.Errorf("opening %s with %s backend: %w", src.Name, loader.Name(), err)
	}
	r.conv.logger.Debug("PDF loaded", "source", src.Name, "backend", loader.Name(), "pages", doc.NumPages())
	return doc, nil
}

func (r *run) extract(ctx context.Context, doc source.Document) error {
	r.advance(StateExtractingText)

	n := doc.NumPages()
	r.pages = make([]types.PageContent, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrCancelled, err)
		}

		frags, err := doc.Fragments(ctx, i)
		if err != nil {
			return fmt.Errorf("extracting page %d: %w", i, err)
		}
		pageLines := r.recon.Reconstruct(frags)
		if len(pageLines) == 0 {
			r.conv.logger.Debug("page has no extractable text", "page", i)
		}
		r.pages = append(r.pages, types.PageContent{PageNumber: i, Lines: pageLines})
		r.lines += len(pageLines)

		pct := pctExtractStart + pctExtractSpan*float64(i)/float64(n)
		r.report(pct, fmt.Sprintf("Processing page %d/%d...", i, n))
	}
	return nil
}

func (r *run) pack(body []byte) ([]byte, error) {
	r.report(pctStructure, "Creating document structure...")
	parts := ooxml.Package(body)
	if err := ooxml.Check(parts); err != nil {
		return nil, err
	}

	b := archive.NewBuilder(archive.Options{Level: r.conv.cfg.CompressionLevel})
	defer b.Release()

	r.report(pctContent, "Adding content...")
	for _, p := range parts {
		if err := b.Add(p); err != nil {
			return nil, err
		}
	}

	r.report(pctFinalize, "Finalizing file...")
	return b.Bytes()
}

func (r *run) advance(to State) {
	r.conv.logger.Debug("conversion state", "from", r.state, "to", to)
	r.state = to
}

// report forwards progress, never letting the percentage go backwards.
func (r *run) report(percent float64, message string) {
	if percent < r.percent {
		percent = r.percent
	}
	r.percent = percent
	if r.progress != nil {
		r.progress(percent, message)
	}
}

func (r *run) fail(err error) error {
	stage := r.state
	r.state = StateFailed
	return &ConversionError{Stage: stage, Err: err}
}
