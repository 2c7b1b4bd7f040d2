// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

const (
	// wordGapRatio bounds, as a fraction of the font size, the horizontal
	// gap between two glyphs of the same run.
	wordGapRatio = 0.2

	// baselineEpsilon is the largest baseline difference between glyphs of
	// the same run.
	baselineEpsilon = 0.01
)

// Native reads PDFs in process. pdfcpu validates the file structure and
// counts pages; ledongthuc/pdf interprets page content streams.
type Native struct{}

// NewNative returns the in-process loader.
func NewNative() *Native { return &Native{} }

// Name returns "native".
func (n *Native) Name() string { return string(types.BackendNative) }

// Available always succeeds; the native backend has no external tools.
func (n *Native) Available() error { return nil }

// Open validates data and prepares page access.
func (n *Native) Open(ctx context.Context, data []byte) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: pdfcpu read: %v", ErrUnreadablePDF, err)
	}
	if err := api.ValidateContext(pctx); err != nil {
		return nil, fmt.Errorf("%w: pdfcpu validate: %v", ErrUnreadablePDF, err)
	}

	r, err := openReader(data)
	if err != nil {
		return nil, err
	}

	pages := pctx.PageCount
	if np := r.NumPage(); np < pages {
		pages = np
	}
	return &nativeDocument{r: r, pages: pages}, nil
}

func openReader(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, rec)
		}
	}()
	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}
	return r, nil
}

type nativeDocument struct {
	r     *pdf.Reader
	pages int
}

func (d *nativeDocument) NumPages() int { return d.pages }

func (d *nativeDocument) Fragments(ctx context.Context, page int) ([]types.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkPage(page, d.pages); err != nil {
		return nil, err
	}

	glyphs, err := pageGlyphs(d.r, page)
	if err != nil {
		return nil, err
	}
	return mergeGlyphs(glyphs), nil
}

// pageGlyphs returns the glyphs of page in content-stream order. The
// content interpreter panics on malformed streams.
func pageGlyphs(r *pdf.Reader, page int) (glyphs []pdf.Text, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			glyphs, err = nil, fmt.Errorf("%w: page %d: %v", ErrUnreadablePDF, page, rec)
		}
	}()
	p := r.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}
	return p.Content().Text, nil
}

// mergeGlyphs joins consecutive glyphs into runs. A glyph continues the run
// when it shares the previous glyph's font, size and baseline and starts
// within wordGapRatio*size of where the previous glyph ended. Runs are
// trimmed and positioned at their first non-space glyph; whitespace-only
// runs are dropped.
func mergeGlyphs(glyphs []pdf.Text) []types.Fragment {
	frags := []types.Fragment{}

	var (
		run     strings.Builder
		start   pdf.Text
		prev    pdf.Text
		open    bool
		visible bool
	)
	flush := func() {
		if open && visible {
			frags = append(frags, types.Fragment{Text: strings.TrimSpace(run.String()), X: start.X, Y: start.Y})
		}
		run.Reset()
		open, visible = false, false
	}

	for _, g := range glyphs {
		if !open || !continuesRun(prev, g) {
			flush()
			open = true
		}
		run.WriteString(g.S)
		prev = g
		if !visible && strings.TrimSpace(g.S) != "" {
			start, visible = g, true
		}
	}
	flush()
	return frags
}

func continuesRun(prev, g pdf.Text) bool {
	if prev.Font != g.Font || prev.FontSize != g.FontSize {
		return false
	}
	if math.Abs(prev.Y-g.Y) > baselineEpsilon {
		return false
	}
	gap := g.X - (prev.X + prev.W)
	tolerance := wordGapRatio * g.FontSize
	return gap >= -tolerance && gap <= tolerance
}
