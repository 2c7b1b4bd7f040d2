// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

const binPdftotext = "pdftotext"

// Pdftotext extracts words with poppler's pdftotext in bounding-box mode.
// Each word becomes one fragment whose baseline is the bottom edge of its
// box, converted to bottom-up page space.
type Pdftotext struct {
	exec executor
	bin  string
}

// NewPdftotext returns a loader that runs pdftotext from PATH.
func NewPdftotext() *Pdftotext {
	return &Pdftotext{exec: &osExecutor{}, bin: binPdftotext}
}

// Name returns "pdftotext".
func (p *Pdftotext) Name() string { return string(types.BackendPdftotext) }

// Available checks that the pdftotext binary is on PATH.
func (p *Pdftotext) Available() error {
	if _, err := p.exec.LookPath(p.bin); err != nil {
		return fmt.Errorf("%w: %s not found on PATH: %v", ErrDependencyUnavailable, p.bin, err)
	}
	return nil
}

// Open runs pdftotext over data and parses every page up front.
func (p *Pdftotext) Open(ctx context.Context, data []byte) (Document, error) {
	var out bytes.Buffer
	args := []string{"-bbox", "-enc", "UTF-8", "-", "-"}
	if err := p.exec.RunPiped(ctx, p.bin, args, bytes.NewReader(data), &out); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: pdftotext: %v", ErrUnreadablePDF, err)
	}

	pages, err := parseBBox(&out)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing pdftotext output: %v", ErrUnreadablePDF, err)
	}
	return &bboxDocument{pages: pages}, nil
}

type bboxDocument struct {
	pages [][]types.Fragment
}

func (d *bboxDocument) NumPages() int { return len(d.pages) }

func (d *bboxDocument) Fragments(ctx context.Context, page int) ([]types.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkPage(page, len(d.pages)); err != nil {
		return nil, err
	}
	return d.pages[page-1], nil
}

// parseBBox reads the XHTML written by "pdftotext -bbox":
//
//	<page width="612" height="792">
//	  <word xMin="56.8" yMin="57.2" xMax="94.5" yMax="70.4">Hello</word>
//
// The tokenizer lowercases attribute names.
func parseBBox(r io.Reader) ([][]types.Fragment, error) {
	var (
		pages  [][]types.Fragment
		height float64
		word   *types.Fragment
	)

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return pages, nil
			}
			return nil, z.Err()

		case html.StartTagToken:
			name, _ := z.TagName()
			attrs := tagAttrs(z)
			switch string(name) {
			case "page":
				h, err := parseCoord(attrs, "height")
				if err != nil {
					return nil, err
				}
				height = h
				pages = append(pages, []types.Fragment{})
			case "word":
				if len(pages) == 0 {
					return nil, errors.New("word outside of page")
				}
				xMin, err := parseCoord(attrs, "xmin")
				if err != nil {
					return nil, err
				}
				yMax, err := parseCoord(attrs, "ymax")
				if err != nil {
					return nil, err
				}
				word = &types.Fragment{X: xMin, Y: height - yMax}
			}

		case html.TextToken:
			if word != nil {
				word.Text += string(z.Text())
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "word" && word != nil {
				if word.Text != "" {
					last := len(pages) - 1
					pages[last] = append(pages[last], *word)
				}
				word = nil
			}
		}
	}
}

func tagAttrs(z *html.Tokenizer) map[string]string {
	attrs := make(map[string]string)
	for {
		key, val, more := z.TagAttr()
		if len(key) > 0 {
			attrs[string(key)] = string(val)
		}
		if !more {
			return attrs
		}
	}
}

func parseCoord(attrs map[string]string, key string) (float64, error) {
	s, ok := attrs[key]
	if !ok {
		return 0, fmt.Errorf("missing %s attribute", key)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("attribute %s: %w", key, err)
	}
	return f, nil
}
