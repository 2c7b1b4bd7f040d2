// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ooxml

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

// Page geometry in twentieths of a point: US Letter with one-inch margins.
const (
	PageWidth  = 12240
	PageHeight = 15840
	Margin     = 1440
	EdgeMargin = 720
)

const styleHeading = "Heading1"

type document struct {
	XMLName xml.Name `xml:"w:document"`
	W       string   `xml:"xmlns:w,attr"`
	Body    body     `xml:"w:body"`
}

type body struct {
	Paragraphs []paragraph `xml:"w:p"`
	SectPr     sectPr      `xml:"w:sectPr"`
}

type paragraph struct {
	PPr  *paraProps `xml:"w:pPr,omitempty"`
	Runs []run      `xml:"w:r"`
}

type paraProps struct {
	Style   *val     `xml:"w:pStyle,omitempty"`
	Spacing *spacing `xml:"w:spacing,omitempty"`
}

type run struct {
	RPr   *runProps `xml:"w:rPr,omitempty"`
	Break *brk      `xml:"w:br,omitempty"`
	Text  *text     `xml:"w:t,omitempty"`
}

type runProps struct {
	Fonts  *fonts `xml:"w:rFonts,omitempty"`
	Bold   *empty `xml:"w:b,omitempty"`
	Color  *val   `xml:"w:color,omitempty"`
	Size   *val   `xml:"w:sz,omitempty"`
	SizeCS *val   `xml:"w:szCs,omitempty"`
	Lang   *val   `xml:"w:lang,omitempty"`
}

type brk struct {
	Type string `xml:"w:type,attr"`
}

// text carries already-escaped character data; see newText.
type text struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Inner string `xml:",innerxml"`
}

type sectPr struct {
	PgSz  pgSz  `xml:"w:pgSz"`
	PgMar pgMar `xml:"w:pgMar"`
}

type pgSz struct {
	W string `xml:"w:w,attr"`
	H string `xml:"w:h,attr"`
}

type pgMar struct {
	Top    string `xml:"w:top,attr"`
	Right  string `xml:"w:right,attr"`
	Bottom string `xml:"w:bottom,attr"`
	Left   string `xml:"w:left,attr"`
	Header string `xml:"w:header,attr"`
	Footer string `xml:"w:footer,attr"`
}

// newText is the only constructor of w:t content.
func newText(s string, preserve bool) *text {
	t := &text{Inner: Escape(s)}
	if preserve {
		t.Space = "preserve"
	}
	return t
}

// PageLabel returns the heading text that marks the start of a page.
func PageLabel(pageNumber int) string {
	return fmt.Sprintf("— Página %d —", pageNumber)
}

// Body returns word/document.xml for pages. Each page after the first starts
// with a page break, then a heading with PageLabel, then one paragraph per
// non-blank line.
func Body(pages []types.PageContent) []byte {
	var paras []paragraph
	for i, page := range pages {
		if i > 0 {
			paras = append(paras, pageBreak())
		}
		paras = append(paras, heading(PageLabel(page.PageNumber)))
		for _, line := range page.Lines {
			if strings.TrimSpace(clean(line)) == "" {
				continue
			}
			paras = append(paras, paragraph{
				Runs: []run{{Text: newText(line, true)}},
			})
		}
	}

	tw := strconv.Itoa
	return encode(document{
		W: nsMain,
		Body: body{
			Paragraphs: paras,
			SectPr: sectPr{
				PgSz: pgSz{W: tw(PageWidth), H: tw(PageHeight)},
				PgMar: pgMar{
					Top: tw(Margin), Right: tw(Margin), Bottom: tw(Margin), Left: tw(Margin),
					Header: tw(EdgeMargin), Footer: tw(EdgeMargin),
				},
			},
		},
	})
}

func pageBreak() paragraph {
	return paragraph{Runs: []run{{Break: &brk{Type: "page"}}}}
}

func heading(label string) paragraph {
	return paragraph{
		PPr: &paraProps{Style: v(styleHeading)},
		Runs: []run{{
			RPr:  &runProps{Color: v("666666"), Size: vi(20)},
			Text: newText(label, false),
		}},
	}
}
