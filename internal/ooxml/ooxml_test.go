// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ooxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

// wellFormed walks every token of data and fails on a syntax error.
func wellFormed(t *testing.T, name string, data []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err, "part %s is not well-formed", name)
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt; &amp; &quot;c&quot; &apos;d&apos;", Escape(`a <b> & "c" 'd'`))
	assert.Equal(t, "plain text", Escape("plain text"))
	assert.Equal(t, "&amp;amp;", Escape("&amp;"))
}

func TestEscape_InvalidCharacters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"nul byte", "nul\x00byte", "nulbyte"},
		{"vertical tab", "vt\x0bchar", "vtchar"},
		{"invalid utf-8", "bad\xffutf8", "bad\uFFFDutf8"},
		{"noncharacter", "a\uFFFEb", "ab"},
		{"allowed whitespace", "a\tb\nc\rd", "a\tb\nc\rd"},
		{"astral plane", "clef \U0001D11E", "clef \U0001D11E"},
		{"mixed with reserved", "<\x01>", "&lt;&gt;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
		})
	}
}

func TestParts_WellFormed(t *testing.T) {
	pages := []types.PageContent{
		{PageNumber: 1, Lines: []string{"Tom & Jerry <3", `"quoted" 'single'`}},
		{PageNumber: 2, Lines: []string{"nul\x00byte", "vt\x0bchar", "bad\xffutf8", "\x00\x01"}},
	}
	for _, p := range Parts(pages) {
		require.True(t, bytes.HasPrefix(p.Data, []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)), p.Path)
		wellFormed(t, p.Path, p.Data)
	}
}

func TestParts_ManifestFirst(t *testing.T) {
	parts := Parts(nil)
	require.Len(t, parts, len(RequiredParts))
	assert.Equal(t, PathContentTypes, parts[0].Path)
}

func TestBody_TwoPageScenario(t *testing.T) {
	pages := []types.PageContent{
		{PageNumber: 1, Lines: []string{"Hello World"}},
		{PageNumber: 2, Lines: []string{"Line2"}},
	}
	doc := string(Body(pages))

	order := []string{
		"<w:t>— Página 1 —</w:t>",
		`<w:t xml:space="preserve">Hello World</w:t>`,
		`<w:br w:type="page">`,
		"<w:t>— Página 2 —</w:t>",
		`<w:t xml:space="preserve">Line2</w:t>`,
		"<w:sectPr>",
	}
	last := -1
	for _, s := range order {
		idx := strings.Index(doc, s)
		require.GreaterOrEqual(t, idx, 0, "missing %q", s)
		assert.Greater(t, idx, last, "%q out of order", s)
		last = idx
	}
	assert.Equal(t, 1, strings.Count(doc, `w:type="page"`))
}

func TestBody_EscapesText(t *testing.T) {
	doc := string(Body([]types.PageContent{{PageNumber: 1, Lines: []string{"a < b & c"}}}))
	assert.Contains(t, doc, `<w:t xml:space="preserve">a &lt; b &amp; c</w:t>`)
	assert.NotContains(t, doc, "a < b")
}

func TestBody_DropsLinesOfOnlyControlCharacters(t *testing.T) {
	doc := string(Body([]types.PageContent{{PageNumber: 1, Lines: []string{"\x00\x1f", "cid\x00text"}}}))
	assert.Equal(t, 1, strings.Count(doc, `xml:space="preserve"`))
	assert.Contains(t, doc, `<w:t xml:space="preserve">cidtext</w:t>`)
}

func TestBody_PreservesSurroundingSpaces(t *testing.T) {
	doc := string(Body([]types.PageContent{{PageNumber: 1, Lines: []string{"  indented  "}}}))
	assert.Contains(t, doc, `<w:t xml:space="preserve">  indented  </w:t>`)
}

func TestBody_DropsBlankLines(t *testing.T) {
	doc := string(Body([]types.PageContent{{PageNumber: 1, Lines: []string{"", "   ", "\t", "kept"}}}))
	assert.Equal(t, 1, strings.Count(doc, `xml:space="preserve"`))
}

func TestBody_EmptyPageIsHeadingOnly(t *testing.T) {
	doc := string(Body([]types.PageContent{{PageNumber: 3}}))
	assert.Equal(t, 1, strings.Count(doc, "<w:p>"))
	assert.Contains(t, doc, "— Página 3 —")
	assert.Contains(t, doc, `<w:pStyle w:val="Heading1">`)
}

func TestBody_SectionProperties(t *testing.T) {
	doc := string(Body(nil))
	assert.Contains(t, doc, `<w:pgSz w:w="12240" w:h="15840">`)
	assert.Contains(t, doc, `<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720">`)
	assert.True(t, strings.HasSuffix(doc, "</w:sectPr></w:body></w:document>"))
}

func TestFontTable_DeclaresThreeFamilies(t *testing.T) {
	ft := string(FontTable())
	for _, name := range []string{"Calibri", "Times New Roman", "Arial"} {
		assert.Contains(t, ft, `w:name="`+name+`"`)
	}
}

func TestStyles_DefinesDefaultAndHeading(t *testing.T) {
	s := string(Styles())
	assert.Contains(t, s, `w:styleId="Normal" w:default="1"`)
	assert.Contains(t, s, `w:styleId="Heading1"`)
}

func TestCheck_GeneratedPackage(t *testing.T) {
	require.NoError(t, Check(Parts([]types.PageContent{{PageNumber: 1, Lines: []string{"x"}}})))
}

func TestCheck_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]types.PackagePart) []types.PackagePart
		want   error
	}{
		{
			name: "missing styles",
			mutate: func(parts []types.PackagePart) []types.PackagePart {
				return without(parts, PathStyles)
			},
			want: ErrMissingPart,
		},
		{
			name: "duplicate body",
			mutate: func(parts []types.PackagePart) []types.PackagePart {
				return append(parts, types.PackagePart{Path: PathDocument, Data: Body(nil)})
			},
			want: ErrDuplicatePart,
		},
		{
			name: "relationship to absent part",
			mutate: func(parts []types.PackagePart) []types.PackagePart {
				return append(parts, types.PackagePart{
					Path: "word/_rels/extra.xml.rels",
					Data: encode(relationships{
						Xmlns:         nsRelationships,
						Relationships: []relationship{{ID: "rId1", Type: relStyles, Target: "numbering.xml"}},
					}),
				})
			},
			want: ErrDanglingReference,
		},
		{
			name: "override for absent part",
			mutate: func(parts []types.PackagePart) []types.PackagePart {
				parts = without(parts, PathContentTypes)
				return append(parts, types.PackagePart{
					Path: PathContentTypes,
					Data: encode(contentTypes{
						Xmlns:     nsContentTypes,
						Overrides: []contentTypeOverride{{PartName: "/word/numbering.xml", ContentType: ctXML}},
					}),
				})
			},
			want: ErrDanglingReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.mutate(Parts(nil)))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRelsSource(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		isRels bool
	}{
		{"_rels/.rels", ".", true},
		{"word/_rels/document.xml.rels", "word", true},
		{"word/document.xml", "", false},
		{"word/other.rels", "", false},
	}
	for _, tt := range tests {
		base, ok := relsSource(tt.name)
		assert.Equal(t, tt.isRels, ok, tt.name)
		assert.Equal(t, tt.base, base, tt.name)
	}
}

func without(parts []types.PackagePart, name string) []types.PackagePart {
	var out []types.PackagePart
	for _, p := range parts {
		if p.Path != name {
			out = append(out, p)
		}
	}
	return out
}
