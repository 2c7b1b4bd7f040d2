// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sourcetest builds small, valid PDF files for loader tests.
package sourcetest

import (
	"bytes"
	"fmt"
	"strings"
)

// Run is one Helvetica 12pt text show at a page-space origin.
type Run struct {
	Text string
	X, Y float64
}

var literal = strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)

// PDF returns a letter-size PDF with one page per entry of pages. Every
// page shares a single Helvetica font resource named F1.
func PDF(pages ...[]Run) []byte {
	var objs []string

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)

	for i, runs := range pages {
		var content strings.Builder
		for _, r := range runs {
			fmt.Fprintf(&content, "BT /F1 12 Tf %g %g Td (%s) Tj ET\n", r.X, r.Y, literal.Replace(r.Text))
		}
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}
