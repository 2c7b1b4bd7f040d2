// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ooxml builds the XML parts of a minimal WordprocessingML package.
//
// Every part is produced from typed encoding/xml structures, so the output
// is well-formed by construction. Text that lands in w:t elements passes
// through Escape.
package ooxml

import (
	"encoding/xml"
	"strings"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

// Archive paths of the package parts.
const (
	PathContentTypes = "[Content_Types].xml"
	PathRootRels     = "_rels/.rels"
	PathDocument     = "word/document.xml"
	PathDocumentRels = "word/_rels/document.xml.rels"
	PathStyles       = "word/styles.xml"
	PathSettings     = "word/settings.xml"
	PathFontTable    = "word/fontTable.xml"
)

// MediaType is the media type of a .docx file.
const MediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	nsMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relSettings       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"
	relFontTable      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/fontTable"

	ctRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML           = "application/xml"
	ctDocument      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles        = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctSettings      = "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"
	ctFontTable     = "application/vnd.openxmlformats-officedocument.wordprocessingml.fontTable+xml"
)

const header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape makes s safe as XML character data. Invalid UTF-8 becomes U+FFFD,
// runes outside the XML 1.0 Char range are dropped, and the five reserved
// characters are replaced with entity references.
func Escape(s string) string {
	return escaper.Replace(clean(s))
}

func clean(s string) string {
	return strings.Map(xmlChar, strings.ToValidUTF8(s, "\uFFFD"))
}

// xmlChar keeps r if it is a legal XML 1.0 Char and drops it otherwise.
func xmlChar(r rune) rune {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return r
	case r >= 0x20 && r <= 0xD7FF:
		return r
	case r >= 0xE000 && r <= 0xFFFD:
		return r
	case r >= 0x10000 && r <= 0x10FFFF:
		return r
	}
	return -1
}

// Parts returns all seven parts of a package whose body holds pages.
func Parts(pages []types.PageContent) []types.PackagePart {
	return Package(Body(pages))
}

// Package combines a serialized body with the fixed parts. The content-type
// manifest comes first and the body last.
func Package(body []byte) []types.PackagePart {
	return []types.PackagePart{
		{Path: PathContentTypes, Data: ContentTypes()},
		{Path: PathRootRels, Data: RootRelationships()},
		{Path: PathDocumentRels, Data: DocumentRelationships()},
		{Path: PathStyles, Data: Styles()},
		{Path: PathSettings, Data: Settings()},
		{Path: PathFontTable, Data: FontTable()},
		{Path: PathDocument, Data: body},
	}
}

// encode marshals v behind the XML declaration. The part types hold only
// strings and nested structs, which encoding/xml cannot fail to marshal.
func encode(v any) []byte {
	out, err := xml.Marshal(v)
	if err != nil {
		panic("ooxml: marshal " + err.Error())
	}
	return append([]byte(header), out...)
}
