// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ooxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

var (
	// ErrMissingPart is returned when a required part is absent.
	ErrMissingPart = errors.New("missing package part")

	// ErrDuplicatePart is returned when two parts share a path.
	ErrDuplicatePart = errors.New("duplicate package part")

	// ErrDanglingReference is returned when a content-type override or a
	// relationship names a part that does not exist.
	ErrDanglingReference = errors.New("dangling package reference")
)

// RequiredParts lists the paths every package must contain.
var RequiredParts = []string{
	PathContentTypes,
	PathRootRels,
	PathDocumentRels,
	PathStyles,
	PathSettings,
	PathFontTable,
	PathDocument,
}

// Check verifies that parts form a consistent package: no duplicate paths,
// every required part present, every content-type override and every
// relationship target resolving to a part in the set.
func Check(parts []types.PackagePart) error {
	index := make(map[string][]byte, len(parts))
	for _, p := range parts {
		if _, dup := index[p.Path]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicatePart, p.Path)
		}
		index[p.Path] = p.Data
	}

	for _, name := range RequiredParts {
		if _, ok := index[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingPart, name)
		}
	}

	var ct contentTypes
	if err := xml.Unmarshal(index[PathContentTypes], &ct); err != nil {
		return fmt.Errorf("parsing %s: %w", PathContentTypes, err)
	}
	for _, o := range ct.Overrides {
		name := strings.TrimPrefix(o.PartName, "/")
		if _, ok := index[name]; !ok {
			return fmt.Errorf("%w: override %s", ErrDanglingReference, o.PartName)
		}
	}

	for name, data := range index {
		base, ok := relsSource(name)
		if !ok {
			continue
		}
		var rels relationships
		if err := xml.Unmarshal(data, &rels); err != nil {
			return fmt.Errorf("parsing %s: %w", name, err)
		}
		for _, r := range rels.Relationships {
			target := path.Join(base, r.Target)
			if _, ok := index[target]; !ok {
				return fmt.Errorf("%w: %s %s -> %s", ErrDanglingReference, name, r.ID, target)
			}
		}
	}
	return nil
}

// relsSource reports whether name is a relationship part and returns the
// directory its targets are relative to. "word/_rels/document.xml.rels"
// resolves against "word", "_rels/.rels" against the package root.
func relsSource(name string) (string, bool) {
	if !strings.HasSuffix(name, ".rels") {
		return "", false
	}
	dir, _ := path.Split(name)
	dir = strings.TrimSuffix(dir, "/")
	if path.Base(dir) != "_rels" {
		return "", false
	}
	return path.Dir(dir), true
}
