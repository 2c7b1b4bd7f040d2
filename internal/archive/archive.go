// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive assembles package parts into an in-memory zip container.
//
// Entries are written in the order they are added, deflate-compressed and
// stamped with a fixed modification time, so the same parts always produce
// the same bytes. Directories are implied by entry paths.
package archive

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

var (
	// ErrInvalidPath is returned for empty, absolute, or backslash paths.
	ErrInvalidPath = errors.New("invalid archive path")

	// ErrDuplicateEntry is returned when a path is added twice.
	ErrDuplicateEntry = errors.New("duplicate archive entry")

	// ErrReleased is returned when a released builder is used.
	ErrReleased = errors.New("archive builder released")
)

// modTime is the earliest timestamp the zip format can represent.
var modTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Options tunes compression.
type Options struct {
	// Level is a compress/flate level. Zero selects flate.DefaultCompression,
	// so an uncompressed archive is not expressible; use flate.HuffmanOnly for
	// the cheapest encoding.
	Level int
}

// Builder accumulates entries in memory. A Builder is not safe for
// concurrent use; each conversion owns its own.
type Builder struct {
	buf  *bytes.Buffer
	zw   *zip.Writer
	seen map[string]struct{}
}

// NewBuilder returns an empty builder.
func NewBuilder(opts Options) *Builder {
	level := opts.Level
	if level == 0 {
		level = flate.DefaultCompression
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})
	return &Builder{buf: buf, zw: zw, seen: make(map[string]struct{})}
}

// Add writes one entry.
func (b *Builder) Add(part types.PackagePart) error {
	if b.zw == nil {
		return ErrReleased
	}
	if err := validPath(part.Path); err != nil {
		return err
	}
	if _, dup := b.seen[part.Path]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, part.Path)
	}
	b.seen[part.Path] = struct{}{}

	w, err := b.zw.CreateHeader(&zip.FileHeader{
		Name:     part.Path,
		Method:   zip.Deflate,
		Modified: modTime,
	})
	if err != nil {
		return fmt.Errorf("creating entry %s: %w", part.Path, err)
	}
	if _, err := w.Write(part.Data); err != nil {
		return fmt.Errorf("writing entry %s: %w", part.Path, err)
	}
	return nil
}

// Bytes finalizes the archive and returns its content. The builder is
// released afterwards.
func (b *Builder) Bytes() ([]byte, error) {
	if b.zw == nil {
		return nil, ErrReleased
	}
	defer b.Release()

	if err := b.zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	out := make([]byte, b.buf.Len())
	copy(out, b.buf.Bytes())
	return out, nil
}

// Release drops the builder's buffers. It is safe to call more than once.
func (b *Builder) Release() {
	b.zw = nil
	b.buf = nil
	b.seen = nil
}

// Assemble writes parts, in order, into a new archive.
func Assemble(parts []types.PackagePart, opts Options) ([]byte, error) {
	b := NewBuilder(opts)
	defer b.Release()

	for _, p := range parts {
		if err := b.Add(p); err != nil {
			return nil, err
		}
	}
	return b.Bytes()
}

func validPath(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	case strings.HasPrefix(name, "/"):
		return fmt.Errorf("%w: %s is absolute", ErrInvalidPath, name)
	case strings.Contains(name, `\`):
		return fmt.Errorf("%w: %s contains a backslash", ErrInvalidPath, name)
	case strings.HasSuffix(name, "/"):
		return fmt.Errorf("%w: %s names a directory", ErrInvalidPath, name)
	}
	return nil
}
