// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

func testJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "state", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(path)
	require.NoError(t, err)
	_, err = j.Record(context.Background(), Entry{Source: "a.pdf", Status: types.ConversionDone})
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j, err = Open(path)
	require.NoError(t, err)
	defer j.Close()

	entries, err := j.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.pdf", entries[0].Source)
}

func TestRecordAndList(t *testing.T) {
	j := testJournal(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id1, err := j.Record(ctx, Entry{
		Source:    "first.pdf",
		Output:    "out/first.docx",
		Backend:   "native",
		Status:    types.ConversionDone,
		Pages:     3,
		Lines:     42,
		Bytes:     5120,
		StartedAt: base,
		Duration:  1500 * time.Millisecond,
	})
	require.NoError(t, err)

	id2, err := j.Record(ctx, Entry{
		Source:    "second.pdf",
		Backend:   "pdftotext",
		Status:    types.ConversionFailed,
		Error:     "unreadable PDF",
		StartedAt: base.Add(time.Minute),
	})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	entries, err := j.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "second.pdf", entries[0].Source)
	assert.Equal(t, types.ConversionFailed, entries[0].Status)
	assert.Equal(t, "unreadable PDF", entries[0].Error)
	assert.Empty(t, entries[0].Output)

	first := entries[1]
	assert.Equal(t, id1, first.ID)
	assert.Equal(t, "out/first.docx", first.Output)
	assert.Equal(t, "native", first.Backend)
	assert.Equal(t, 3, first.Pages)
	assert.Equal(t, 42, first.Lines)
	assert.Equal(t, 5120, first.Bytes)
	assert.True(t, base.Equal(first.StartedAt))
	assert.Equal(t, 1500*time.Millisecond, first.Duration)
}

func TestList_Limit(t *testing.T) {
	j := testJournal(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := j.Record(ctx, Entry{
			Source:    "doc.pdf",
			Status:    types.ConversionDone,
			Pages:     i,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	entries, err := j.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 4, entries[0].Pages)
	assert.Equal(t, 3, entries[1].Pages)
}

func TestList_Empty(t *testing.T) {
	j := testJournal(t)
	entries, err := j.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecord_DefaultsStartedAt(t *testing.T) {
	j := testJournal(t)
	before := time.Now().Add(-time.Second)

	_, err := j.Record(context.Background(), Entry{Source: "x.pdf", Status: types.ConversionNone})
	require.NoError(t, err)

	entries, err := j.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].StartedAt.After(before))
}

func TestExportYAML(t *testing.T) {
	entries := []Entry{{
		ID:        7,
		Source:    "report.pdf",
		Output:    "report.docx",
		Backend:   "native",
		Status:    types.ConversionDone,
		Pages:     2,
		StartedAt: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, ExportYAML(&buf, entries))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "report.pdf", got[0]["source"])
	assert.Equal(t, "converted", got[0]["status"])
	assert.NotContains(t, got[0], "error")
}

func TestExportJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, nil))

	var got []Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
