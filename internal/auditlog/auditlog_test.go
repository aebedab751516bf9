package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func importEntry() Entry {
	return Entry{
		Timestamp: testTime,
		Action:    ActionImport,
		Details:   "payments.csv, 3 rows, 1 for review",
		Batch:     "5f0c1d2e-0000-4000-8000-000000000001",
		Count:     3,
	}
}

func TestAppendAndRead(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{importEntry()}))

	wo := Entry{Timestamp: testTime.Add(time.Hour), Action: ActionWriteOff, Details: "charge 12", Count: 1}
	require.NoError(t, Append(dir, []Entry{wo}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionImport, entries[0].Action)
	assert.Equal(t, 3, entries[0].Count)
	assert.True(t, testTime.Equal(entries[0].Timestamp))
	assert.Equal(t, ActionWriteOff, entries[1].Action)
	assert.Empty(t, entries[1].Batch)

	data, err := os.ReadFile(filepath.Join(dir, Path))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header), "header written once")
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, Path), []byte(Header+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_BadRow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	body := Header + "\nyesterday,import,,,1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, Path), []byte(body), 0o644))

	_, err := Read(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestMarshalEntry(t *testing.T) {
	row := MarshalEntry(importEntry())
	assert.Equal(t, []string{
		"2025-01-15T10:30:00Z", "import", "payments.csv, 3 rows, 1 for review",
		"5f0c1d2e-0000-4000-8000-000000000001", "3",
	}, row)
}

func TestUnmarshalEntry(t *testing.T) {
	_, err := UnmarshalEntry([]string{"one", "two"})
	assert.ErrorContains(t, err, "expected 5 fields")

	_, err = UnmarshalEntry([]string{"2025-01-15T10:30:00Z", "fees", "", "", "many"})
	assert.ErrorContains(t, err, "parsing count")

	e, err := UnmarshalEntry([]string{"2025-01-15T10:30:00Z", "fees", "fixture 4", "", ""})
	require.NoError(t, err)
	assert.Equal(t, 0, e.Count)
}

func TestForBatch(t *testing.T) {
	a := importEntry()
	b := Entry{Action: ActionWriteOff}
	c := Entry{Action: ActionUndo, Batch: a.Batch}

	got := ForBatch([]Entry{a, b, c}, a.Batch)
	require.Len(t, got, 2)
	assert.Equal(t, ActionImport, got[0].Action)
	assert.Equal(t, ActionUndo, got[1].Action)
}
