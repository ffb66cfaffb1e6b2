package sizecheck

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileOfSize(t *testing.T, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artifact.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(size))
	require.NoError(t, f.Close())
	return path
}

func newCapturedAdvisor() (*Advisor, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return NewAdvisor(logger), &buf
}

// =============================================================================
// Check Tests
// =============================================================================

func TestCheck_AtLimitNoWarning(t *testing.T) {
	advisor, out := newCapturedAdvisor()
	path := fileOfSize(t, MaxRecordSize)

	err := advisor.Check(path)

	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestCheck_OneByteOverWarns(t *testing.T) {
	advisor, out := newCapturedAdvisor()
	path := fileOfSize(t, MaxRecordSize+1)

	err := advisor.Check(path)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "record-size limit")
	assert.Contains(t, out.String(), "size_mb=1")
}

func TestCheck_RoundsReportedMegabytes(t *testing.T) {
	advisor, out := newCapturedAdvisor()
	path := fileOfSize(t, 5*MaxRecordSize+MaxRecordSize/2)

	err := advisor.Check(path)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "size_mb=6")
}

func TestCheck_MissingArtifactFails(t *testing.T) {
	advisor, out := newCapturedAdvisor()

	err := advisor.Check(filepath.Join(t.TempDir(), "missing.zip"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, out.String())
}
