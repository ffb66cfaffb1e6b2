package strategy

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fnship/fnship/internal/core/manifest"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fn.zip")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// =============================================================================
// Select Tests
// =============================================================================

func TestSelect(t *testing.T) {
	tests := []struct {
		transport string
		want      string
		wantErr   bool
	}{
		{"", TransportInline, false},
		{"inline", TransportInline, false},
		{"reference", TransportReference, false},
		{"carrier-pigeon", "", true},
	}

	for _, tt := range tests {
		s, err := Select(manifest.Provider{CodeTransport: tt.transport})
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownTransport)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, s.Name())
	}
}

// =============================================================================
// Inline Strategy Tests
// =============================================================================

func TestInline_Deploy(t *testing.T) {
	path := writeArtifact(t, "zip-bytes")

	meta, err := (&Inline{}).Deploy(context.Background(), manifest.Function{}, path)

	require.NoError(t, err)
	assert.Equal(t, TransportInline, meta.Transport)
	assert.Empty(t, meta.Path)

	decoded, err := base64.StdEncoding.DecodeString(meta.Content)
	require.NoError(t, err)
	assert.Equal(t, "zip-bytes", string(decoded))

	assert.True(t, strings.HasPrefix(meta.Checksum, "blake2b:"))
	assert.Len(t, strings.TrimPrefix(meta.Checksum, "blake2b:"), 64)
}

func TestInline_DeployMissingArtifact(t *testing.T) {
	_, err := (&Inline{}).Deploy(context.Background(), manifest.Function{}, filepath.Join(t.TempDir(), "nope.zip"))

	require.Error(t, err)
	var deployErr *DeployError
	require.ErrorAs(t, err, &deployErr)
	assert.Equal(t, TransportInline, deployErr.Transport)
}

func TestInline_DeployCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Inline{}).Deploy(ctx, manifest.Function{}, writeArtifact(t, "x"))

	assert.ErrorIs(t, err, context.Canceled)
}

// =============================================================================
// Reference Strategy Tests
// =============================================================================

func TestReference_Deploy(t *testing.T) {
	path := writeArtifact(t, "zip-bytes")

	meta, err := (&Reference{}).Deploy(context.Background(), manifest.Function{}, path)

	require.NoError(t, err)
	assert.Equal(t, TransportReference, meta.Transport)
	assert.Empty(t, meta.Content)
	assert.True(t, filepath.IsAbs(meta.Path))
	assert.True(t, strings.HasPrefix(meta.Checksum, "blake2b:"))
}

func TestReference_SameContentSameChecksum(t *testing.T) {
	a := writeArtifact(t, "same-bytes")
	b := writeArtifact(t, "same-bytes")

	ma, err := (&Reference{}).Deploy(context.Background(), manifest.Function{}, a)
	require.NoError(t, err)
	mb, err := (&Reference{}).Deploy(context.Background(), manifest.Function{}, b)
	require.NoError(t, err)

	assert.Equal(t, ma.Checksum, mb.Checksum)
}

func TestReference_DeployMissingArtifact(t *testing.T) {
	_, err := (&Reference{}).Deploy(context.Background(), manifest.Function{}, filepath.Join(t.TempDir(), "nope.zip"))

	require.Error(t, err)
	var deployErr *DeployError
	require.ErrorAs(t, err, &deployErr)
	assert.Equal(t, TransportReference, deployErr.Transport)
}
