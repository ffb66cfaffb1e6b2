package artifact

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fnship/fnship/internal/core/manifest"
)

func alwaysDir(string) (bool, error)  { return true, nil }
func neverDir(string) (bool, error)   { return false, nil }
func failingDir(string) (bool, error) { return false, errors.New("stat failed") }

// =============================================================================
// Precedence Tests
// =============================================================================

func TestResolve_ExplicitOptionWins(t *testing.T) {
	svc := &manifest.Service{
		Service:  "s",
		Package:  manifest.Package{Path: "svc/pkg.zip", Artifact: "svc/art.zip"},
		Artifact: "svc/global.zip",
	}
	fn := manifest.Function{Package: manifest.Package{Artifact: "fn/art.zip"}}

	got, err := Resolve(fn, "foo", manifest.Options{Package: "explicit.zip"}, svc, neverDir)

	require.NoError(t, err)
	assert.Equal(t, "explicit.zip", got)
}

func TestResolve_PrecedenceChain(t *testing.T) {
	tests := []struct {
		name string
		svc  manifest.Service
		fn   manifest.Function
		want string
	}{
		{
			name: "service package path",
			svc: manifest.Service{
				Service:  "s",
				Package:  manifest.Package{Path: "svc/pkg.zip", Artifact: "svc/art.zip"},
				Artifact: "svc/global.zip",
			},
			fn:   manifest.Function{Package: manifest.Package{Artifact: "fn/art.zip"}},
			want: "svc/pkg.zip",
		},
		{
			name: "service package artifact",
			svc: manifest.Service{
				Service:  "s",
				Package:  manifest.Package{Artifact: "svc/art.zip"},
				Artifact: "svc/global.zip",
			},
			fn:   manifest.Function{Package: manifest.Package{Artifact: "fn/art.zip"}},
			want: "svc/art.zip",
		},
		{
			name: "function artifact",
			svc:  manifest.Service{Service: "s", Artifact: "svc/global.zip"},
			fn:   manifest.Function{Package: manifest.Package{Artifact: "fn/art.zip"}},
			want: "fn/art.zip",
		},
		{
			name: "service artifact fallback",
			svc:  manifest.Service{Service: "s", Artifact: "svc/global.zip"},
			want: "svc/global.zip",
		},
		{
			name: "packager default output",
			svc:  manifest.Service{Service: "s"},
			want: filepath.Join(".fnship", "s.zip"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.fn, "foo", manifest.Options{}, &tt.svc, neverDir)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// Individual Packaging Tests
// =============================================================================

func TestResolve_IndividuallyWithDirectory(t *testing.T) {
	svc := &manifest.Service{Service: "s", Package: manifest.Package{Individually: true}}

	got, err := Resolve(manifest.Function{}, "foo", manifest.Options{Package: "/out/"}, svc, alwaysDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "foo.zip"), got)
}

func TestResolve_IndividuallyWithNonDirectory(t *testing.T) {
	svc := &manifest.Service{Service: "s", Package: manifest.Package{Individually: true}}

	_, err := Resolve(manifest.Function{}, "foo", manifest.Options{Package: "/out/pkg.zip"}, svc, neverDir)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPackageLayout)

	var layoutErr *LayoutError
	require.ErrorAs(t, err, &layoutErr)
	assert.Equal(t, "/out/pkg.zip", layoutErr.Path)
}

func TestResolve_IndividuallyStatFailure(t *testing.T) {
	svc := &manifest.Service{Service: "s", Package: manifest.Package{Individually: true}}

	_, err := Resolve(manifest.Function{}, "foo", manifest.Options{Package: "/out/"}, svc, failingDir)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidPackageLayout)
}

func TestResolve_IndividuallyOnlyAppliesToExplicitOption(t *testing.T) {
	// Individual packaging without an explicit option follows the normal
	// precedence chain.
	svc := &manifest.Service{
		Service: "s",
		Package: manifest.Package{Individually: true, Path: "svc/pkg.zip"},
	}

	got, err := Resolve(manifest.Function{}, "foo", manifest.Options{}, svc, neverDir)

	require.NoError(t, err)
	assert.Equal(t, "svc/pkg.zip", got)
}
