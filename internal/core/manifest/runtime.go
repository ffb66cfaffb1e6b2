package manifest

import "strings"

// =============================================================================
// Runtime Dependency Files
// =============================================================================

// dependencyFiles maps a runtime family prefix to the dependency manifest
// filename expected inside that runtime's artifact.
var dependencyFiles = []struct {
	prefix string
	file   string
}{
	{"python", "requirements.txt"},
	{"nodejs", "package.json"},
	{"ruby", "Gemfile"},
	{"php", "composer.json"},
	{"go", "go.mod"},
}

// DependencyFile returns the dependency manifest filename for a runtime
// identifier (e.g. "python3.11" -> "requirements.txt"). The second return
// is false for runtimes with no known dependency manifest.
func DependencyFile(runtime string) (string, bool) {
	runtime = strings.ToLower(strings.TrimSpace(runtime))
	for _, entry := range dependencyFiles {
		if strings.HasPrefix(runtime, entry.prefix) {
			return entry.file, true
		}
	}
	return "", false
}
