// Package stamp rewrites the version field in build manifests in place.
//
// The substitution is deliberately textual: parsing and re-serialising the
// manifests would reformat them, and the contract is that only the version
// value changes while every other byte is preserved.
package stamp

import (
	"fmt"
	"os"
	"regexp"
)

// Format identifies how the version field is encoded in a manifest.
type Format string

const (
	FormatTOML Format = "toml" // version = "1.2.3"
	FormatJSON Format = "json" // "version": "1.2.3"
)

var fieldPatterns = map[Format]*regexp.Regexp{
	FormatTOML: regexp.MustCompile(`(?m)^(version\s*=\s*")([^"]*)(")`),
	FormatJSON: regexp.MustCompile(`("version"\s*:\s*")([^"]*)(")`),
}

// File is a version-bearing manifest.
type File struct {
	Path   string
	Format Format
}

// Result reports what a stamp did to a single file.
type Result struct {
	Path       string
	OldVersion string
	NewVersion string
	Changed    bool
}

// Stamp replaces the first version field in content with version and returns
// the rewritten content. Unlike plain sed, a content with no recognisable
// version field is an error rather than a silent no-op.
func Stamp(content []byte, format Format, version string) ([]byte, string, error) {
	pattern, ok := fieldPatterns[format]
	if !ok {
		return nil, "", fmt.Errorf("unknown manifest format %q", format)
	}

	loc := pattern.FindSubmatchIndex(content)
	if loc == nil {
		return nil, "", fmt.Errorf("no version field found (expected %s-style field)", format)
	}

	// loc[4]:loc[5] is the current version value (second capture group).
	old := string(content[loc[4]:loc[5]])

	stamped := make([]byte, 0, len(content)+len(version)-len(old))
	stamped = append(stamped, content[:loc[4]]...)
	stamped = append(stamped, version...)
	stamped = append(stamped, content[loc[5]:]...)

	return stamped, old, nil
}

// Apply stamps a manifest on disk, preserving its file mode.
func Apply(file File, version string) (*Result, error) {
	info, err := os.Stat(file.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat manifest: %w", err)
	}

	content, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	stamped, old, err := Stamp(content, file.Format, version)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}

	result := &Result{
		Path:       file.Path,
		OldVersion: old,
		NewVersion: version,
		Changed:    old != version,
	}

	if !result.Changed {
		return result, nil
	}

	if err := os.WriteFile(file.Path, stamped, info.Mode()); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	return result, nil
}

// ApplyAll stamps every manifest, failing on the first error. Files already
// at the requested version are left untouched, so re-running is safe.
func ApplyAll(files []File, version string) ([]Result, error) {
	results := make([]Result, 0, len(files))
	for _, f := range files {
		r, err := Apply(f, version)
		if err != nil {
			return results, err
		}
		results = append(results, *r)
	}
	return results, nil
}
