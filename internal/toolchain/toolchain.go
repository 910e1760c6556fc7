// Package toolchain provisions the build environment and produces the
// installable bundle. Both steps shell out: the Rust target comes from
// rustup, JS dependencies and the tauri CLI come from bun.
package toolchain

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/ccusage-menubar/releasekit/internal/shell"
)

// Builder drives the native bundler for one build target.
type Builder struct {
	sh        *shell.Shell
	target    string
	bundleDir string
}

// NewBuilder creates a builder for the given compilation target. bundleDir
// is where the bundler writes its output, with the target already
// substituted in.
func NewBuilder(sh *shell.Shell, target, bundleDir string) *Builder {
	return &Builder{
		sh:        sh,
		target:    target,
		bundleDir: bundleDir,
	}
}

// Provision registers the compilation target and installs JS dependencies.
func (b *Builder) Provision() error {
	if err := b.sh.Interact(&shell.Command{
		Name: "rustup",
		Args: []string{"target", "add", b.target},
	}); err != nil {
		return fmt.Errorf("failed to add rust target %s: %w", b.target, err)
	}

	if err := b.sh.Interact(&shell.Command{
		Name: "bun",
		Args: []string{"install"},
	}); err != nil {
		return fmt.Errorf("failed to install dependencies: %w", err)
	}

	return nil
}

// Build invokes the bundler for the configured target.
func (b *Builder) Build() error {
	if err := b.sh.Interact(&shell.Command{
		Name: "bun",
		Args: []string{"tauri", "build", "--target", b.target},
	}); err != nil {
		return fmt.Errorf("build failed for target %s: %w", b.target, err)
	}

	return nil
}

// BundlePath locates the bundle the build produced. Exactly one .dmg is
// expected; multiple bundles mean a stale target directory and we refuse to
// guess which one to ship.
func (b *Builder) BundlePath() (string, error) {
	matches, err := filepath.Glob(filepath.Join(b.bundleDir, "*.dmg"))
	if err != nil {
		return "", fmt.Errorf("failed to scan bundle directory: %w", err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no bundle found in %s (did the build succeed?)", b.bundleDir)
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", fmt.Errorf("found %d bundles in %s, expected exactly one: %v", len(matches), b.bundleDir, matches)
	}
}
