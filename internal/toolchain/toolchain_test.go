package toolchain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ccusage-menubar/releasekit/internal/shell"
)

const target = "aarch64-apple-darwin"

func newFakeBuilder(fake *shell.FakeRecorder, bundleDir string) *Builder {
	return NewBuilder(&shell.Shell{Exec: fake.Exec()}, target, bundleDir)
}

func TestProvision(t *testing.T) {
	fake := &shell.FakeRecorder{}
	builder := newFakeBuilder(fake, "")

	if err := builder.Provision(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !fake.Ran("rustup target add " + target) {
		t.Error("expected rustup target add to run")
	}
	if !fake.Ran("bun install") {
		t.Error("expected bun install to run")
	}
}

func TestProvision_RustupFailureStopsEarly(t *testing.T) {
	fake := &shell.FakeRecorder{
		Failures: map[string]error{
			"rustup target add " + target: errors.New("no such target"),
		},
	}
	builder := newFakeBuilder(fake, "")

	if err := builder.Provision(); err == nil {
		t.Fatal("expected error when rustup fails")
	}

	if fake.Ran("bun install") {
		t.Error("bun install must not run after rustup failure")
	}
}

func TestBuild(t *testing.T) {
	fake := &shell.FakeRecorder{}
	builder := newFakeBuilder(fake, "")

	if err := builder.Build(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !fake.Ran("bun tauri build --target " + target) {
		t.Error("expected tauri build to run with the build target")
	}
}

func TestBuild_Failure(t *testing.T) {
	fake := &shell.FakeRecorder{
		Failures: map[string]error{
			"bun tauri build --target " + target: errors.New("compilation failed"),
		},
	}
	builder := newFakeBuilder(fake, "")

	if err := builder.Build(); err == nil {
		t.Fatal("expected error when the build fails")
	}
}

func TestBundlePath(t *testing.T) {
	dir := t.TempDir()
	dmg := filepath.Join(dir, "CCUsage Menubar_1.2.3_aarch64.dmg")
	if err := os.WriteFile(dmg, []byte("bundle"), 0644); err != nil {
		t.Fatal(err)
	}

	builder := newFakeBuilder(&shell.FakeRecorder{}, dir)

	path, err := builder.BundlePath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != dmg {
		t.Errorf("expected %s, got %s", dmg, path)
	}
}

func TestBundlePath_NoBundle(t *testing.T) {
	builder := newFakeBuilder(&shell.FakeRecorder{}, t.TempDir())

	if _, err := builder.BundlePath(); err == nil {
		t.Fatal("expected error when no bundle exists")
	}
}

func TestBundlePath_MultipleBundles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.dmg", "b.dmg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("bundle"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	builder := newFakeBuilder(&shell.FakeRecorder{}, dir)

	if _, err := builder.BundlePath(); err == nil {
		t.Fatal("expected error when multiple bundles exist")
	}
}
