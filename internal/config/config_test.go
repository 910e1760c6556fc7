package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}

	if cfg.TagPrefix != "v" {
		t.Errorf("expected tag prefix v, got %q", cfg.TagPrefix)
	}

	manifests := cfg.Manifests()
	if len(manifests) != 2 {
		t.Fatalf("expected 2 manifests, got %d", len(manifests))
	}
	if manifests[0].Path != "src-tauri/Cargo.toml" {
		t.Errorf("unexpected cargo manifest path: %s", manifests[0].Path)
	}
	if manifests[1].Path != "src-tauri/tauri.conf.json" {
		t.Errorf("unexpected tauri config path: %s", manifests[1].Path)
	}
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	dir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(oldWd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing default config file must not error: %v", err)
	}
	if cfg.Owner != Default().Owner {
		t.Error("expected defaults when no config file exists")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "releasekit.yaml")
	content := `owner: someone
repo: fork
tag_prefix: rel-
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Owner != "someone" || cfg.Repo != "fork" {
		t.Errorf("expected overridden repo, got %s", cfg.FullName())
	}
	if cfg.TagPrefix != "rel-" {
		t.Errorf("expected overridden tag prefix, got %q", cfg.TagPrefix)
	}
	// Fields absent from the file keep their defaults.
	if cfg.BuildTarget != "aarch64-apple-darwin" {
		t.Errorf("expected default build target, got %q", cfg.BuildTarget)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "releasekit.yaml")
	if err := os.WriteFile(path, []byte("owner: \"\"\nrepo: \"\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for empty owner/repo")
	}
}

func TestBundlePath(t *testing.T) {
	cfg := Default()
	want := "src-tauri/target/aarch64-apple-darwin/release/bundle/dmg"
	if got := cfg.BundlePath(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
