package stamp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const cargoToml = `[package]
name = "ccusage-menubar"
version = "0.1.0"
description = "CCUsage macOS menubar app"
edition = "2021"

[dependencies]
tauri = { version = "2", features = ["tray-icon"] }
serde = { version = "1", features = ["derive"] }
`

const tauriConf = `{
  "productName": "CCUsage Menubar",
  "version": "0.1.0",
  "identifier": "com.ccusage.menubar",
  "bundle": {
    "active": true,
    "targets": ["dmg"]
  }
}
`

func TestStamp_TOML(t *testing.T) {
	stamped, old, err := Stamp([]byte(cargoToml), FormatTOML, "1.2.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if old != "0.1.0" {
		t.Errorf("expected old version 0.1.0, got %s", old)
	}

	if !bytes.Contains(stamped, []byte(`version = "1.2.3"`)) {
		t.Error("expected package version to be stamped")
	}

	// The dependency version constraints must survive untouched.
	if !bytes.Contains(stamped, []byte(`tauri = { version = "2",`)) {
		t.Error("dependency version constraint was modified")
	}
}

func TestStamp_JSON(t *testing.T) {
	stamped, old, err := Stamp([]byte(tauriConf), FormatJSON, "1.2.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if old != "0.1.0" {
		t.Errorf("expected old version 0.1.0, got %s", old)
	}

	if !bytes.Contains(stamped, []byte(`"version": "1.2.3"`)) {
		t.Error("expected version field to be stamped")
	}

	// Everything but the version value is preserved byte for byte.
	if !bytes.Contains(stamped, []byte(`"identifier": "com.ccusage.menubar"`)) {
		t.Error("surrounding fields were modified")
	}
}

func TestStamp_FirstOccurrenceOnly(t *testing.T) {
	content := []byte(`{"version": "0.1.0", "engine": {"version": "18.0.0"}}`)

	stamped, _, err := Stamp(content, FormatJSON, "1.2.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"version": "1.2.3", "engine": {"version": "18.0.0"}}`
	if string(stamped) != want {
		t.Errorf("expected %q, got %q", want, stamped)
	}
}

func TestStamp_Idempotent(t *testing.T) {
	once, _, err := Stamp([]byte(cargoToml), FormatTOML, "1.2.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	twice, old, err := Stamp(once, FormatTOML, "1.2.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if old != "1.2.3" {
		t.Errorf("expected old version 1.2.3 on second pass, got %s", old)
	}

	if !bytes.Equal(once, twice) {
		t.Error("stamping twice with the same version changed the file")
	}
}

func TestStamp_MissingField(t *testing.T) {
	_, _, err := Stamp([]byte("[package]\nname = \"app\"\n"), FormatTOML, "1.2.3")
	if err == nil {
		t.Fatal("expected error when no version field is present")
	}
}

func TestStamp_UnknownFormat(t *testing.T) {
	_, _, err := Stamp([]byte(cargoToml), Format("ini"), "1.2.3")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.toml")
	if err := os.WriteFile(path, []byte(cargoToml), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Apply(File{Path: path, Format: FormatTOML}, "1.2.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Changed {
		t.Error("expected Changed to be true")
	}
	if result.OldVersion != "0.1.0" || result.NewVersion != "1.2.3" {
		t.Errorf("unexpected result: %+v", result)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(content, []byte(`version = "1.2.3"`)) {
		t.Error("file on disk was not stamped")
	}

	// Second apply with the same version is a no-op.
	result, err = Apply(File{Path: path, Format: FormatTOML}, "1.2.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Changed {
		t.Error("expected no change on repeated apply")
	}
}

func TestApply_MissingFile(t *testing.T) {
	_, err := Apply(File{Path: filepath.Join(t.TempDir(), "nope.toml"), Format: FormatTOML}, "1.2.3")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyAll(t *testing.T) {
	dir := t.TempDir()
	cargoPath := filepath.Join(dir, "Cargo.toml")
	confPath := filepath.Join(dir, "tauri.conf.json")

	if err := os.WriteFile(cargoPath, []byte(cargoToml), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(confPath, []byte(tauriConf), 0644); err != nil {
		t.Fatal(err)
	}

	files := []File{
		{Path: cargoPath, Format: FormatTOML},
		{Path: confPath, Format: FormatJSON},
	}

	results, err := ApplyAll(files, "1.2.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Changed {
			t.Errorf("expected %s to change", r.Path)
		}
	}
}

func TestApplyAll_StopsOnError(t *testing.T) {
	dir := t.TempDir()
	confPath := filepath.Join(dir, "tauri.conf.json")
	if err := os.WriteFile(confPath, []byte(tauriConf), 0644); err != nil {
		t.Fatal(err)
	}

	files := []File{
		{Path: filepath.Join(dir, "missing.toml"), Format: FormatTOML},
		{Path: confPath, Format: FormatJSON},
	}

	_, err := ApplyAll(files, "1.2.3")
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}

	// The second file must not have been touched.
	content, readErr := os.ReadFile(confPath)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if string(content) != tauriConf {
		t.Error("later manifest was stamped despite earlier failure")
	}
}
