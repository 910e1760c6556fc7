package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ccusage-menubar/releasekit/internal/stamp"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks for a config file when none is given.
const DefaultPath = ".releasekit.yaml"

// Pipeline holds the full release pipeline configuration. The zero config
// is not usable; start from Default() and override via YAML or flags.
type Pipeline struct {
	// Target repository for releases.
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`

	// Tag and title derivation.
	TagPrefix     string `yaml:"tag_prefix"`
	TitleTemplate string `yaml:"title_template"`

	// Version-bearing manifests, stamped before both stages.
	CargoManifest string `yaml:"cargo_manifest"`
	TauriConfig   string `yaml:"tauri_config"`

	// Build configuration.
	BuildTarget string `yaml:"build_target"`
	BundleDir   string `yaml:"bundle_dir"`
}

// Default returns the configuration matching the CCUsage menubar release
// pipeline.
func Default() Pipeline {
	return Pipeline{
		Owner:         "ccusage-menubar",
		Repo:          "ccusage-macos-menubar",
		TagPrefix:     "v",
		TitleTemplate: "CCUsage Menubar v{version}",
		CargoManifest: "src-tauri/Cargo.toml",
		TauriConfig:   "src-tauri/tauri.conf.json",
		BuildTarget:   "aarch64-apple-darwin",
		BundleDir:     "src-tauri/target/{target}/release/bundle/dmg",
	}
}

// Load reads a YAML config file over the defaults. A missing file at the
// default path is fine; a missing file at an explicit path is an error.
func Load(path string) (Pipeline, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that every required field is populated.
func (p Pipeline) Validate() error {
	if p.Owner == "" || p.Repo == "" {
		return fmt.Errorf("owner and repo are required")
	}
	if p.TitleTemplate == "" {
		return fmt.Errorf("title_template is required")
	}
	if p.CargoManifest == "" || p.TauriConfig == "" {
		return fmt.Errorf("cargo_manifest and tauri_config are required")
	}
	if p.BuildTarget == "" {
		return fmt.Errorf("build_target is required")
	}
	return nil
}

// FullName returns the repository as owner/repo.
func (p Pipeline) FullName() string {
	return fmt.Sprintf("%s/%s", p.Owner, p.Repo)
}

// Manifests returns the version-bearing files in stamping order.
func (p Pipeline) Manifests() []stamp.File {
	return []stamp.File{
		{Path: p.CargoManifest, Format: stamp.FormatTOML},
		{Path: p.TauriConfig, Format: stamp.FormatJSON},
	}
}

// BundlePath returns the directory the bundler writes the installable
// bundle to, with the build target substituted in.
func (p Pipeline) BundlePath() string {
	return strings.ReplaceAll(p.BundleDir, "{target}", p.BuildTarget)
}
