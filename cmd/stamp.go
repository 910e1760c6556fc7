package cmd

import (
	"os"

	"github.com/ccusage-menubar/releasekit/internal/config"
	"github.com/ccusage-menubar/releasekit/internal/stamp"
	"github.com/ccusage-menubar/releasekit/internal/version"
	"github.com/spf13/cobra"
)

var stampVersion string

var stampCmd = &cobra.Command{
	Use:   "stamp",
	Short: "Stamp the version into the manifests without releasing",
	Long: `Rewrite the version field in the Tauri manifests (Cargo.toml and
tauri.conf.json) in place. Fails when a manifest has no recognisable
version field. Safe to run repeatedly with the same version.`,
	Example: `  releasekit stamp --version 1.2.3`,
	RunE:    runStamp,
}

func init() {
	stampCmd.Flags().StringVar(&stampVersion, "version", "", "release version without leading v (e.g., 1.2.3)")
	_ = stampCmd.MarkFlagRequired("version")
	rootCmd.AddCommand(stampCmd)
}

func runStamp(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ver, err := version.Parse(stampVersion)
	if err != nil {
		return err
	}

	results, err := stamp.ApplyAll(cfg.Manifests(), ver.String())
	if err != nil {
		red.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	for _, r := range results {
		if r.Changed {
			green.Printf("✅ %s: %s → %s\n", r.Path, r.OldVersion, r.NewVersion)
		} else {
			grey.Printf("   %s already at %s\n", r.Path, r.NewVersion)
		}
	}

	return nil
}
