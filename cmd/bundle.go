package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	bundleVersion   string
	bundleReleaseID int64
)

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Build the macOS bundle and attach it to a draft release",
	Long: `Re-stamp the manifests, provision the toolchain (rustup target, bun
dependencies), build the Tauri bundle for the configured target and upload
it as an asset on the draft release created by the draft stage.

Runs in a fresh checkout in CI, which is why the stamping is repeated here.`,
	Example: `  releasekit bundle --version 1.2.3 --release-id 123456`,
	RunE:    runBundle,
}

func init() {
	bundleCmd.Flags().StringVar(&bundleVersion, "version", "", "release version without leading v (e.g., 1.2.3)")
	bundleCmd.Flags().Int64Var(&bundleReleaseID, "release-id", 0, "identifier of the draft release to attach the bundle to")
	_ = bundleCmd.MarkFlagRequired("version")
	_ = bundleCmd.MarkFlagRequired("release-id")
	rootCmd.AddCommand(bundleCmd)
}

func runBundle(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	rel, err := newReleaser()
	if err != nil {
		return err
	}

	cyan.Printf("📦 Building %s for %s\n", bundleVersion, rel.Config().BuildTarget)

	asset, err := rel.Bundle(cmd.Context(), bundleVersion, bundleReleaseID)
	if err != nil {
		red.Fprintf(os.Stderr, "❌ Bundle stage failed: %v\n", err)
		red.Fprintf(os.Stderr, "   The draft release persists without an asset; fix the failure and re-run.\n")
		os.Exit(1)
	}

	green.Printf("✅ Uploaded %s (%s) to release %d\n", asset.Name, formatSize(asset.Size), bundleReleaseID)

	return nil
}
