package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var runVersion string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run both release stages in one process",
	Long: `Create the draft release and immediately build and attach the bundle.
Useful for cutting a release from a local machine instead of CI. The bundle
stage only starts once the draft stage has produced a release identifier; if
the bundle stage fails the draft persists without an asset.`,
	Example: `  releasekit run --version 1.2.3`,
	RunE:    runRun,
}

func init() {
	runCmd.Flags().StringVar(&runVersion, "version", "", "release version without leading v (e.g., 1.2.3)")
	_ = runCmd.MarkFlagRequired("version")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	rel, err := newReleaser()
	if err != nil {
		return err
	}

	release, asset, err := rel.Run(cmd.Context(), runVersion)
	if err != nil {
		red.Fprintf(os.Stderr, "❌ %v\n", err)
		if release != nil {
			yellow.Fprintf(os.Stderr, "⚠️  Draft release %d (%s) was created; re-run the bundle stage with:\n", release.ID, release.TagName)
			yellow.Fprintf(os.Stderr, "   releasekit bundle --version %s --release-id %d\n", runVersion, release.ID)
		}
		os.Exit(1)
	}

	fmt.Println(release.ID)
	green.Printf("✅ Draft release %s ready with %s attached\n", release.TagName, asset.Name)
	grey.Println("   Publish it from the GitHub releases page when ready.")

	return nil
}
