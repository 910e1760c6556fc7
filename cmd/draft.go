package cmd

import (
	"fmt"
	"os"

	"github.com/ccusage-menubar/releasekit/pkg/releaser"
	"github.com/spf13/cobra"
)

var draftVersion string

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Stamp the manifests and create a draft release",
	Long: `Stamp the release version into the Tauri manifests, run the preflight
checks and create a draft release on GitHub. Prints the release identifier
for the bundle stage; in GitHub Actions the identifier is also appended to
$GITHUB_OUTPUT as release_id.`,
	Example: `  releasekit draft --version 1.2.3`,
	RunE:    runDraft,
}

func init() {
	draftCmd.Flags().StringVar(&draftVersion, "version", "", "release version without leading v (e.g., 1.2.3)")
	_ = draftCmd.MarkFlagRequired("version")
	rootCmd.AddCommand(draftCmd)
}

func newReleaser() (*releaser.Releaser, error) {
	return releaser.New(releaser.Options{
		Token:      detectGitHubToken(githubToken),
		ConfigPath: configPath,
		Owner:      ownerFlag,
		Repo:       repoFlag,
	})
}

func runDraft(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	rel, err := newReleaser()
	if err != nil {
		return err
	}

	release, warnings, err := rel.Draft(cmd.Context(), draftVersion)
	if err != nil {
		red.Fprintf(os.Stderr, "❌ Draft stage failed: %v\n", err)
		os.Exit(1)
	}

	for _, w := range warnings {
		yellow.Fprintf(os.Stderr, "⚠️  %s\n", w)
	}

	// Release ID first, on its own line, for script consumption.
	fmt.Println(release.ID)

	green.Printf("✅ Draft release created: %s (%s)\n", release.Name, release.TagName)
	if release.URL != "" {
		grey.Printf("   %s\n", release.URL)
	}

	if err := writeGitHubOutput("release_id", fmt.Sprintf("%d", release.ID)); err != nil {
		yellow.Fprintf(os.Stderr, "⚠️  Failed to write GITHUB_OUTPUT: %v\n", err)
	}

	return nil
}

// writeGitHubOutput appends a key=value pair to the GitHub Actions output
// file when running in a workflow. A no-op elsewhere.
func writeGitHubOutput(key, value string) error {
	outputFile := os.Getenv("GITHUB_OUTPUT")
	if outputFile == "" {
		return nil
	}

	f, err := os.OpenFile(outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s=%s\n", key, value)
	return err
}
