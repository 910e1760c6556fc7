package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List recent releases, drafts included",
	Long: `Show the most recent releases with their draft state and asset count.
A draft without assets usually means a bundle stage failed or never ran;
re-run it with the release identifier shown here.`,
	Example: `  releasekit status
  releasekit status --limit 5`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().IntVar(&statusLimit, "limit", 10, "number of releases to show")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	rel, err := newReleaser()
	if err != nil {
		return err
	}

	releases, err := rel.Releases(cmd.Context(), statusLimit)
	if err != nil {
		return fmt.Errorf("failed to list releases: %w", err)
	}

	if len(releases) == 0 {
		grey.Printf("No releases in %s yet.\n", rel.Config().FullName())
		return nil
	}

	cyan.Printf("📦 Releases in %s\n", rel.Config().FullName())
	cyan.Println("──────────────────────────────────────────────────────")
	fmt.Printf("%-12s %-10s %-10s %-7s %s\n", "ID", "Tag", "State", "Assets", "Created")

	for _, r := range releases {
		state := "published"
		lineColour := green
		if r.Draft {
			state = "draft"
			lineColour = yellow
		}

		assets := fmt.Sprintf("%d", r.AssetCount)
		if r.Draft && r.AssetCount == 0 {
			assets = "0 ⚠️"
		}

		created := "-"
		if !r.CreatedAt.IsZero() {
			created = formatUKDate(r.CreatedAt)
		}

		lineColour.Printf("%-12d %-10s %-10s %-7s %s\n", r.ID, r.TagName, state, assets, created)
	}

	now := time.Now().UTC()
	grey.Printf("\nChecked at: %s\n", now.Format("2 Jan 2006 15:04:05 MST"))

	return nil
}
