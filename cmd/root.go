package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	colour "github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	githubToken string
	ownerFlag   string
	repoFlag    string
	showVersion bool

	// Version information (set via SetVersionInfo from main)
	appVersion = "dev"
	buildTime  = "unknown"
	gitCommit  = "unknown"

	// Colours for output
	green  = colour.New(colour.FgGreen, colour.Bold)
	yellow = colour.New(colour.FgYellow, colour.Bold)
	red    = colour.New(colour.FgRed, colour.Bold)
	cyan   = colour.New(colour.FgCyan)
	grey   = colour.New(colour.FgHiBlack)
)

// SetVersionInfo sets the version information from the main package
func SetVersionInfo(version, build, commit string) {
	appVersion = version
	buildTime = build
	gitCommit = commit
}

var rootCmd = &cobra.Command{
	Use:   "releasekit",
	Short: "Release pipeline for the CCUsage macOS menubar app",
	Long: `releasekit drives the two-stage release pipeline for the CCUsage macOS
menubar app: stamp the version into the Tauri manifests, create a draft
GitHub release, build the macOS bundle and attach it to the draft.

Publishing the draft stays a manual step.`,
	Example: `  # Stage 1: stamp manifests and create the draft release
  releasekit draft --version 1.2.3

  # Stage 2: build the bundle and attach it to the draft
  releasekit bundle --version 1.2.3 --release-id 123456

  # Both stages in one go (local releases)
  releasekit run --version 1.2.3

  # Inspect recent releases, drafts included
  releasekit status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("releasekit %s\n", appVersion)
			fmt.Printf("Build time: %s\n", buildTime)
			fmt.Printf("Git commit: %s\n", gitCommit)
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "pipeline config file (default .releasekit.yaml when present)")
	rootCmd.PersistentFlags().StringVarP(&githubToken, "token", "t", os.Getenv("GITHUB_TOKEN"), "GitHub token (or GITHUB_TOKEN env var)")
	rootCmd.PersistentFlags().StringVar(&ownerFlag, "owner", "", "override the configured repository owner")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "override the configured repository name")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "show version information")
}

func Execute() error {
	return rootCmd.Execute()
}

// detectGitHubToken attempts to find a GitHub token from multiple sources
func detectGitHubToken(providedToken string) string {
	// 1. Use explicitly provided token (via -t flag or GITHUB_TOKEN env var)
	//    Note: GITHUB_TOKEN is automatically available in GitHub Actions
	if providedToken != "" {
		return providedToken
	}

	// 2. Try to get token from GitHub CLI
	ghToken, err := getGitHubCLIToken()
	if err == nil && ghToken != "" {
		return ghToken
	}

	// 3. No token found - release creation will fail with a clear API error
	return ""
}

// getGitHubCLIToken attempts to retrieve a token from the GitHub CLI
func getGitHubCLIToken() (string, error) {
	cmd := exec.Command("gh", "auth", "token")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return "", fmt.Errorf("gh auth token returned empty")
	}

	return token, nil
}
