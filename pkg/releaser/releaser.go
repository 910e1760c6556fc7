// Package releaser exposes the release pipeline as a library, for callers
// that want the draft/bundle stages without the CLI.
package releaser

import (
	"context"
	"fmt"

	"github.com/ccusage-menubar/releasekit/internal/config"
	"github.com/ccusage-menubar/releasekit/internal/github"
	"github.com/ccusage-menubar/releasekit/internal/pipeline"
	"github.com/ccusage-menubar/releasekit/internal/shell"
	"github.com/ccusage-menubar/releasekit/internal/toolchain"
	"github.com/ccusage-menubar/releasekit/pkg/types"
)

// Options configures a Releaser.
type Options struct {
	// Token authenticates against the hosting API. Empty means
	// unauthenticated, which will fail for release creation.
	Token string

	// ConfigPath points at a pipeline config file. Empty loads
	// .releasekit.yaml when present, defaults otherwise.
	ConfigPath string

	// Owner and Repo override the configured repository when non-empty.
	Owner string
	Repo  string
}

// Releaser runs release pipeline stages programmatically.
type Releaser struct {
	pipeline *pipeline.Pipeline
	client   *github.Client
	config   config.Pipeline
}

// New creates a Releaser from options.
func New(opts Options) (*Releaser, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.Owner != "" {
		cfg.Owner = opts.Owner
	}
	if opts.Repo != "" {
		cfg.Repo = opts.Repo
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline configuration: %w", err)
	}

	client := github.NewClient(opts.Token, cfg.Owner, cfg.Repo)
	builder := toolchain.NewBuilder(shell.New(), cfg.BuildTarget, cfg.BundlePath())

	return &Releaser{
		pipeline: pipeline.New(client, builder, cfg),
		client:   client,
		config:   cfg,
	}, nil
}

// Config returns the effective pipeline configuration.
func (r *Releaser) Config() config.Pipeline {
	return r.config
}

// Draft creates a draft release for version and returns it along with any
// preflight warnings.
func (r *Releaser) Draft(ctx context.Context, version string) (*types.Release, []string, error) {
	result, err := r.pipeline.Draft(ctx, version)
	if err != nil {
		return nil, nil, err
	}
	return result.Release, result.Warnings, nil
}

// Bundle builds and uploads the bundle to an existing draft release.
func (r *Releaser) Bundle(ctx context.Context, version string, releaseID int64) (*types.Asset, error) {
	result, err := r.pipeline.Bundle(ctx, version, releaseID)
	if err != nil {
		return nil, err
	}
	return result.Asset, nil
}

// Run executes both stages in order.
func (r *Releaser) Run(ctx context.Context, version string) (*types.Release, *types.Asset, error) {
	draft, bundle, err := r.pipeline.Run(ctx, version)
	if err != nil {
		if draft != nil {
			// Stage two failed; surface the orphaned draft in the error.
			return draft.Release, nil, fmt.Errorf("bundle stage failed, draft release %d remains without an asset: %w", draft.Release.ID, err)
		}
		return nil, nil, err
	}
	return draft.Release, bundle.Asset, nil
}

// Releases lists recent releases, drafts included.
func (r *Releaser) Releases(ctx context.Context, limit int) ([]types.Release, error) {
	return r.client.ListReleases(ctx, limit)
}
