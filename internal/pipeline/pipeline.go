// Package pipeline wires the two release stages together: draft creation
// and bundle upload. The stages run in separate environments in CI, so each
// stage stamps the manifests itself; the only state crossing the boundary
// is the release identifier.
package pipeline

import (
	"context"
	"fmt"

	"github.com/ccusage-menubar/releasekit/internal/config"
	"github.com/ccusage-menubar/releasekit/internal/notes"
	"github.com/ccusage-menubar/releasekit/internal/preflight"
	"github.com/ccusage-menubar/releasekit/internal/stamp"
	"github.com/ccusage-menubar/releasekit/internal/version"
	"github.com/ccusage-menubar/releasekit/pkg/types"
)

// ReleaseClient defines the hosting-API operations the pipeline needs
type ReleaseClient interface {
	CreateDraftRelease(ctx context.Context, tag, name, body string) (*types.Release, error)
	GetRelease(ctx context.Context, id int64) (*types.Release, error)
	GetLatestRelease(ctx context.Context) (*types.Release, error)
	TagExists(ctx context.Context, tag string) (bool, error)
	UploadAsset(ctx context.Context, releaseID int64, path string) (*types.Asset, error)
}

// BundleBuilder produces the installable bundle
type BundleBuilder interface {
	Provision() error
	Build() error
	BundlePath() (string, error)
}

// Pipeline executes the release stages
type Pipeline struct {
	client  ReleaseClient
	builder BundleBuilder
	config  config.Pipeline
}

// New creates a pipeline
func New(client ReleaseClient, builder BundleBuilder, cfg config.Pipeline) *Pipeline {
	return &Pipeline{
		client:  client,
		builder: builder,
		config:  cfg,
	}
}

// DraftResult is the outcome of the draft stage
type DraftResult struct {
	Release  *types.Release
	Stamped  []stamp.Result
	Warnings []string
}

// Draft runs stage one: stamp the manifests, run the preflight checks and
// create the draft release. Any failure aborts; nothing is rolled back.
func (p *Pipeline) Draft(ctx context.Context, versionStr string) (*DraftResult, error) {
	ver, err := version.Parse(versionStr)
	if err != nil {
		return nil, err
	}

	stamped, err := stamp.ApplyAll(p.config.Manifests(), ver.String())
	if err != nil {
		return nil, fmt.Errorf("failed to stamp manifests: %w", err)
	}

	tag := version.Tag(p.config.TagPrefix, ver)

	check, err := preflight.Check(ctx, p.client, tag, ver)
	if err != nil {
		return nil, err
	}

	title := version.Title(p.config.TitleTemplate, ver)

	release, err := p.client.CreateDraftRelease(ctx, tag, title, notes.Body())
	if err != nil {
		return nil, err
	}

	return &DraftResult{
		Release:  release,
		Stamped:  stamped,
		Warnings: check.Warnings,
	}, nil
}

// BundleResult is the outcome of the bundle stage
type BundleResult struct {
	Release    *types.Release
	Asset      *types.Asset
	BundlePath string
	Stamped    []stamp.Result
}

// Bundle runs stage two against an existing draft release: re-stamp the
// manifests, provision the toolchain, build the bundle and upload it. A
// failure after the draft exists leaves the draft without an asset; that is
// deliberate, the draft stays inspectable and the stage can be re-run.
func (p *Pipeline) Bundle(ctx context.Context, versionStr string, releaseID int64) (*BundleResult, error) {
	ver, err := version.Parse(versionStr)
	if err != nil {
		return nil, err
	}

	release, err := p.client.GetRelease(ctx, releaseID)
	if err != nil {
		return nil, err
	}
	if !release.Draft {
		return nil, fmt.Errorf("release %d (%s) is already published; bundles are only attached to drafts", releaseID, release.TagName)
	}

	tag := version.Tag(p.config.TagPrefix, ver)
	if release.TagName != tag {
		return nil, fmt.Errorf("release %d is tagged %s, expected %s; wrong release ID?", releaseID, release.TagName, tag)
	}

	stamped, err := stamp.ApplyAll(p.config.Manifests(), ver.String())
	if err != nil {
		return nil, fmt.Errorf("failed to stamp manifests: %w", err)
	}

	if err := p.builder.Provision(); err != nil {
		return nil, err
	}

	if err := p.builder.Build(); err != nil {
		return nil, err
	}

	bundlePath, err := p.builder.BundlePath()
	if err != nil {
		return nil, err
	}

	asset, err := p.client.UploadAsset(ctx, releaseID, bundlePath)
	if err != nil {
		return nil, err
	}

	return &BundleResult{
		Release:    release,
		Asset:      asset,
		BundlePath: bundlePath,
		Stamped:    stamped,
	}, nil
}

// Run executes both stages in order. The bundle stage only starts once the
// draft stage has produced a release identifier.
func (p *Pipeline) Run(ctx context.Context, versionStr string) (*DraftResult, *BundleResult, error) {
	draft, err := p.Draft(ctx, versionStr)
	if err != nil {
		return nil, nil, err
	}

	bundle, err := p.Bundle(ctx, versionStr, draft.Release.ID)
	if err != nil {
		return draft, nil, err
	}

	return draft, bundle, nil
}
