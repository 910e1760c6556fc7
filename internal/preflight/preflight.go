package preflight

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/ccusage-menubar/releasekit/pkg/types"
)

// ReleaseSource is the slice of the hosting API preflight needs.
type ReleaseSource interface {
	TagExists(ctx context.Context, tag string) (bool, error)
	GetLatestRelease(ctx context.Context) (*types.Release, error)
}

// Result reports the outcome of the pre-create checks.
type Result struct {
	Tag           string
	LatestVersion *semver.Version
	Warnings      []string
}

// Check verifies a draft release can be created for the given tag and
// version. A tag already in use is fatal (the create call would fail with a
// conflict anyway, this just fails earlier and clearer). A version that is
// not newer than the latest published release is only a warning, since
// re-cutting an abandoned draft at the same version is a legitimate re-run.
func Check(ctx context.Context, src ReleaseSource, tag string, ver *semver.Version) (*Result, error) {
	taken, err := src.TagExists(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to check tag %s: %w", tag, err)
	}
	if taken {
		return nil, fmt.Errorf("tag %s already has a release; pick a new version or delete the existing release", tag)
	}

	result := &Result{Tag: tag}

	latest, err := src.GetLatestRelease(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	if latest == nil || latest.Version == nil {
		// First release, or the latest tag does not parse. Nothing to
		// compare against.
		return result, nil
	}

	result.LatestVersion = latest.Version

	if !ver.GreaterThan(latest.Version) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("version %s is not newer than the latest published release %s", ver, latest.Version))
	}

	return result, nil
}
