package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Parse validates a release version string. The version must be a plain
// dotted semantic version without a leading "v" (the tag prefix is added
// separately when the tag is derived).
func Parse(versionStr string) (*semver.Version, error) {
	if versionStr == "" {
		return nil, fmt.Errorf("version is required")
	}

	if strings.HasPrefix(versionStr, "v") || strings.HasPrefix(versionStr, "V") {
		return nil, fmt.Errorf("version %q must not include a leading \"v\" (the tag prefix is added automatically)", versionStr)
	}

	ver, err := semver.StrictNewVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", versionStr, err)
	}

	return ver, nil
}

// Tag derives the git tag for a version using the given prefix.
func Tag(prefix string, ver *semver.Version) string {
	return prefix + ver.String()
}

// Title renders the release title from a template. The template uses
// {version} as the placeholder, e.g. "CCUsage Menubar v{version}".
func Title(template string, ver *semver.Version) string {
	return strings.ReplaceAll(template, "{version}", ver.String())
}
