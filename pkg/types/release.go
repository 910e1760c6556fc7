package types

import (
	"time"

	"github.com/Masterminds/semver/v3"
)

// Release describes a release record on the hosting side. ID is the opaque
// identifier the API assigns at creation time; it is the correlation key
// between the draft stage and the bundle stage.
type Release struct {
	ID         int64
	TagName    string
	Name       string
	Draft      bool
	Prerelease bool
	CreatedAt  time.Time
	AssetCount int
	URL        string

	// Version parsed from the tag name; nil when the tag does not parse.
	Version *semver.Version
}

// Asset describes a binary attached to a release.
type Asset struct {
	ID   int64
	Name string
	Size int64
	URL  string
}
