// Package notes carries the fixed release body used for every draft
// release. The body is static by design: everything version-specific lives
// in the tag and title.
package notes

import (
	_ "embed"
)

//go:embed release_notes.md
var releaseNotes string

// Body returns the release notes body template.
func Body() string {
	return releaseNotes
}
