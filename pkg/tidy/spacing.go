package tidy

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
)

// Spacing holds the two distances that parameterize a layout: the gap
// between a parent level and its child level, and the gap between sibling
// subtrees.
type Spacing struct {
	ParentChildMargin float64 `toml:"parent_child_margin"`
	PeerMargin        float64 `toml:"peer_margin"`
}

//go:embed spacing.toml
var defaultSpacingTOML []byte

// loadDefaultSpacing parses the embedded profile at most once per process.
// Every caller shares the same result, including a failed one; the profile
// is embedded, so a parse failure is a build defect, not a runtime
// condition worth retrying.
var loadDefaultSpacing = sync.OnceValues(func() (Spacing, error) {
	var s Spacing
	if err := toml.Unmarshal(defaultSpacingTOML, &s); err != nil {
		return Spacing{}, fmt.Errorf("parse embedded spacing profile: %w", err)
	}
	if s.ParentChildMargin < 0 || s.PeerMargin < 0 {
		return Spacing{}, fmt.Errorf("embedded spacing profile: margins must be non-negative, got %+v", s)
	}
	return s, nil
})

// DefaultSpacing returns the process-wide default spacing profile.
// The profile is loaded lazily on first use and cached for the process
// lifetime.
func DefaultSpacing() (Spacing, error) {
	return loadDefaultSpacing()
}
