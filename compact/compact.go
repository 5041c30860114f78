// Package compact provides a Transformer that shortens long tool results
// before rendering.
package compact

import (
	"fmt"

	"github.com/sonnes/extract-transcript/core"
)

// DefaultMaxResultChars is the tool result length kept when Config leaves
// MaxResultChars unset.
const DefaultMaxResultChars = 500

// Config controls the compact transformer behavior.
type Config struct {
	// MaxResultChars is the number of characters of a tool result kept
	// before the length marker. Zero means DefaultMaxResultChars.
	MaxResultChars int
}

// Compactor cuts tool results down to a fixed number of characters and
// records the original length.
type Compactor struct {
	maxResultChars int
}

// New creates a Compactor from the given config.
func New(cfg Config) *Compactor {
	n := cfg.MaxResultChars
	if n <= 0 {
		n = DefaultMaxResultChars
	}
	return &Compactor{maxResultChars: n}
}

// Transform implements core.Transformer.
func (c *Compactor) Transform(t *core.Transcript) error {
	for i := range t.Sections {
		s := &t.Sections[i]
		if s.Kind != core.SectionToolResults {
			continue
		}
		for j := range s.Results {
			s.Results[j].Content = c.clip(s.Results[j].Content)
		}
	}
	return nil
}

// clip returns s unchanged when it fits, otherwise its head followed by a
// marker like "... (1234 chars total)".
func (c *Compactor) clip(s string) string {
	n := core.Len(s)
	if n <= c.maxResultChars {
		return s
	}
	return core.Head(s, c.maxResultChars) + fmt.Sprintf("... (%d chars total)", n)
}
