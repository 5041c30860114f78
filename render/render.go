// Package render defines the interface for turning transcripts into output
// documents.
package render

import (
	"io"

	"github.com/sonnes/extract-transcript/core"
)

// Renderer writes a transcript to w as a complete document.
type Renderer interface {
	Render(w io.Writer, t *core.Transcript) error
}
