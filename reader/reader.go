// Package reader defines the interface for parsing invocation logs into
// transcripts.
package reader

import (
	"io"

	"github.com/sonnes/extract-transcript/core"
)

// Reader parses invocation logs into transcripts.
type Reader interface {
	// ReadFile parses the log file at the given path.
	ReadFile(path string) (*core.Transcript, error)

	// Read parses a log from r. name is the log's base file name.
	Read(name string, r io.Reader) (*core.Transcript, error)
}
