package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sonnes/extract-transcript/compact"
	"github.com/sonnes/extract-transcript/core"
	"github.com/sonnes/extract-transcript/reader"
	"github.com/sonnes/extract-transcript/reader/invocation"
	"github.com/sonnes/extract-transcript/render"
	"github.com/sonnes/extract-transcript/render/markdown"
)

// pipeline wires a reader, transformers and a renderer into one extraction.
type pipeline struct {
	reader       reader.Reader
	transformers []core.Transformer
	renderer     render.Renderer
}

func newPipeline() *pipeline {
	return &pipeline{
		reader:       &invocation.Reader{},
		transformers: []core.Transformer{compact.New(compact.Config{})},
		renderer:     markdown.New(),
	}
}

// run reads the log at path and returns the rendered document.
func (p *pipeline) run(path string) (string, error) {
	t, err := p.reader.ReadFile(path)
	if err != nil {
		return "", err
	}
	if err := core.Chain(t, p.transformers...); err != nil {
		return "", fmt.Errorf("compact: %w", err)
	}

	var sb strings.Builder
	if err := p.renderer.Render(&sb, t); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return sb.String(), nil
}

// extractTranscript converts the invocation log at path into markdown.
func extractTranscript(path string) (string, error) {
	return newPipeline().run(path)
}

// writeOutput writes doc to path, replacing any existing file.
func writeOutput(path, doc string) error {
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
