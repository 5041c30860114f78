// Package markdown renders transcripts as a markdown document.
package markdown

import (
	"fmt"
	"io"
	"strings"

	"github.com/sonnes/extract-transcript/core"
)

const (
	// maxPromptChars is the prompt length shown in the document header.
	maxPromptChars = 300
	// maxResultChars is the tool result length shown on a result line.
	maxResultChars = 200
	// toolIDChars is the tool_use_id prefix shown on a result line.
	toolIDChars = 12

	promptPrefix = "Prompt:"
)

// Renderer writes transcripts as markdown.
type Renderer struct{}

// New creates a markdown Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the document for t to w. The document carries no trailing
// newline.
func (r *Renderer) Render(w io.Writer, t *core.Transcript) error {
	_, err := io.WriteString(w, Document(t))
	return err
}

// Document assembles the full markdown document: the metadata header, a
// separator, then every section in order.
func Document(t *core.Transcript) string {
	out := []string{
		"# Invocation Transcript",
		"",
		fmt.Sprintf("**Log file:** `%s`", t.LogFile),
	}
	if t.Model != "" {
		out = append(out, fmt.Sprintf("**Model:** %s", t.Model))
	}
	if t.Timestamp != nil {
		out = append(out, fmt.Sprintf("**Timestamp:** %s", *t.Timestamp))
	}
	if prompt, ok := findPrompt(t.Headers); ok {
		out = append(out, fmt.Sprintf("\n**Prompt:** %s", core.Head(prompt, maxPromptChars)))
	}
	out = append(out, "\n---\n")

	for _, s := range t.Sections {
		out = append(out, sectionLines(s)...)
	}
	return strings.Join(out, "\n")
}

// findPrompt returns the trimmed remainder of the first "Prompt:" header.
func findPrompt(headers []string) (string, bool) {
	for _, h := range headers {
		if strings.HasPrefix(h, promptPrefix) {
			return strings.TrimSpace(h[len(promptPrefix):]), true
		}
	}
	return "", false
}

func sectionLines(s core.Section) []string {
	switch s.Kind {
	case core.SectionTurn:
		return turnLines(s)
	case core.SectionToolResults:
		return resultLines(s.Results)
	case core.SectionSummary:
		return summaryLines(s.Summary)
	default:
		return nil
	}
}

func turnLines(s core.Section) []string {
	lines := []string{fmt.Sprintf("\n### Turn %d — Assistant\n", s.Turn)}
	if s.Text != "" {
		lines = append(lines, s.Text)
	}
	if len(s.ToolCalls) > 0 {
		lines = append(lines, "\n**Tool calls:**")
		for _, c := range s.ToolCalls {
			lines = append(lines, fmt.Sprintf("  - **%s**: %s", c.Name, SummarizeToolInput(c.Name, c.Input)))
		}
	}
	return lines
}

func resultLines(results []core.ToolResult) []string {
	if len(results) == 0 {
		return nil
	}
	lines := []string{"\n**Tool results:**"}
	for _, res := range results {
		label := "Result"
		if res.IsError {
			label = "ERROR"
		}
		lines = append(lines, fmt.Sprintf("  - [%s] `%s…`: %s",
			label, core.Head(res.ToolUseID, toolIDChars), core.Head(res.Content, maxResultChars)))
	}
	return lines
}

func summaryLines(s *core.Summary) []string {
	lines := []string{"\n---\n### Session Summary\n"}
	if s == nil {
		return lines
	}
	if s.CostUSD != nil {
		lines = append(lines, fmt.Sprintf("- **Cost:** $%.4f", *s.CostUSD))
	}
	if s.DurationMS != nil {
		lines = append(lines, fmt.Sprintf("- **Duration:** %.1fs", *s.DurationMS/1000))
	}
	if s.NumTurns != "" {
		lines = append(lines, fmt.Sprintf("- **Turns:** %s", s.NumTurns))
	}
	return lines
}
