// Package invocation reads stream-json invocation logs: one JSON event per
// line, interleaved with plain-text header lines written by the runner.
package invocation

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sonnes/extract-transcript/core"
)

// Reader reads invocation log files.
type Reader struct{}

// maxLineSize is the maximum log line size (64 MB). Tool results routinely
// exceed the default 64 KB bufio.Scanner buffer.
const maxLineSize = 64 << 20

const (
	filePrefix = "invocation_"
	fileSuffix = ".log"
)

// ReadFile parses a single invocation log file.
func (r *Reader) ReadFile(path string) (*core.Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open invocation log: %w", err)
	}
	defer f.Close()

	return r.Read(filepath.Base(path), f)
}

// Read parses an invocation log from src. Lines that are neither header
// lines nor valid JSON are skipped.
func (r *Reader) Read(name string, src io.Reader) (*core.Transcript, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	b := newBuilder(name)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		b.consume(lineNo, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan invocation log: %w", err)
	}
	return b.t, nil
}

// Timestamp extracts <ts> from a file name of the form invocation_<ts>.log.
func Timestamp(name string) (string, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return "", false
	}
	return name[len(filePrefix) : len(name)-len(fileSuffix)], true
}

// isHeader reports whether a trimmed line is a plain-text header line.
func isHeader(line string) bool {
	return strings.HasPrefix(line, "===") || strings.HasPrefix(line, "Prompt:") || line == "---"
}

// builder accumulates transcript sections over a single pass of the log.
type builder struct {
	t         *core.Transcript
	haveModel bool
	turn      int
}

func newBuilder(name string) *builder {
	t := &core.Transcript{LogFile: name}
	if ts, ok := Timestamp(name); ok {
		t.Timestamp = &ts
	}
	return &builder{t: t}
}

func (b *builder) consume(lineNo int, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if isHeader(line) {
		b.t.Headers = append(b.t.Headers, line)
		return
	}

	var ev core.Event
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		log.Debug("skipping undecodable line", "line", lineNo, "err", err)
		return
	}

	switch ev.Type {
	case core.EventAssistant:
		b.assistant(ev.Message)
	case core.EventUser:
		b.user(ev.Message)
	case core.EventResult:
		b.result(ev)
	default:
		log.Debug("ignoring event", "line", lineNo, "type", ev.Type)
	}
}

// assistant adds a turn section for an assistant message with visible text
// or at least one tool call.
func (b *builder) assistant(msg *core.Message) {
	if msg != nil && !b.haveModel {
		b.haveModel = true
		b.t.Model = "unknown"
		if msg.Model != nil {
			b.t.Model = *msg.Model
		}
	}

	var texts []string
	var calls []core.ToolCall
	for _, block := range msg.Blocks() {
		switch block.Type {
		case core.BlockText:
			texts = append(texts, block.Text)
		case core.BlockToolUse:
			name := "unknown"
			if block.Name != nil {
				name = *block.Name
			}
			calls = append(calls, core.ToolCall{Name: name, Input: block.Input})
		}
	}

	text := strings.TrimSpace(strings.Join(texts, "\n"))
	if text == "" && len(calls) == 0 {
		return
	}

	b.turn++
	b.t.Sections = append(b.t.Sections, core.Section{
		Kind:      core.SectionTurn,
		Turn:      b.turn,
		Text:      text,
		ToolCalls: calls,
	})
}

// user adds a tool results section for the tool_result blocks of a user
// message. Messages without tool results add nothing.
func (b *builder) user(msg *core.Message) {
	var results []core.ToolResult
	for _, block := range msg.Blocks() {
		if block.Type != core.BlockToolResult {
			continue
		}
		id := "?"
		if block.ToolUseID != nil {
			id = *block.ToolUseID
		}
		results = append(results, core.ToolResult{
			ToolUseID: id,
			Content:   core.FlattenToolResult(block.Content),
			IsError:   block.IsError,
		})
	}

	if len(results) == 0 {
		return
	}
	b.t.Sections = append(b.t.Sections, core.Section{
		Kind:    core.SectionToolResults,
		Results: results,
	})
}

func (b *builder) result(ev core.Event) {
	b.t.Sections = append(b.t.Sections, core.Section{
		Kind: core.SectionSummary,
		Summary: &core.Summary{
			CostUSD:    ev.CostUSD,
			DurationMS: ev.DurationMS,
			NumTurns:   ev.NumTurns.String(),
		},
	})
}
