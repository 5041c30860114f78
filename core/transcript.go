// Package core defines the invocation-log event model and the Transcript
// document that readers produce and renderers consume.
package core

// Transcript is the parsed form of a single invocation log.
type Transcript struct {
	LogFile   string    // base name of the log file
	Model     string    // model of the first assistant message; empty if none
	Timestamp *string   // taken from an invocation_<ts>.log file name; may be empty
	Headers   []string  // plain-text header lines, in log order
	Sections  []Section // rendered in order after the document header
}

// SectionKind enumerates transcript section kinds.
type SectionKind string

const (
	SectionTurn        SectionKind = "turn"
	SectionToolResults SectionKind = "tool_results"
	SectionSummary     SectionKind = "summary"
)

// Section is one block of the transcript body. The Kind field determines
// which other fields are populated.
type Section struct {
	Kind SectionKind

	Turn      int        // 1-based turn number, set for "turn"
	Text      string     // joined and trimmed assistant text, set for "turn"
	ToolCalls []ToolCall // set for "turn"

	Results []ToolResult // set for "tool_results"

	Summary *Summary // set for "summary"
}

// ToolCall is a tool_use block from an assistant message.
type ToolCall struct {
	Name  string
	Input ToolInput
}

// ToolResult is a tool_result block from a user message.
type ToolResult struct {
	ToolUseID string
	Content   string
	IsError   bool
}

// Summary holds the figures of the final result event. Nil or empty fields
// were absent from the log.
type Summary struct {
	CostUSD    *float64
	DurationMS *float64
	NumTurns   string
}
