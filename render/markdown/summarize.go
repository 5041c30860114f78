package markdown

import (
	"fmt"
	"strings"

	"github.com/sonnes/extract-transcript/core"
)

const (
	// maxCommandChars is the Bash command length shown in a summary.
	maxCommandChars = 120
	// maxFallbackKeys is the number of input keys listed for unknown tools.
	maxFallbackKeys = 3
)

// SummarizeToolInput describes a tool call in a few words, e.g.
// "`main.go` (replacing 42 chars)" for an Edit. Tools without a dedicated
// rule list up to three of their input keys.
func SummarizeToolInput(name string, in core.ToolInput) string {
	switch name {
	case "Read":
		return code(in.String("file_path", "?"))
	case "Write":
		return fmt.Sprintf("%s (%d chars)", code(in.String("file_path", "?")), in.Count("content"))
	case "Edit":
		return fmt.Sprintf("%s (replacing %d chars)", code(in.String("file_path", "?")), in.Count("old_string"))
	case "Bash":
		cmd := in.String("command", "?")
		if core.Len(cmd) > maxCommandChars {
			cmd = core.Head(cmd, maxCommandChars) + "…"
		}
		return code(cmd)
	case "Grep":
		return fmt.Sprintf("pattern=%s in %s", code(in.String("pattern", "?")), code(in.String("path", ".")))
	case "Glob":
		return code(in.String("pattern", "?"))
	case "TodoWrite":
		return fmt.Sprintf("%d items", in.Count("todos"))
	case "Task":
		return in.String("description", "?")
	case "Skill":
		return in.String("skill", "?")
	default:
		keys := in.Keys()
		if len(keys) == 0 {
			return "(no input)"
		}
		if len(keys) > maxFallbackKeys {
			keys = keys[:maxFallbackKeys]
		}
		return "(" + strings.Join(keys, ", ") + ")"
	}
}

func code(s string) string {
	return "`" + s + "`"
}
