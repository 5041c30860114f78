package core

import (
	"bytes"
	"encoding/json"
	"strings"
)

// EventType enumerates the top-level event kinds of an invocation log.
type EventType string

const (
	EventAssistant EventType = "assistant"
	EventUser      EventType = "user"
	EventResult    EventType = "result"
)

// BlockType enumerates content block kinds.
type BlockType string

const (
	BlockText       BlockType = "text"
	BlockToolUse    BlockType = "tool_use"
	BlockToolResult BlockType = "tool_result"
)

// Event is one decoded JSON line of an invocation log. The Type field
// determines which other fields are populated.
type Event struct {
	Type    EventType `json:"type"`
	Message *Message  `json:"message"` // set for "assistant" and "user"

	// Final summary fields, set for "result".
	CostUSD    *float64    `json:"cost_usd"`
	DurationMS *float64    `json:"duration_ms"`
	NumTurns   json.Number `json:"num_turns"`
}

// Message is the payload of an assistant or user event.
type Message struct {
	Model   *string         // nil when missing or null
	Content json.RawMessage // array of content blocks
}

// UnmarshalJSON implements json.Unmarshaler. A model of the wrong JSON type
// is kept as its JSON text rather than failing the whole event.
func (m *Message) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*m = Message{Content: fields["content"]}
	if s, ok := rawString(fields["model"]); ok {
		m.Model = &s
	}
	return nil
}

// ContentBlock is one piece of a message. The Type field determines which
// other fields are populated.
type ContentBlock struct {
	Type      BlockType
	Text      string          // set for "text"
	Name      *string         // set for "tool_use"; nil when missing or null
	Input     ToolInput       // set for "tool_use"
	ToolUseID *string         // set for "tool_result"; nil when missing or null
	Content   json.RawMessage // set for "tool_result"
	IsError   bool            // set for "tool_result"
}

// UnmarshalJSON implements json.Unmarshaler. Fields are decoded one by one so
// that a field of the wrong JSON type falls back on its own instead of
// dropping the block: non-string text, name and id values keep their JSON
// text, and is_error follows JSON truthiness.
func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*b = ContentBlock{Content: fields["content"]}
	if s, ok := rawString(fields["type"]); ok {
		b.Type = BlockType(s)
	}
	b.Text, _ = rawString(fields["text"])
	if s, ok := rawString(fields["name"]); ok {
		b.Name = &s
	}
	if s, ok := rawString(fields["tool_use_id"]); ok {
		b.ToolUseID = &s
	}
	if raw, ok := fields["input"]; ok {
		if err := json.Unmarshal(raw, &b.Input); err != nil {
			return err
		}
	}
	b.IsError = truthy(fields["is_error"])
	return nil
}

// Blocks decodes the message content into content blocks. Content that is
// not an array yields no blocks, and array entries that are not objects are
// dropped.
func (m *Message) Blocks() []ContentBlock {
	if m == nil || len(m.Content) == 0 {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(m.Content, &raw); err != nil {
		return nil
	}

	blocks := make([]ContentBlock, 0, len(raw))
	for _, r := range raw {
		var b ContentBlock
		if err := json.Unmarshal(r, &b); err != nil {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// ToolInput is the input mapping of a tool_use block. Unlike a plain map it
// remembers the order in which keys appeared in the log.
type ToolInput struct {
	keys   []string
	fields map[string]json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler. Anything other than a JSON
// object decodes to an empty input.
func (in *ToolInput) UnmarshalJSON(data []byte) error {
	*in = ToolInput{}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}

	fields := make(map[string]json.RawMessage)
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return err
		}
		if _, seen := fields[key]; !seen {
			keys = append(keys, key)
		}
		fields[key] = v
	}

	in.keys = keys
	in.fields = fields
	return nil
}

// Keys returns the input keys in log order.
func (in ToolInput) Keys() []string {
	return in.keys
}

// String returns the string value stored under key, or def when the key is
// missing or null. Non-string values are returned as compact JSON text.
func (in ToolInput) String(key, def string) string {
	if s, ok := rawString(in.fields[key]); ok {
		return s
	}
	return def
}

// Count returns the length of the value stored under key: characters for a
// string, elements for an array, keys for an object. Missing keys count as 0.
func (in ToolInput) Count(key string) int {
	v, ok := in.fields[key]
	if !ok {
		return 0
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return Len(s)
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(v, &arr); err == nil {
		return len(arr)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(v, &obj); err == nil {
		return len(obj)
	}
	return 0
}

// FlattenToolResult turns tool_result content into a single string. The
// content is either a plain string or an array of {"type":"text","text":...}
// objects whose text fields are joined with spaces.
func FlattenToolResult(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return compactJSON(raw)
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			continue
		}
		var text string
		if v, ok := obj["text"]; ok {
			_ = json.Unmarshal(v, &text)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}

// rawString decodes a JSON string. Other JSON values are returned as compact
// JSON text. ok is false when raw is missing or null.
func rawString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return compactJSON(raw), true
}

// truthy reports whether a JSON value counts as set: true, a non-zero
// number, or a non-empty string, array or object.
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch raw[0] {
	case 't':
		return true
	case 'f', 'n':
		return false
	case '"':
		var s string
		return json.Unmarshal(raw, &s) == nil && s != ""
	case '[':
		var arr []json.RawMessage
		return json.Unmarshal(raw, &arr) == nil && len(arr) > 0
	case '{':
		var obj map[string]json.RawMessage
		return json.Unmarshal(raw, &obj) == nil && len(obj) > 0
	default:
		var f float64
		return json.Unmarshal(raw, &f) == nil && f != 0
	}
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(bytes.TrimSpace(raw))
	}
	return buf.String()
}
