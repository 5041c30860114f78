package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toolInput(t *testing.T, object string) ToolInput {
	t.Helper()
	var in ToolInput
	require.NoError(t, json.Unmarshal([]byte(object), &in))
	return in
}

func TestToolInputKeyOrder(t *testing.T) {
	in := toolInput(t, `{"zeta": 1, "alpha": "a", "mid": null, "alpha": "b"}`)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, in.Keys())
	assert.Equal(t, "b", in.String("alpha", "?"))
}

func TestToolInputNonObject(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"null", `null`},
		{"array", `[1, 2]`},
		{"string", `"ls -la"`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in ToolInput
			require.NoError(t, json.Unmarshal([]byte(tt.json), &in))
			assert.Empty(t, in.Keys())
			assert.Equal(t, "?", in.String("command", "?"))
		})
	}
}

func TestToolInputString(t *testing.T) {
	in := toolInput(t, `{"path": "/tmp/a.go", "limit": 20, "flags": ["-n"], "gone": null}`)

	tests := []struct {
		key  string
		want string
	}{
		{"path", "/tmp/a.go"},
		{"limit", "20"},
		{"flags", `["-n"]`},
		{"gone", "fallback"},
		{"missing", "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, in.String(tt.key, "fallback"))
		})
	}
}

func TestToolInputCount(t *testing.T) {
	in := toolInput(t, `{"content": "héllo", "todos": [{}, {}, {}], "opts": {"a": 1}, "n": 7}`)

	assert.Equal(t, 5, in.Count("content"))
	assert.Equal(t, 3, in.Count("todos"))
	assert.Equal(t, 1, in.Count("opts"))
	assert.Equal(t, 0, in.Count("n"))
	assert.Equal(t, 0, in.Count("missing"))
}

func TestFlattenToolResult(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"absent", ``, ""},
		{"null", `null`, ""},
		{"plain string", `"file contents"`, "file contents"},
		{"text array", `[{"type":"text","text":"one"},{"type":"text","text":"two"}]`, "one two"},
		{"object without text keeps its slot", `[{"type":"image"},{"type":"text","text":"a"}]`, " a"},
		{"non-object elements skipped", `["x", 3, {"type":"text","text":"kept"}]`, "kept"},
		{"empty array", `[]`, ""},
		{"number", `42`, "42"},
		{"object", `{"k": "v"}`, `{"k":"v"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlattenToolResult(json.RawMessage(tt.raw)))
		})
	}
}

func TestMessageBlocks(t *testing.T) {
	t.Run("nil message", func(t *testing.T) {
		var m *Message
		assert.Nil(t, m.Blocks())
	})

	t.Run("string content", func(t *testing.T) {
		m := &Message{Content: json.RawMessage(`"just text"`)}
		assert.Empty(t, m.Blocks())
	})

	t.Run("mixed blocks", func(t *testing.T) {
		m := &Message{Content: json.RawMessage(`[
			{"type":"text","text":"hi"},
			"not a block",
			{"type":"tool_use","name":"Bash","input":{"command":"ls"}},
			{"type":"tool_result","tool_use_id":"toolu_1","content":"ok","is_error":true}
		]`)}

		blocks := m.Blocks()
		require.Len(t, blocks, 3)

		assert.Equal(t, BlockText, blocks[0].Type)
		assert.Equal(t, "hi", blocks[0].Text)

		assert.Equal(t, BlockToolUse, blocks[1].Type)
		require.NotNil(t, blocks[1].Name)
		assert.Equal(t, "Bash", *blocks[1].Name)
		assert.Equal(t, "ls", blocks[1].Input.String("command", "?"))

		assert.Equal(t, BlockToolResult, blocks[2].Type)
		require.NotNil(t, blocks[2].ToolUseID)
		assert.Equal(t, "toolu_1", *blocks[2].ToolUseID)
		assert.Equal(t, "ok", FlattenToolResult(blocks[2].Content))
		assert.True(t, blocks[2].IsError)
	})
}

func TestEventDecode(t *testing.T) {
	t.Run("result with partial fields", func(t *testing.T) {
		var ev Event
		require.NoError(t, json.Unmarshal([]byte(`{"type":"result","cost_usd":0.0123}`), &ev))
		assert.Equal(t, EventResult, ev.Type)
		require.NotNil(t, ev.CostUSD)
		assert.InDelta(t, 0.0123, *ev.CostUSD, 1e-9)
		assert.Nil(t, ev.DurationMS)
		assert.Empty(t, ev.NumTurns)
	})

	t.Run("non-numeric cost is rejected", func(t *testing.T) {
		var ev Event
		assert.Error(t, json.Unmarshal([]byte(`{"type":"result","cost_usd":"free"}`), &ev))
	})
}

func TestContentBlockLenientFields(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantType  BlockType
		wantText  string
		wantName  *string
		wantID    *string
		wantError bool
	}{
		{
			name:      "numeric is_error",
			json:      `{"type":"tool_result","tool_use_id":"abc","content":"boom","is_error":1}`,
			wantType:  BlockToolResult,
			wantID:    strPtr("abc"),
			wantError: true,
		},
		{
			name:     "zero is_error",
			json:     `{"type":"tool_result","is_error":0}`,
			wantType: BlockToolResult,
		},
		{
			name:      "string is_error",
			json:      `{"type":"tool_result","is_error":"yes"}`,
			wantType:  BlockToolResult,
			wantError: true,
		},
		{
			name:     "null is_error",
			json:     `{"type":"tool_result","is_error":null}`,
			wantType: BlockToolResult,
		},
		{
			name:     "numeric name",
			json:     `{"type":"tool_use","name":123,"input":{"a":1}}`,
			wantType: BlockToolUse,
			wantName: strPtr("123"),
		},
		{
			name:     "null name",
			json:     `{"type":"tool_use","name":null}`,
			wantType: BlockToolUse,
		},
		{
			name:     "numeric tool_use_id",
			json:     `{"type":"tool_result","tool_use_id":42}`,
			wantType: BlockToolResult,
			wantID:   strPtr("42"),
		},
		{
			name:     "object text",
			json:     `{"type":"text","text":{"a":1}}`,
			wantType: BlockText,
			wantText: `{"a":1}`,
		},
		{
			name:     "null text",
			json:     `{"type":"text","text":null}`,
			wantType: BlockText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b ContentBlock
			require.NoError(t, json.Unmarshal([]byte(tt.json), &b))
			assert.Equal(t, tt.wantType, b.Type)
			assert.Equal(t, tt.wantText, b.Text)
			assert.Equal(t, tt.wantName, b.Name)
			assert.Equal(t, tt.wantID, b.ToolUseID)
			assert.Equal(t, tt.wantError, b.IsError)
		})
	}
}

func TestMessageLenientModel(t *testing.T) {
	var ev Event
	require.NoError(t, json.Unmarshal([]byte(`{"type":"assistant","message":{"model":7,"content":[]}}`), &ev))
	require.NotNil(t, ev.Message)
	require.NotNil(t, ev.Message.Model)
	assert.Equal(t, "7", *ev.Message.Model)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"assistant","message":{"model":null}}`), &ev))
	require.NotNil(t, ev.Message)
	assert.Nil(t, ev.Message.Model)
}

func strPtr(s string) *string { return &s }
