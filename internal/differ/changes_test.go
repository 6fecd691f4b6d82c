package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScript() Script {
	return Compute("今天天气很好，我们去公园玩。", "今天天气很好，我们去公园散步。")
}

func TestScript_Changes(t *testing.T) {
	changes := sampleScript().Changes()

	require.Len(t, changes, 1)
	assert.Equal(t, Change{Index: 0, Offset: 12, Deleted: "玩", Inserted: "散步"}, changes[0])
}

func TestScript_ChangesMultiple(t *testing.T) {
	script := Script{
		{Type: Equal, Text: "a"},
		{Type: Delete, Text: "b"},
		{Type: Insert, Text: "B"},
		{Type: Equal, Text: "cd"},
		{Type: Insert, Text: "E"},
	}

	changes := script.Changes()

	assert.Equal(t, []Change{
		{Index: 0, Offset: 1, Deleted: "b", Inserted: "B"},
		{Index: 1, Offset: 4, Inserted: "E"},
	}, changes)
}

func TestScript_ChangesIdentical(t *testing.T) {
	assert.Empty(t, Compute("相同", "相同").Changes())
	assert.Empty(t, Script{}.Changes())
}

func TestScript_AcceptRejectAll(t *testing.T) {
	script := sampleScript()

	assert.Equal(t, "今天天气很好，我们去公园散步。", script.AcceptAll())
	assert.Equal(t, "今天天气很好，我们去公园玩。", script.RejectAll())
}

func TestScript_Resolve(t *testing.T) {
	script := Script{
		{Type: Equal, Text: "a"},
		{Type: Delete, Text: "b"},
		{Type: Insert, Text: "B"},
		{Type: Equal, Text: "c"},
		{Type: Insert, Text: "D"},
	}

	assert.Equal(t, "aBc", script.AcceptOnly(0))
	assert.Equal(t, "abcD", script.AcceptOnly(1))
	assert.Equal(t, "aBcD", script.AcceptOnly(0, 1))
	assert.Equal(t, "abc", script.AcceptOnly())
	assert.Equal(t, "abc", script.Resolve(nil))
	assert.Equal(t, script.AcceptAll(), script.Resolve(func(Change) bool { return true }))
}

func TestScript_ResolveLeadingChange(t *testing.T) {
	script := Compute("旧标题：正文", "新标题：正文")

	assert.Equal(t, "新标题：正文", script.Resolve(func(c Change) bool { return c.Index == 0 }))
	assert.Equal(t, "旧标题：正文", script.Resolve(func(c Change) bool { return false }))
}
