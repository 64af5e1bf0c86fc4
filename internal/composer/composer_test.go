package composer

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var textTemplate = Template{Type: "text", Name: "Text", Fields: []string{"heading", "body"}}

func assertContiguous(t *testing.T, c *Composition) {
	t.Helper()
	for i, b := range c.Blocks() {
		assert.Equal(t, i, b.Order, "block %s", b.ID)
	}
}

func ids(c *Composition) []string {
	var out []string
	for _, b := range c.Blocks() {
		out = append(out, b.ID)
	}
	return out
}

func TestAppend_InitializesFieldsFromSchema(t *testing.T) {
	c := New()

	b := c.Append(textTemplate)

	assert.True(t, strings.HasPrefix(b.ID, transientPrefix))
	assert.False(t, b.Persisted)
	assert.Equal(t, "text", b.Type)
	assert.Equal(t, "Text", b.Name)
	assert.Equal(t, map[string]string{"heading": "", "body": ""}, b.Fields)
	assert.Equal(t, 0, b.Order)

	second := c.Append(textTemplate)
	assert.Equal(t, 1, second.Order)
	assert.NotEqual(t, b.ID, second.ID)
}

func TestTextScenario(t *testing.T) {
	c := New()
	first := c.Append(textTemplate)
	second := c.Append(textTemplate)

	require.NoError(t, c.Reorder(1, 0))

	blocks := c.Blocks()
	assert.Equal(t, second.ID, blocks[0].ID)
	assert.Equal(t, 0, blocks[0].Order)
	assert.Equal(t, first.ID, blocks[1].ID)
	assert.Equal(t, 1, blocks[1].Order)

	_, ok := c.Remove(blocks[0].ID)
	require.True(t, ok)

	blocks = c.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, first.ID, blocks[0].ID)
	assert.Equal(t, 0, blocks[0].Order)
}

func TestAppendThenRemove_RestoresPriorState(t *testing.T) {
	c := New()
	c.Append(textTemplate)
	c.Append(Template{Type: "hero", Name: "Hero", Fields: []string{"title"}})
	before := c.Blocks()

	added := c.Append(textTemplate)
	removed, ok := c.Remove(added.ID)

	require.True(t, ok)
	assert.False(t, removed.Persisted)
	assert.Equal(t, before, c.Blocks())
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	c := New()
	c.Append(textTemplate)

	_, ok := c.Remove("missing")

	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestRemove_ShiftsFollowingBlocks(t *testing.T) {
	c := New()
	a := c.Append(textTemplate)
	b := c.Append(textTemplate)
	d := c.Append(textTemplate)

	c.Remove(b.ID)

	assert.Equal(t, []string{a.ID, d.ID}, ids(c))
	assertContiguous(t, c)
}

func TestSetField(t *testing.T) {
	c := New()
	b := c.Append(textTemplate)

	assert.True(t, c.SetField(b.ID, "heading", "Welcome"))
	assert.True(t, c.SetField(b.ID, "extra", "kept"))
	assert.False(t, c.SetField("missing", "heading", "x"))

	got, ok := c.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"heading": "Welcome", "body": "", "extra": "kept"}, got.Fields)
}

func TestBlocks_ReturnsCopies(t *testing.T) {
	c := New()
	b := c.Append(textTemplate)

	view := c.Blocks()
	view[0].Fields["heading"] = "mutated"

	got, _ := c.Get(b.ID)
	assert.Equal(t, "", got.Fields["heading"])
}

func TestReorder_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []int
	}{
		{name: "first to last", from: 0, to: 3, want: []int{1, 2, 3, 0}},
		{name: "last to first", from: 3, to: 0, want: []int{3, 0, 1, 2}},
		{name: "same index", from: 2, to: 2, want: []int{0, 1, 2, 3}},
		{name: "middle down", from: 1, to: 2, want: []int{0, 2, 1, 3}},
		{name: "middle up", from: 2, to: 1, want: []int{0, 2, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			var original []string
			for range 4 {
				original = append(original, c.Append(textTemplate).ID)
			}

			require.NoError(t, c.Reorder(tt.from, tt.to))

			var want []string
			for _, i := range tt.want {
				want = append(want, original[i])
			}
			assert.Equal(t, want, ids(c))
			assertContiguous(t, c)
		})
	}
}

func TestReorder_OutOfRange(t *testing.T) {
	c := New()
	c.Append(textTemplate)
	c.Append(textTemplate)
	before := ids(c)

	assert.ErrorIs(t, c.Reorder(-1, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Reorder(0, 2), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Reorder(2, 0), ErrIndexOutOfRange)
	assert.Equal(t, before, ids(c))
}

// reference implementation of reorder: extract at from, insert at to
func spliceMove(s []string, from, to int) []string {
	out := append([]string{}, s...)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]string{moved}, out[to:]...)...)
	return out
}

func TestRandomOperations_KeepOrderContiguous(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	c := New()
	var model []string

	for step := range 2000 {
		switch op := r.IntN(3); {
		case op == 0 || len(model) == 0:
			model = append(model, c.Append(textTemplate).ID)
		case op == 1:
			i := r.IntN(len(model))
			_, ok := c.Remove(model[i])
			require.True(t, ok)
			model = append(model[:i], model[i+1:]...)
		default:
			from, to := r.IntN(len(model)), r.IntN(len(model))
			require.NoError(t, c.Reorder(from, to))
			model = spliceMove(model, from, to)
		}

		require.Equal(t, model, ids(c), "step %d", step)
		for i, b := range c.Blocks() {
			require.Equal(t, i, b.Order, "step %d", step)
		}
	}
}

func TestMarkPersisted(t *testing.T) {
	c := New()
	b := c.Append(textTemplate)
	c.SetField(b.ID, "heading", "Hi")

	require.True(t, c.MarkPersisted(b.ID, 42))

	_, ok := c.Get(b.ID)
	assert.False(t, ok)
	got, ok := c.Get("42")
	require.True(t, ok)
	assert.True(t, got.Persisted)
	assert.Equal(t, uint64(42), got.BackendID)
	assert.Equal(t, "Hi", got.Fields["heading"])

	assert.False(t, c.MarkPersisted("missing", 1))
}

func TestFromStored(t *testing.T) {
	c := FromStored([]Stored{
		{BackendID: 9, Type: "hero", Name: "Hero", Fields: map[string]string{"title": "A"}},
		{BackendID: 3, Type: "text", Name: "text"},
	})

	blocks := c.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, "9", blocks[0].ID)
	assert.True(t, blocks[0].Persisted)
	assert.Equal(t, 0, blocks[0].Order)
	assert.Equal(t, "3", blocks[1].ID)
	assert.Equal(t, map[string]string{}, blocks[1].Fields)
	assert.Equal(t, 1, blocks[1].Order)
}
