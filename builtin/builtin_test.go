package builtin

import (
	"testing"

	"github.com/akashmaji946/go-cel/diagnostics"
	"github.com/akashmaji946/go-cel/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_HasAllTen(t *testing.T) {
	r := NewRegistry()
	names := []string{"size", "contains", "startsWith", "endsWith", "matches", "int", "float", "bool", "string", "type"}
	for _, n := range names {
		assert.True(t, r.Has(n), n)
		_, ok := r.Lookup(n)
		assert.True(t, ok, n)
	}
	assert.False(t, r.Has("nope"))
}

func call(t *testing.T, name string, args ...value.Value) (value.Value, error) {
	t.Helper()
	r := NewRegistry()
	fn, ok := r.Lookup(name)
	require.True(t, ok)
	return fn(args)
}

func TestSize(t *testing.T) {
	v, err := call(t, "size", value.String("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), mustInt(t, v))

	v, err = call(t, "size", value.List([]value.Value{value.Int(1), value.Int(2)}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), mustInt(t, v))

	_, err = call(t, "size", value.Int(1))
	require.Error(t, err)
	assert.True(t, diagnostics.Is(err, diagnostics.Type))
}

func TestContains(t *testing.T) {
	v, err := call(t, "contains", value.String("hello world"), value.String("world"))
	require.NoError(t, err)
	assert.True(t, mustBool(t, v))

	v, err = call(t, "contains", value.List([]value.Value{value.Int(1), value.Int(2)}), value.Int(2))
	require.NoError(t, err)
	assert.True(t, mustBool(t, v))

	v, err = call(t, "contains", value.List([]value.Value{value.Int(1)}), value.Int(9))
	require.NoError(t, err)
	assert.False(t, mustBool(t, v))
}

func TestStartsEndsWith(t *testing.T) {
	v, err := call(t, "startsWith", value.String("hello"), value.String("he"))
	require.NoError(t, err)
	assert.True(t, mustBool(t, v))

	v, err = call(t, "endsWith", value.String("hello"), value.String("lo"))
	require.NoError(t, err)
	assert.True(t, mustBool(t, v))
}

func TestMatches(t *testing.T) {
	v, err := call(t, "matches", value.String("abc123"), value.String(`[a-z]+[0-9]+`))
	require.NoError(t, err)
	assert.True(t, mustBool(t, v))

	// full-match semantics: a partial match inside a longer string fails.
	v, err = call(t, "matches", value.String("xabc123y"), value.String(`abc[0-9]+`))
	require.NoError(t, err)
	assert.False(t, mustBool(t, v))

	_, err = call(t, "matches", value.String("a"), value.String("("))
	require.Error(t, err)
}

func TestConversions(t *testing.T) {
	v, err := call(t, "int", value.Double(3.9))
	require.NoError(t, err)
	assert.Equal(t, int64(3), mustInt(t, v))

	v, err = call(t, "float", value.Int(3))
	require.NoError(t, err)
	f, _ := v.AsDouble()
	assert.Equal(t, 3.0, f)

	v, err = call(t, "bool", value.String("true"))
	require.NoError(t, err)
	assert.True(t, mustBool(t, v))

	_, err = call(t, "bool", value.String("nope"))
	require.Error(t, err)

	v, err = call(t, "string", value.Int(42))
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "42", s)

	v, err = call(t, "type", value.List([]value.Value{}))
	require.NoError(t, err)
	s, _ = v.AsString()
	assert.Equal(t, "list", s)
}

func mustInt(t *testing.T, v value.Value) int64 {
	t.Helper()
	i, ok := v.AsInt()
	require.True(t, ok)
	return i
}

func mustBool(t *testing.T, v value.Value) bool {
	t.Helper()
	b, ok := v.AsBool()
	require.True(t, ok)
	return b
}
