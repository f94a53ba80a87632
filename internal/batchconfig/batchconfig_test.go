package batchconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `
contexts:
  alice:
    name: Alice
    age: 30
    tags:
      - user
      - member
expressions:
  - name: greeting
    expr: "name + ' is ' + string(age) + ' years old'"
    context: alice
  - name: tagCount
    expr: "size(tags)"
    context: alice
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	require.Len(t, doc.Expressions, 2)
	assert.Equal(t, "greeting", doc.Expressions[0].Name)
	assert.Equal(t, "alice", doc.Expressions[0].Context)
}

func TestResolveContext(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	ctx, err := doc.ResolveContext("alice")
	require.NoError(t, err)

	name, ok := ctx["name"].AsString()
	require.True(t, ok)
	assert.Equal(t, "Alice", name)

	age, ok := ctx["age"].AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(30), age)

	tags, ok := ctx["tags"].AsList()
	require.True(t, ok)
	assert.Len(t, tags, 2)
}

func TestResolveContext_UndefinedName(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	_, err = doc.ResolveContext("nobody")
	require.Error(t, err)
}
