package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual_NumericPromotion(t *testing.T) {
	assert.True(t, Int(1).Equal(Double(1.0)))
	assert.True(t, Double(1.0).Equal(Int(1)))
	assert.False(t, Int(1).Equal(Double(1.5)))
}

func TestEqual_CrossKindIsFalse(t *testing.T) {
	assert.False(t, Bool(true).Equal(String("true")))
	assert.False(t, Null().Equal(Bool(false)))
}

func TestEqual_StructuralListsAndMaps(t *testing.T) {
	a := List([]Value{Int(1), String("x")})
	b := List([]Value{Int(1), String("x")})
	c := List([]Value{Int(1), String("y")})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	m1 := Map(map[MapKey]Value{{Kind: KindString, S: "k"}: Int(1)})
	m2 := Map(map[MapKey]Value{{Kind: KindString, S: "k"}: Int(1)})
	assert.True(t, m1.Equal(m2))
}

func TestCompare_NumericAndString(t *testing.T) {
	c, err := Compare(Int(1), Double(2.0))
	assert.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = Compare(String("a"), String("b"))
	assert.NoError(t, err)
	assert.Equal(t, -1, c)

	_, err = Compare(Int(1), String("a"))
	assert.Error(t, err)
}

func TestCanonicalString_Scalars(t *testing.T) {
	assert.Equal(t, "hello", CanonicalString(String("hello")))
	assert.Equal(t, "42", CanonicalString(Int(42)))
	assert.Equal(t, "3.5", CanonicalString(Double(3.5)))
	assert.Equal(t, "true", CanonicalString(Bool(true)))
	assert.Equal(t, "null", CanonicalString(Null()))
}

func TestCanonicalString_DoubleAlwaysHasDotOrExponent(t *testing.T) {
	assert.Equal(t, "5.0", CanonicalString(Double(5)))
	assert.Equal(t, "2.0", CanonicalString(Double(2.0)))
}

func TestCanonicalString_NestedStringsAreQuoted(t *testing.T) {
	l := List([]Value{String("a"), Int(1)})
	assert.Equal(t, `["a", 1]`, CanonicalString(l))
}

func TestCanonicalString_MapIsDeterministic(t *testing.T) {
	m := Map(map[MapKey]Value{
		{Kind: KindString, S: "b"}: Int(2),
		{Kind: KindString, S: "a"}: Int(1),
	})
	first := CanonicalString(m)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, CanonicalString(m))
	}
	assert.Equal(t, `{"a": 1, "b": 2}`, first)
}

func TestToMapKeyRestrictions(t *testing.T) {
	_, ok := ToMapKey(Null())
	assert.True(t, ok)
	_, ok = ToMapKey(Bool(true))
	assert.True(t, ok)
	_, ok = ToMapKey(Int(1))
	assert.True(t, ok)
	_, ok = ToMapKey(String("x"))
	assert.True(t, ok)
	_, ok = ToMapKey(Double(1.5))
	assert.False(t, ok)
	_, ok = ToMapKey(List(nil))
	assert.False(t, ok)
}

func TestIsNumericAndAsFloat64(t *testing.T) {
	assert.True(t, Int(1).IsNumeric())
	assert.True(t, Double(1).IsNumeric())
	assert.False(t, String("1").IsNumeric())

	f, ok := Int(3).AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = String("x").AsFloat64()
	assert.False(t, ok)
}
