package value_test

import (
	"testing"

	"github.com/loxenlang/loxen/lang/value"
	"github.com/stretchr/testify/assert"
)

func TestTruthiness(t *testing.T) {
	falsey := []value.Value{value.Nil{}, value.Bool(false)}
	for _, v := range falsey {
		assert.False(t, value.IsTruthy(v), "%v should be falsey", v)
	}

	truthy := []value.Value{
		value.Bool(true),
		value.Number(0),
		value.Number(-1),
		value.NewObjString(""),
		value.NewObjString("x"),
	}
	for _, v := range truthy {
		assert.True(t, value.IsTruthy(v), "%v should be truthy", v)
	}
}

func TestEqualCrossTagAlwaysFalse(t *testing.T) {
	assert.False(t, value.Equal(value.Nil{}, value.Bool(false)))
	assert.False(t, value.Equal(value.Number(0), value.Bool(false)))
	assert.False(t, value.Equal(value.Number(1), value.NewObjString("1")))
}

func TestEqualNumbers(t *testing.T) {
	assert.True(t, value.Equal(value.Number(1), value.Number(1)))
	assert.False(t, value.Equal(value.Number(1), value.Number(2)))
}

func TestEqualStringsIsIdentity(t *testing.T) {
	a := value.NewObjString("hi")
	b := value.NewObjString("hi") // not interned: distinct identities
	assert.True(t, value.Equal(a, a))
	assert.False(t, value.Equal(a, b), "non-interned equal-content strings are distinct objects")
}

func TestFNV1aHashesEveryByte(t *testing.T) {
	// a hash that only looked at the first byte would collide here.
	assert.NotEqual(t, value.FNV1a("aa"), value.FNV1a("ab"))
	assert.NotEqual(t, value.FNV1a("ba"), value.FNV1a("bb"))
}

func TestObjectThreadsOntoAllocationList(t *testing.T) {
	a := value.NewObjString("a")
	b := value.NewObjString("b")
	a.SetNext(b)
	assert.Same(t, value.Object(b), a.Next())
	assert.Nil(t, b.Next())
}
