package value_test

import (
	"fmt"
	"testing"

	"github.com/loxenlang/loxen/lang/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableSetGetRoundTrip(t *testing.T) {
	tbl := value.NewTable()
	a := value.NewObjString("a")
	b := value.NewObjString("b")

	isNew := tbl.Set(a, value.Number(1))
	assert.True(t, isNew)
	isNew = tbl.Set(b, value.Bool(true))
	assert.True(t, isNew)

	v, ok := tbl.Get(a)
	require.True(t, ok)
	assert.Equal(t, value.Number(1), v)

	v, ok = tbl.Get(b)
	require.True(t, ok)
	assert.Equal(t, value.Bool(true), v)

	isNew = tbl.Set(a, value.Number(2))
	assert.False(t, isNew, "re-setting an existing key is not a new key")
	v, _ = tbl.Get(a)
	assert.Equal(t, value.Number(2), v)
}

func TestTableGetAbsent(t *testing.T) {
	tbl := value.NewTable()
	_, ok := tbl.Get(value.NewObjString("missing"))
	assert.False(t, ok)
}

func TestTableDeleteThenGetIsAbsent(t *testing.T) {
	tbl := value.NewTable()
	k := value.NewObjString("k")
	tbl.Set(k, value.Nil{})

	assert.True(t, tbl.Delete(k))
	_, ok := tbl.Get(k)
	assert.False(t, ok)

	// deleting again reports absent
	assert.False(t, tbl.Delete(k))
}

func TestTableTombstoneDoesNotBreakProbeChain(t *testing.T) {
	tbl := value.NewTable()
	// insert enough entries to force several collisions/resizes, delete half,
	// then confirm every remaining key is still reachable.
	var keys []*value.ObjString
	for i := 0; i < 64; i++ {
		k := value.NewObjString(fmt.Sprintf("key-%d", i))
		keys = append(keys, k)
		tbl.Set(k, value.Number(float64(i)))
	}
	for i := 0; i < 64; i += 2 {
		require.True(t, tbl.Delete(keys[i]))
	}
	for i := 1; i < 64; i += 2 {
		v, ok := tbl.Get(keys[i])
		require.True(t, ok, "key-%d should still be present", i)
		assert.Equal(t, value.Number(float64(i)), v)
	}
	for i := 0; i < 64; i += 2 {
		_, ok := tbl.Get(keys[i])
		assert.False(t, ok, "key-%d should have been deleted", i)
	}
}

func TestTableFindStringByContent(t *testing.T) {
	tbl := value.NewTable()
	s := value.NewObjString("hello")
	tbl.Set(s, value.Nil{})

	found := tbl.FindString("hello", value.FNV1a("hello"))
	require.NotNil(t, found)
	assert.Same(t, s, found)

	assert.Nil(t, tbl.FindString("nope", value.FNV1a("nope")))
}

func TestTableKeysSortedAndComplete(t *testing.T) {
	tbl := value.NewTable()
	tbl.Set(value.NewObjString("zebra"), value.Nil{})
	tbl.Set(value.NewObjString("apple"), value.Nil{})
	tbl.Set(value.NewObjString("mango"), value.Nil{})
	removed := value.NewObjString("removed")
	tbl.Set(removed, value.Nil{})
	tbl.Delete(removed)

	assert.Equal(t, []string{"apple", "mango", "zebra"}, tbl.Keys())
}
