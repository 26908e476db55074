package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableDeclareAndLookup(t *testing.T) {
	tbl := NewTable()

	sig, err := tbl.Declare("sum", 2, FuncDefined)
	require.NoError(t, err)
	assert.Equal(t, "sum", sig.Name)
	assert.Equal(t, 2, sig.Arity)
	assert.Equal(t, FuncDefined, sig.Kind)

	_, err = tbl.Declare("put_char", 1, FuncExtern)
	require.NoError(t, err)

	got := tbl.Lookup("put_char")
	require.NotNil(t, got)
	assert.Equal(t, FuncExtern, got.Kind)

	assert.Nil(t, tbl.Lookup("missing"))
	assert.Equal(t, []string{"sum", "put_char"}, tbl.Names())
}

func TestTableRejectsDuplicates(t *testing.T) {
	tbl := NewTable()

	_, err := tbl.Declare("f", 0, FuncDefined)
	require.NoError(t, err)

	_, err = tbl.Declare("f", 2, FuncExtern)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared more than once")
}

func TestScopeShadowAndRebind(t *testing.T) {
	sc := NewScope()

	_, ok := sc.Lookup("x")
	assert.False(t, ok)

	sc.Bind("x", "%t0")
	slot, ok := sc.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "%t0", slot)

	// Redeclaration rebinds to the new slot.
	sc.Bind("x", "%t3")
	slot, ok = sc.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "%t3", slot)
}

func TestFuncKindString(t *testing.T) {
	assert.Equal(t, "extern", FuncExtern.String())
	assert.Equal(t, "defined", FuncDefined.String())
}
