package scope

import (
	"testing"

	"github.com/batc-lang/batc/lang/types"
	"github.com/stretchr/testify/require"
)

func TestRootScopeHasBuiltins(t *testing.T) {
	root := NewRootScope()
	sig, err := root.LookupFunc("write_port")
	require.NoError(t, err)
	require.Len(t, sig.Params, 2)
	require.Equal(t, types.Void{}, sig.Return)

	sig, err = root.LookupFunc("read_port")
	require.NoError(t, err)
	require.Len(t, sig.Params, 1)
}

func TestDeclareVarRedefinitionError(t *testing.T) {
	root := NewRootScope()
	require.NoError(t, root.DeclareVar("x", types.U8(nil)))
	err := root.DeclareVar("x", types.U8(nil))
	require.ErrorContains(t, err, "redefinition")
}

func TestDeclareVarStaticAddressesGrowDownward(t *testing.T) {
	root := NewRootScope()
	require.NoError(t, root.DeclareVar("a", types.U8(nil)))
	require.NoError(t, root.DeclareVar("b", types.U8(nil)))

	addrA, _ := root.LookupVarAddress("a")
	addrB, _ := root.LookupVarAddress("b")
	require.Equal(t, Static{Address: StackEnd - 1}, addrA)
	require.Equal(t, Static{Address: StackEnd - 2}, addrB)
}

func TestDeclareVarInChildUsesFrameOffsets(t *testing.T) {
	root := NewRootScope()
	child := NewChild(root)
	require.NoError(t, child.DeclareVar("p", types.U8(nil)))
	addr, _ := child.LookupVarAddress("p")
	require.Equal(t, RegisterOffset{Base: BasePointerReg, Offset: 0}, addr)
}

func TestFunctionDeclarationOutsideRootIsError(t *testing.T) {
	root := NewRootScope()
	child := NewChild(root)
	err := child.DeclareFunc("f", FuncSig{Return: types.Void{}})
	require.ErrorContains(t, err, "top-level")
}

func TestLookupTraversesParents(t *testing.T) {
	root := NewRootScope()
	require.NoError(t, root.DeclareVar("x", types.U8(nil)))
	child := NewChild(root)
	typ, err := child.LookupVarType("x")
	require.NoError(t, err)
	require.Equal(t, types.U8(nil), typ)
}

func TestLookupUndeclaredIsError(t *testing.T) {
	root := NewRootScope()
	_, err := root.LookupVarType("nope")
	require.ErrorContains(t, err, "not declared")
}

func TestRegisterAllocationBalances(t *testing.T) {
	root := NewRootScope()
	initial := root.FreeRegisters()

	h1, err := root.AllocRegister()
	require.NoError(t, err)
	h2, err := root.AllocRegister()
	require.NoError(t, err)
	h1.Release()
	h2.Release()

	require.Equal(t, initial, root.FreeRegisters())
}

func TestOutOfRegisters(t *testing.T) {
	root := NewRootScope()
	var handles []*RegisterHandle
	for i := 0; i < 4; i++ {
		h, err := root.AllocRegister()
		require.NoError(t, err)
		handles = append(handles, h)
	}
	_, err := root.AllocRegister()
	require.ErrorContains(t, err, "out of registers")
	for _, h := range handles {
		h.Release()
	}
}

func TestDoubleReleasePanics(t *testing.T) {
	root := NewRootScope()
	h, err := root.AllocRegister()
	require.NoError(t, err)
	h.Release()
	require.Panics(t, func() { h.Release() })
}
