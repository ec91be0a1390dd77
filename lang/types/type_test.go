package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64 { return &v }

func TestIntegerIdentity(t *testing.T) {
	require.True(t, U8(nil).Equal(U8(nil)))
	require.False(t, U8(nil).Equal(I8(nil)))
	require.True(t, U8(nil).CanImplicitlyCastTo(U8(nil)))
	require.False(t, U8(nil).CanImplicitlyCastTo(I8(nil)))
}

func TestIntegerLiteralNarrowing(t *testing.T) {
	require.True(t, U8(i64(200)).CanImplicitlyCastTo(U8(nil)))
	require.False(t, U8(i64(200)).CanImplicitlyCastTo(I8(nil))) // 200 does not fit i8's range
	require.False(t, U8(i64(300)).CanImplicitlyCastTo(U8(nil))) // out of u8 range too
}

func TestIntegerLiteralNarrowingBoundary(t *testing.T) {
	require.True(t, U8(i64(255)).CanImplicitlyCastTo(U8(nil)))
	require.True(t, U8(i64(127)).CanImplicitlyCastTo(I8(nil)))
	require.True(t, U8(i64(-128)).CanImplicitlyCastTo(I8(nil)))
}

func TestPointerEquality(t *testing.T) {
	p1 := Pointer{Elem: U8(nil)}
	p2 := Pointer{Elem: U8(nil)}
	p3 := Pointer{Elem: Char{}}
	require.True(t, p1.Equal(p2))
	require.False(t, p1.Equal(p3))
}

func TestPointerNesting(t *testing.T) {
	pp := Pointer{Elem: Pointer{Elem: U8(nil)}}
	require.Equal(t, "**u8", pp.String())
}

func TestVoidOnlyEqualsVoid(t *testing.T) {
	require.True(t, Void{}.Equal(Void{}))
	require.False(t, Void{}.Equal(U8(nil)))
}
