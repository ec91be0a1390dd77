package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakePosLineCol(t *testing.T) {
	cases := []struct {
		line, col int
	}{
		{1, 1},
		{3, 12},
		{MaxLines, MaxCols},
	}
	for _, c := range cases {
		p := MakePos(c.line, c.col)
		gotLine, gotCol := p.LineCol()
		assert.Equal(t, c.line, gotLine)
		assert.Equal(t, c.col, gotCol)
		assert.False(t, p.Unknown())
	}
}

func TestPosUnknown(t *testing.T) {
	var zero Pos
	assert.True(t, zero.Unknown())
}

func TestPosPosition(t *testing.T) {
	p := MakePos(4, 7)
	pos := p.Position("main.bat")
	require.Equal(t, "main.bat", pos.Filename)
	require.Equal(t, 4, pos.Line)
	require.Equal(t, 7, pos.Column)
}
