package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestTokenGoString(t *testing.T) {
	require.Equal(t, "identifier", IDENT.GoString())
	require.Equal(t, "'func'", FUNC.GoString())
	require.Equal(t, "'->'", ARROW.GoString())
}

func TestKeywords(t *testing.T) {
	for word, tok := range Keywords {
		require.Equal(t, word, tok.String())
	}
	require.NotContains(t, Keywords, "while_never_a_keyword_typo")
}
