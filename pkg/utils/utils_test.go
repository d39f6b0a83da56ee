package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKey(t *testing.T) {
	assert.Equal(t, "0912345", SanitizeKey(" 0912345 "))
	assert.Equal(t, "+218_91_234", SanitizeKey("+218.91#234"))
	assert.Equal(t, "a_b_c_d_e", SanitizeKey("a$b[c]d/e"))
	assert.Equal(t, SanitizeKey("09.12"), SanitizeKey("09.12"))
}

func TestMatchesKeyword(t *testing.T) {
	assert.True(t, MatchesKeyword("", "anything"))
	assert.True(t, MatchesKeyword("TOYOTA", "Toyota Hilux 2015"))
	assert.True(t, MatchesKeyword("احمد", "أحمد التاجر"))
	assert.True(t, MatchesKeyword("محمد", "مُحَمَّد"))
	assert.True(t, MatchesKeyword("مزرعه", "مزرعة زيتون"))
	assert.False(t, MatchesKeyword("iphone", "Samsung", "Galaxy"))
	assert.True(t, MatchesKeyword("galaxy", "Samsung", "Galaxy"))
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("0912345", "sess-1", "trader", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "0912345", claims.Subject)
	assert.Equal(t, "sess-1", claims.ID)
	assert.Equal(t, "trader", claims.Role)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestJWTWithoutExpiry(t *testing.T) {
	token, err := GenerateJWT("0912345", "sess-1", "user", "secret", 0)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, Paginate(items, PaginationParams{Page: 2, PageSize: 2, Offset: 2}))
	assert.Equal(t, []int{5}, Paginate(items, PaginationParams{Page: 3, PageSize: 2, Offset: 4}))
	assert.Empty(t, Paginate(items, PaginationParams{Page: 4, PageSize: 2, Offset: 6}))
}
