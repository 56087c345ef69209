package bcrypt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	b := NewWithCost(4)

	hash, err := b.HashPassword("kirana-owner")
	require.NoError(t, err)
	require.True(t, b.IsHash(hash))
	require.False(t, b.IsHash("kirana-owner"))

	require.NoError(t, b.ComparePassword(hash, "kirana-owner"))
	require.ErrorIs(t, b.ComparePassword(hash, "wrong"), ErrMismatch)
	require.ErrorIs(t, b.ComparePassword("not-a-hash", "kirana-owner"), ErrMismatch)
}
