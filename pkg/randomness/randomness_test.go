package randomness_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/registry-core/pkg/randomness"
)

func TestStatic(t *testing.T) {
	seed := []byte{1, 2, 3}
	static := randomness.NewStatic(seed)
	seed[0] = 9

	require.Equal(t, []byte{1, 2, 3}, static.Seed(0))
	require.Equal(t, static.Seed(0), static.Seed(42))

	static.Seed(1)[0] = 7
	require.Equal(t, []byte{1, 2, 3}, static.Seed(1))
}

func TestSlotSeeded(t *testing.T) {
	seeded := randomness.NewSlotSeeded([]byte("genesis"))

	require.Len(t, seeded.Seed(1), 32)
	require.Equal(t, seeded.Seed(1), seeded.Seed(1))
	require.NotEqual(t, seeded.Seed(1), seeded.Seed(2))
	require.NotEqual(t, seeded.Seed(1), randomness.NewSlotSeeded([]byte("other")).Seed(1))
}
