package creatures

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/iota.go/v4/tpkg"
	"github.com/iotaledger/registry-core/pkg/model"
	"github.com/iotaledger/registry-core/pkg/registry"
)

func TestCombineGenomes(t *testing.T) {
	parent1 := model.Genome{0x00, 0xFF, 0x0F, 0xAA}
	parent2 := model.Genome{0xFF, 0x00, 0xF0, 0x55}
	selector := model.Genome{0x0F, 0x0F, 0xFF, 0x00}

	child := combineGenomes(parent1, parent2, selector)
	require.Equal(t, model.Genome{0x0F, 0xF0, 0xF0, 0xAA}, child)
	require.Equal(t, child, combineGenomes(parent1, parent2, selector))

	for i := range child {
		for bit := 0; bit < 8; bit++ {
			mask := byte(1) << bit
			if selector[i]&mask != 0 {
				require.Equal(t, parent2[i]&mask, child[i]&mask)
			} else {
				require.Equal(t, parent1[i]&mask, child[i]&mask)
			}
		}
	}

	// an empty selector keeps the first parent and a full selector the second
	full := model.Genome{}
	for i := range full {
		full[i] = 0xFF
	}
	require.Equal(t, parent1, combineGenomes(parent1, parent2, model.Genome{}))
	require.Equal(t, parent2, combineGenomes(parent1, parent2, full))
}

func TestRandomValue(t *testing.T) {
	actor := tpkg.RandAccountID()
	seed := make([]byte, 32)

	value := randomValue(seed, registry.NewTx(actor, 1, 0))
	require.Equal(t, value, randomValue(seed, registry.NewTx(actor, 1, 0)))

	// the slot only influences the value through the seed
	require.Equal(t, value, randomValue(seed, registry.NewTx(actor, 2, 0)))

	require.NotEqual(t, value, randomValue(seed, registry.NewTx(actor, 1, 1)))
	require.NotEqual(t, value, randomValue(seed, registry.NewTx(tpkg.RandAccountID(), 1, 0)))
	require.NotEqual(t, value, randomValue([]byte{1}, registry.NewTx(actor, 1, 0)))
}
