package testsuite

import (
	"github.com/stretchr/testify/require"

	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/model"
)

// AssertCreature requires the creature to be held by the named account and nobody else, and returns its genome.
func (t *TestSuite) AssertCreature(ownerName string, id model.CreatureID) model.Genome {
	genome, exists, err := t.Engine.Creatures.Creature(t.AccountID(ownerName), id)
	require.NoError(t.Testing, err)
	require.True(t.Testing, exists, "AssertCreature: %s does not hold creature %d", ownerName, id)

	owner, exists, err := t.Engine.Creatures.OwnerOf(id)
	require.NoError(t.Testing, err)
	require.True(t.Testing, exists, "AssertCreature: creature %d has no owner", id)
	require.Equal(t.Testing, t.AccountID(ownerName), owner, "AssertCreature: creature %d has unexpected owner", id)

	t.accounts.ForEach(func(name string, account *Account) bool {
		if name == ownerName {
			return true
		}

		_, heldByOther, err := t.Engine.Creatures.Creature(account.ID, id)
		require.NoError(t.Testing, err)
		require.False(t.Testing, heldByOther, "AssertCreature: creature %d is also held by %s", id, name)

		return true
	})

	return genome
}

func (t *TestSuite) AssertNoCreature(ownerName string, id model.CreatureID) {
	_, exists, err := t.Engine.Creatures.Creature(t.AccountID(ownerName), id)
	require.NoError(t.Testing, err)
	require.False(t.Testing, exists, "AssertNoCreature: %s holds creature %d", ownerName, id)
}

// AssertPrice requires the listing of the creature to match. A nil price requires the creature not to be listed.
func (t *TestSuite) AssertPrice(id model.CreatureID, expectedPrice *iotago.BaseToken) {
	price, listed, err := t.Engine.Creatures.Price(id)
	require.NoError(t.Testing, err)

	if expectedPrice == nil {
		require.False(t.Testing, listed, "AssertPrice: creature %d is listed for %d", id, price)

		return
	}

	require.True(t.Testing, listed, "AssertPrice: creature %d is not listed", id)
	require.Equal(t.Testing, *expectedPrice, price, "AssertPrice: creature %d has unexpected price", id)
}

func (t *TestSuite) AssertNextCreatureID(expected model.CreatureID) {
	next, err := t.Engine.Creatures.NextCreatureID()
	require.NoError(t.Testing, err)
	require.Equal(t.Testing, expected, next, "AssertNextCreatureID: unexpected counter")
}
