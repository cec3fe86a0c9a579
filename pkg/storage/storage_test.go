package storage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/iota.go/v4/tpkg"
	"github.com/iotaledger/registry-core/pkg/model"
	"github.com/iotaledger/registry-core/pkg/storage"
	"github.com/iotaledger/registry-core/pkg/storage/faultystore"
)

func TestStorage_Claims(t *testing.T) {
	s := storage.New(mapdb.NewMapDB())
	owner := tpkg.RandAccountID()

	_, exists, err := s.Claim(model.Fingerprint("a"))
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, s.Update(func(mutations *storage.Mutations) error {
		return mutations.StoreClaim(model.Fingerprint("a"), model.NewClaim(owner, 7))
	}))

	claim, exists, err := s.Claim(model.Fingerprint("a"))
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, owner, claim.Owner)
	require.Equal(t, iotago.SlotIndex(7), claim.RecordedAt)

	require.NoError(t, s.Update(func(mutations *storage.Mutations) error {
		return mutations.DeleteClaim(model.Fingerprint("a"))
	}))

	_, exists, err = s.Claim(model.Fingerprint("a"))
	require.NoError(t, err)
	require.False(t, exists)
}

func TestStorage_UpdateIsAtomic(t *testing.T) {
	s := storage.New(mapdb.NewMapDB())
	owner := tpkg.RandAccountID()
	expectedErr := ierrors.New("staging failed")

	require.ErrorIs(t, s.Update(func(mutations *storage.Mutations) error {
		require.NoError(t, mutations.StoreClaim(model.Fingerprint("a"), model.NewClaim(owner, 1)))
		require.NoError(t, mutations.StoreCreature(owner, 3, model.Genome{1}))
		require.NoError(t, mutations.StoreNextCreatureID(4))

		return expectedErr
	}), expectedErr)

	_, exists, err := s.Claim(model.Fingerprint("a"))
	require.NoError(t, err)
	require.False(t, exists)

	_, exists, err = s.Creature(owner, 3)
	require.NoError(t, err)
	require.False(t, exists)

	next, err := s.NextCreatureID()
	require.NoError(t, err)
	require.Equal(t, model.CreatureID(0), next)
}

func TestStorage_Creatures(t *testing.T) {
	s := storage.New(mapdb.NewMapDB())
	alice, bob := tpkg.RandAccountID(), tpkg.RandAccountID()
	genome := model.Genome{1, 2, 3}

	require.NoError(t, s.Update(func(mutations *storage.Mutations) error {
		if err := mutations.StoreCreature(alice, 0, genome); err != nil {
			return err
		}

		return mutations.StoreCreature(alice, 1, model.Genome{4})
	}))

	owner, exists, err := s.CreatureOwner(0)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, alice, owner)

	require.NoError(t, s.Update(func(mutations *storage.Mutations) error {
		return mutations.MoveCreature(alice, bob, 0, genome)
	}))

	_, exists, err = s.Creature(alice, 0)
	require.NoError(t, err)
	require.False(t, exists)

	moved, exists, err := s.Creature(bob, 0)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, genome, moved)

	owner, _, err = s.CreatureOwner(0)
	require.NoError(t, err)
	require.Equal(t, bob, owner)

	held := make(map[model.CreatureID]model.Genome)
	require.NoError(t, s.ForEachCreature(alice, func(id model.CreatureID, genome model.Genome) bool {
		held[id] = genome

		return true
	}))
	require.Equal(t, map[model.CreatureID]model.Genome{1: {4}}, held)
}

func TestStorage_Prices(t *testing.T) {
	s := storage.New(mapdb.NewMapDB())

	_, listed, err := s.Price(0)
	require.NoError(t, err)
	require.False(t, listed)

	require.NoError(t, s.Update(func(mutations *storage.Mutations) error {
		return mutations.StorePrice(0, 1234)
	}))

	price, listed, err := s.Price(0)
	require.NoError(t, err)
	require.True(t, listed)
	require.Equal(t, iotago.BaseToken(1234), price)

	require.NoError(t, s.Update(func(mutations *storage.Mutations) error {
		return mutations.DeletePrice(0)
	}))

	_, listed, err = s.Price(0)
	require.NoError(t, err)
	require.False(t, listed)
}

func TestStorage_StateRoot(t *testing.T) {
	alice, bob := tpkg.RandAccountID(), tpkg.RandAccountID()

	s1 := storage.New(mapdb.NewMapDB())
	s2 := storage.New(mapdb.NewMapDB())
	emptyRoot := s1.StateRoot()
	require.Equal(t, emptyRoot, s2.StateRoot())

	require.NoError(t, s1.Update(func(mutations *storage.Mutations) error {
		require.NoError(t, mutations.StoreClaim(model.Fingerprint("a"), model.NewClaim(alice, 1)))

		return mutations.StoreClaim(model.Fingerprint("b"), model.NewClaim(bob, 2))
	}))
	require.NotEqual(t, emptyRoot, s1.StateRoot())

	// the same state reached in a different order has the same root
	require.NoError(t, s2.Update(func(mutations *storage.Mutations) error {
		return mutations.StoreClaim(model.Fingerprint("b"), model.NewClaim(bob, 2))
	}))
	require.NoError(t, s2.Update(func(mutations *storage.Mutations) error {
		return mutations.StoreClaim(model.Fingerprint("a"), model.NewClaim(alice, 1))
	}))
	require.Equal(t, s1.StateRoot(), s2.StateRoot())
	require.Equal(t, s1.ClaimsRoot(), s2.ClaimsRoot())

	ownersRoot := s1.OwnersRoot()
	require.NoError(t, s1.Update(func(mutations *storage.Mutations) error {
		return mutations.StoreCreature(alice, 0, model.Genome{1})
	}))
	require.NotEqual(t, ownersRoot, s1.OwnersRoot())
	require.NotEqual(t, s1.StateRoot(), s2.StateRoot())

	// cancelled mutations leave the root untouched
	stateRoot := s1.StateRoot()
	require.Error(t, s1.Update(func(mutations *storage.Mutations) error {
		require.NoError(t, mutations.DeleteClaim(model.Fingerprint("a")))

		return ierrors.New("abort")
	}))
	require.Equal(t, stateRoot, s1.StateRoot())
}

func TestStorage_FailedStateTreeUpdateIsAtomic(t *testing.T) {
	alice := tpkg.RandAccountID()
	store := faultystore.New(mapdb.NewMapDB(), kvstore.Realm{storage.StoreKeyPrefixOwnersTree})
	s := storage.New(store)
	stage := func(mutations *storage.Mutations) error {
		require.NoError(t, mutations.StoreClaim(model.Fingerprint("a"), model.NewClaim(alice, 1)))
		require.NoError(t, mutations.StoreCreature(alice, 0, model.Genome{1}))

		return mutations.StoreNextCreatureID(1)
	}

	claimsRoot, ownersRoot := s.ClaimsRoot(), s.OwnersRoot()

	store.Fail(true)
	require.ErrorIs(t, s.Update(stage), faultystore.ErrWriteFailed)

	_, exists, err := s.Claim(model.Fingerprint("a"))
	require.NoError(t, err)
	require.False(t, exists)

	_, exists, err = s.CreatureOwner(0)
	require.NoError(t, err)
	require.False(t, exists)

	next, err := s.NextCreatureID()
	require.NoError(t, err)
	require.Equal(t, model.CreatureID(0), next)

	// the claims tree was written before the owners tree failed and is restored as well
	require.Equal(t, claimsRoot, s.ClaimsRoot())
	require.Equal(t, ownersRoot, s.OwnersRoot())

	store.Fail(false)
	require.NoError(t, s.Update(stage))

	expected := storage.New(mapdb.NewMapDB())
	require.NoError(t, expected.Update(stage))
	require.Equal(t, expected.StateRoot(), s.StateRoot())
}
