package storage

import (
	"github.com/iotaledger/hive.go/ads"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/serializer/v2/byteutils"
	"github.com/iotaledger/hive.go/serializer/v2/marshalutil"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/model"
)

// Storage holds the state of the claim and creature registries in a single KVStore. All reads go directly to the
// store, all writes are staged in Mutations and applied atomically on commit.
//
// Claims and creature owners are additionally tracked in authenticated maps whose roots commit to the registry state.
type Storage struct {
	store kvstore.KVStore

	claimsTree ads.Map[iotago.Identifier, iotago.Identifier, *model.Claim]
	ownersTree ads.Map[iotago.Identifier, model.CreatureID, iotago.AccountID]
}

func New(store kvstore.KVStore) *Storage {
	return &Storage{
		store: store,
		claimsTree: ads.NewMap[iotago.Identifier](lo.PanicOnErr(store.WithExtendedRealm(kvstore.Realm{StoreKeyPrefixClaimsTree})),
			iotago.Identifier.Bytes,
			iotago.IdentifierFromBytes,
			iotago.Identifier.Bytes,
			iotago.IdentifierFromBytes,
			(*model.Claim).Bytes,
			model.ClaimFromBytes,
		),
		ownersTree: ads.NewMap[iotago.Identifier](lo.PanicOnErr(store.WithExtendedRealm(kvstore.Realm{StoreKeyPrefixOwnersTree})),
			iotago.Identifier.Bytes,
			iotago.IdentifierFromBytes,
			model.CreatureID.Bytes,
			model.CreatureIDFromBytes,
			iotago.AccountID.Bytes,
			iotago.AccountIDFromBytes,
		),
	}
}

// KVStore returns the underlying KVStore.
func (s *Storage) KVStore() kvstore.KVStore {
	return s.store
}

// Claim loads the claim registered for the given fingerprint.
func (s *Storage) Claim(fingerprint model.Fingerprint) (claim *model.Claim, exists bool, err error) {
	value, exists, err := s.get(claimKey(fingerprint))
	if err != nil || !exists {
		return nil, false, err
	}

	if claim, _, err = model.ClaimFromBytes(value); err != nil {
		return nil, false, ierrors.Wrapf(err, "failed to decode claim %s", fingerprint)
	}

	return claim, true, nil
}

// ForEachClaim iterates over all claims. Returning false from the consumer aborts the iteration.
func (s *Storage) ForEachClaim(consumer func(fingerprint model.Fingerprint, claim *model.Claim) bool) error {
	var innerErr error
	if err := s.store.Iterate(kvstore.KeyPrefix{StoreKeyPrefixClaim}, func(key kvstore.Key, value kvstore.Value) bool {
		claim, _, err := model.ClaimFromBytes(value)
		if err != nil {
			innerErr = ierrors.Wrapf(err, "failed to decode claim %s", model.Fingerprint(key[1:]))

			return false
		}

		return consumer(model.Fingerprint(append([]byte(nil), key[1:]...)), claim)
	}); err != nil {
		return ierrors.Wrap(err, "failed to iterate over claims")
	}

	return innerErr
}

// Creature loads the genome of the creature with the given id held by owner.
func (s *Storage) Creature(owner iotago.AccountID, id model.CreatureID) (genome model.Genome, exists bool, err error) {
	value, exists, err := s.get(creatureKey(owner, id))
	if err != nil || !exists {
		return genome, false, err
	}

	if genome, _, err = model.GenomeFromBytes(value); err != nil {
		return genome, false, ierrors.Wrapf(err, "failed to decode genome of creature %d", id)
	}

	return genome, true, nil
}

// ForEachCreature iterates over all creatures held by owner. Returning false from the consumer aborts the iteration.
func (s *Storage) ForEachCreature(owner iotago.AccountID, consumer func(id model.CreatureID, genome model.Genome) bool) error {
	prefix := creaturePrefix(owner)

	var innerErr error
	if err := s.store.Iterate(prefix, func(key kvstore.Key, value kvstore.Value) bool {
		id, _, err := model.CreatureIDFromBytes(key[len(prefix):])
		if err != nil {
			innerErr = err

			return false
		}

		genome, _, err := model.GenomeFromBytes(value)
		if err != nil {
			innerErr = ierrors.Wrapf(err, "failed to decode genome of creature %d", id)

			return false
		}

		return consumer(id, genome)
	}); err != nil {
		return ierrors.Wrapf(err, "failed to iterate over creatures of %s", owner)
	}

	return innerErr
}

// CreatureOwner returns the account currently holding the creature with the given id.
func (s *Storage) CreatureOwner(id model.CreatureID) (owner iotago.AccountID, exists bool, err error) {
	value, exists, err := s.get(creatureOwnerKey(id))
	if err != nil || !exists {
		return owner, false, err
	}

	if owner, _, err = iotago.AccountIDFromBytes(value); err != nil {
		return owner, false, ierrors.Wrapf(err, "failed to decode owner of creature %d", id)
	}

	return owner, true, nil
}

// Price returns the sale price of the creature with the given id, if it is listed.
func (s *Storage) Price(id model.CreatureID) (price iotago.BaseToken, exists bool, err error) {
	value, exists, err := s.get(listingKey(id))
	if err != nil || !exists {
		return 0, false, err
	}

	rawPrice, err := marshalutil.New(value).ReadUint64()
	if err != nil {
		return 0, false, ierrors.Wrapf(err, "failed to decode price of creature %d", id)
	}

	return iotago.BaseToken(rawPrice), true, nil
}

// NextCreatureID returns the id the next created creature receives.
func (s *Storage) NextCreatureID() (model.CreatureID, error) {
	value, exists, err := s.get(nextCreatureIDKey())
	if err != nil || !exists {
		// there is no creature yet => start at 0
		return 0, err
	}

	id, _, err := model.CreatureIDFromBytes(value)

	return id, err
}

// Batched returns a new set of Mutations that is applied atomically on Commit.
func (s *Storage) Batched() (*Mutations, error) {
	batch, err := s.store.Batched()
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to create batched mutations")
	}

	return newMutations(s, batch), nil
}

// Update stages the writes of the given function and commits them. If the function fails, no write is applied.
func (s *Storage) Update(stageFunc func(mutations *Mutations) error) error {
	mutations, err := s.Batched()
	if err != nil {
		return err
	}

	if err = stageFunc(mutations); err != nil {
		mutations.Cancel()

		return err
	}

	return mutations.Commit()
}

// ClaimsRoot returns the root of the authenticated map of claims.
func (s *Storage) ClaimsRoot() iotago.Identifier {
	return s.claimsTree.Root()
}

// OwnersRoot returns the root of the authenticated map of creature owners.
func (s *Storage) OwnersRoot() iotago.Identifier {
	return s.ownersTree.Root()
}

// StateRoot commits to the claims and the creature ownership of the registry.
func (s *Storage) StateRoot() iotago.Identifier {
	claimsRoot, ownersRoot := s.ClaimsRoot(), s.OwnersRoot()

	return iotago.IdentifierFromData(byteutils.ConcatBytes(claimsRoot[:], ownersRoot[:]))
}

// applyToTrees writes the staged claim and owner changes into the state trees. The returned undo function restores
// the previous tree contents and is valid even if applying failed halfway. The previous contents are taken from the
// committed registry state, which the trees mirror.
func (s *Storage) applyToTrees(claims map[string]*model.Claim, owners map[model.CreatureID]iotago.AccountID) (undo func() error, err error) {
	undoFuncs := make([]func() error, 0, len(claims)+len(owners))
	undo = func() error {
		var undoErr error
		for i := len(undoFuncs) - 1; i >= 0; i-- {
			undoErr = ierrors.Join(undoErr, undoFuncs[i]())
		}

		if undoErr != nil {
			return ierrors.Wrap(undoErr, "failed to restore state trees")
		}

		return s.commitTrees()
	}

	for fingerprint, claim := range claims {
		key := claimTreeKey(model.Fingerprint(fingerprint))

		previous, existed, err := s.Claim(model.Fingerprint(fingerprint))
		if err != nil {
			return undo, err
		}

		undoFuncs = append(undoFuncs, func() error {
			if !existed {
				_, deleteErr := s.claimsTree.Delete(key)

				return deleteErr
			}

			return s.claimsTree.Set(key, previous)
		})

		if claim == nil {
			if _, err = s.claimsTree.Delete(key); err != nil {
				return undo, ierrors.Wrapf(err, "failed to delete claim %s from claims tree", key)
			}

			continue
		}

		if err = s.claimsTree.Set(key, claim); err != nil {
			return undo, ierrors.Wrapf(err, "failed to set claim %s in claims tree", key)
		}
	}

	for id, owner := range owners {
		previous, existed, err := s.CreatureOwner(id)
		if err != nil {
			return undo, err
		}

		undoFuncs = append(undoFuncs, func() error {
			if !existed {
				_, deleteErr := s.ownersTree.Delete(id)

				return deleteErr
			}

			return s.ownersTree.Set(id, previous)
		})

		if err = s.ownersTree.Set(id, owner); err != nil {
			return undo, ierrors.Wrapf(err, "failed to set owner of creature %d in owners tree", id)
		}
	}

	return undo, s.commitTrees()
}

func (s *Storage) commitTrees() error {
	if err := s.claimsTree.Commit(); err != nil {
		return ierrors.Wrap(err, "failed to commit claims tree")
	}

	if err := s.ownersTree.Commit(); err != nil {
		return ierrors.Wrap(err, "failed to commit owners tree")
	}

	return nil
}

func (s *Storage) get(key []byte) (value []byte, exists bool, err error) {
	if value, err = s.store.Get(key); err != nil {
		if ierrors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, false, nil
		}

		return nil, false, ierrors.Wrapf(err, "failed to read key %x", key)
	}

	return value, true, nil
}
