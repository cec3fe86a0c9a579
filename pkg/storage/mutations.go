package storage

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/serializer/v2/marshalutil"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/model"
)

// Mutations stages registry writes. Nothing is visible in the Storage before Commit is called.
type Mutations struct {
	storage *Storage
	batch   kvstore.BatchedMutations

	// claims and owners collect the changes that are written into the state trees on commit. A nil claim marks a
	// deletion.
	claims map[string]*model.Claim
	owners map[model.CreatureID]iotago.AccountID
}

func newMutations(storage *Storage, batch kvstore.BatchedMutations) *Mutations {
	return &Mutations{
		storage: storage,
		batch:   batch,
		claims:  make(map[string]*model.Claim),
		owners:  make(map[model.CreatureID]iotago.AccountID),
	}
}

func (m *Mutations) StoreClaim(fingerprint model.Fingerprint, claim *model.Claim) error {
	if err := m.batch.Set(claimKey(fingerprint), lo.PanicOnErr(claim.Bytes())); err != nil {
		return ierrors.Wrapf(err, "failed to store claim %s", fingerprint)
	}
	m.claims[string(fingerprint)] = claim

	return nil
}

func (m *Mutations) DeleteClaim(fingerprint model.Fingerprint) error {
	if err := m.batch.Delete(claimKey(fingerprint)); err != nil {
		return ierrors.Wrapf(err, "failed to delete claim %s", fingerprint)
	}
	m.claims[string(fingerprint)] = nil

	return nil
}

// StoreCreature places the creature under owner and points the owner lookup of its id to owner.
func (m *Mutations) StoreCreature(owner iotago.AccountID, id model.CreatureID, genome model.Genome) error {
	if err := m.batch.Set(creatureKey(owner, id), lo.PanicOnErr(genome.Bytes())); err != nil {
		return ierrors.Wrapf(err, "failed to store creature %d", id)
	}

	if err := m.batch.Set(creatureOwnerKey(id), owner[:]); err != nil {
		return ierrors.Wrapf(err, "failed to store owner of creature %d", id)
	}
	m.owners[id] = owner

	return nil
}

// MoveCreature removes the creature from the bucket of from and stores it under to.
func (m *Mutations) MoveCreature(from iotago.AccountID, to iotago.AccountID, id model.CreatureID, genome model.Genome) error {
	if err := m.batch.Delete(creatureKey(from, id)); err != nil {
		return ierrors.Wrapf(err, "failed to remove creature %d from %s", id, from)
	}

	return m.StoreCreature(to, id, genome)
}

func (m *Mutations) StorePrice(id model.CreatureID, price iotago.BaseToken) error {
	value := marshalutil.New()
	value.WriteUint64(uint64(price))

	return m.batch.Set(listingKey(id), value.Bytes())
}

func (m *Mutations) DeletePrice(id model.CreatureID) error {
	return m.batch.Delete(listingKey(id))
}

func (m *Mutations) StoreNextCreatureID(id model.CreatureID) error {
	return m.batch.Set(nextCreatureIDKey(), id.MustBytes())
}

// Commit updates the state trees and then applies all staged writes. If either step fails, the trees are restored
// and no write is applied.
func (m *Mutations) Commit() error {
	undoTrees, err := m.storage.applyToTrees(m.claims, m.owners)
	if err != nil {
		m.batch.Cancel()

		return ierrors.Join(ierrors.Wrap(err, "failed to update state trees"), undoTrees())
	}

	if err = m.batch.Commit(); err != nil {
		return ierrors.Join(ierrors.Wrap(err, "failed to commit mutations"), undoTrees())
	}

	return nil
}

// Cancel drops all staged writes.
func (m *Mutations) Cancel() {
	m.batch.Cancel()
}
