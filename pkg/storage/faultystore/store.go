// Package faultystore provides a KVStore wrapper whose writes can be made to fail, for exercising rollback paths.
package faultystore

import (
	"bytes"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
)

// ErrWriteFailed is returned by every write into the affected part of a Store while failing is enabled.
var ErrWriteFailed = ierrors.New("write failed")

// Store wraps a KVStore. While failing is enabled, writes and batch commits into the affected realm fail.
type Store struct {
	kvstore.KVStore

	switchState *switchState
	affected    bool
	root        bool
}

type switchState struct {
	realm   kvstore.Realm
	enabled bool
}

// New wraps store. Writes into the given realm (as extended from store) fail once Fail(true) is called. A nil realm
// affects the whole store.
func New(store kvstore.KVStore, realm kvstore.Realm) *Store {
	return &Store{
		KVStore:     store,
		switchState: &switchState{realm: realm},
		affected:    realm == nil,
		root:        true,
	}
}

// Fail enables or disables the write failures of the store and all stores derived from it.
func (s *Store) Fail(enabled bool) {
	s.switchState.enabled = enabled
}

func (s *Store) WithRealm(realm kvstore.Realm) (kvstore.KVStore, error) {
	store, err := s.KVStore.WithRealm(realm)
	if err != nil {
		return nil, err
	}

	return s.derive(store, s.affected), nil
}

func (s *Store) WithExtendedRealm(realm kvstore.Realm) (kvstore.KVStore, error) {
	store, err := s.KVStore.WithExtendedRealm(realm)
	if err != nil {
		return nil, err
	}

	return s.derive(store, s.affected || (s.root && bytes.Equal(realm, s.switchState.realm))), nil
}

func (s *Store) Set(key kvstore.Key, value kvstore.Value) error {
	if s.failing() {
		return ierrors.Wrapf(ErrWriteFailed, "set %x", key)
	}

	return s.KVStore.Set(key, value)
}

func (s *Store) Delete(key kvstore.Key) error {
	if s.failing() {
		return ierrors.Wrapf(ErrWriteFailed, "delete %x", key)
	}

	return s.KVStore.Delete(key)
}

func (s *Store) Batched() (kvstore.BatchedMutations, error) {
	batch, err := s.KVStore.Batched()
	if err != nil {
		return nil, err
	}

	return &batchedMutations{BatchedMutations: batch, store: s}, nil
}

func (s *Store) failing() bool {
	return s.affected && s.switchState.enabled
}

func (s *Store) derive(store kvstore.KVStore, affected bool) *Store {
	return &Store{
		KVStore:     store,
		switchState: s.switchState,
		affected:    affected,
	}
}

type batchedMutations struct {
	kvstore.BatchedMutations

	store *Store
}

func (b *batchedMutations) Commit() error {
	if b.store.failing() {
		b.BatchedMutations.Cancel()

		return ierrors.Wrap(ErrWriteFailed, "commit batch")
	}

	return b.BatchedMutations.Commit()
}
