package claims

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/runtime/options"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/model"
	"github.com/iotaledger/registry-core/pkg/registry"
	"github.com/iotaledger/registry-core/pkg/storage"
)

// Registry binds fingerprints to the account that claimed them first.
type Registry struct {
	Events *Events

	storage *storage.Storage

	// optMaxFingerprintLength contains the maximum length of a claimable fingerprint.
	optMaxFingerprintLength int
}

func New(storageInstance *storage.Storage, opts ...options.Option[Registry]) *Registry {
	return options.Apply(&Registry{
		Events:                  NewEvents(),
		storage:                 storageInstance,
		optMaxFingerprintLength: 256,
	}, opts)
}

// CreateClaim claims the fingerprint for the actor of the transaction.
func (r *Registry) CreateClaim(tx registry.Tx, fingerprint model.Fingerprint) error {
	if len(fingerprint) > r.optMaxFingerprintLength {
		return ierrors.Wrapf(registry.ErrMetadataTooLong, "fingerprint has %d bytes, at most %d are allowed", len(fingerprint), r.optMaxFingerprintLength)
	}

	if _, exists, err := r.storage.Claim(fingerprint); err != nil {
		return ierrors.Wrap(err, "failed to create claim")
	} else if exists {
		return ierrors.Wrapf(registry.ErrAlreadyClaimed, "fingerprint %s", fingerprint)
	}

	if err := r.storage.Update(func(mutations *storage.Mutations) error {
		return mutations.StoreClaim(fingerprint, model.NewClaim(tx.Actor, tx.Slot))
	}); err != nil {
		return ierrors.Wrapf(err, "failed to store claim for fingerprint %s", fingerprint)
	}

	r.Events.ClaimCreated.Trigger(tx.Actor, fingerprint)

	return nil
}

// RevokeClaim removes a claim held by the actor of the transaction.
func (r *Registry) RevokeClaim(tx registry.Tx, fingerprint model.Fingerprint) error {
	if _, err := r.ownedClaim(tx.Actor, fingerprint); err != nil {
		return err
	}

	if err := r.storage.Update(func(mutations *storage.Mutations) error {
		return mutations.DeleteClaim(fingerprint)
	}); err != nil {
		return ierrors.Wrapf(err, "failed to delete claim for fingerprint %s", fingerprint)
	}

	r.Events.ClaimRevoked.Trigger(tx.Actor, fingerprint)

	return nil
}

// TransferClaim rebinds a claim held by the actor of the transaction to newOwner. The claim is recorded at the slot
// of the transaction. No event is triggered.
func (r *Registry) TransferClaim(tx registry.Tx, fingerprint model.Fingerprint, newOwner iotago.AccountID) error {
	if _, err := r.ownedClaim(tx.Actor, fingerprint); err != nil {
		return err
	}

	if err := r.storage.Update(func(mutations *storage.Mutations) error {
		return mutations.StoreClaim(fingerprint, model.NewClaim(newOwner, tx.Slot))
	}); err != nil {
		return ierrors.Wrapf(err, "failed to transfer claim for fingerprint %s", fingerprint)
	}

	return nil
}

// Claim returns the claim registered for the fingerprint.
func (r *Registry) Claim(fingerprint model.Fingerprint) (claim *model.Claim, exists bool, err error) {
	return r.storage.Claim(fingerprint)
}

// ForEachClaim iterates over all registered claims.
func (r *Registry) ForEachClaim(consumer func(fingerprint model.Fingerprint, claim *model.Claim) bool) error {
	return r.storage.ForEachClaim(consumer)
}

func (r *Registry) ownedClaim(actor iotago.AccountID, fingerprint model.Fingerprint) (*model.Claim, error) {
	claim, exists, err := r.storage.Claim(fingerprint)
	if err != nil {
		return nil, ierrors.Wrapf(err, "failed to load claim for fingerprint %s", fingerprint)
	} else if !exists {
		return nil, ierrors.Wrapf(registry.ErrNotFound, "fingerprint %s", fingerprint)
	}

	if claim.Owner != actor {
		return nil, ierrors.Wrapf(registry.ErrNotOwner, "fingerprint %s is owned by %s", fingerprint, claim.Owner)
	}

	return claim, nil
}

// WithMaxFingerprintLength is an option for the Registry that allows to configure the maximum length of a fingerprint.
func WithMaxFingerprintLength(maxLength int) options.Option[Registry] {
	return func(r *Registry) {
		r.optMaxFingerprintLength = maxLength
	}
}
