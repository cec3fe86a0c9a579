package creatures

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/runtime/options"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/model"
	"github.com/iotaledger/registry-core/pkg/registry"
	"github.com/iotaledger/registry-core/pkg/storage"
)

// Registry keeps track of creatures, their owners and their sale prices.
type Registry struct {
	Events *Events

	storage    *storage.Storage
	ledger     registry.Ledger
	randomness registry.Randomness
	allocator  *Allocator

	// optReserve contains the amount reserved from the creator of a creature.
	optReserve iotago.BaseToken

	// optMaxCreatureID contains the limit of the id counter. Only ids below it are handed out.
	optMaxCreatureID model.CreatureID
}

func New(storageInstance *storage.Storage, ledger registry.Ledger, randomness registry.Randomness, opts ...options.Option[Registry]) *Registry {
	return options.Apply(&Registry{
		Events:           NewEvents(),
		storage:          storageInstance,
		ledger:           ledger,
		randomness:       randomness,
		optReserve:       100,
		optMaxCreatureID: defaultMaxCreatureID,
	}, opts, func(r *Registry) {
		r.allocator = NewAllocator(r.storage, r.optMaxCreatureID)
	})
}

// Create reserves the creature deposit of the actor and creates a creature with a random genome for it.
func (r *Registry) Create(tx registry.Tx) (model.CreatureID, error) {
	if err := r.ledger.Reserve(tx.Actor, r.optReserve); err != nil {
		return 0, ierrors.Join(registry.ErrInsufficientFunds, ierrors.Wrapf(err, "failed to reserve %d for %s", r.optReserve, tx.Actor))
	}

	genome := randomValue(r.randomness.Seed(tx.Slot), tx)

	id, err := r.insert(tx.Actor, genome)
	if err != nil {
		if unreserveErr := r.ledger.Unreserve(tx.Actor, r.optReserve); unreserveErr != nil {
			return 0, ierrors.Join(ierrors.Wrap(err, "failed to create creature"), ierrors.Wrapf(unreserveErr, "failed to release reservation of %s", tx.Actor))
		}

		return 0, ierrors.Wrap(err, "failed to create creature")
	}

	r.Events.CreatureCreated.Trigger(tx.Actor, id, genome)

	return id, nil
}

// Transfer moves a creature of the actor to another account. Transferring to oneself is a no-op.
func (r *Registry) Transfer(tx registry.Tx, to iotago.AccountID, id model.CreatureID) error {
	genome, err := r.ownedCreature(tx.Actor, id)
	if err != nil {
		return err
	}

	if to == tx.Actor {
		return nil
	}

	if err = r.storage.Update(func(mutations *storage.Mutations) error {
		return mutations.MoveCreature(tx.Actor, to, id, genome)
	}); err != nil {
		return ierrors.Wrapf(err, "failed to transfer creature %d", id)
	}

	r.Events.CreatureTransferred.Trigger(tx.Actor, to, id)

	return nil
}

// Breed creates a new creature for the actor by mixing the genomes of two of its creatures.
func (r *Registry) Breed(tx registry.Tx, id1 model.CreatureID, id2 model.CreatureID) (model.CreatureID, error) {
	if id1 == id2 {
		return 0, ierrors.Wrapf(registry.ErrSameParent, "creature %d", id1)
	}

	parent1, err := r.ownedCreature(tx.Actor, id1)
	if err != nil {
		return 0, err
	}

	parent2, err := r.ownedCreature(tx.Actor, id2)
	if err != nil {
		return 0, err
	}

	child := combineGenomes(parent1, parent2, randomValue(r.randomness.Seed(tx.Slot), tx))

	id, err := r.insert(tx.Actor, child)
	if err != nil {
		return 0, ierrors.Wrapf(err, "failed to breed creatures %d and %d", id1, id2)
	}

	r.Events.CreatureCreated.Trigger(tx.Actor, id, child)

	return id, nil
}

// SetPrice lists a creature of the actor for sale. A nil price removes the listing.
func (r *Registry) SetPrice(tx registry.Tx, id model.CreatureID, price *iotago.BaseToken) error {
	if _, exists, err := r.storage.Creature(tx.Actor, id); err != nil {
		return ierrors.Wrapf(err, "failed to load creature %d", id)
	} else if !exists {
		return ierrors.Wrapf(registry.ErrNotOwner, "creature %d is not owned by %s", id, tx.Actor)
	}

	if err := r.storage.Update(func(mutations *storage.Mutations) error {
		if price == nil {
			return mutations.DeletePrice(id)
		}

		return mutations.StorePrice(id, *price)
	}); err != nil {
		return ierrors.Wrapf(err, "failed to update price of creature %d", id)
	}

	var updatedPrice *iotago.BaseToken
	if price != nil {
		updatedPrice = new(iotago.BaseToken)
		*updatedPrice = *price
	}

	r.Events.PriceUpdated.Trigger(tx.Actor, id, updatedPrice)

	return nil
}

// Buy pays the asking price of a listed creature to its owner and moves the creature to the actor. Either both the
// payment and the move happen or neither does.
func (r *Registry) Buy(tx registry.Tx, owner iotago.AccountID, id model.CreatureID, maxPrice iotago.BaseToken) error {
	if tx.Actor == owner {
		return ierrors.Wrapf(registry.ErrBuyFromSelf, "creature %d", id)
	}

	genome, err := r.ownedCreature(owner, id)
	if err != nil {
		return err
	}

	price, listed, err := r.storage.Price(id)
	if err != nil {
		return ierrors.Wrapf(err, "failed to load price of creature %d", id)
	} else if !listed {
		return ierrors.Wrapf(registry.ErrNotForSale, "creature %d", id)
	}

	if maxPrice < price {
		return ierrors.Wrapf(registry.ErrPriceTooLow, "creature %d costs %d, offered %d", id, price, maxPrice)
	}

	mutations, err := r.storage.Batched()
	if err != nil {
		return ierrors.Wrapf(err, "failed to buy creature %d", id)
	}

	if err = mutations.MoveCreature(owner, tx.Actor, id, genome); err == nil {
		err = mutations.DeletePrice(id)
	}
	if err != nil {
		mutations.Cancel()

		return ierrors.Wrapf(err, "failed to stage sale of creature %d", id)
	}

	if err = r.ledger.Transfer(tx.Actor, owner, price, registry.KeepAlive); err != nil {
		mutations.Cancel()

		return ierrors.Wrapf(err, "failed to pay %d for creature %d", price, id)
	}

	if err = mutations.Commit(); err != nil {
		if refundErr := r.ledger.Transfer(owner, tx.Actor, price, registry.AllowDeath); refundErr != nil {
			return ierrors.Join(ierrors.Wrapf(err, "failed to settle sale of creature %d", id), ierrors.Wrap(refundErr, "failed to refund buyer"))
		}

		return ierrors.Wrapf(err, "failed to settle sale of creature %d", id)
	}

	r.Events.CreatureSold.Trigger(tx.Actor, owner, id, price)

	return nil
}

// Creature returns the genome of a creature held by owner.
func (r *Registry) Creature(owner iotago.AccountID, id model.CreatureID) (genome model.Genome, exists bool, err error) {
	return r.storage.Creature(owner, id)
}

// OwnerOf returns the account currently holding the creature.
func (r *Registry) OwnerOf(id model.CreatureID) (owner iotago.AccountID, exists bool, err error) {
	return r.storage.CreatureOwner(id)
}

// Price returns the asking price of a listed creature.
func (r *Registry) Price(id model.CreatureID) (price iotago.BaseToken, listed bool, err error) {
	return r.storage.Price(id)
}

// NextCreatureID returns the id the next created creature receives.
func (r *Registry) NextCreatureID() (model.CreatureID, error) {
	return r.storage.NextCreatureID()
}

// ForEachCreature iterates over the creatures held by owner.
func (r *Registry) ForEachCreature(owner iotago.AccountID, consumer func(id model.CreatureID, genome model.Genome) bool) error {
	return r.storage.ForEachCreature(owner, consumer)
}

func (r *Registry) insert(owner iotago.AccountID, genome model.Genome) (id model.CreatureID, err error) {
	if err = r.storage.Update(func(mutations *storage.Mutations) error {
		if id, err = r.allocator.Allocate(mutations); err != nil {
			return err
		}

		return mutations.StoreCreature(owner, id, genome)
	}); err != nil {
		return 0, err
	}

	return id, nil
}

func (r *Registry) ownedCreature(owner iotago.AccountID, id model.CreatureID) (model.Genome, error) {
	genome, exists, err := r.storage.Creature(owner, id)
	if err != nil {
		return genome, ierrors.Wrapf(err, "failed to load creature %d", id)
	} else if !exists {
		return genome, ierrors.Wrapf(registry.ErrInvalidID, "creature %d is not owned by %s", id, owner)
	}

	return genome, nil
}

// WithReserve is an option for the Registry that allows to configure the amount reserved per created creature.
func WithReserve(reserve iotago.BaseToken) options.Option[Registry] {
	return func(r *Registry) {
		r.optReserve = reserve
	}
}

// WithMaxCreatureID is an option for the Registry that allows to configure the limit of the creature id counter.
// With a limit of n the ids 0 to n-1 are handed out.
func WithMaxCreatureID(maxID model.CreatureID) options.Option[Registry] {
	return func(r *Registry) {
		r.optMaxCreatureID = maxID
	}
}
