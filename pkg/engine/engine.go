package engine

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/hive.go/runtime/syncutils"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/auth"
	"github.com/iotaledger/registry-core/pkg/registry"
	"github.com/iotaledger/registry-core/pkg/registry/claims"
	"github.com/iotaledger/registry-core/pkg/registry/creatures"
	"github.com/iotaledger/registry-core/pkg/storage"
)

// Engine is the single entry point into the registries. It executes one call at a time.
type Engine struct {
	Events *Events

	Storage   *storage.Storage
	Claims    *claims.Registry
	Creatures *creatures.Registry

	authenticator auth.Authenticator
	mutex         syncutils.Mutex

	optKVStore          kvstore.KVStore
	optClaimsOptions    []options.Option[claims.Registry]
	optCreaturesOptions []options.Option[creatures.Registry]

	log.Logger
}

func New(logger log.Logger, ledger registry.Ledger, randomness registry.Randomness, authenticator auth.Authenticator, opts ...options.Option[Engine]) *Engine {
	return options.Apply(&Engine{
		Events:        NewEvents(),
		authenticator: authenticator,
		Logger:        logger.NewChildLogger("Engine"),
	}, opts, func(e *Engine) {
		if e.optKVStore == nil {
			e.optKVStore = mapdb.NewMapDB()
		}

		e.Storage = storage.New(e.optKVStore)
		e.Claims = claims.New(e.Storage, e.optClaimsOptions...)
		e.Creatures = creatures.New(e.Storage, ledger, randomness, e.optCreaturesOptions...)

		e.Events.Claims.LinkTo(e.Claims.Events)
		e.Events.Creatures.LinkTo(e.Creatures.Events)
	})
}

// Submit authenticates the envelope and executes the call it carries at the given position.
func (e *Engine) Submit(slot iotago.SlotIndex, index uint32, envelope *auth.Envelope) (registry.Tx, error) {
	actor, err := e.authenticator.Resolve(envelope)
	if err != nil {
		e.LogDebug("rejected envelope", "slot", slot, "index", index, "err", err)

		return registry.Tx{}, ierrors.Wrap(err, "failed to authenticate envelope")
	}

	tx := registry.NewTx(actor, slot, index)

	call, err := CallFromBytes(envelope.Payload)
	if err != nil {
		e.LogDebug("rejected payload", "tx", tx, "err", err)

		return tx, err
	}

	return tx, e.Execute(tx, call)
}

// Execute applies the call on behalf of the actor of the transaction.
func (e *Engine) Execute(tx registry.Tx, call Call) (err error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if err = e.dispatch(tx, call); err != nil {
		e.LogDebug("call failed", "tx", tx, "call", call.Type(), "err", err)
		e.Events.CallFailed.Trigger(tx, call, err)

		return err
	}

	e.LogTrace("call executed", "tx", tx, "call", call.Type())
	e.Events.CallExecuted.Trigger(tx, call)

	return nil
}

func (e *Engine) dispatch(tx registry.Tx, call Call) error {
	switch c := call.(type) {
	case *CreateClaim:
		return e.Claims.CreateClaim(tx, c.Fingerprint)
	case *RevokeClaim:
		return e.Claims.RevokeClaim(tx, c.Fingerprint)
	case *TransferClaim:
		return e.Claims.TransferClaim(tx, c.Fingerprint, c.NewOwner)
	case *CreateCreature:
		_, err := e.Creatures.Create(tx)
		return err
	case *TransferCreature:
		return e.Creatures.Transfer(tx, c.To, c.ID)
	case *BreedCreature:
		_, err := e.Creatures.Breed(tx, c.Parent1, c.Parent2)
		return err
	case *SetCreaturePrice:
		return e.Creatures.SetPrice(tx, c.ID, c.Price)
	case *BuyCreature:
		return e.Creatures.Buy(tx, c.Owner, c.ID, c.MaxPrice)
	default:
		return ierrors.Wrapf(ErrUnknownCall, "%T", call)
	}
}

// Shutdown releases the logger of the Engine.
func (e *Engine) Shutdown() {
	e.Logger.Shutdown()
}

// WithKVStore is an option for the Engine that allows to set the store the registry state is kept in.
func WithKVStore(store kvstore.KVStore) options.Option[Engine] {
	return func(e *Engine) {
		e.optKVStore = store
	}
}

// WithClaimsOptions is an option for the Engine that allows to pass options to the claim registry.
func WithClaimsOptions(opts ...options.Option[claims.Registry]) options.Option[Engine] {
	return func(e *Engine) {
		e.optClaimsOptions = append(e.optClaimsOptions, opts...)
	}
}

// WithCreaturesOptions is an option for the Engine that allows to pass options to the creature registry.
func WithCreaturesOptions(opts ...options.Option[creatures.Registry]) options.Option[Engine] {
	return func(e *Engine) {
		e.optCreaturesOptions = append(e.optCreaturesOptions, opts...)
	}
}
