package main

import (
	"context"

	"github.com/google/uuid"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/hive.go/runtime/options"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/auth"
	"github.com/iotaledger/registry-core/pkg/engine"
	"github.com/iotaledger/registry-core/pkg/ledger/balances"
	"github.com/iotaledger/registry-core/pkg/metrics"
	"github.com/iotaledger/registry-core/pkg/metrics/collector"
	"github.com/iotaledger/registry-core/pkg/model"
	"github.com/iotaledger/registry-core/pkg/randomness"
	"github.com/iotaledger/registry-core/pkg/registry/claims"
	"github.com/iotaledger/registry-core/pkg/registry/creatures"
)

const (
	realmRegistry byte = iota
	realmBalances
)

// Replay executes a scenario against a fresh in-memory engine.
type Replay struct {
	RunID     uuid.UUID
	Engine    *engine.Engine
	Ledger    *balances.Ledger
	Collector *collector.Collector
	Stats     *metrics.Stats

	names        []string
	accounts     map[string]*auth.KeyManager
	accountIDs   map[string]iotago.AccountID
	accountNames map[iotago.AccountID]string
	shutdown     func()

	log.Logger
}

func NewReplay(logger log.Logger, params *Parameters) (*Replay, error) {
	runID, err := uuid.NewRandom()
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to create run id")
	}

	store := mapdb.NewMapDB()
	registryStore, err := store.WithExtendedRealm(kvstore.Realm{realmRegistry})
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to create registry realm")
	}
	balancesStore, err := store.WithExtendedRealm(kvstore.Realm{realmBalances})
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to create balances realm")
	}

	r := &Replay{
		RunID:        runID,
		Ledger:       balances.New(balancesStore, balances.WithExistentialDeposit(iotago.BaseToken(params.ExistentialDeposit))),
		Collector:    collector.New(),
		accounts:     make(map[string]*auth.KeyManager),
		accountIDs:   make(map[string]iotago.AccountID),
		accountNames: make(map[iotago.AccountID]string),
		Logger:       logger.NewChildLogger("Replay"),
	}

	r.Engine = engine.New(r.Logger, r.Ledger, randomness.NewSlotSeeded(params.GenesisSeed), auth.Ed25519Authenticator{},
		engine.WithKVStore(registryStore),
		engine.WithClaimsOptions([]options.Option[claims.Registry]{
			claims.WithMaxFingerprintLength(params.MaxFingerprintLength),
		}...),
		engine.WithCreaturesOptions([]options.Option[creatures.Registry]{
			creatures.WithReserve(iotago.BaseToken(params.CreatureReserve)),
		}...),
	)

	r.Collector.RegisterCollection(metrics.NewRegistryCollection(r.Collector, r.Engine))

	var shutdownStats func()
	r.Stats, shutdownStats = metrics.TrackStats(r.Engine)

	r.shutdown = lo.Batch(
		shutdownStats,
		r.Collector.Shutdown,
		r.Engine.Shutdown,
		r.Logger.Shutdown,
	)

	return r, nil
}

// Run replays all slots of the scenario. Failing calls are logged and skipped; only scenario errors abort the run.
func (r *Replay) Run(ctx context.Context, scenario *Scenario) error {
	r.LogInfo("replay started", "run", r.RunID, "accounts", len(scenario.Accounts), "slots", len(scenario.Slots))

	for _, account := range scenario.Accounts {
		if err := r.addAccount(account); err != nil {
			return err
		}
	}

	for _, slot := range scenario.Slots {
		for index, tx := range slot.Txs {
			if err := ctx.Err(); err != nil {
				return ierrors.Wrap(err, "replay aborted")
			}

			if err := r.issue(iotago.SlotIndex(slot.Slot), uint32(index), &tx); err != nil {
				return err
			}
		}
	}

	r.LogInfo("replay finished", "run", r.RunID, "executed", r.Stats.ExecutedCalls.Load(), "failed", r.Stats.FailedCalls.Load(), "stateRoot", r.Engine.Storage.StateRoot())

	return nil
}

// AccountID returns the account id of the named scenario account.
func (r *Replay) AccountID(name string) iotago.AccountID {
	return r.accountIDs[name]
}

// AccountNames returns the names of the scenario accounts in the order they were declared.
func (r *Replay) AccountNames() []string {
	return append([]string(nil), r.names...)
}

// LogState logs the balances, claims, creatures and the collected metrics.
func (r *Replay) LogState() error {
	if err := r.Ledger.ForEachBalance(func(account iotago.AccountID, balance *balances.Balance) bool {
		r.LogInfo("balance", "account", r.accountName(account), "free", balance.Free, "reserved", balance.Reserved)

		return true
	}); err != nil {
		return ierrors.Wrap(err, "failed to iterate balances")
	}

	if err := r.Engine.Claims.ForEachClaim(func(fingerprint model.Fingerprint, claim *model.Claim) bool {
		r.LogInfo("claim", "fingerprint", fingerprint, "owner", r.accountName(claim.Owner), "slot", claim.RecordedAt)

		return true
	}); err != nil {
		return ierrors.Wrap(err, "failed to iterate claims")
	}

	for _, name := range r.names {
		if err := r.Engine.Creatures.ForEachCreature(r.accountIDs[name], func(id model.CreatureID, genome model.Genome) bool {
			price, listed, err := r.Engine.Creatures.Price(id)
			if err != nil {
				r.LogError("failed to load price", "id", id, "err", err)
			}

			r.LogInfo("creature", "owner", name, "id", id, "genome", genome, "listed", listed, "price", price)

			return true
		}); err != nil {
			return ierrors.Wrapf(err, "failed to iterate creatures of %s", name)
		}
	}

	r.Collector.Collect()
	families, err := r.Collector.Registry.Gather()
	if err != nil {
		return ierrors.Wrap(err, "failed to gather metrics")
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				r.LogInfo("metric", "name", family.GetName(), "labels", metric.GetLabel(), "value", metric.GetCounter().GetValue())
			case metric.GetGauge() != nil:
				r.LogInfo("metric", "name", family.GetName(), "labels", metric.GetLabel(), "value", metric.GetGauge().GetValue())
			}
		}
	}

	return nil
}

func (r *Replay) Shutdown() {
	r.shutdown()
}

func (r *Replay) addAccount(account ScenarioAccount) error {
	keyManager := auth.NewNamedKeyManager(account.Name)

	accountID, err := keyManager.AccountID()
	if err != nil {
		return ierrors.Wrapf(err, "failed to derive account id of %s", account.Name)
	}

	if err = r.Ledger.Mint(accountID, iotago.BaseToken(account.Balance)); err != nil {
		return ierrors.Wrapf(err, "failed to mint balance of %s", account.Name)
	}

	accountID.RegisterAlias(account.Name)
	r.names = append(r.names, account.Name)
	r.accounts[account.Name] = keyManager
	r.accountIDs[account.Name] = accountID
	r.accountNames[accountID] = account.Name

	r.LogDebug("added account", "name", account.Name, "id", accountID, "balance", account.Balance)

	return nil
}

func (r *Replay) issue(slot iotago.SlotIndex, index uint32, tx *ScenarioTx) error {
	call, err := tx.ToCall(r.AccountID)
	if err != nil {
		return ierrors.Wrapf(err, "slot %d tx %d", slot, index)
	}

	payload, err := call.Bytes()
	if err != nil {
		return ierrors.Wrapf(err, "failed to serialize %s", call.Type())
	}

	envelope, err := r.accounts[tx.Actor].Sign(payload)
	if err != nil {
		return ierrors.Wrapf(err, "failed to sign %s", call.Type())
	}

	if _, err = r.Engine.Submit(slot, index, envelope); err != nil {
		r.LogWarn("call failed", "slot", slot, "index", index, "actor", tx.Actor, "call", call.Type(), "reason", metrics.FailureReason(err), "err", err)
	}

	return nil
}

func (r *Replay) accountName(accountID iotago.AccountID) string {
	if name, exists := r.accountNames[accountID]; exists {
		return name
	}

	return accountID.String()
}
