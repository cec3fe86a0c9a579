package metrics

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/engine"
	"github.com/iotaledger/registry-core/pkg/ledger/balances"
	"github.com/iotaledger/registry-core/pkg/metrics/collector"
	"github.com/iotaledger/registry-core/pkg/model"
	"github.com/iotaledger/registry-core/pkg/registry"
)

const (
	registryNamespace = "registry"

	claimsCreated        = "claims_created_total"
	claimsRevoked        = "claims_revoked_total"
	creaturesCreated     = "creatures_created_total"
	creaturesTransferred = "creatures_transferred_total"
	creaturesSold        = "creatures_sold_total"
	salesVolume          = "sales_volume_total"
	callsFailed          = "calls_failed_total"
	nextCreatureID       = "next_creature_id"
)

// failureReasons maps the errors a call can fail with to the label they are counted under.
var failureReasons = []struct {
	err    error
	reason string
}{
	{registry.ErrNotFound, "not_found"},
	{registry.ErrAlreadyClaimed, "already_claimed"},
	{registry.ErrNotOwner, "not_owner"},
	{registry.ErrMetadataTooLong, "metadata_too_long"},
	{registry.ErrInvalidID, "invalid_id"},
	{registry.ErrSameParent, "same_parent"},
	{registry.ErrCounterOverflow, "counter_overflow"},
	{registry.ErrInsufficientFunds, "insufficient_funds"},
	{registry.ErrBuyFromSelf, "buy_from_self"},
	{registry.ErrNotForSale, "not_for_sale"},
	{registry.ErrPriceTooLow, "price_too_low"},
	{balances.ErrInsufficientBalance, "insufficient_balance"},
	{balances.ErrKeepAlive, "keep_alive"},
	{balances.ErrExistentialDeposit, "existential_deposit"},
	{engine.ErrUnknownCall, "unknown_call"},
	{engine.ErrMalformedCall, "malformed_call"},
}

// FailureReason returns the label a failed call is counted under.
func FailureReason(err error) string {
	for _, failureReason := range failureReasons {
		if ierrors.Is(err, failureReason.err) {
			return failureReason.reason
		}
	}

	return "other"
}

// NewRegistryCollection creates the collection of registry metrics that is fed by the events of the engine.
func NewRegistryCollection(c *collector.Collector, e *engine.Engine) *collector.Collection {
	return collector.NewCollection(registryNamespace,
		collector.WithMetric(collector.NewMetric(claimsCreated,
			collector.WithType(collector.Counter),
			collector.WithHelp("Number of created claims."),
			collector.WithInitFunc(func() func() {
				return e.Events.Claims.ClaimCreated.Hook(func(_ iotago.AccountID, _ model.Fingerprint) {
					c.Increment(registryNamespace, claimsCreated)
				}).Unhook
			}),
		)),
		collector.WithMetric(collector.NewMetric(claimsRevoked,
			collector.WithType(collector.Counter),
			collector.WithHelp("Number of revoked claims."),
			collector.WithInitFunc(func() func() {
				return e.Events.Claims.ClaimRevoked.Hook(func(_ iotago.AccountID, _ model.Fingerprint) {
					c.Increment(registryNamespace, claimsRevoked)
				}).Unhook
			}),
		)),
		collector.WithMetric(collector.NewMetric(creaturesCreated,
			collector.WithType(collector.Counter),
			collector.WithHelp("Number of created and bred creatures."),
			collector.WithInitFunc(func() func() {
				return e.Events.Creatures.CreatureCreated.Hook(func(_ iotago.AccountID, _ model.CreatureID, _ model.Genome) {
					c.Increment(registryNamespace, creaturesCreated)
				}).Unhook
			}),
		)),
		collector.WithMetric(collector.NewMetric(creaturesTransferred,
			collector.WithType(collector.Counter),
			collector.WithHelp("Number of creature transfers."),
			collector.WithInitFunc(func() func() {
				return e.Events.Creatures.CreatureTransferred.Hook(func(_ iotago.AccountID, _ iotago.AccountID, _ model.CreatureID) {
					c.Increment(registryNamespace, creaturesTransferred)
				}).Unhook
			}),
		)),
		collector.WithMetric(collector.NewMetric(creaturesSold,
			collector.WithType(collector.Counter),
			collector.WithHelp("Number of sold creatures."),
			collector.WithInitFunc(func() func() {
				return e.Events.Creatures.CreatureSold.Hook(func(_ iotago.AccountID, _ iotago.AccountID, _ model.CreatureID, _ iotago.BaseToken) {
					c.Increment(registryNamespace, creaturesSold)
				}).Unhook
			}),
		)),
		collector.WithMetric(collector.NewMetric(salesVolume,
			collector.WithType(collector.Counter),
			collector.WithHelp("Sum of the prices paid for creatures."),
			collector.WithInitFunc(func() func() {
				return e.Events.Creatures.CreatureSold.Hook(func(_ iotago.AccountID, _ iotago.AccountID, _ model.CreatureID, price iotago.BaseToken) {
					c.Update(registryNamespace, salesVolume, float64(price))
				}).Unhook
			}),
		)),
		collector.WithMetric(collector.NewMetric(callsFailed,
			collector.WithType(collector.Counter),
			collector.WithHelp("Number of rejected calls by reason."),
			collector.WithLabels("reason"),
			collector.WithInitFunc(func() func() {
				return e.Events.CallFailed.Hook(func(_ registry.Tx, _ engine.Call, err error) {
					c.Increment(registryNamespace, callsFailed, FailureReason(err))
				}).Unhook
			}),
		)),
		collector.WithMetric(collector.NewMetric(nextCreatureID,
			collector.WithType(collector.Gauge),
			collector.WithHelp("Id the next created creature receives."),
			collector.WithCollectFunc(func() (metricValue float64, labelValues []string) {
				return float64(lo.Return1(e.Creatures.NextCreatureID())), nil
			}),
		)),
	)
}
