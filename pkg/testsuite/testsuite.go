package testsuite

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/ds/shrinkingmap"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/hive.go/runtime/options"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/auth"
	"github.com/iotaledger/registry-core/pkg/engine"
	"github.com/iotaledger/registry-core/pkg/ledger/balances"
	"github.com/iotaledger/registry-core/pkg/randomness"
	"github.com/iotaledger/registry-core/pkg/registry"
)

const (
	realmRegistry byte = iota
	realmBalances
)

// TestSuite wires an engine to the reference ledger and a static seed and issues signed calls on behalf of named
// accounts.
type TestSuite struct {
	Testing *testing.T

	Engine *engine.Engine
	Ledger *balances.Ledger

	accounts *shrinkingmap.ShrinkingMap[string, *Account]
	slot     iotago.SlotIndex
	index    uint32

	optsSeed          []byte
	optsEngineOptions []options.Option[engine.Engine]
	optsLedgerOptions []options.Option[balances.Ledger]
}

func NewTestSuite(testingT *testing.T, opts ...options.Option[TestSuite]) *TestSuite {
	return options.Apply(&TestSuite{
		Testing:  testingT,
		accounts: shrinkingmap.New[string, *Account](),
		slot:     1,
		optsSeed: make([]byte, 32),
	}, opts, func(t *TestSuite) {
		store := mapdb.NewMapDB()

		t.Ledger = balances.New(lo.PanicOnErr(store.WithExtendedRealm(kvstore.Realm{realmBalances})), t.optsLedgerOptions...)
		t.Engine = engine.New(log.NewLogger(), t.Ledger, randomness.NewStatic(t.optsSeed), auth.Ed25519Authenticator{},
			append([]options.Option[engine.Engine]{
				engine.WithKVStore(lo.PanicOnErr(store.WithExtendedRealm(kvstore.Realm{realmRegistry}))),
			}, t.optsEngineOptions...)...,
		)
	})
}

// Issue signs the call with the key of the named account and submits it at the current slot.
func (t *TestSuite) Issue(accountName string, call engine.Call) error {
	envelope, err := t.Account(accountName).KeyManager.Sign(lo.PanicOnErr(call.Bytes()))
	require.NoError(t.Testing, err)

	_, err = t.Engine.Submit(t.slot, t.nextIndex(), envelope)

	return err
}

// IssueSuccessfully issues the call and requires it to succeed.
func (t *TestSuite) IssueSuccessfully(accountName string, call engine.Call) {
	require.NoError(t.Testing, t.Issue(accountName, call), "%s: %s failed", accountName, call.Type())
}

// IssueFailing issues the call and requires it to fail with the given error.
func (t *TestSuite) IssueFailing(accountName string, call engine.Call, expectedErr error) {
	require.ErrorIs(t.Testing, t.Issue(accountName, call), expectedErr, "%s: %s", accountName, call.Type())
}

// Tx returns a transaction of the named account at the current slot.
func (t *TestSuite) Tx(accountName string) registry.Tx {
	return registry.NewTx(t.AccountID(accountName), t.slot, t.nextIndex())
}

// Slot returns the slot calls are currently issued in.
func (t *TestSuite) Slot() iotago.SlotIndex {
	return t.slot
}

// NextSlot moves on to the next slot.
func (t *TestSuite) NextSlot() iotago.SlotIndex {
	t.slot++
	t.index = 0

	return t.slot
}

func (t *TestSuite) Shutdown() {
	t.Engine.Shutdown()
}

func (t *TestSuite) nextIndex() uint32 {
	defer func() { t.index++ }()

	return t.index
}

func (t *TestSuite) String() string {
	return fmt.Sprintf("TestSuite(slot=%d, accounts=%d)", t.slot, t.accounts.Size())
}
