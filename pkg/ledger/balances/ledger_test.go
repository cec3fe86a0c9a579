package balances_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/kvstore/mapdb"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/iota.go/v4/tpkg"
	"github.com/iotaledger/registry-core/pkg/ledger/balances"
	"github.com/iotaledger/registry-core/pkg/registry"
	"github.com/iotaledger/registry-core/pkg/storage/faultystore"
)

func requireBalance(t *testing.T, ledger *balances.Ledger, account iotago.AccountID, expectedFree iotago.BaseToken, expectedReserved iotago.BaseToken) {
	t.Helper()

	free, err := ledger.Free(account)
	require.NoError(t, err)
	require.Equal(t, expectedFree, free)

	reserved, err := ledger.Reserved(account)
	require.NoError(t, err)
	require.Equal(t, expectedReserved, reserved)
}

func TestLedger_ReserveUnreserve(t *testing.T) {
	ledger := balances.New(mapdb.NewMapDB())
	alice := tpkg.RandAccountID()
	require.NoError(t, ledger.Mint(alice, 150))

	require.NoError(t, ledger.Reserve(alice, 100))
	requireBalance(t, ledger, alice, 50, 100)

	require.ErrorIs(t, ledger.Reserve(alice, 51), balances.ErrInsufficientBalance)
	requireBalance(t, ledger, alice, 50, 100)

	// reserving may empty the free balance
	require.NoError(t, ledger.Reserve(alice, 50))
	requireBalance(t, ledger, alice, 0, 150)

	require.NoError(t, ledger.Unreserve(alice, 30))
	requireBalance(t, ledger, alice, 30, 120)

	// unreserving saturates at the reserved balance
	require.NoError(t, ledger.Unreserve(alice, 1000))
	requireBalance(t, ledger, alice, 150, 0)
}

func TestLedger_Transfer(t *testing.T) {
	ledger := balances.New(mapdb.NewMapDB(), balances.WithExistentialDeposit(10))
	alice, bob, carol := tpkg.RandAccountID(), tpkg.RandAccountID(), tpkg.RandAccountID()
	require.NoError(t, ledger.Mint(alice, 100))

	require.ErrorIs(t, ledger.Transfer(alice, bob, 101, registry.AllowDeath), balances.ErrInsufficientBalance)

	// the receiver has to end up with at least the existential deposit
	require.ErrorIs(t, ledger.Transfer(alice, bob, 9, registry.AllowDeath), balances.ErrExistentialDeposit)

	require.NoError(t, ledger.Transfer(alice, bob, 40, registry.KeepAlive))
	requireBalance(t, ledger, alice, 60, 0)
	requireBalance(t, ledger, bob, 40, 0)

	require.ErrorIs(t, ledger.Transfer(alice, carol, 55, registry.KeepAlive), balances.ErrKeepAlive)
	requireBalance(t, ledger, alice, 60, 0)
	requireBalance(t, ledger, carol, 0, 0)

	require.NoError(t, ledger.Transfer(alice, carol, 60, registry.AllowDeath))
	requireBalance(t, ledger, alice, 0, 0)
	requireBalance(t, ledger, carol, 60, 0)
}

func TestLedger_TransferKeepAliveCountsReserved(t *testing.T) {
	ledger := balances.New(mapdb.NewMapDB())
	alice, bob := tpkg.RandAccountID(), tpkg.RandAccountID()
	require.NoError(t, ledger.Mint(alice, 500))
	require.NoError(t, ledger.Reserve(alice, 100))

	// the reserved balance keeps the account alive
	require.NoError(t, ledger.Transfer(alice, bob, 400, registry.KeepAlive))
	requireBalance(t, ledger, alice, 0, 100)
	requireBalance(t, ledger, bob, 400, 0)
}

func TestLedger_ForEachBalance(t *testing.T) {
	ledger := balances.New(mapdb.NewMapDB(), balances.WithCacheSize(1))
	alice, bob := tpkg.RandAccountID(), tpkg.RandAccountID()
	require.NoError(t, ledger.Mint(alice, 1))
	require.NoError(t, ledger.Mint(bob, 2))
	require.NoError(t, ledger.Mint(alice, 3))

	seen := make(map[iotago.AccountID]iotago.BaseToken)
	require.NoError(t, ledger.ForEachBalance(func(account iotago.AccountID, balance *balances.Balance) bool {
		seen[account] = balance.Free

		return true
	}))

	require.Equal(t, map[iotago.AccountID]iotago.BaseToken{alice: 4, bob: 2}, seen)
}

func TestLedger_TransferIsAtomic(t *testing.T) {
	store := faultystore.New(mapdb.NewMapDB(), nil)
	ledger := balances.New(store)
	alice, bob := tpkg.RandAccountID(), tpkg.RandAccountID()
	require.NoError(t, ledger.Mint(alice, 100))
	require.NoError(t, ledger.Mint(bob, 5))

	store.Fail(true)

	require.ErrorIs(t, ledger.Transfer(alice, bob, 40, registry.AllowDeath), faultystore.ErrWriteFailed)
	requireBalance(t, ledger, alice, 100, 0)
	requireBalance(t, ledger, bob, 5, 0)

	// a fresh ledger on the same store sees the same balances
	requireBalance(t, balances.New(store), alice, 100, 0)
	requireBalance(t, balances.New(store), bob, 5, 0)

	store.Fail(false)

	require.NoError(t, ledger.Transfer(alice, bob, 40, registry.AllowDeath))
	requireBalance(t, ledger, alice, 60, 0)
	requireBalance(t, balances.New(store), bob, 45, 0)
}

func TestLedger_UnreserveReportsFailedWrite(t *testing.T) {
	store := faultystore.New(mapdb.NewMapDB(), nil)
	ledger := balances.New(store)
	alice := tpkg.RandAccountID()
	require.NoError(t, ledger.Mint(alice, 100))
	require.NoError(t, ledger.Reserve(alice, 60))

	store.Fail(true)

	require.ErrorIs(t, ledger.Unreserve(alice, 60), faultystore.ErrWriteFailed)
	requireBalance(t, ledger, alice, 40, 60)

	store.Fail(false)

	require.NoError(t, ledger.Unreserve(alice, 60))
	requireBalance(t, ledger, alice, 100, 0)
}
