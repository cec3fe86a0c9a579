package testsuite

import (
	"fmt"

	"github.com/stretchr/testify/require"

	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/auth"
)

// Account is a named account whose key is derived from its name.
type Account struct {
	Name       string
	ID         iotago.AccountID
	KeyManager *auth.KeyManager
}

// AddAccount registers a named account and mints its initial balance.
func (t *TestSuite) AddAccount(name string, balance iotago.BaseToken) *Account {
	keyManager := auth.NewNamedKeyManager(name)

	accountID, err := keyManager.AccountID()
	require.NoError(t.Testing, err)
	accountID.RegisterAlias(name)

	account := &Account{
		Name:       name,
		ID:         accountID,
		KeyManager: keyManager,
	}

	if !t.accounts.Set(name, account) {
		panic(fmt.Sprintf("account %s already registered", name))
	}

	if balance > 0 {
		require.NoError(t.Testing, t.Ledger.Mint(accountID, balance))
	}

	return account
}

func (t *TestSuite) Account(name string) *Account {
	account, exists := t.accounts.Get(name)
	if !exists {
		panic(fmt.Sprintf("account %s not registered", name))
	}

	return account
}

func (t *TestSuite) AccountID(name string) iotago.AccountID {
	return t.Account(name).ID
}

func (t *TestSuite) AssertBalance(name string, expectedFree iotago.BaseToken, expectedReserved iotago.BaseToken) {
	balance, err := t.Ledger.Balance(t.AccountID(name))
	require.NoError(t.Testing, err)

	require.Equal(t.Testing, expectedFree, balance.Free, "AssertBalance: %s: free balance", name)
	require.Equal(t.Testing, expectedReserved, balance.Reserved, "AssertBalance: %s: reserved balance", name)
}
