package balances

import (
	"github.com/zyedidia/generic/cache"

	"github.com/iotaledger/hive.go/core/safemath"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/hive.go/runtime/syncutils"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/registry"
)

var (
	ErrInsufficientBalance = ierrors.New("insufficient free balance")
	ErrKeepAlive           = ierrors.New("transfer would take the sender below the existential deposit")
	ErrExistentialDeposit  = ierrors.New("transfer would leave the receiver below the existential deposit")
)

// Ledger is a minimal currency ledger that tracks free and reserved balances per account.
type Ledger struct {
	kv           kvstore.KVStore
	balances     *kvstore.TypedStore[iotago.AccountID, *Balance]
	balanceCache *cache.Cache[iotago.AccountID, *Balance]
	mutex        syncutils.RWMutex

	// optExistentialDeposit contains the minimum total balance an account needs to exist.
	optExistentialDeposit iotago.BaseToken

	// optCacheSize contains the number of balances kept in memory.
	optCacheSize int
}

var _ registry.Ledger = &Ledger{}

func New(store kvstore.KVStore, opts ...options.Option[Ledger]) *Ledger {
	return options.Apply(&Ledger{
		kv:    store,
		balances: kvstore.NewTypedStore[iotago.AccountID, *Balance](store,
			iotago.AccountID.Bytes,
			iotago.AccountIDFromBytes,
			(*Balance).Bytes,
			BalanceFromBytes,
		),
		optExistentialDeposit: 1,
		optCacheSize:          1000,
	}, opts, func(l *Ledger) {
		l.balanceCache = cache.New[iotago.AccountID, *Balance](l.optCacheSize)
	})
}

// ExistentialDeposit returns the minimum total balance an account needs to exist.
func (l *Ledger) ExistentialDeposit() iotago.BaseToken {
	return l.optExistentialDeposit
}

// Mint credits amount to the free balance of account.
func (l *Ledger) Mint(account iotago.AccountID, amount iotago.BaseToken) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	balance, err := l.balance(account)
	if err != nil {
		return err
	}

	if balance.Free, err = safemath.SafeAdd(balance.Free, amount); err != nil {
		return ierrors.Wrapf(err, "failed to mint %d for %s", amount, account)
	}

	return l.store(account, balance)
}

// Free returns the spendable balance of account.
func (l *Ledger) Free(account iotago.AccountID) (iotago.BaseToken, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	balance, err := l.balance(account)
	if err != nil {
		return 0, err
	}

	return balance.Free, nil
}

// Reserved returns the earmarked balance of account.
func (l *Ledger) Reserved(account iotago.AccountID) (iotago.BaseToken, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	balance, err := l.balance(account)
	if err != nil {
		return 0, err
	}

	return balance.Reserved, nil
}

// Balance returns a copy of the balance of account.
func (l *Ledger) Balance(account iotago.AccountID) (*Balance, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.balance(account)
}

// ForEachBalance iterates over all stored balances.
func (l *Ledger) ForEachBalance(consumer func(account iotago.AccountID, balance *Balance) bool) error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.balances.Iterate(kvstore.EmptyPrefix, consumer)
}

// Reserve moves amount from the free to the reserved balance of account.
func (l *Ledger) Reserve(account iotago.AccountID, amount iotago.BaseToken) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	balance, err := l.balance(account)
	if err != nil {
		return err
	}

	if balance.Free < amount {
		return ierrors.Wrapf(ErrInsufficientBalance, "cannot reserve %d, %s has %d", amount, account, balance.Free)
	}

	if balance.Reserved, err = safemath.SafeAdd(balance.Reserved, amount); err != nil {
		return ierrors.Wrapf(err, "failed to reserve %d for %s", amount, account)
	}
	balance.Free -= amount

	return l.store(account, balance)
}

// Unreserve moves up to amount from the reserved to the free balance of account.
func (l *Ledger) Unreserve(account iotago.AccountID, amount iotago.BaseToken) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	balance, err := l.balance(account)
	if err != nil {
		return err
	}

	amount = min(amount, balance.Reserved)
	balance.Reserved -= amount
	if balance.Free, err = safemath.SafeAdd(balance.Free, amount); err != nil {
		return ierrors.Wrapf(err, "failed to unreserve %d for %s", amount, account)
	}

	return l.store(account, balance)
}

// Transfer moves amount from the free balance of from to the free balance of to.
func (l *Ledger) Transfer(from iotago.AccountID, to iotago.AccountID, amount iotago.BaseToken, requirement registry.ExistenceRequirement) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if amount == 0 || from == to {
		return nil
	}

	sender, err := l.balance(from)
	if err != nil {
		return err
	}

	if sender.Free < amount {
		return ierrors.Wrapf(ErrInsufficientBalance, "cannot transfer %d, %s has %d", amount, from, sender.Free)
	}
	sender.Free -= amount

	if requirement == registry.KeepAlive {
		senderTotal, totalErr := sender.Total()
		if totalErr != nil {
			return ierrors.Wrapf(totalErr, "failed to compute balance of %s", from)
		}

		if senderTotal < l.optExistentialDeposit {
			return ierrors.Wrapf(ErrKeepAlive, "%s would keep %d", from, senderTotal)
		}
	}

	receiver, err := l.balance(to)
	if err != nil {
		return err
	}

	if receiver.Free, err = safemath.SafeAdd(receiver.Free, amount); err != nil {
		return ierrors.Wrapf(err, "failed to credit %d to %s", amount, to)
	}

	receiverTotal, err := receiver.Total()
	if err != nil {
		return ierrors.Wrapf(err, "failed to compute balance of %s", to)
	} else if receiverTotal < l.optExistentialDeposit {
		return ierrors.Wrapf(ErrExistentialDeposit, "%s would hold %d", to, receiverTotal)
	}

	return l.storeAll(map[iotago.AccountID]*Balance{from: sender, to: receiver})
}

func (l *Ledger) balance(account iotago.AccountID) (*Balance, error) {
	if cached, exists := l.balanceCache.Get(account); exists {
		return cached.Clone(), nil
	}

	balance, err := l.balances.Get(account)
	if err != nil {
		if ierrors.Is(err, kvstore.ErrKeyNotFound) {
			return new(Balance), nil
		}

		return nil, ierrors.Wrapf(err, "failed to load balance of %s", account)
	}

	l.balanceCache.Put(account, balance.Clone())

	return balance, nil
}

func (l *Ledger) store(account iotago.AccountID, balance *Balance) error {
	if err := l.balances.Set(account, balance); err != nil {
		l.balanceCache.Remove(account)

		return ierrors.Wrapf(err, "failed to store balance of %s", account)
	}

	l.balanceCache.Put(account, balance.Clone())

	return nil
}

// storeAll writes all balances in a single batch and only touches the cache once the batch is committed.
func (l *Ledger) storeAll(balances map[iotago.AccountID]*Balance) error {
	batch, err := l.kv.Batched()
	if err != nil {
		return ierrors.Wrap(err, "failed to create batch")
	}

	for account, balance := range balances {
		if err = l.stage(batch, account, balance); err != nil {
			batch.Cancel()

			return err
		}
	}

	if err = batch.Commit(); err != nil {
		for account := range balances {
			l.balanceCache.Remove(account)
		}

		return ierrors.Wrap(err, "failed to commit balances")
	}

	for account, balance := range balances {
		l.balanceCache.Put(account, balance.Clone())
	}

	return nil
}

func (l *Ledger) stage(batch kvstore.BatchedMutations, account iotago.AccountID, balance *Balance) error {
	key, err := account.Bytes()
	if err != nil {
		return ierrors.Wrapf(err, "failed to encode key of %s", account)
	}

	value, err := balance.Bytes()
	if err != nil {
		return ierrors.Wrapf(err, "failed to encode balance of %s", account)
	}

	if err = batch.Set(key, value); err != nil {
		return ierrors.Wrapf(err, "failed to stage balance of %s", account)
	}

	return nil
}

// WithExistentialDeposit is an option for the Ledger that allows to configure the existential deposit.
func WithExistentialDeposit(deposit iotago.BaseToken) options.Option[Ledger] {
	return func(l *Ledger) {
		l.optExistentialDeposit = deposit
	}
}

// WithCacheSize is an option for the Ledger that allows to configure the number of cached balances.
func WithCacheSize(size int) options.Option[Ledger] {
	return func(l *Ledger) {
		l.optCacheSize = size
	}
}
