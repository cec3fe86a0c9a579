package registry

//go:generate mockgen -source=capabilities.go -destination=mock/capabilities.go -package=mock Ledger,Randomness

import (
	iotago "github.com/iotaledger/iota.go/v4"
)

// ExistenceRequirement tells the Ledger whether a transfer may reap the sending account.
type ExistenceRequirement uint8

const (
	// KeepAlive rejects transfers that would leave the sender below the existential deposit.
	KeepAlive ExistenceRequirement = iota

	// AllowDeath permits the sender to drop below the existential deposit.
	AllowDeath
)

func (e ExistenceRequirement) String() string {
	switch e {
	case KeepAlive:
		return "KeepAlive"
	case AllowDeath:
		return "AllowDeath"
	default:
		return "Unknown"
	}
}

// Ledger is the currency ledger the registries move funds with. The registries never inspect balances themselves.
type Ledger interface {
	// Reserve earmarks amount of the free balance of account. It fails if the free balance is too low.
	Reserve(account iotago.AccountID, amount iotago.BaseToken) error

	// Unreserve returns up to amount of the reserved balance of account to its free balance.
	Unreserve(account iotago.AccountID, amount iotago.BaseToken) error

	// Transfer moves amount from the free balance of from to the free balance of to.
	Transfer(from iotago.AccountID, to iotago.AccountID, amount iotago.BaseToken, requirement ExistenceRequirement) error
}

// Randomness provides the per-block entropy used to derive genomes.
type Randomness interface {
	// Seed returns the seed of the given slot. The same slot must always yield the same seed.
	Seed(slot iotago.SlotIndex) []byte
}
