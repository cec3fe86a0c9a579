package registry

import (
	"github.com/iotaledger/hive.go/ierrors"
)

// Claim registry errors.
var (
	ErrNotFound        = ierrors.New("claim does not exist")
	ErrAlreadyClaimed  = ierrors.New("fingerprint is already claimed")
	ErrNotOwner        = ierrors.New("actor is not the owner")
	ErrMetadataTooLong = ierrors.New("fingerprint exceeds the maximum length")
)

// Creature registry errors.
var (
	ErrInvalidID         = ierrors.New("creature is not owned by the given account")
	ErrSameParent        = ierrors.New("cannot breed a creature with itself")
	ErrCounterOverflow   = ierrors.New("creature id counter overflow")
	ErrInsufficientFunds = ierrors.New("insufficient funds to reserve the creature deposit")
	ErrBuyFromSelf       = ierrors.New("cannot buy a creature from yourself")
	ErrNotForSale        = ierrors.New("creature is not for sale")
	ErrPriceTooLow       = ierrors.New("offered price is below the asking price")
)
