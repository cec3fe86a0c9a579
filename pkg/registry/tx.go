package registry

import (
	"github.com/iotaledger/hive.go/stringify"
	iotago "github.com/iotaledger/iota.go/v4"
)

// Tx is the context a registry operation executes in.
type Tx struct {
	// Actor is the authenticated account on whose behalf the operation executes.
	Actor iotago.AccountID

	// Slot is the block height the operation is recorded at.
	Slot iotago.SlotIndex

	// Index is the position of the transaction within its slot. It decorrelates the randomness of calls issued by
	// the same actor in the same slot.
	Index uint32
}

func NewTx(actor iotago.AccountID, slot iotago.SlotIndex, index uint32) Tx {
	return Tx{
		Actor: actor,
		Slot:  slot,
		Index: index,
	}
}

func (t Tx) String() string {
	return stringify.Struct("Tx",
		stringify.NewStructField("Actor", t.Actor),
		stringify.NewStructField("Slot", t.Slot),
		stringify.NewStructField("Index", t.Index),
	)
}
