package randomness

import (
	"github.com/iotaledger/hive.go/serializer/v2/byteutils"
	"github.com/iotaledger/hive.go/serializer/v2/marshalutil"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/registry"
	"golang.org/x/crypto/blake2b"
)

// Static returns the same seed for every slot.
type Static struct {
	seed []byte
}

var _ registry.Randomness = &Static{}

func NewStatic(seed []byte) *Static {
	return &Static{
		seed: append([]byte(nil), seed...),
	}
}

func (s *Static) Seed(iotago.SlotIndex) []byte {
	return append([]byte(nil), s.seed...)
}

// SlotSeeded derives the seed of a slot by hashing a genesis seed together with the slot index.
type SlotSeeded struct {
	genesis []byte
}

var _ registry.Randomness = &SlotSeeded{}

func NewSlotSeeded(genesis []byte) *SlotSeeded {
	return &SlotSeeded{
		genesis: append([]byte(nil), genesis...),
	}
}

func (s *SlotSeeded) Seed(slot iotago.SlotIndex) []byte {
	slotBytes := marshalutil.New()
	slotBytes.WriteUint32(uint32(slot))

	seed := blake2b.Sum256(byteutils.ConcatBytes(s.genesis, slotBytes.Bytes()))

	return seed[:]
}
