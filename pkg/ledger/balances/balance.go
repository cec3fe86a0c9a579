package balances

import (
	"github.com/iotaledger/hive.go/core/safemath"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	iotago "github.com/iotaledger/iota.go/v4"
)

// Balance is the split of the funds of an account into spendable and earmarked funds.
type Balance struct {
	Free     iotago.BaseToken
	Reserved iotago.BaseToken
}

func BalanceFromBytes(bytes []byte) (*Balance, int, error) {
	b := new(Balance)
	m := marshalutil.New(bytes)

	free, err := m.ReadUint64()
	if err != nil {
		return nil, m.ReadOffset(), ierrors.Wrap(err, "failed to parse free balance")
	}

	reserved, err := m.ReadUint64()
	if err != nil {
		return nil, m.ReadOffset(), ierrors.Wrap(err, "failed to parse reserved balance")
	}

	b.Free = iotago.BaseToken(free)
	b.Reserved = iotago.BaseToken(reserved)

	return b, m.ReadOffset(), nil
}

// Total returns the sum of the free and the reserved funds.
func (b *Balance) Total() (iotago.BaseToken, error) {
	return safemath.SafeAdd(b.Free, b.Reserved)
}

func (b *Balance) Clone() *Balance {
	return &Balance{
		Free:     b.Free,
		Reserved: b.Reserved,
	}
}

func (b *Balance) Bytes() ([]byte, error) {
	m := marshalutil.New()
	m.WriteUint64(uint64(b.Free))
	m.WriteUint64(uint64(b.Reserved))

	return m.Bytes(), nil
}

func (b *Balance) String() string {
	return stringify.Struct("Balance",
		stringify.NewStructField("Free", uint64(b.Free)),
		stringify.NewStructField("Reserved", uint64(b.Reserved)),
	)
}
