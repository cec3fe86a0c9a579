package model

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2/marshalutil"
	iotago "github.com/iotaledger/iota.go/v4"
)

// ClaimLength is the serialized size of a Claim.
const ClaimLength = iotago.AccountIDLength + iotago.SlotIndexLength

// Claim binds a fingerprint to the account that registered it and the slot it was recorded in.
type Claim struct {
	Owner      iotago.AccountID
	RecordedAt iotago.SlotIndex
}

func NewClaim(owner iotago.AccountID, recordedAt iotago.SlotIndex) *Claim {
	return &Claim{
		Owner:      owner,
		RecordedAt: recordedAt,
	}
}

func ClaimFromBytes(bytes []byte) (*Claim, int, error) {
	c := new(Claim)
	m := marshalutil.New(bytes)

	ownerBytes, err := m.ReadBytes(iotago.AccountIDLength)
	if err != nil {
		return nil, m.ReadOffset(), ierrors.Wrap(err, "failed to parse claim owner")
	}
	copy(c.Owner[:], ownerBytes)

	recordedAt, err := m.ReadUint32()
	if err != nil {
		return nil, m.ReadOffset(), ierrors.Wrap(err, "failed to parse claim slot")
	}
	c.RecordedAt = iotago.SlotIndex(recordedAt)

	return c, m.ReadOffset(), nil
}

func (c *Claim) Bytes() ([]byte, error) {
	m := marshalutil.New()
	m.WriteBytes(c.Owner[:])
	m.WriteUint32(uint32(c.RecordedAt))

	return m.Bytes(), nil
}
