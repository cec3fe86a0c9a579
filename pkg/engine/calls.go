package engine

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2/marshalutil"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/model"
)

var (
	ErrUnknownCall   = ierrors.New("unknown call type")
	ErrMalformedCall = ierrors.New("malformed call")
)

// CallType identifies the operation a Call invokes.
type CallType byte

const (
	CallTypeCreateClaim CallType = iota
	CallTypeRevokeClaim
	CallTypeTransferClaim
	CallTypeCreateCreature
	CallTypeTransferCreature
	CallTypeBreedCreature
	CallTypeSetCreaturePrice
	CallTypeBuyCreature
)

func (c CallType) String() string {
	switch c {
	case CallTypeCreateClaim:
		return "CreateClaim"
	case CallTypeRevokeClaim:
		return "RevokeClaim"
	case CallTypeTransferClaim:
		return "TransferClaim"
	case CallTypeCreateCreature:
		return "CreateCreature"
	case CallTypeTransferCreature:
		return "TransferCreature"
	case CallTypeBreedCreature:
		return "BreedCreature"
	case CallTypeSetCreaturePrice:
		return "SetCreaturePrice"
	case CallTypeBuyCreature:
		return "BuyCreature"
	default:
		return "Unknown"
	}
}

// Call is a typed request to one of the registries.
type Call interface {
	Type() CallType
	Bytes() ([]byte, error)
}

type CreateClaim struct {
	Fingerprint model.Fingerprint
}

func (c *CreateClaim) Type() CallType { return CallTypeCreateClaim }

func (c *CreateClaim) Bytes() ([]byte, error) {
	return newCallMarshalUtil(c).writeFingerprint(c.Fingerprint).Bytes(), nil
}

type RevokeClaim struct {
	Fingerprint model.Fingerprint
}

func (c *RevokeClaim) Type() CallType { return CallTypeRevokeClaim }

func (c *RevokeClaim) Bytes() ([]byte, error) {
	return newCallMarshalUtil(c).writeFingerprint(c.Fingerprint).Bytes(), nil
}

type TransferClaim struct {
	Fingerprint model.Fingerprint
	NewOwner    iotago.AccountID
}

func (c *TransferClaim) Type() CallType { return CallTypeTransferClaim }

func (c *TransferClaim) Bytes() ([]byte, error) {
	return newCallMarshalUtil(c).writeFingerprint(c.Fingerprint).writeAccountID(c.NewOwner).Bytes(), nil
}

type CreateCreature struct{}

func (c *CreateCreature) Type() CallType { return CallTypeCreateCreature }

func (c *CreateCreature) Bytes() ([]byte, error) {
	return newCallMarshalUtil(c).Bytes(), nil
}

type TransferCreature struct {
	To iotago.AccountID
	ID model.CreatureID
}

func (c *TransferCreature) Type() CallType { return CallTypeTransferCreature }

func (c *TransferCreature) Bytes() ([]byte, error) {
	return newCallMarshalUtil(c).writeAccountID(c.To).writeCreatureID(c.ID).Bytes(), nil
}

type BreedCreature struct {
	Parent1 model.CreatureID
	Parent2 model.CreatureID
}

func (c *BreedCreature) Type() CallType { return CallTypeBreedCreature }

func (c *BreedCreature) Bytes() ([]byte, error) {
	return newCallMarshalUtil(c).writeCreatureID(c.Parent1).writeCreatureID(c.Parent2).Bytes(), nil
}

// SetCreaturePrice lists a creature for sale. A nil Price removes the listing.
type SetCreaturePrice struct {
	ID    model.CreatureID
	Price *iotago.BaseToken
}

func (c *SetCreaturePrice) Type() CallType { return CallTypeSetCreaturePrice }

func (c *SetCreaturePrice) Bytes() ([]byte, error) {
	m := newCallMarshalUtil(c).writeCreatureID(c.ID)

	m.WriteBool(c.Price != nil)
	if c.Price != nil {
		m.WriteUint64(uint64(*c.Price))
	}

	return m.Bytes(), nil
}

type BuyCreature struct {
	Owner    iotago.AccountID
	ID       model.CreatureID
	MaxPrice iotago.BaseToken
}

func (c *BuyCreature) Type() CallType { return CallTypeBuyCreature }

func (c *BuyCreature) Bytes() ([]byte, error) {
	m := newCallMarshalUtil(c).writeAccountID(c.Owner).writeCreatureID(c.ID)
	m.WriteUint64(uint64(c.MaxPrice))

	return m.Bytes(), nil
}

// CallFromBytes decodes a Call. The input must contain exactly one encoded call.
func CallFromBytes(bytes []byte) (call Call, err error) {
	m := &callMarshalUtil{MarshalUtil: marshalutil.New(bytes)}

	callType, err := m.ReadByte()
	if err != nil {
		return nil, ierrors.Join(ErrMalformedCall, ierrors.Wrap(err, "failed to read call type"))
	}

	switch CallType(callType) {
	case CallTypeCreateClaim:
		call, err = m.readCreateClaim()
	case CallTypeRevokeClaim:
		call, err = m.readRevokeClaim()
	case CallTypeTransferClaim:
		call, err = m.readTransferClaim()
	case CallTypeCreateCreature:
		call = &CreateCreature{}
	case CallTypeTransferCreature:
		call, err = m.readTransferCreature()
	case CallTypeBreedCreature:
		call, err = m.readBreedCreature()
	case CallTypeSetCreaturePrice:
		call, err = m.readSetCreaturePrice()
	case CallTypeBuyCreature:
		call, err = m.readBuyCreature()
	default:
		return nil, ierrors.Wrapf(ErrUnknownCall, "call type %d", callType)
	}

	if err != nil {
		return nil, ierrors.Join(ErrMalformedCall, ierrors.Wrapf(err, "failed to parse %s", CallType(callType)))
	}

	if m.ReadOffset() != len(bytes) {
		return nil, ierrors.Wrapf(ErrMalformedCall, "%d trailing bytes after %s", len(bytes)-m.ReadOffset(), CallType(callType))
	}

	return call, nil
}

type callMarshalUtil struct {
	*marshalutil.MarshalUtil
}

func newCallMarshalUtil(call Call) *callMarshalUtil {
	m := &callMarshalUtil{MarshalUtil: marshalutil.New()}
	m.WriteByte(byte(call.Type()))

	return m
}

func (m *callMarshalUtil) writeFingerprint(fingerprint model.Fingerprint) *callMarshalUtil {
	m.WriteUint32(uint32(len(fingerprint)))
	m.WriteBytes(fingerprint)

	return m
}

func (m *callMarshalUtil) writeAccountID(accountID iotago.AccountID) *callMarshalUtil {
	m.WriteBytes(accountID[:])

	return m
}

func (m *callMarshalUtil) writeCreatureID(id model.CreatureID) *callMarshalUtil {
	m.WriteUint32(uint32(id))

	return m
}

func (m *callMarshalUtil) readFingerprint() (model.Fingerprint, error) {
	length, err := m.ReadUint32()
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to read fingerprint length")
	}

	fingerprint, err := m.ReadBytes(int(length))
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to read fingerprint")
	}

	return append(model.Fingerprint(nil), fingerprint...), nil
}

func (m *callMarshalUtil) readAccountID() (accountID iotago.AccountID, err error) {
	accountIDBytes, err := m.ReadBytes(iotago.AccountIDLength)
	if err != nil {
		return accountID, ierrors.Wrap(err, "failed to read account id")
	}
	copy(accountID[:], accountIDBytes)

	return accountID, nil
}

func (m *callMarshalUtil) readCreatureID() (model.CreatureID, error) {
	id, err := m.ReadUint32()
	if err != nil {
		return 0, ierrors.Wrap(err, "failed to read creature id")
	}

	return model.CreatureID(id), nil
}

func (m *callMarshalUtil) readBaseToken() (iotago.BaseToken, error) {
	amount, err := m.ReadUint64()
	if err != nil {
		return 0, ierrors.Wrap(err, "failed to read amount")
	}

	return iotago.BaseToken(amount), nil
}

func (m *callMarshalUtil) readCreateClaim() (Call, error) {
	fingerprint, err := m.readFingerprint()
	if err != nil {
		return nil, err
	}

	return &CreateClaim{Fingerprint: fingerprint}, nil
}

func (m *callMarshalUtil) readRevokeClaim() (Call, error) {
	fingerprint, err := m.readFingerprint()
	if err != nil {
		return nil, err
	}

	return &RevokeClaim{Fingerprint: fingerprint}, nil
}

func (m *callMarshalUtil) readTransferClaim() (Call, error) {
	fingerprint, err := m.readFingerprint()
	if err != nil {
		return nil, err
	}

	newOwner, err := m.readAccountID()
	if err != nil {
		return nil, err
	}

	return &TransferClaim{Fingerprint: fingerprint, NewOwner: newOwner}, nil
}

func (m *callMarshalUtil) readTransferCreature() (Call, error) {
	to, err := m.readAccountID()
	if err != nil {
		return nil, err
	}

	id, err := m.readCreatureID()
	if err != nil {
		return nil, err
	}

	return &TransferCreature{To: to, ID: id}, nil
}

func (m *callMarshalUtil) readBreedCreature() (Call, error) {
	parent1, err := m.readCreatureID()
	if err != nil {
		return nil, err
	}

	parent2, err := m.readCreatureID()
	if err != nil {
		return nil, err
	}

	return &BreedCreature{Parent1: parent1, Parent2: parent2}, nil
}

func (m *callMarshalUtil) readSetCreaturePrice() (Call, error) {
	id, err := m.readCreatureID()
	if err != nil {
		return nil, err
	}

	listed, err := m.ReadBool()
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to read listing flag")
	}

	call := &SetCreaturePrice{ID: id}
	if listed {
		price, err := m.readBaseToken()
		if err != nil {
			return nil, err
		}
		call.Price = &price
	}

	return call, nil
}

func (m *callMarshalUtil) readBuyCreature() (Call, error) {
	owner, err := m.readAccountID()
	if err != nil {
		return nil, err
	}

	id, err := m.readCreatureID()
	if err != nil {
		return nil, err
	}

	maxPrice, err := m.readBaseToken()
	if err != nil {
		return nil, err
	}

	return &BuyCreature{Owner: owner, ID: id, MaxPrice: maxPrice}, nil
}
