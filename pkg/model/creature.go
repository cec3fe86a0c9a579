package model

import (
	"strconv"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2/marshalutil"
	"github.com/iotaledger/iota.go/v4/hexutil"
)

const (
	// CreatureIDLength is the serialized size of a CreatureID.
	CreatureIDLength = 4

	// GenomeLength is the size of the genetic payload of a creature.
	GenomeLength = 16
)

// CreatureID is the process-wide identifier of a creature. Ids are allocated in increasing order and never reused.
type CreatureID uint32

func CreatureIDFromBytes(bytes []byte) (CreatureID, int, error) {
	m := marshalutil.New(bytes)

	id, err := m.ReadUint32()
	if err != nil {
		return 0, m.ReadOffset(), ierrors.Wrap(err, "failed to parse creature id")
	}

	return CreatureID(id), m.ReadOffset(), nil
}

func (c CreatureID) Bytes() ([]byte, error) {
	m := marshalutil.New()
	m.WriteUint32(uint32(c))

	return m.Bytes(), nil
}

func (c CreatureID) MustBytes() []byte {
	bytes, _ := c.Bytes()

	return bytes
}

func (c CreatureID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// Genome is the fixed-size genetic payload of a creature.
type Genome [GenomeLength]byte

func GenomeFromBytes(bytes []byte) (Genome, int, error) {
	var genome Genome
	if len(bytes) < GenomeLength {
		return genome, 0, ierrors.Errorf("genome needs %d bytes, got %d", GenomeLength, len(bytes))
	}
	copy(genome[:], bytes)

	return genome, GenomeLength, nil
}

func (g Genome) Bytes() ([]byte, error) {
	return append([]byte(nil), g[:]...), nil
}

func (g Genome) String() string {
	return hexutil.EncodeHex(g[:])
}
