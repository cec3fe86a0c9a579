package model

import (
	"github.com/iotaledger/iota.go/v4/hexutil"
)

// Fingerprint is the opaque byte string identifying a claimed piece of evidence (e.g. a content hash).
type Fingerprint []byte

// Bytes returns a copy of the raw fingerprint.
func (f Fingerprint) Bytes() ([]byte, error) {
	return append([]byte(nil), f...), nil
}

func (f Fingerprint) String() string {
	return hexutil.EncodeHex(f)
}
