package auth

import (
	"crypto/ed25519"
	"fmt"

	"github.com/iotaledger/iota-crypto-demo/pkg/bip32path"
	"github.com/iotaledger/iota-crypto-demo/pkg/slip10"
	"github.com/iotaledger/iota-crypto-demo/pkg/slip10/eddsa"
	"golang.org/x/crypto/blake2b"

	"github.com/iotaledger/hive.go/ierrors"
	iotago "github.com/iotaledger/iota.go/v4"
)

const pathString = "44'/4218'/0'/%d'"

// KeyManager is a hierarchical deterministic key manager.
type KeyManager struct {
	seed  []byte
	index uint64
}

func NewKeyManager(seed []byte, index uint64) *KeyManager {
	return &KeyManager{
		seed:  seed,
		index: index,
	}
}

// KeyPair calculates an ed25519 key pair by using slip10.
func (k *KeyManager) KeyPair() (ed25519.PrivateKey, ed25519.PublicKey, error) {
	path, err := bip32path.ParsePath(fmt.Sprintf(pathString, k.index))
	if err != nil {
		return nil, nil, ierrors.Wrapf(err, "failed to parse derivation path for index %d", k.index)
	}

	key, err := slip10.DeriveKeyFromPath(k.seed, eddsa.Ed25519(), path)
	if err != nil {
		return nil, nil, ierrors.Wrapf(err, "failed to derive key for index %d", k.index)
	}

	pubKey, privKey := key.Key.(eddsa.Seed).Ed25519Key()

	return ed25519.PrivateKey(privKey), ed25519.PublicKey(pubKey), nil
}

// AccountID returns the account controlled by the derived key.
func (k *KeyManager) AccountID() (iotago.AccountID, error) {
	_, pubKey, err := k.KeyPair()
	if err != nil {
		return iotago.EmptyAccountID, err
	}

	return AccountIDFromPublicKey(pubKey), nil
}

// Sign wraps the payload in an Envelope signed with the derived key.
func (k *KeyManager) Sign(payload []byte) (*Envelope, error) {
	privKey, _, err := k.KeyPair()
	if err != nil {
		return nil, err
	}

	return Sign(privKey, payload), nil
}

// NewNamedKeyManager returns the KeyManager of the account with the given name. The seed is the blake2b-256 hash of
// the name, so the same name always controls the same account.
func NewNamedKeyManager(name string) *KeyManager {
	seed := blake2b.Sum256([]byte(name))

	return NewKeyManager(seed[:], 0)
}
