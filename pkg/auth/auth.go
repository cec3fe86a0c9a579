package auth

import (
	"crypto/ed25519"

	"golang.org/x/crypto/blake2b"

	"github.com/iotaledger/hive.go/ierrors"
	iotago "github.com/iotaledger/iota.go/v4"
)

var (
	ErrMissingSignature = ierrors.New("envelope carries no signature")
	ErrInvalidSignature = ierrors.New("envelope signature is invalid")
)

// Envelope is a signed request payload.
type Envelope struct {
	PublicKey ed25519.PublicKey
	Signature []byte
	Payload   []byte
}

// Sign wraps the payload in an Envelope signed with privateKey.
func Sign(privateKey ed25519.PrivateKey, payload []byte) *Envelope {
	return &Envelope{
		PublicKey: privateKey.Public().(ed25519.PublicKey),
		Signature: ed25519.Sign(privateKey, payload),
		Payload:   payload,
	}
}

// Authenticator resolves the actor that issued an Envelope.
type Authenticator interface {
	Resolve(envelope *Envelope) (iotago.AccountID, error)
}

// Ed25519Authenticator accepts envelopes with a valid ed25519 signature over the payload.
type Ed25519Authenticator struct{}

var _ Authenticator = Ed25519Authenticator{}

func (Ed25519Authenticator) Resolve(envelope *Envelope) (iotago.AccountID, error) {
	if envelope == nil || len(envelope.PublicKey) == 0 || len(envelope.Signature) == 0 {
		return iotago.EmptyAccountID, ErrMissingSignature
	}

	if len(envelope.PublicKey) != ed25519.PublicKeySize {
		return iotago.EmptyAccountID, ierrors.Wrapf(ErrInvalidSignature, "public key has %d bytes", len(envelope.PublicKey))
	}

	if !ed25519.Verify(envelope.PublicKey, envelope.Payload, envelope.Signature) {
		return iotago.EmptyAccountID, ErrInvalidSignature
	}

	return AccountIDFromPublicKey(envelope.PublicKey), nil
}

// AccountIDFromPublicKey returns the account id controlled by publicKey.
func AccountIDFromPublicKey(publicKey ed25519.PublicKey) iotago.AccountID {
	return blake2b.Sum256(publicKey)
}
