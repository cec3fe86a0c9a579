package auth_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/registry-core/pkg/auth"
)

func TestEd25519Authenticator_Resolve(t *testing.T) {
	seed := blake2b.Sum256([]byte("alice"))
	keyManager := auth.NewKeyManager(seed[:], 0)
	privKey, pubKey, err := keyManager.KeyPair()
	require.NoError(t, err)

	envelope := auth.Sign(privKey, []byte("payload"))

	actor, err := auth.Ed25519Authenticator{}.Resolve(envelope)
	require.NoError(t, err)
	require.Equal(t, auth.AccountIDFromPublicKey(pubKey), actor)
	require.Equal(t, actor, lo.PanicOnErr(keyManager.AccountID()))

	// the same seed and index always yield the same key
	otherPrivKey, _, err := auth.NewKeyManager(seed[:], 0).KeyPair()
	require.NoError(t, err)
	require.Equal(t, privKey, otherPrivKey)

	tampered := *envelope
	tampered.Payload = []byte("other payload")
	_, err = auth.Ed25519Authenticator{}.Resolve(&tampered)
	require.ErrorIs(t, err, auth.ErrInvalidSignature)

	unsigned := *envelope
	unsigned.Signature = nil
	_, err = auth.Ed25519Authenticator{}.Resolve(&unsigned)
	require.ErrorIs(t, err, auth.ErrMissingSignature)

	_, err = auth.Ed25519Authenticator{}.Resolve(nil)
	require.ErrorIs(t, err, auth.ErrMissingSignature)

	shortKey := *envelope
	shortKey.PublicKey = ed25519.PublicKey{1, 2, 3}
	_, err = auth.Ed25519Authenticator{}.Resolve(&shortKey)
	require.ErrorIs(t, err, auth.ErrInvalidSignature)
}

func TestKeyManager_DistinctIndexes(t *testing.T) {
	seed := []byte("0123456789abcdef0123456789abcdef")

	first, err := auth.NewKeyManager(seed, 0).AccountID()
	require.NoError(t, err)

	second, err := auth.NewKeyManager(seed, 1).AccountID()
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}
