package testsuite

import (
	"github.com/stretchr/testify/require"

	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/model"
)

func (t *TestSuite) AssertClaim(fingerprint model.Fingerprint, ownerName string, recordedAt iotago.SlotIndex) {
	claim, exists, err := t.Engine.Claims.Claim(fingerprint)
	require.NoError(t.Testing, err)
	require.True(t.Testing, exists, "AssertClaim: claim %s does not exist", fingerprint)

	require.Equal(t.Testing, t.AccountID(ownerName), claim.Owner, "AssertClaim: claim %s has unexpected owner", fingerprint)
	require.Equal(t.Testing, recordedAt, claim.RecordedAt, "AssertClaim: claim %s has unexpected slot", fingerprint)
}

func (t *TestSuite) AssertNoClaim(fingerprint model.Fingerprint) {
	_, exists, err := t.Engine.Claims.Claim(fingerprint)
	require.NoError(t.Testing, err)
	require.False(t.Testing, exists, "AssertNoClaim: claim %s exists", fingerprint)
}
