package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/lo"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/iota.go/v4/tpkg"
	"github.com/iotaledger/registry-core/pkg/engine"
	"github.com/iotaledger/registry-core/pkg/model"
)

func TestCallFromBytes(t *testing.T) {
	price := iotago.BaseToken(200)

	for _, call := range []engine.Call{
		&engine.CreateClaim{Fingerprint: model.Fingerprint("hash")},
		&engine.RevokeClaim{Fingerprint: model.Fingerprint{}},
		&engine.TransferClaim{Fingerprint: model.Fingerprint("hash"), NewOwner: tpkg.RandAccountID()},
		&engine.CreateCreature{},
		&engine.TransferCreature{To: tpkg.RandAccountID(), ID: 7},
		&engine.BreedCreature{Parent1: 1, Parent2: 2},
		&engine.SetCreaturePrice{ID: 3, Price: &price},
		&engine.SetCreaturePrice{ID: 3},
		&engine.BuyCreature{Owner: tpkg.RandAccountID(), ID: 3, MaxPrice: 250},
	} {
		decoded, err := engine.CallFromBytes(lo.PanicOnErr(call.Bytes()))
		require.NoError(t, err, call.Type().String())
		require.Equal(t, call.Type(), decoded.Type())
		require.Equal(t, lo.PanicOnErr(call.Bytes()), lo.PanicOnErr(decoded.Bytes()))
	}
}

func TestCallFromBytes_Errors(t *testing.T) {
	_, err := engine.CallFromBytes(nil)
	require.ErrorIs(t, err, engine.ErrMalformedCall)

	_, err = engine.CallFromBytes([]byte{0xFF})
	require.ErrorIs(t, err, engine.ErrUnknownCall)

	encoded := lo.PanicOnErr((&engine.BreedCreature{Parent1: 1, Parent2: 2}).Bytes())

	_, err = engine.CallFromBytes(encoded[:len(encoded)-1])
	require.ErrorIs(t, err, engine.ErrMalformedCall)

	_, err = engine.CallFromBytes(append(encoded, 0))
	require.ErrorIs(t, err, engine.ErrMalformedCall)

	// the fingerprint length exceeds the payload
	_, err = engine.CallFromBytes([]byte{byte(engine.CallTypeCreateClaim), 10, 0, 0, 0, 1})
	require.ErrorIs(t, err, engine.ErrMalformedCall)
}
