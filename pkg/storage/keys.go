package storage

import (
	"github.com/iotaledger/hive.go/serializer/v2/byteutils"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/model"
)

func nextCreatureIDKey() []byte {
	return []byte{StoreKeyPrefixNextCreatureID}
}

func claimKey(fingerprint model.Fingerprint) []byte {
	return byteutils.ConcatBytes([]byte{StoreKeyPrefixClaim}, fingerprint)
}

func claimTreeKey(fingerprint model.Fingerprint) iotago.Identifier {
	return iotago.IdentifierFromData(fingerprint)
}

func creaturePrefix(owner iotago.AccountID) []byte {
	return byteutils.ConcatBytes([]byte{StoreKeyPrefixCreature}, owner[:])
}

func creatureKey(owner iotago.AccountID, id model.CreatureID) []byte {
	return byteutils.ConcatBytes(creaturePrefix(owner), id.MustBytes())
}

func creatureOwnerKey(id model.CreatureID) []byte {
	return byteutils.ConcatBytes([]byte{StoreKeyPrefixCreatureOwner}, id.MustBytes())
}

func listingKey(id model.CreatureID) []byte {
	return byteutils.ConcatBytes([]byte{StoreKeyPrefixListing}, id.MustBytes())
}
