package storage

const (
	// StoreKeyPrefixNextCreatureID defines the prefix of the creature id counter.
	StoreKeyPrefixNextCreatureID byte = 0

	// StoreKeyPrefixClaim defines the prefix for Claims.
	StoreKeyPrefixClaim byte = 1

	// StoreKeyPrefixCreature defines the prefix for Creatures keyed by owner and id.
	StoreKeyPrefixCreature byte = 2

	// StoreKeyPrefixCreatureOwner defines the prefix for the id to owner lookup.
	StoreKeyPrefixCreatureOwner byte = 3

	// StoreKeyPrefixListing defines the prefix for creature sale prices.
	StoreKeyPrefixListing byte = 4

	// StoreKeyPrefixClaimsTree defines the realm of the authenticated map of claims.
	StoreKeyPrefixClaimsTree byte = 5

	// StoreKeyPrefixOwnersTree defines the realm of the authenticated map of creature owners.
	StoreKeyPrefixOwnersTree byte = 6
)

/*
   Registry Database

   Next Creature ID:
   =================
   Key:
       StoreKeyPrefixNextCreatureID
                 1 byte

   Value:
       model.CreatureID
           4 bytes

   Claim:
   ======
   Key:
       StoreKeyPrefixClaim + model.Fingerprint
            1 byte         +   X bytes

   Value:
       Owner (iotago.AccountID) + RecordedAt (iotago.SlotIndex)
               32 bytes         +         4 bytes

   Creature:
   =========
   Key:
       StoreKeyPrefixCreature + Owner (iotago.AccountID) + model.CreatureID
               1 byte         +        32 bytes          +     4 bytes

   Value:
       model.Genome
         16 bytes

   Creature Owner:
   ===============
   Key:
       StoreKeyPrefixCreatureOwner + model.CreatureID
                 1 byte            +     4 bytes

   Value:
       Owner (iotago.AccountID)
               32 bytes

   Listing:
   ========
   Key:
       StoreKeyPrefixListing + model.CreatureID
              1 byte         +     4 bytes

   Value:
       Price (iotago.BaseToken)
               8 bytes

   Claims Tree:
   ============
   Realm:
       StoreKeyPrefixClaimsTree
   Map:
       blake2b-256(model.Fingerprint) -> model.Claim

   Owners Tree:
   ============
   Realm:
       StoreKeyPrefixOwnersTree
   Map:
       model.CreatureID -> Owner (iotago.AccountID)
*/
