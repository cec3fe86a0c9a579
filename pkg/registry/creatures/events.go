package creatures

import (
	"github.com/iotaledger/hive.go/runtime/event"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/model"
)

type Events struct {
	// CreatureCreated is triggered with the owner, id and genome of a created or bred creature.
	CreatureCreated *event.Event3[iotago.AccountID, model.CreatureID, model.Genome]

	// CreatureTransferred is triggered with the previous owner, the new owner and the id of a transferred creature.
	CreatureTransferred *event.Event3[iotago.AccountID, iotago.AccountID, model.CreatureID]

	// PriceUpdated is triggered when a price is set or cleared. A nil price means the creature is no longer for sale.
	PriceUpdated *event.Event3[iotago.AccountID, model.CreatureID, *iotago.BaseToken]

	// CreatureSold is triggered with the buyer, the seller, the id and the paid price.
	CreatureSold *event.Event4[iotago.AccountID, iotago.AccountID, model.CreatureID, iotago.BaseToken]

	event.Group[Events, *Events]
}

var NewEvents = event.CreateGroupConstructor(func() *Events {
	return &Events{
		CreatureCreated:     event.New3[iotago.AccountID, model.CreatureID, model.Genome](),
		CreatureTransferred: event.New3[iotago.AccountID, iotago.AccountID, model.CreatureID](),
		PriceUpdated:        event.New3[iotago.AccountID, model.CreatureID, *iotago.BaseToken](),
		CreatureSold:        event.New4[iotago.AccountID, iotago.AccountID, model.CreatureID, iotago.BaseToken](),
	}
})
