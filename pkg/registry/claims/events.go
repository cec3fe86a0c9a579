package claims

import (
	"github.com/iotaledger/hive.go/runtime/event"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/model"
)

type Events struct {
	ClaimCreated *event.Event2[iotago.AccountID, model.Fingerprint]
	ClaimRevoked *event.Event2[iotago.AccountID, model.Fingerprint]

	event.Group[Events, *Events]
}

var NewEvents = event.CreateGroupConstructor(func() *Events {
	return &Events{
		ClaimCreated: event.New2[iotago.AccountID, model.Fingerprint](),
		ClaimRevoked: event.New2[iotago.AccountID, model.Fingerprint](),
	}
})
