package engine

import (
	"github.com/iotaledger/hive.go/runtime/event"
	"github.com/iotaledger/registry-core/pkg/registry"
	"github.com/iotaledger/registry-core/pkg/registry/claims"
	"github.com/iotaledger/registry-core/pkg/registry/creatures"
)

type Events struct {
	// CallExecuted is triggered after a call was applied.
	CallExecuted *event.Event2[registry.Tx, Call]

	// CallFailed is triggered after a call was rejected. The state is unchanged.
	CallFailed *event.Event3[registry.Tx, Call, error]

	Claims    *claims.Events
	Creatures *creatures.Events

	event.Group[Events, *Events]
}

var NewEvents = event.CreateGroupConstructor(func() *Events {
	return &Events{
		CallExecuted: event.New2[registry.Tx, Call](),
		CallFailed:   event.New3[registry.Tx, Call, error](),
		Claims:       claims.NewEvents(),
		Creatures:    creatures.NewEvents(),
	}
})
