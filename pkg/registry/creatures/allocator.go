package creatures

import (
	"math"

	"github.com/iotaledger/hive.go/core/safemath"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/registry-core/pkg/model"
	"github.com/iotaledger/registry-core/pkg/registry"
	"github.com/iotaledger/registry-core/pkg/storage"
)

// Allocator hands out creature ids in increasing order. The counter update is staged in the Mutations of the
// calling operation, so cancelling them also releases the id.
//
// The counter never exceeds maxID, so maxID itself is never handed out.
type Allocator struct {
	storage *storage.Storage
	maxID   model.CreatureID
}

func NewAllocator(storageInstance *storage.Storage, maxID model.CreatureID) *Allocator {
	return &Allocator{
		storage: storageInstance,
		maxID:   maxID,
	}
}

// Allocate returns the next free id and stages the incremented counter.
func (a *Allocator) Allocate(mutations *storage.Mutations) (model.CreatureID, error) {
	current, err := a.storage.NextCreatureID()
	if err != nil {
		return 0, ierrors.Wrap(err, "failed to read creature id counter")
	}

	next, err := safemath.SafeAdd(uint32(current), 1)
	if err != nil || model.CreatureID(next) > a.maxID {
		return 0, ierrors.Wrapf(registry.ErrCounterOverflow, "cannot allocate id after %d", current)
	}

	if err = mutations.StoreNextCreatureID(model.CreatureID(next)); err != nil {
		return 0, ierrors.Wrap(err, "failed to stage creature id counter")
	}

	return current, nil
}

const defaultMaxCreatureID = model.CreatureID(math.MaxUint32)
