package metrics

import (
	"go.uber.org/atomic"

	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/registry-core/pkg/engine"
	"github.com/iotaledger/registry-core/pkg/registry"
)

// Stats counts the calls processed by an engine over its entire runtime.
type Stats struct {
	// The number of calls that were applied.
	ExecutedCalls atomic.Uint64
	// The number of calls that were rejected.
	FailedCalls atomic.Uint64
}

// TrackStats hooks a new Stats instance to the events of the engine. The returned function removes the hooks.
func TrackStats(e *engine.Engine) (stats *Stats, shutdown func()) {
	stats = new(Stats)

	return stats, lo.Batch(
		e.Events.CallExecuted.Hook(func(_ registry.Tx, _ engine.Call) {
			stats.ExecutedCalls.Inc()
		}).Unhook,
		e.Events.CallFailed.Hook(func(_ registry.Tx, _ engine.Call, _ error) {
			stats.FailedCalls.Inc()
		}).Unhook,
	)
}
