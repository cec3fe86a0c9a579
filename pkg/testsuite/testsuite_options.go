package testsuite

import (
	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/registry-core/pkg/engine"
	"github.com/iotaledger/registry-core/pkg/ledger/balances"
)

// WithSeed sets the seed the creature registry derives genomes from.
func WithSeed(seed []byte) options.Option[TestSuite] {
	return func(t *TestSuite) {
		t.optsSeed = seed
	}
}

func WithEngineOptions(opts ...options.Option[engine.Engine]) options.Option[TestSuite] {
	return func(t *TestSuite) {
		t.optsEngineOptions = append(t.optsEngineOptions, opts...)
	}
}

func WithLedgerOptions(opts ...options.Option[balances.Ledger]) options.Option[TestSuite] {
	return func(t *TestSuite) {
		t.optsLedgerOptions = append(t.optsLedgerOptions, opts...)
	}
}
