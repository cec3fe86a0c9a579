package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/registry-core/pkg/engine"
	"github.com/iotaledger/registry-core/pkg/metrics"
	"github.com/iotaledger/registry-core/pkg/metrics/collector"
	"github.com/iotaledger/registry-core/pkg/model"
	"github.com/iotaledger/registry-core/pkg/registry"
	"github.com/iotaledger/registry-core/pkg/testsuite"
)

func gatheredValues(t *testing.T, c *collector.Collector) map[string]float64 {
	t.Helper()

	c.Collect()

	families, err := c.Registry.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			name := family.GetName()
			for _, label := range metric.GetLabel() {
				name += "{" + label.GetValue() + "}"
			}

			if counter := metric.GetCounter(); counter != nil {
				values[name] = counter.GetValue()
			} else if gauge := metric.GetGauge(); gauge != nil {
				values[name] = gauge.GetValue()
			}
		}
	}

	return values
}

func TestRegistryCollection(t *testing.T) {
	ts := testsuite.NewTestSuite(t)
	defer ts.Shutdown()

	c := collector.New()
	c.RegisterCollection(metrics.NewRegistryCollection(c, ts.Engine))
	defer c.Shutdown()

	stats, shutdownStats := metrics.TrackStats(ts.Engine)
	defer shutdownStats()

	ts.AddAccount("A", 500)
	ts.AddAccount("B", 500)

	price := iotago.BaseToken(200)
	ts.IssueSuccessfully("A", &engine.CreateClaim{Fingerprint: model.Fingerprint("a")})
	ts.IssueSuccessfully("A", &engine.RevokeClaim{Fingerprint: model.Fingerprint("a")})
	ts.IssueSuccessfully("A", &engine.CreateCreature{})
	ts.IssueSuccessfully("A", &engine.CreateCreature{})
	ts.IssueSuccessfully("A", &engine.TransferCreature{To: ts.AccountID("B"), ID: 1})
	ts.IssueSuccessfully("A", &engine.SetCreaturePrice{ID: 0, Price: &price})
	ts.IssueSuccessfully("B", &engine.BuyCreature{Owner: ts.AccountID("A"), ID: 0, MaxPrice: 250})
	ts.IssueFailing("B", &engine.BuyCreature{Owner: ts.AccountID("A"), ID: 0, MaxPrice: 250}, registry.ErrInvalidID)
	ts.IssueFailing("B", &engine.BreedCreature{Parent1: 0, Parent2: 0}, registry.ErrSameParent)

	values := gatheredValues(t, c)
	require.Equal(t, 1.0, values["registry_claims_created_total"])
	require.Equal(t, 1.0, values["registry_claims_revoked_total"])
	require.Equal(t, 2.0, values["registry_creatures_created_total"])
	require.Equal(t, 1.0, values["registry_creatures_transferred_total"])
	require.Equal(t, 1.0, values["registry_creatures_sold_total"])
	require.Equal(t, 200.0, values["registry_sales_volume_total"])
	require.Equal(t, 1.0, values["registry_calls_failed_total{invalid_id}"])
	require.Equal(t, 1.0, values["registry_calls_failed_total{same_parent}"])
	require.Equal(t, 2.0, values["registry_next_creature_id"])

	require.Equal(t, uint64(7), stats.ExecutedCalls.Load())
	require.Equal(t, uint64(2), stats.FailedCalls.Load())
}

func TestFailureReason(t *testing.T) {
	require.Equal(t, "price_too_low", metrics.FailureReason(registry.ErrPriceTooLow))
	require.Equal(t, "malformed_call", metrics.FailureReason(engine.ErrMalformedCall))
	require.Equal(t, "other", metrics.FailureReason(nil))
}
