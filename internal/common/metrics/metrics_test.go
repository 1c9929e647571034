package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCatalogOperations_Labels(t *testing.T) {
	before := testutil.ToFloat64(CatalogOperations.WithLabelValues("add_branch", OutcomeSuccess))
	CatalogOperations.WithLabelValues("add_branch", OutcomeSuccess).Inc()
	after := testutil.ToFloat64(CatalogOperations.WithLabelValues("add_branch", OutcomeSuccess))

	assert.Equal(t, before+1, after)
}

func TestWorkerJobsActive_Gauge(t *testing.T) {
	g := WorkerJobsActive.WithLabelValues("catalog-update-stock")
	g.Inc()
	g.Inc()
	g.Dec()
	assert.Equal(t, float64(1), testutil.ToFloat64(g))
}
