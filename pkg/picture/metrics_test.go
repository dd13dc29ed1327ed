package picture

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	svc := newTestService(t, &fakeRunner{run: simulateTools}, WithMetrics(m))
	ctx := context.Background()

	_, err := svc.Capture(ctx, CaptureRequest{Directory: "d1"})
	require.NoError(t, err)
	_, err = svc.Capture(ctx, CaptureRequest{})
	require.Error(t, err)
	require.NoError(t, svc.Delete(ctx, "d1"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("capture", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("capture", "validation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("delete", "ok")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.observe(OpSync, 0, 0) })
}
