package telemetry

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestObserveOrderIncrementsCounters(t *testing.T) {
	m := New()
	m.ObserveOrder("placed", 10, 2, 0.5)

	var metric dto.Metric
	require.NoError(t, m.ItemsPlaced.Write(&metric))
	require.Equal(t, 10.0, metric.GetCounter().GetValue())
}

func TestNewRegistersWithoutPanicTwice(t *testing.T) {
	require.NotPanics(t, func() {
		New()
		New()
	})
}
