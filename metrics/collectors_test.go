package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestNewCollectorsRegistersAndRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollectors(reg)

	c.LevelsTotal.Set(3)
	c.CheckpointDuration.Observe(0.01)
	c.IngestBehind.Observe(0)
	c.XMSSpills.Inc()

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 4)

	var gauge *dto.Metric
	for _, mf := range mfs {
		if mf.GetName() == "graphline_store_levels_total" {
			gauge = mf.Metric[0]
		}
	}
	require.NotNil(t, gauge)
	require.Equal(t, 3.0, gauge.GetGauge().GetValue())
}
