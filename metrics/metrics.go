package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hidutils/go-headset-exporter/device"
)

var (
	descConnected = prometheus.NewDesc(
		"headset_connected",
		"Whether the headset is believed to be powered on and in range.",
		[]string{"name"},
		nil,
	)

	descBattery = prometheus.NewDesc(
		"headset_battery_ratio",
		"Last known battery charge of the headset. Stays at 1 until the first real sample.",
		[]string{"name"},
		nil,
	)
)

// SnapshotFunc returns the current believed state per headset name, plus
// the time the snapshot was taken.
type SnapshotFunc func() (map[string]device.BatteryState, time.Time)

type collector struct {
	SnapshotFunc
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	out, ts := c.SnapshotFunc()

	for name, state := range out {
		connected := 0.0

		if state.Connected {
			connected = 1.0
		}

		ch <- prometheus.NewMetricWithTimestamp(ts, prometheus.MustNewConstMetric(
			descConnected,
			prometheus.GaugeValue,
			connected,
			name,
		))

		ch <- prometheus.NewMetricWithTimestamp(ts, prometheus.MustNewConstMetric(
			descBattery,
			prometheus.GaugeValue,
			float64(state.Capacity)/100,
			name,
		))
	}
}

func RegisterCollector(f SnapshotFunc, reg prometheus.Registerer) {
	c := &collector{f}

	reg.MustRegister(c)
}
