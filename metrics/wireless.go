package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/hidutils/go-headset-exporter/driver"
)

var wirelessStatusGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Name: "headset_wireless_status",
	Help: "Wireless link status as reported to the owning interface. 1 = connected.",
}, []string{"name"})

func RegisterWirelessStatus(reg prometheus.Registerer) {
	reg.MustRegister(wirelessStatusGauge)
}

// WirelessStatusRecorder is the production wireless-status collaborator:
// it mirrors connection transitions into a gauge and the log.
type WirelessStatusRecorder struct {
	name string
}

func NewWirelessStatusRecorder(name string) *WirelessStatusRecorder {
	return &WirelessStatusRecorder{name: name}
}

func (r *WirelessStatusRecorder) SetWirelessStatus(status driver.WirelessStatus) {
	value := 0.0

	if status == driver.WirelessStatusConnected {
		value = 1.0
	}

	wirelessStatusGauge.WithLabelValues(r.name).Set(value)

	log.Info().
		Str("Device", r.name).
		Stringer("WirelessStatus", status).
		Msg("Headset wireless status changed")
}
