package steelseries

import (
	"github.com/pkg/errors"

	"github.com/hidutils/go-headset-exporter/device"
)

const (
	// statusReportLen is the minimum length of an Arctis 1 status report.
	// Shorter reports belong to other report types and carry no battery
	// information.
	statusReportLen = 8

	// The byte at this offset discriminates headset presence. 0x01 means
	// the headset is off or out of range; anything else means present.
	// This is observed device behavior, not documented protocol.
	presenceOffset = 2
	presenceAbsent = 0x01

	// The byte at this offset is the raw battery percentage when the
	// headset is present. The firmware is trusted to stay within 0-100;
	// values outside the range are passed through verbatim.
	capacityOffset = 3
)

// DecodeStatusReport interprets an inbound Arctis 1-style report. When the
// headset is reported absent, the capacity falls back to the initial
// placeholder rather than 0%, since no real reading exists while
// disconnected.
func DecodeStatusReport(buf []byte) (device.BatteryState, error) {
	var state device.BatteryState

	if len(buf) < statusReportLen {
		return state, errors.Wrapf(device.ErrReportTooShort,
			"got %d bytes, want at least %d", len(buf), statusReportLen)
	}

	if buf[presenceOffset] == presenceAbsent {
		state.Connected = false
		state.Capacity = device.InitialCapacity
	} else {
		state.Connected = true
		state.Capacity = buf[capacityOffset]
	}

	return state, nil
}
