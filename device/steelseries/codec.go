package steelseries

import (
	"github.com/pkg/errors"

	"github.com/hidutils/go-headset-exporter/device"
)

// batteryRequest asks an Arctis 1 headset to send a status report. The
// first byte doubles as the HID report ID.
var batteryRequest = [2]byte{0x06, 0x12}

// FetchBattery issues the battery request on the outbound transport. The
// headset answers asynchronously with a status report on the inbound
// endpoint; there is no synchronous response to wait for.
func FetchBattery(t device.Transport) error {
	req := batteryRequest[:]

	n, err := t.SendControlRequest(req[0], req)
	if err != nil {
		return errors.Wrap(err, "battery request failed")
	}

	if n < len(req) {
		return errors.Wrapf(device.ErrShortTransfer,
			"battery request accepted %d of %d bytes", n, len(req))
	}

	return nil
}
