package hidio

import (
	"fmt"

	"github.com/sstallion/go-hid"
)

// Enumerate visits every HID interface known to the host. Used by the
// discovery mode to help users find the vid/pid of their dongle.
func Enumerate(fn func(hid.DeviceInfo)) error {
	err := hid.Enumerate(hid.VendorIDAny, hid.ProductIDAny, func(info *hid.DeviceInfo) error {
		fn(*info)

		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to enumerate HID devices: %w", err)
	}

	return nil
}
