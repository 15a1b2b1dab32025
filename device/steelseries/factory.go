package steelseries

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hidutils/go-headset-exporter/device"
)

type Factory struct{}

func (f *Factory) FromSpec(spec device.DeviceSpec) (device.Device, error) {
	d := Device{}

	id, err := spec.ParseIdentity()
	if err != nil {
		return nil, fmt.Errorf("invalid identity: %w", err)
	}

	quirks, ok := device.LookupIdentity(id)
	if !ok {
		return nil, fmt.Errorf("%w: %v", device.ErrUnknownIdentity, id)
	}

	d.id = id
	d.quirks = quirks
	d.path = spec.Path()

	if name := spec.Name(); name != "" {
		d.name = name
	} else {
		d.name = "steelseries-" + id.String()
	}

	log.Debug().
		Stringer("Device", &d).
		Msg("steelseries: matched device identity")

	return &d, nil
}

func (f *Factory) Help() string {
	return `Supported parameters:
vid (hex, required): USB vendor ID of the headset dongle (e.g. 1038)
pid (hex, required): USB product ID of the headset dongle
path (string): HID path of the interface. Defaults to the first interface matching vid/pid.
name (string): Name of this headset. Used in logs and metric labels.`
}
