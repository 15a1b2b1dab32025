package steelseries

import (
	"fmt"

	"github.com/hidutils/go-headset-exporter/device"
)

type Device struct {
	name   string
	path   string
	id     device.Identity
	quirks device.Quirks
}

func (d *Device) Name() string {
	return d.name
}

func (d *Device) Identity() device.Identity {
	return d.id
}

func (d *Device) Quirks() device.Quirks {
	return d.quirks
}

func (d *Device) Path() string {
	return d.path
}

func (d *Device) String() string {
	return fmt.Sprintf("steelseries[name=%q, id=%v, quirks=%v]", d.name, d.id, d.quirks)
}
