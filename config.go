package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hidutils/go-headset-exporter/device"
	"github.com/hidutils/go-headset-exporter/device/steelseries"
	"github.com/hidutils/go-headset-exporter/driver"
)

type config struct {
	Debug, Trace    bool
	BindAddress     string
	DiscoverDevices bool
	PollTimeout     time.Duration
	Devices         []device.Device
}

type boundDeviceList struct {
	device.Factory
	name string
	list *[]device.Device
}

var deviceFactories = map[string]device.Factory{
	"steelseries": &steelseries.Factory{},
}

func (d *boundDeviceList) String() string {
	return ""
}

func (d *boundDeviceList) Set(v string) error {
	ds := device.NewDeviceSpec(v)

	device, err := d.FromSpec(ds)
	if err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}

	*d.list = append(*d.list, device)

	return nil
}

func ParseArgs() config {
	var cfg config

	flag.StringVar(&cfg.BindAddress, "bind", "localhost:9843", "Where the exporter will bind to")
	flag.BoolVar(&cfg.DiscoverDevices, "discover", false, "List available HID interfaces and quit")
	flag.DurationVar(&cfg.PollTimeout, "poll-timeout", driver.DefaultPollTimeout,
		"Delay between confirmed device activity and the next battery request")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable debug logs")
	flag.BoolVar(&cfg.Trace, "trace", false, "Enable trace logs")

	for deviceName, deviceFactory := range deviceFactories {
		boundList := boundDeviceList{
			name:    deviceName,
			Factory: deviceFactory,
			list:    &cfg.Devices,
		}

		help := "Device spec for this device in the form of `key=value,key=value`."

		if docs, ok := deviceFactory.(device.FactoryDocs); ok {
			help += "\n" + docs.Help()
		}

		flag.Var(&boundList, deviceName, help)
	}

	flag.Parse()

	if !cfg.DiscoverDevices && len(cfg.Devices) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one device is required!")
		flag.Usage()
		os.Exit(1)
	}

	return cfg
}
