package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sstallion/go-hid"
	"golang.org/x/exp/maps"

	"github.com/hidutils/go-headset-exporter/device"
	"github.com/hidutils/go-headset-exporter/hidio"
)

func doDeviceDiscovery() {
	log.Info().Msg("Starting in device discovery mode - enumerating HID interfaces...")

	type interfaceInfo struct {
		identity device.Identity
		product  string
		usages   map[string]bool
		known    bool
	}

	interfaces := make(map[string]*interfaceInfo)

	err := hidio.Enumerate(func(info hid.DeviceInfo) {
		id := device.Identity{VendorID: info.VendorID, ProductID: info.ProductID}
		_, known := device.LookupIdentity(id)

		usage := fmt.Sprintf("%04x:%04x", info.UsagePage, info.Usage)

		var entry *interfaceInfo
		var ok bool

		if entry, ok = interfaces[info.Path]; ok {
			// merge
			if entry.product == "" {
				entry.product = info.ProductStr
			}
			entry.usages[usage] = true
		} else {
			entry = &interfaceInfo{
				identity: id,
				product:  info.ProductStr,
				usages:   map[string]bool{usage: true},
				known:    known,
			}
		}

		interfaces[info.Path] = entry

		log.Debug().
			Str("Path", info.Path).
			Stringer("Identity", id).
			Str("Product", info.ProductStr).
			Uint16("UsagePage", info.UsagePage).
			Uint16("Usage", info.Usage).
			Msg("Found HID interface")
	})

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to enumerate HID devices")
	}

	log.Info().Int("Found", len(interfaces)).Msg("Finished HID discovery")

	for path, entry := range interfaces {
		log.Info().
			Str("Path", path).
			Stringer("Identity", entry.identity).
			Str("Product", entry.product).
			Strs("Usages", maps.Keys(entry.usages)).
			Bool("Supported", entry.known).
			Msg("Found device")
	}
}
