package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hidutils/go-headset-exporter/device"
	"github.com/hidutils/go-headset-exporter/driver"
	"github.com/hidutils/go-headset-exporter/hidio"
	"github.com/hidutils/go-headset-exporter/metrics"
	"github.com/hidutils/go-headset-exporter/powersupply"
	"github.com/hidutils/go-headset-exporter/utils"
)

type attachedDevice struct {
	dev    device.Device
	handle *hidio.Handle
	drv    *driver.Driver
}

func main() {
	zerolog.DurationFieldUnit = time.Second
	zerolog.TimeFieldFormat = time.RFC3339Nano

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05.000",
	})

	cfg := ParseArgs()

	if cfg.Trace || os.Getenv("TRACE") != "" {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	} else if cfg.Debug || os.Getenv("DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := hidio.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize hidapi")
	}
	defer hidio.Exit()

	if cfg.DiscoverDevices {
		doDeviceDiscovery()
		return
	}

	log.Info().
		Str("BindAddr", cfg.BindAddress).
		Array("Devices", utils.ToZeroLogArray(cfg.Devices)).
		Dur("PollTimeout", cfg.PollTimeout).
		Msg("Starting with the specified configuration")

	registry := prometheus.NewRegistry()
	hidio.RegisterMetrics(registry)
	powersupply.RegisterMetrics(registry)
	metrics.RegisterWirelessStatus(registry)

	supplies := powersupply.NewRegistry()
	attached := attachDevices(cfg, supplies)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.RegisterCollector(
		func() (map[string]device.BatteryState, time.Time) {
			out := make(map[string]device.BatteryState, len(attached))

			for _, a := range attached {
				out[a.dev.Name()] = a.drv.BatteryState()
			}

			return out, time.Now()
		},
		registry,
	)

	go runReadLoops(ctx, attached)

	log.Info().
		Str("ListenAddress", cfg.BindAddress).
		Msg("Starting Prometheus server")

	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: cfg.BindAddress}

	go func() {
		<-ctx.Done()
		server.Close()
	}()

	if err := server.ListenAndServe(); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("Unable to bind on requested address")
	}

	log.Info().Msg("Shutting down")
}

func attachDevices(cfg config, supplies *powersupply.Registry) []*attachedDevice {
	attached := make([]*attachedDevice, 0, len(cfg.Devices))

	for _, dev := range cfg.Devices {
		var handle *hidio.Handle
		var err error

		if path := dev.Path(); path != "" {
			handle, err = hidio.OpenPath(path)
		} else {
			handle, err = hidio.OpenIdentity(dev.Identity())
		}

		if err != nil {
			log.Fatal().Err(err).Stringer("Device", dev).Msg("Failed to open device")
		}

		drv := driver.New(dev, handle, metrics.NewWirelessStatusRecorder(dev.Name()))
		drv.PollTimeout = cfg.PollTimeout

		if err := drv.RegisterBattery(supplies); err != nil {
			// the headset still works without battery reporting.
			log.Error().
				Err(err).
				Stringer("Device", dev).
				Msg("Failed to register battery for headset")
		}

		log.Info().Stringer("Device", dev).Msg("Attached device")

		attached = append(attached, &attachedDevice{
			dev:    dev,
			handle: handle,
			drv:    drv,
		})
	}

	return attached
}

func runReadLoops(ctx context.Context, attached []*attachedDevice) {
	var eg errgroup.Group

	for _, a := range attached {
		a := a

		eg.Go(func() error {
			err := a.handle.ReadLoop(ctx, a.drv.HandleReport)

			if !utils.ErrorIsAnyOf(err, context.Canceled, context.DeadlineExceeded) {
				log.Warn().
					Err(err).
					Stringer("Device", a.dev).
					Msg("Read loop terminated - headset tracking stopped")
			}

			a.drv.Remove()
			a.handle.Close()

			return nil
		})
	}

	eg.Wait()
}
