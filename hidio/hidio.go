package hidio

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/sstallion/go-hid"

	"github.com/hidutils/go-headset-exporter/device"
)

var (
	outboundRequestsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "headset_exporter_hid_outbound_requests_total",
	})
	outboundErrorsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "headset_exporter_hid_outbound_errors_total",
	})
	inboundReportsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "headset_exporter_hid_inbound_reports_total",
	})
	readErrorsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "headset_exporter_hid_read_errors_total",
	})
)

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(
		outboundRequestsCounter,
		outboundErrorsCounter,
		inboundReportsCounter,
		readErrorsCounter,
	)
}

// Init initializes the underlying hidapi library. Must be called once
// before any Handle is opened; pair with Exit() at shutdown.
func Init() error {
	if err := hid.Init(); err != nil {
		return fmt.Errorf("failed to init hidapi: %w", err)
	}

	return nil
}

func Exit() {
	if err := hid.Exit(); err != nil {
		log.Warn().Err(err).Msg("hidio: hidapi shutdown failed")
	}
}

// Handle wraps one open HID interface.
type Handle struct {
	dev  *hid.Device
	info hid.DeviceInfo
}

// OpenPath opens the HID interface at the given platform path.
func OpenPath(path string) (*Handle, error) {
	d, err := hid.OpenPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open HID path %q: %w", path, err)
	}

	h := &Handle{dev: d}

	if info, err := d.GetDeviceInfo(); err == nil {
		h.info = *info
	}

	log.Debug().
		Str("Path", path).
		Msg("hidio: opened HID interface")

	return h, nil
}

// OpenIdentity opens the first enumerated HID interface matching the given
// vendor/product pair.
func OpenIdentity(id device.Identity) (*Handle, error) {
	var path string

	err := hid.Enumerate(id.VendorID, id.ProductID, func(info *hid.DeviceInfo) error {
		if path == "" {
			path = info.Path
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to enumerate HID devices: %w", err)
	}

	if path == "" {
		return nil, fmt.Errorf("no HID interface found for identity %v", id)
	}

	return OpenPath(path)
}

func (h *Handle) Info() hid.DeviceInfo {
	return h.info
}

// SendControlRequest submits one outbound report to the device. The first
// payload byte is the report ID per the HID set-report convention; the
// requestID parameter mirrors the raw-request contract and must match it.
func (h *Handle) SendControlRequest(requestID byte, payload []byte) (int, error) {
	if len(payload) == 0 || payload[0] != requestID {
		return 0, fmt.Errorf("request ID 0x%02x does not match payload header", requestID)
	}

	outboundRequestsCounter.Inc()

	n, err := h.dev.Write(payload)

	if err != nil {
		outboundErrorsCounter.Inc()
		return n, fmt.Errorf("failed to write output report: %w", err)
	}

	return n, nil
}

func (h *Handle) Close() {
	if err := h.dev.Close(); err != nil {
		log.Warn().Err(err).Msg("hidio: failed to close HID interface")
	}
}
