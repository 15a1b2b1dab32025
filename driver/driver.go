package driver

import (
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hidutils/go-headset-exporter/device"
	"github.com/hidutils/go-headset-exporter/device/steelseries"
	"github.com/hidutils/go-headset-exporter/powersupply"
)

// DefaultPollTimeout is how long after confirmed device activity the next
// battery request goes out.
const DefaultPollTimeout = 3000 * time.Millisecond

type WirelessStatus uint8

const (
	WirelessStatusDisconnected WirelessStatus = iota
	WirelessStatusConnected
)

func (w WirelessStatus) String() string {
	switch w {
	case WirelessStatusDisconnected:
		return "Disconnected"
	case WirelessStatusConnected:
		return "Connected"
	default:
		panic("unknown WirelessStatus value: " + strconv.Itoa(int(w)))
	}
}

// StatusSink receives connection status transitions. It is only invoked on
// change, never on every report.
type StatusSink interface {
	SetWirelessStatus(WirelessStatus)
}

// Driver is the per-device state machine tracking connection and battery
// state from inbound reports and keeping the activity-gated polling cadence
// alive. One instance per physical headset.
type Driver struct {
	// PollTimeout is the delay between confirmed activity and the next
	// battery request. Set before the first report is delivered.
	PollTimeout time.Duration

	dev       device.Device
	transport device.Transport
	sink      StatusSink
	supply    *powersupply.Supply
	log       zerolog.Logger

	// mu guards removed and state, and makes the removed-check atomic with
	// the decision to arm a poll. It is never held across an outbound
	// transfer or the cancellation join.
	mu      sync.Mutex
	removed bool
	state   device.BatteryState

	poll deferredTask
}

func New(dev device.Device, transport device.Transport, sink StatusSink) *Driver {
	return &Driver{
		PollTimeout: DefaultPollTimeout,
		dev:         dev,
		transport:   transport,
		sink:        sink,
		log:         log.With().Str("Device", dev.Name()).Logger(),
		state: device.BatteryState{
			Connected: false,
			Capacity:  device.InitialCapacity,
		},
	}
}

// RegisterBattery registers a power supply for this headset and issues the
// first battery request so a report arrives without waiting for inbound
// traffic. A registration failure leaves the headset tracked but without
// battery reporting; the caller decides whether to log and carry on.
func (d *Driver) RegisterBattery(reg *powersupply.Registry) error {
	supply, err := reg.Register(d)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.supply = supply
	d.mu.Unlock()

	d.fetchBattery()

	return nil
}

// BatteryState returns the current believed state. Implements
// powersupply.StateSource.
func (d *Driver) BatteryState() device.BatteryState {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.state
}

// HandleReport consumes one inbound report. Reports too short to decode
// are dropped without touching any state; everything else updates the
// believed state, notifies collaborators on change, and re-arms the poll.
func (d *Driver) HandleReport(buf []byte) {
	candidate, err := d.decodeReport(buf)

	if err != nil {
		// expected for report types that carry no battery information.
		d.log.Trace().
			Err(err).
			Int("Length", len(buf)).
			Msg("Ignoring undecodable report")
		return
	}

	d.apply(candidate)
	d.tryArm()
}

func (d *Driver) decodeReport(buf []byte) (device.BatteryState, error) {
	if d.dev.Quirks()&device.QuirkArctis1 == device.QuirkArctis1 {
		d.log.Trace().Int("Length", len(buf)).Msg("Parsing raw report for Arctis 1 headset")

		return steelseries.DecodeStatusReport(buf)
	}

	// no decoder for this variant: keep the believed state as-is. The
	// report still counts as activity for polling purposes.
	return d.BatteryState(), nil
}

func (d *Driver) apply(candidate device.BatteryState) {
	d.mu.Lock()

	previous := d.state
	connChanged := candidate.Connected != previous.Connected
	capacityChanged := candidate.Capacity != previous.Capacity
	d.state = candidate
	supply := d.supply

	d.mu.Unlock()

	// collaborators are notified outside the lock; they may be arbitrarily
	// slow and must not delay report delivery.
	if connChanged {
		status := WirelessStatusDisconnected

		if candidate.Connected {
			status = WirelessStatusConnected
		}

		d.log.Debug().
			Bool("Was", previous.Connected).
			Bool("Now", candidate.Connected).
			Msg("Connected status changed")

		if d.sink != nil {
			d.sink.SetWirelessStatus(status)
		}
	}

	if capacityChanged {
		d.log.Debug().
			Uint8("Was", previous.Capacity).
			Uint8("Now", candidate.Capacity).
			Msg("Battery capacity changed")

		if supply != nil {
			supply.Changed()
		}
	}
}

// tryArm schedules the next battery poll unless teardown already started.
// The removed-check and the arming happen under the same lock, so no poll
// can be scheduled once Remove() has begun.
func (d *Driver) tryArm() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.removed {
		return
	}

	d.poll.Arm(d.PollTimeout, d.tick)
}

// tick is the deferred poll body. It only sends the battery request; the
// re-arming happens from the inbound path when the answering report shows
// up. A device that stops reporting stops being polled.
func (d *Driver) tick() {
	d.fetchBattery()
}

func (d *Driver) fetchBattery() {
	var err error

	if d.dev.Quirks()&device.QuirkArctis1 == device.QuirkArctis1 {
		err = steelseries.FetchBattery(d.transport)
	}

	if err != nil {
		// not fatal and not retried here: the next scheduled poll, if any,
		// is the retry mechanism.
		d.log.Debug().Err(err).Msg("Battery query failed")
	}
}

// Remove tears the driver down. It returns only once no poll can ever fire
// again: the removed flag is set under the lock, the pending poll is
// cancelled, and an in-flight one is joined.
func (d *Driver) Remove() {
	d.mu.Lock()
	d.removed = true
	d.mu.Unlock()

	d.poll.CancelAndJoin()

	d.log.Debug().Msg("Driver removed")
}
