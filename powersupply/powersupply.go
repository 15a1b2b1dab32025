package powersupply

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/hidutils/go-headset-exporter/device"
)

var (
	registrationsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "headset_exporter_power_supply_registrations_total",
	})
	changesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "headset_exporter_power_supply_changes_total",
	})
)

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(
		registrationsCounter,
		changesCounter,
	)
}

type Status uint8

const (
	StatusUnknown Status = iota
	StatusDischarging
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "Unknown"
	case StatusDischarging:
		return "Discharging"
	default:
		panic("unknown Status value: " + strconv.Itoa(int(s)))
	}
}

type Scope uint8

const (
	// ScopeDevice marks a supply powering a peripheral rather than the
	// system itself.
	ScopeDevice Scope = iota
)

func (s Scope) String() string {
	switch s {
	case ScopeDevice:
		return "Device"
	default:
		panic("unknown Scope value: " + strconv.Itoa(int(s)))
	}
}

// StateSource exposes the believed battery state of the device backing a
// supply. Implemented by the driver.
type StateSource interface {
	BatteryState() device.BatteryState
}

// Supply is a registered capacity-and-status provider for one headset. All
// four properties are read-only and computed from the source on access.
type Supply struct {
	name   string
	source StateSource

	// OnChange, when set, runs after every Changed() notification. Lets
	// push-style consumers react without polling the properties.
	OnChange func()
}

func (s *Supply) Name() string {
	return s.name
}

// Present is always true once the supply is registered: the dongle is
// attached even when the headset itself is out of range.
func (s *Supply) Present() bool {
	return true
}

func (s *Supply) Status() Status {
	if s.source.BatteryState().Connected {
		return StatusDischarging
	}

	return StatusUnknown
}

func (s *Supply) Scope() Scope {
	return ScopeDevice
}

func (s *Supply) Capacity() uint8 {
	return s.source.BatteryState().Capacity
}

// Changed signals consumers that the reported capacity changed. Invoked by
// the driver after every capacity mutation.
func (s *Supply) Changed() {
	changesCounter.Inc()

	log.Trace().
		Str("Supply", s.name).
		Stringer("Status", s.Status()).
		Uint8("Capacity", s.Capacity()).
		Msg("powersupply: supply state changed")

	if s.OnChange != nil {
		s.OnChange()
	}
}

// Registry owns the process-wide supply namespace. Names are derived from a
// monotonically increasing counter, so every attach gets a fresh one even
// across replug cycles of the same physical device.
type Registry struct {
	nextID atomic.Uint64

	mu       sync.Mutex
	supplies map[string]*Supply
}

func NewRegistry() *Registry {
	return &Registry{
		supplies: make(map[string]*Supply),
	}
}

func (r *Registry) Register(source StateSource) (*Supply, error) {
	if source == nil {
		return nil, fmt.Errorf("cannot register a supply with no state source")
	}

	name := fmt.Sprintf("headset_battery_%d", r.nextID.Add(1)-1)

	s := &Supply{
		name:   name,
		source: source,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.supplies[name]; ok {
		return nil, fmt.Errorf("supply %q is already registered", name)
	}

	r.supplies[name] = s
	registrationsCounter.Inc()

	log.Debug().Str("Supply", name).Msg("powersupply: registered supply")

	return s, nil
}

func (r *Registry) Unregister(s *Supply) {
	if s == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.supplies, s.name)
}

// Supplies returns a snapshot of the registered supplies.
func (r *Registry) Supplies() []*Supply {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Supply, 0, len(r.supplies))

	for _, s := range r.supplies {
		out = append(out, s)
	}

	return out
}
