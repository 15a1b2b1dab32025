package device

import (
	"errors"
	"strings"
)

var (
	// ErrReportTooShort is returned when an inbound report is too short to
	// carry the fields the decoder needs. Reports like this are routine
	// (other report types share the endpoint) and are dropped silently.
	ErrReportTooShort = errors.New("report too short")
	// ErrShortTransfer is returned when the transport accepted fewer bytes
	// than were submitted for an outbound request.
	ErrShortTransfer = errors.New("short transfer")
	// ErrUnknownIdentity is returned when a vendor/product pair does not
	// match any entry of the identity table.
	ErrUnknownIdentity = errors.New("unknown device identity")
)

type Quirks uint8

const (
	// QuirkArctis1 selects the Arctis 1-style status report layout and
	// battery request.
	QuirkArctis1 Quirks = 1 << iota
)

func (q Quirks) String() string {
	var quirks []string

	if q&QuirkArctis1 == QuirkArctis1 {
		quirks = append(quirks, "arctis-1")
	}

	if len(quirks) == 0 {
		return "none"
	}

	return strings.Join(quirks, ", ")
}

type Device interface {
	Name() string
	Identity() Identity
	Quirks() Quirks
	// Path is the platform HID path of the interface to open. Empty means
	// "first enumerated interface matching Identity()".
	Path() string
	String() string
}

// Transport issues outbound control requests towards the device. The first
// payload byte doubles as the report ID, following the HID set-report
// convention.
type Transport interface {
	SendControlRequest(requestID byte, payload []byte) (int, error)
}
