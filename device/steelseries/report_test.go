package steelseries_test

import (
	"errors"
	"testing"

	"github.com/hidutils/go-headset-exporter/device"
	"github.com/hidutils/go-headset-exporter/device/steelseries"
)

func TestDecodeStatusReport_TooShort(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x4d, 0x00, 0x00, 0x00}

	_, err := steelseries.DecodeStatusReport(buf)

	if !errors.Is(err, device.ErrReportTooShort) {
		t.Fatalf("DecodeStatusReport(%v): got error %v, want ErrReportTooShort", buf, err)
	}
}

func TestDecodeStatusReport_HeadsetAbsent(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x01, 0x4d, 0x00, 0x00, 0x00, 0x00}

	got, err := steelseries.DecodeStatusReport(buf)

	if err != nil {
		t.Fatalf("DecodeStatusReport(%v) got error: %v", buf, err)
	}

	want := device.BatteryState{Connected: false, Capacity: 100}

	if got != want {
		t.Fatalf("DecodeStatusReport(%v): got %v, want %v", buf, got, want)
	}
}

func TestDecodeStatusReport_HeadsetPresent(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 77, 0x00, 0x00, 0x00, 0x00}

	got, err := steelseries.DecodeStatusReport(buf)

	if err != nil {
		t.Fatalf("DecodeStatusReport(%v) got error: %v", buf, err)
	}

	want := device.BatteryState{Connected: true, Capacity: 77}

	if got != want {
		t.Fatalf("DecodeStatusReport(%v): got %v, want %v", buf, got, want)
	}
}

func TestDecodeStatusReport_UnknownSubtypeMeansPresent(t *testing.T) {
	// any discriminator other than 0x01 is treated as "present", including
	// report subtypes the firmware never documented.
	for _, presence := range []byte{0x00, 0x02, 0x7f, 0xff} {
		buf := []byte{0x00, 0x00, presence, 33, 0x00, 0x00, 0x00, 0x00}

		got, err := steelseries.DecodeStatusReport(buf)

		if err != nil {
			t.Fatalf("DecodeStatusReport(%v) got error: %v", buf, err)
		}

		if !got.Connected || got.Capacity != 33 {
			t.Fatalf("DecodeStatusReport(%v): got %v, want connected with capacity 33", buf, got)
		}
	}
}

func TestDecodeStatusReport_CapacityNotClamped(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0xfe, 0x00, 0x00, 0x00, 0x00}

	got, err := steelseries.DecodeStatusReport(buf)

	if err != nil {
		t.Fatalf("DecodeStatusReport(%v) got error: %v", buf, err)
	}

	if got.Capacity != 0xfe {
		t.Fatalf("DecodeStatusReport(%v): got capacity %d, want 254 (verbatim)", buf, got.Capacity)
	}
}

func TestDecodeStatusReport_LongerReportsAccepted(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 12, 0x00, 0x00, 0x00, 0x00, 0xaa, 0xbb, 0xcc}

	got, err := steelseries.DecodeStatusReport(buf)

	if err != nil {
		t.Fatalf("DecodeStatusReport(%v) got error: %v", buf, err)
	}

	want := device.BatteryState{Connected: true, Capacity: 12}

	if got != want {
		t.Fatalf("DecodeStatusReport(%v): got %v, want %v", buf, got, want)
	}
}
