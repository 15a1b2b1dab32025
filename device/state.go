package device

import "fmt"

// InitialCapacity is the battery percentage reported until the first real
// sample arrives. Starting at 100 avoids presenting a false "critically
// low" reading for a headset that simply has not been heard from yet.
const InitialCapacity uint8 = 100

// BatteryState is the believed state of a headset as decoded from a status
// report: whether the headset is in range and powered on, and its last
// known charge level.
type BatteryState struct {
	Connected bool
	Capacity  uint8
}

func (s BatteryState) String() string {
	if !s.Connected {
		return "BatteryState[disconnected]"
	}

	return fmt.Sprintf("BatteryState[connected,Capacity=%d%%]", s.Capacity)
}
