package device

import "fmt"

const VendorIDSteelSeries = 0x1038

type Identity struct {
	VendorID  uint16
	ProductID uint16
}

func (id Identity) String() string {
	return fmt.Sprintf("%04x:%04x", id.VendorID, id.ProductID)
}

// identityTable maps a vendor/product pair to the quirk set governing its
// protocol variant. Only devices listed here are supported.
var identityTable = map[Identity]Quirks{
	// SteelSeries Arctis 1 Wireless for XBox
	{VendorIDSteelSeries, 0x12b6}: QuirkArctis1,
}

// LookupIdentity resolves the quirk set for a vendor/product pair. The
// second return value is false when the identity is not supported.
func LookupIdentity(id Identity) (Quirks, bool) {
	quirks, ok := identityTable[id]

	return quirks, ok
}
