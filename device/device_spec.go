package device

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

type DeviceSpec map[string]string

const (
	DeviceSpecFieldName      = "name"
	DeviceSpecFieldPath      = "path"
	DeviceSpecFieldVendorID  = "vid"
	DeviceSpecFieldProductID = "pid"
)

func NewDeviceSpec(s string) DeviceSpec {
	spec := DeviceSpec{}
	entries := strings.Split(s, ",")

	for _, entry := range entries {
		parts := strings.SplitN(entry, "=", 2)

		if len(parts) != 2 {
			log.Warn().Str("Entry", entry).Msg("Skipping invalid device spec entry")
			continue
		}

		spec[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}

	return spec
}

func (ds DeviceSpec) Name() string {
	return ds[DeviceSpecFieldName]
}

func (ds DeviceSpec) Path() string {
	return ds[DeviceSpecFieldPath]
}

// ParseIdentity parses the vid/pid fields of the spec, accepting both plain
// and 0x-prefixed hex.
func (ds DeviceSpec) ParseIdentity() (Identity, error) {
	var id Identity

	for field, out := range map[string]*uint16{
		DeviceSpecFieldVendorID:  &id.VendorID,
		DeviceSpecFieldProductID: &id.ProductID,
	} {
		raw := ds[field]

		if raw == "" {
			return id, fmt.Errorf("missing required field %q", field)
		}

		v, err := strconv.ParseUint(strings.TrimPrefix(raw, "0x"), 16, 16)
		if err != nil {
			return id, fmt.Errorf("invalid %s %q: %w", field, raw, err)
		}

		*out = uint16(v)
	}

	return id, nil
}
