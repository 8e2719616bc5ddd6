package domain

import (
	"strings"
	"time"
)

// Standard GATT identifiers for the Heart Rate profile.
const (
	HeartRateService     = "0000180d-0000-1000-8000-00805f9b34fb"
	HeartRateMeasurement = "00002a37-0000-1000-8000-00805f9b34fb"
)

const unnamedDevice = "Unknown device"

type DeviceIdentity struct {
	Name    string
	Address string
}

// DisplayName never returns an empty string; peripherals are not required to
// advertise a local name.
func (d DeviceIdentity) DisplayName() string {
	if name := strings.TrimSpace(d.Name); name != "" {
		return name
	}
	if d.Address != "" {
		return d.Address
	}
	return unnamedDevice
}

// DeviceFilter narrows device selection. Service is always required; Address
// and Name are optional exact matches (name match is case-insensitive).
type DeviceFilter struct {
	Service string
	Address string
	Name    string
	Timeout time.Duration
}

func HeartRateFilter() DeviceFilter {
	return DeviceFilter{Service: HeartRateService}
}

func (f DeviceFilter) Matches(d DeviceIdentity) bool {
	if f.Address != "" && !strings.EqualFold(f.Address, d.Address) {
		return false
	}
	if f.Name != "" && !strings.EqualFold(f.Name, strings.TrimSpace(d.Name)) {
		return false
	}
	return true
}
