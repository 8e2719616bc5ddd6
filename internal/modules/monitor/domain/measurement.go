package domain

import (
	"encoding/binary"
	"fmt"
	"time"

	apperrors "hrmon/internal/platform/errors"
)

// Heart Rate Measurement flag bits.
const (
	flagUint16Format   = 1 << 0
	flagContactDetect  = 1 << 1
	flagContactSupport = 1 << 2
	flagEnergyExpended = 1 << 3
	flagRRInterval     = 1 << 4
)

type ContactStatus int

const (
	ContactUnsupported ContactStatus = iota
	ContactNotDetected
	ContactDetected
)

func (c ContactStatus) String() string {
	switch c {
	case ContactNotDetected:
		return "no contact"
	case ContactDetected:
		return "contact"
	default:
		return "unsupported"
	}
}

type Measurement struct {
	Flags          byte
	BPM            uint16
	Contact        ContactStatus
	EnergyExpended uint16 // kJ, valid when HasEnergy
	HasEnergy      bool
	RRIntervals    []time.Duration
}

// ParseMeasurement decodes a Heart Rate Measurement characteristic value.
// The bpm field is a single byte unless flag bit 0 selects the uint16 format.
// Optional trailing fields that are truncated are ignored; only a payload too
// short to carry the bpm field is rejected.
func ParseMeasurement(buf []byte) (Measurement, error) {
	if len(buf) < 2 {
		return Measurement{}, fmt.Errorf("%w: %d bytes", apperrors.ErrMalformedMeasurement, len(buf))
	}
	m := Measurement{Flags: buf[0]}
	var offset int
	if m.Flags&flagUint16Format != 0 {
		if len(buf) < 3 {
			return Measurement{}, fmt.Errorf("%w: uint16 format with %d bytes", apperrors.ErrMalformedMeasurement, len(buf))
		}
		m.BPM = binary.LittleEndian.Uint16(buf[1:3])
		offset = 3
	} else {
		m.BPM = uint16(buf[1])
		offset = 2
	}

	switch {
	case m.Flags&flagContactSupport == 0:
		m.Contact = ContactUnsupported
	case m.Flags&flagContactDetect != 0:
		m.Contact = ContactDetected
	default:
		m.Contact = ContactNotDetected
	}

	if m.Flags&flagEnergyExpended != 0 && len(buf) >= offset+2 {
		m.EnergyExpended = binary.LittleEndian.Uint16(buf[offset : offset+2])
		m.HasEnergy = true
		offset += 2
	}
	if m.Flags&flagRRInterval != 0 {
		for ; len(buf) >= offset+2; offset += 2 {
			raw := binary.LittleEndian.Uint16(buf[offset : offset+2])
			m.RRIntervals = append(m.RRIntervals, time.Duration(raw)*time.Second/1024)
		}
	}
	return m, nil
}
