package probe

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// ntpModeNames maps the mode bits of the first header byte to names
var ntpModeNames = map[int]string{
	0: "Reserved",
	1: "Symmetric active",
	2: "Symmetric passive",
	3: "Client",
	4: "Server",
	5: "Broadcast",
	6: "Control",
	7: "Private",
}

// NTP probes NTP servers (port 123) with a version 4 client-mode request
type NTP struct{}

// NewNTP returns a new NTP probe
func NewNTP() *NTP {
	return &NTP{}
}

func (p *NTP) Name() string {
	return "NTP"
}

// Build constructs a 48-byte client request. All timestamps are zero except
// transmit, which carries the current time in the NTP 1900 epoch.
func (p *NTP) Build() []byte {
	packet := make([]byte, 48)

	// LI 0, version 4, mode 3 (client)
	packet[0] = (0 << 6) | (4 << 3) | 3

	transmit := uint64(time.Now().Unix()) + secondsBetween1900And1970
	binary.BigEndian.PutUint64(packet[40:48], transmit)

	return packet
}

func (p *NTP) Parse(response []byte) Details {
	if len(response) < 48 {
		return nil
	}

	return safeParse("NTP", func() Details {
		liVnMode := response[0]
		stratum := response[1]
		poll := response[2]
		precision := int8(response[3])

		version := (liVnMode >> 3) & 0x07
		mode := int(liVnMode & 0x07)

		modeName, ok := ntpModeNames[mode]

		if !ok {
			modeName = fmt.Sprintf("Unknown (%d)", mode)
		}

		result := Details{
			"protocol":  "NTP",
			"version":   fmt.Sprintf("NTPv%d", version),
			"stratum":   int(stratum),
			"mode":      modeName,
			"precision": int(precision),
			"poll":      int(poll),
		}

		// reference id: ASCII for primary references, dotted quad otherwise
		refIDBytes := response[12:16]
		var refID string

		if stratum <= 1 {
			refID = strings.Trim(asciiString(refIDBytes), "\x00")
		} else {
			refID = fmt.Sprintf("%d.%d.%d.%d", refIDBytes[0], refIDBytes[1], refIDBytes[2], refIDBytes[3])
		}

		if refID != "" && refID != "0.0.0.0" {
			result["reference"] = refID
		}

		switch {
		case stratum == 0:
			result["type"] = "Kiss-of-Death"
		case stratum == 1:
			result["type"] = "Primary reference"
		case stratum <= 15:
			result["type"] = fmt.Sprintf("Secondary reference (stratum %d)", stratum)
		default:
			result["type"] = "Unsynchronized"
		}

		return result
	})
}

// asciiString renders data keeping only 7-bit ASCII bytes
func asciiString(data []byte) string {
	var b strings.Builder

	for _, c := range data {
		if c < 0x80 {
			b.WriteByte(c)
		}
	}

	return b.String()
}
