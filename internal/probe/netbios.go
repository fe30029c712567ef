package probe

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// NetBIOS probes the NetBIOS name service (ports 137/138) with an NBSTAT
// query for the wildcard name, which cooperative hosts answer with their
// full name table.
type NetBIOS struct{}

// NewNetBIOS returns a new NetBIOS probe
func NewNetBIOS() *NetBIOS {
	return &NetBIOS{}
}

func (p *NetBIOS) Name() string {
	return "NetBIOS"
}

func (p *NetBIOS) Build() []byte {
	packet := make([]byte, 12)

	txid := binary.BigEndian.Uint16(randomBytes(2))

	if txid == 0 {
		txid = 1
	}

	binary.BigEndian.PutUint16(packet[0:2], txid)
	binary.BigEndian.PutUint16(packet[2:4], 0x0010) // query, broadcast
	binary.BigEndian.PutUint16(packet[4:6], 1)      // one question

	// wildcard name "*" in first-level encoding
	packet = append(packet, 0x20)
	packet = append(packet, "CKAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"...)
	packet = append(packet, 0x00)

	// NBSTAT query, IN class
	packet = append(packet, 0x00, 0x21, 0x00, 0x01)

	return packet
}

func (p *NetBIOS) Parse(response []byte) Details {
	if len(response) < 12 {
		return nil
	}

	return safeParse("NetBIOS", func() Details {
		flags := binary.BigEndian.Uint16(response[2:4])
		answers := int(binary.BigEndian.Uint16(response[6:8]))

		// QR bit must be set for a valid response
		if (flags>>15)&1 == 0 {
			return nil
		}

		result := Details{
			"protocol": "NetBIOS",
			"answers":  answers,
		}

		names := parseNetBIOSNames(response, answers)

		if len(names) > 0 {
			if len(names) > 5 {
				names = names[:5]
			}

			result["names"] = names
		}

		return result
	})
}

// parseNetBIOSNames skips the echoed question section and extracts the
// fixed-width name entries from each answer record, capped to bound work
// on malicious input
func parseNetBIOSNames(response []byte, answers int) []string {
	names := []string{}

	idx := 12

	// skip the echoed question name
	for idx < len(response) && response[idx] != 0 {
		idx++
	}
	idx += 5 // null byte, type, class

	if answers > 10 {
		answers = 10
	}

	for i := 0; i < answers; i++ {
		if idx >= len(response)-10 {
			break
		}

		// answer name is usually a compression pointer
		if response[idx] == 0xc0 {
			idx += 2
		} else {
			for idx < len(response) && response[idx] != 0 {
				idx++
			}
			idx++
		}

		if idx+10 > len(response) {
			break
		}

		// type, class, TTL
		idx += 8

		if idx+2 > len(response) {
			break
		}

		dataLen := int(binary.BigEndian.Uint16(response[idx : idx+2]))
		idx += 2

		if idx+dataLen > len(response) {
			break
		}

		// each 18-byte record holds a 15-byte padded name plus a type byte
		dataEnd := idx + dataLen

		for idx+18 <= dataEnd && len(names) < 10 {
			name := strings.TrimSpace(asciiString(response[idx : idx+15]))

			if name != "" && isPrintableText([]byte(name)) {
				nameType := response[idx+15]
				names = append(names, fmt.Sprintf("%s (0x%x)", name, nameType))
			}

			idx += 18
		}

		idx = dataEnd
	}

	return names
}
