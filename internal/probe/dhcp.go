package probe

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	dhcpMagicCookie       = 0x63825363
	dhcpMagicCookieOffset = 236
	dhcpOptMessageType    = 0x35
	dhcpOptEnd            = 0xff
)

// dhcpMessageTypes maps option 53 values to message names
var dhcpMessageTypes = map[byte]string{
	1: "DISCOVER",
	2: "OFFER",
	3: "REQUEST",
	4: "DECLINE",
	5: "ACK",
	6: "NAK",
	7: "RELEASE",
}

// DHCP probes DHCP servers (ports 67/68) with a DHCPDISCOVER carrying a
// random transaction id and client MAC
type DHCP struct {
	xid []byte
}

// NewDHCP returns a new DHCP probe
func NewDHCP() *DHCP {
	return &DHCP{}
}

func (p *DHCP) Name() string {
	return "DHCP"
}

func (p *DHCP) Build() []byte {
	p.xid = randomBytes(4)

	packet := make([]byte, 0, 244)

	// op BOOTREQUEST, htype ethernet, hlen 6, hops 0
	packet = append(packet, 0x01, 0x01, 0x06, 0x00)
	packet = append(packet, p.xid...)
	// secs 0, broadcast flag set
	packet = append(packet, 0x00, 0x00, 0x80, 0x00)
	// ciaddr, yiaddr, siaddr, giaddr all zero
	packet = append(packet, make([]byte, 16)...)
	// chaddr: random MAC padded to 16 bytes
	packet = append(packet, randomBytes(6)...)
	packet = append(packet, make([]byte, 10)...)
	// sname and file
	packet = append(packet, make([]byte, 64)...)
	packet = append(packet, make([]byte, 128)...)

	cookie := make([]byte, 4)
	binary.BigEndian.PutUint32(cookie, dhcpMagicCookie)
	packet = append(packet, cookie...)

	// option 53: message type DISCOVER, then end option
	packet = append(packet, dhcpOptMessageType, 0x01, 0x01)
	packet = append(packet, dhcpOptEnd)

	return packet
}

func (p *DHCP) Parse(response []byte) Details {
	if len(response) < 240 {
		return nil
	}

	return safeParse("DHCP", func() Details {
		result := Details{
			"protocol": "DHCP",
		}

		if response[0] == 0x02 {
			result["message_type"] = "Boot Reply"
		} else {
			result["message_type"] = fmt.Sprintf("Type %d", response[0])
		}

		if len(p.xid) == 4 && bytes.Equal(response[4:8], p.xid) {
			result["transaction_matched"] = true
		}

		yourIP := fmt.Sprintf("%d.%d.%d.%d", response[16], response[17], response[18], response[19])

		if yourIP != "0.0.0.0" {
			result["offered_ip"] = yourIP
		}

		serverIP := fmt.Sprintf("%d.%d.%d.%d", response[20], response[21], response[22], response[23])

		if serverIP != "0.0.0.0" {
			result["server_ip"] = serverIP
		}

		if len(response) > dhcpMagicCookieOffset+4 {
			magic := binary.BigEndian.Uint32(response[dhcpMagicCookieOffset : dhcpMagicCookieOffset+4])

			if magic == dhcpMagicCookie {
				parseDHCPOptions(response, result)
			}
		}

		return result
	})
}

// parseDHCPOptions walks the option chain looking for the message type,
// stopping at the end option
func parseDHCPOptions(response []byte, result Details) {
	idx := dhcpMagicCookieOffset + 4

	for idx < len(response) {
		if response[idx] == dhcpOptEnd {
			break
		}

		if response[idx] == dhcpOptMessageType && idx+2 < len(response) {
			msgType := response[idx+2]

			name, ok := dhcpMessageTypes[msgType]

			if !ok {
				name = fmt.Sprintf("Type %d", msgType)
			}

			result["dhcp_type"] = name

			return
		}

		if idx+1 < len(response) {
			idx += 2 + int(response[idx+1])
		} else {
			break
		}
	}
}
