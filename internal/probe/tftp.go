package probe

import (
	"encoding/binary"
	"strings"
)

// TFTP opcodes the parser recognizes
const (
	tftpOpData  = 3
	tftpOpError = 5
)

// TFTP probes TFTP servers (port 69) with a read request for a harmless
// test file. Servers answer with either a DATA block or an ERROR, both of
// which positively identify the service.
type TFTP struct{}

// NewTFTP returns a new TFTP probe
func NewTFTP() *TFTP {
	return &TFTP{}
}

func (p *TFTP) Name() string {
	return "TFTP"
}

func (p *TFTP) Build() []byte {
	packet := []byte{0x00, 0x01} // RRQ
	packet = append(packet, "test.txt"...)
	packet = append(packet, 0x00)
	packet = append(packet, "octet"...)
	packet = append(packet, 0x00)

	return packet
}

func (p *TFTP) Parse(response []byte) Details {
	if len(response) < 4 {
		return nil
	}

	return safeParse("TFTP", func() Details {
		opcode := binary.BigEndian.Uint16(response[0:2])

		result := Details{
			"protocol": "TFTP",
		}

		switch opcode {
		case tftpOpData:
			result["response_type"] = "DATA"
			result["block"] = int(binary.BigEndian.Uint16(response[2:4]))

			if len(response) > 4 {
				result["data_size"] = len(response) - 4
			}
		case tftpOpError:
			result["response_type"] = "ERROR"
			result["error_code"] = int(binary.BigEndian.Uint16(response[2:4]))

			if len(response) > 4 {
				msg := strings.TrimRight(string(response[4:]), "\x00")
				result["error_message"] = msg
			}
		default:
			result["opcode"] = int(opcode)
		}

		return result
	})
}
