package probe

import "strings"

// SNMP BER tags the heuristic parser scans for
const (
	snmpTagOctetString = 0x04
	snmpTagGetResponse = 0xa2
	snmpTagReport      = 0xa8
)

// snmpSystemHints are substrings that mark an OCTET STRING as a plausible
// sysDescr value. Best-effort fingerprint data, not a protocol guarantee.
var snmpSystemHints = []string{"Linux", "Windows", "Cisco"}

// snmpGetRequest is a pre-encoded SNMPv2c GetRequest for sysDescr.0 with
// community "public"
var snmpGetRequest = []byte{
	0x30, 0x29, // SEQUENCE
	0x02, 0x01, 0x01, // version: 2c
	0x04, 0x06, 0x70, 0x75, 0x62, 0x6c, 0x69, 0x63, // community: "public"
	0xa0, 0x1c, // GetRequest PDU
	0x02, 0x04, 0x00, 0x00, 0x00, 0x01, // request id
	0x02, 0x01, 0x00, // error status
	0x02, 0x01, 0x00, // error index
	0x30, 0x0e, // variable bindings
	0x30, 0x0c, // variable binding
	0x06, 0x08, // OID
	0x2b, 0x06, 0x01, 0x02, 0x01, 0x01, 0x01, 0x00, // sysDescr.0
	0x05, 0x00, // NULL value
}

// SNMP probes SNMP agents (ports 161/162). Decoding is deliberately
// heuristic: the community string and PDU type are enough to identify the
// service, and a plausible sysDescr is extracted when one is present.
type SNMP struct{}

// NewSNMP returns a new SNMP probe
func NewSNMP() *SNMP {
	return &SNMP{}
}

func (p *SNMP) Name() string {
	return "SNMP"
}

func (p *SNMP) Build() []byte {
	packet := make([]byte, len(snmpGetRequest))
	copy(packet, snmpGetRequest)

	return packet
}

func (p *SNMP) Parse(response []byte) Details {
	if len(response) < 10 {
		return nil
	}

	return safeParse("SNMP", func() Details {
		// every SNMP message starts with a SEQUENCE
		if response[0] != 0x30 {
			return nil
		}

		result := Details{
			"protocol": "SNMP",
		}

		// community string follows the version integer
		idx := 2

		if idx < len(response) && response[idx] == 0x02 {
			idx += int(response[idx+1]) + 2

			if idx+1 < len(response) && response[idx] == snmpTagOctetString {
				commLen := int(response[idx+1])

				if idx+2+commLen <= len(response) {
					result["community"] = string(response[idx+2 : idx+2+commLen])
				}
			}
		}

		for i := 0; i < len(response)-1; i++ {
			if response[i] == snmpTagGetResponse {
				result["response_type"] = "GetResponse"
				break
			}

			if response[i] == snmpTagReport {
				result["response_type"] = "Report"
				break
			}
		}

		if system := extractSystemDescription(response); system != "" {
			result["system"] = system
		}

		return result
	})
}

// extractSystemDescription scans for OCTET STRING values whose text looks
// like a system description
func extractSystemDescription(response []byte) string {
	for i := 0; i < len(response)-10; i++ {
		if response[i] != snmpTagOctetString {
			continue
		}

		strLen := int(response[i+1])

		if strLen <= 5 || i+2+strLen > len(response) {
			continue
		}

		decoded := string(response[i+2 : i+2+strLen])

		if !isPrintableText([]byte(decoded)) {
			continue
		}

		for _, hint := range snmpSystemHints {
			if strings.Contains(decoded, hint) {
				return decoded
			}
		}
	}

	return ""
}
