package probe

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// IKE payload types the parser recognizes across protocol versions
const (
	ikePayloadVendorIDV1 = 0x0d
	ikePayloadVendorIDV2 = 0x2b
	ikePayloadNotifyV1   = 0x0b
	ikePayloadNotifyV2   = 0x29
)

// ikeVendorPrefix pairs a byte-prefix fingerprint with a vendor name.
// Ordered so exact binary fingerprints are tried before ASCII fallbacks.
// Best-effort data, not a protocol guarantee; extend freely.
type ikeVendorPrefix struct {
	prefix []byte
	name   string
}

var ikeVendorFingerprints = []ikeVendorPrefix{
	{[]byte{0x12, 0xf5, 0xf2, 0x8c, 0x45, 0x71, 0x68, 0xa9}, "Cisco Unity"},
	{[]byte{0x1f, 0x07, 0xf7, 0x0e, 0xaa, 0x65, 0x14, 0xd3}, "Cisco IOS"},
	{[]byte{0x4a, 0x13, 0x1c, 0x81, 0x07, 0x03, 0x58, 0x45}, "Microsoft"},
	{[]byte{0x40, 0x48, 0xb7, 0xd5, 0x6e, 0xbc, 0xe8, 0x85}, "SonicWall"},
	{[]byte{0x90, 0xcb, 0x80, 0x91, 0x3e, 0xbb, 0x69, 0x6e}, "Windows"},
	{[]byte{0x4f, 0x45, 0x74, 0x79, 0x7a, 0x56, 0x66, 0x77}, "Fortinet FortiGate"},
	{[]byte{0x16, 0x6f, 0x93, 0x2d, 0x55, 0xeb, 0x64, 0xd8}, "Checkpoint"},
	{[]byte{0x62, 0x50, 0x27, 0x74, 0x9d, 0x5a, 0xb9, 0x7f}, "Juniper"},
	{[]byte("XAUTH"), "XAuth"},
	{[]byte("draft"), "Draft/RFC"},
	{[]byte("Cisco"), "Cisco"},
	{[]byte("Microsoft"), "Microsoft"},
	{[]byte("strongSwan"), "strongSwan"},
	{[]byte("openswan"), "Openswan"},
	{[]byte("Openswan"), "Openswan"},
	{[]byte("libreswan"), "Libreswan"},
	{[]byte("Shrew"), "Shrew Soft"},
	{[]byte("FreeS/WAN"), "FreeS/WAN"},
}

// ikeV1ExchangeTypes maps IKEv1 exchange type values to names
var ikeV1ExchangeTypes = map[byte]string{
	0:  "None",
	1:  "Base",
	2:  "Main Mode",
	3:  "Authentication Only",
	4:  "Aggressive Mode",
	5:  "Informational",
	32: "Quick Mode",
}

// ikeV2ExchangeTypes maps IKEv2 exchange type values to names
var ikeV2ExchangeTypes = map[byte]string{
	34: "IKE_SA_INIT",
	35: "IKE_AUTH",
	36: "CREATE_CHILD_SA",
	37: "INFORMATIONAL",
}

// IKE probes IKE/IPSec VPN gateways (ports 500/4500) with an IKEv1 Main
// Mode SA proposal followed by a vendor-ID payload. The single response is
// enough to fingerprint the gateway vendor; no SA is ever negotiated.
type IKE struct {
	initiatorCookie []byte
}

// NewIKE returns a new IKE probe
func NewIKE() *IKE {
	return &IKE{}
}

func (p *IKE) Name() string {
	return "IKE/IPSec VPN"
}

func (p *IKE) Build() []byte {
	p.initiatorCookie = randomBytes(8)

	// SA payload: DOI + situation + one proposal with one transform
	// proposing DES-CBC/MD5/PSK/DH-group-1, 28800s lifetime
	saPayload := []byte{
		ikePayloadVendorIDV1, 0x00, // next payload: vendor ID
		0x00, 0x34, // payload length 52
		0x00, 0x00, 0x00, 0x01, // DOI: IPSec
		0x00, 0x00, 0x00, 0x01, // situation: SIT_IDENTITY_ONLY
		0x00, 0x00, // proposal: no more proposals
		0x00, 0x28, // proposal length 40
		0x01, 0x01, 0x00, 0x01, // proposal 1, ISAKMP, no SPI, 1 transform
		0x00, 0x00, // transform: no more transforms
		0x00, 0x1c, // transform length 28
		0x01, 0x01, 0x00, 0x00, // transform 1, KEY_IKE
		0x80, 0x01, 0x00, 0x01, // encryption: DES-CBC
		0x80, 0x02, 0x00, 0x01, // hash: MD5
		0x80, 0x03, 0x00, 0x01, // auth: pre-shared key
		0x80, 0x04, 0x00, 0x01, // DH group 1
		0x80, 0x0b, 0x00, 0x01, // life type: seconds
		0x00, 0x0c, 0x00, 0x04, 0x00, 0x00, 0x70, 0x80, // life: 28800
	}

	// vendor ID payload: Cisco Unity
	vendorPayload := []byte{
		0x00, 0x00, // next payload: none
		0x00, 0x14, // payload length 20
		0x12, 0xf5, 0xf2, 0x8c, 0x45, 0x71, 0x68, 0xa9,
		0x70, 0x2d, 0x9f, 0xe2, 0x74, 0xcc, 0x01, 0x00,
	}

	totalLength := 28 + len(saPayload) + len(vendorPayload)

	header := make([]byte, 0, 28)
	header = append(header, p.initiatorCookie...)
	header = append(header, make([]byte, 8)...) // zero responder cookie
	header = append(header,
		0x01, // next payload: SA
		0x10, // version: IKEv1
		0x02, // exchange type: Main Mode
		0x00, // flags
	)
	header = append(header, 0x00, 0x00, 0x00, 0x00) // message id

	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(totalLength))
	header = append(header, length...)

	packet := append(header, saPayload...)

	return append(packet, vendorPayload...)
}

func (p *IKE) Parse(response []byte) Details {
	// 28 bytes is the minimum IKE header
	if len(response) < 28 {
		return nil
	}

	return safeParse("IKE", func() Details {
		responderCookie := response[8:16]
		nextPayload := response[16]
		version := response[17]
		exchangeType := response[18]
		length := binary.BigEndian.Uint32(response[24:28])

		majorVersion := (version >> 4) & 0x0F
		minorVersion := version & 0x0F

		result := Details{
			"protocol":         "IKE",
			"version":          fmt.Sprintf("IKEv%d.%d", majorVersion, minorVersion),
			"exchange_type":    ikeExchangeTypeName(exchangeType, majorVersion),
			"responder_cookie": hex.EncodeToString(responderCookie),
			"message_length":   int64(length),
		}

		vendorIDs := []string{}

		// walk the payload chain; each payload header carries the type of
		// the one that follows it
		offset := 28
		currentPayload := nextPayload

		for currentPayload != 0 && offset < len(response) {
			if offset+4 > len(response) {
				break
			}

			payloadNext := response[offset]
			payloadLength := int(binary.BigEndian.Uint16(response[offset+2 : offset+4]))

			if payloadLength < 4 || offset+payloadLength > len(response) {
				break
			}

			switch currentPayload {
			case ikePayloadVendorIDV1, ikePayloadVendorIDV2:
				vendorData := response[offset+4 : offset+payloadLength]

				if name := identifyIKEVendor(vendorData); name != "" {
					vendorIDs = append(vendorIDs, name)
				}
			case ikePayloadNotifyV1, ikePayloadNotifyV2:
				result["nat_traversal"] = true
			}

			offset += payloadLength
			currentPayload = payloadNext
		}

		result["vendor_ids"] = vendorIDs

		if len(vendorIDs) > 0 {
			shown := vendorIDs

			if len(shown) > 2 {
				shown = shown[:2]
			}

			result["service_type"] = fmt.Sprintf("VPN Server (%s)", strings.Join(shown, ", "))
		} else {
			result["service_type"] = "VPN Server (Generic IKE)"
		}

		return result
	})
}

// ikeExchangeTypeName resolves an exchange type value against the table for
// the negotiated major version
func ikeExchangeTypeName(exchangeType, majorVersion byte) string {
	table := ikeV2ExchangeTypes

	if majorVersion == 1 {
		table = ikeV1ExchangeTypes
	}

	if name, ok := table[exchangeType]; ok {
		return name
	}

	return fmt.Sprintf("Unknown (%d)", exchangeType)
}

// identifyIKEVendor matches vendor-ID payload data against the fingerprint
// table, first by byte prefix then by ASCII substring
func identifyIKEVendor(vendorData []byte) string {
	for _, fp := range ikeVendorFingerprints {
		if len(vendorData) >= len(fp.prefix) && string(vendorData[:len(fp.prefix)]) == string(fp.prefix) {
			return fp.name
		}
	}

	vendorStr := asciiString(vendorData)

	for _, fp := range ikeVendorFingerprints {
		if isASCIIPrefix(fp.prefix) && strings.Contains(vendorStr, string(fp.prefix)) {
			return fp.name
		}
	}

	return ""
}

// isASCIIPrefix reports whether a fingerprint prefix is printable ASCII and
// therefore usable for substring matching
func isASCIIPrefix(prefix []byte) bool {
	for _, c := range prefix {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}

	return true
}
