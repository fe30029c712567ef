package probe_test

import (
	"encoding/binary"
	"testing"

	"github.com/lanehart/udpscout/internal/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildIKEResponse assembles a synthetic IKE response carrying the given
// payload chain. Each payload is {type, next, data}.
type ikePayload struct {
	payloadType byte
	data        []byte
}

func buildIKEResponse(version, exchangeType byte, payloads ...ikePayload) []byte {
	body := []byte{}

	for i, pl := range payloads {
		next := byte(0)

		if i+1 < len(payloads) {
			next = payloads[i+1].payloadType
		}

		length := make([]byte, 2)
		binary.BigEndian.PutUint16(length, uint16(4+len(pl.data)))

		body = append(body, next, 0x00)
		body = append(body, length...)
		body = append(body, pl.data...)
	}

	header := make([]byte, 0, 28)
	header = append(header, make([]byte, 8)...)                                           // initiator cookie
	header = append(header, 0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0)               // responder cookie
	firstPayload := byte(0)

	if len(payloads) > 0 {
		firstPayload = payloads[0].payloadType
	}

	header = append(header, firstPayload, version, exchangeType, 0x00)
	header = append(header, make([]byte, 4)...) // message id

	total := make([]byte, 4)
	binary.BigEndian.PutUint32(total, uint32(28+len(body)))
	header = append(header, total...)

	return append(header, body...)
}

var ciscoUnityVendorID = []byte{
	0x12, 0xf5, 0xf2, 0x8c, 0x45, 0x71, 0x68, 0xa9,
	0x70, 0x2d, 0x9f, 0xe2, 0x74, 0xcc, 0x01, 0x00,
}

func TestIKEProbe(t *testing.T) {
	t.Run("builds a main mode SA proposal with a vendor ID", func(st *testing.T) {
		p := probe.NewIKE()

		payload := p.Build()

		require.Len(st, payload, 104)

		// zero responder cookie
		assert.Equal(st, make([]byte, 8), payload[8:16])

		// SA next payload, IKEv1, Main Mode
		assert.Equal(st, byte(0x01), payload[16])
		assert.Equal(st, byte(0x10), payload[17])
		assert.Equal(st, byte(0x02), payload[18])

		// declared length matches the packet
		assert.Equal(st, uint32(104), binary.BigEndian.Uint32(payload[24:28]))
	})

	t.Run("regenerates the initiator cookie on every build", func(st *testing.T) {
		p := probe.NewIKE()

		first := p.Build()
		second := p.Build()

		assert.NotEqual(st, first[0:8], second[0:8])
	})

	t.Run("identifies vendors by binary fingerprint", func(st *testing.T) {
		p := probe.NewIKE()
		p.Build()

		response := buildIKEResponse(0x10, 0x02, ikePayload{0x0d, ciscoUnityVendorID})

		details := p.Parse(response)

		require.NotNil(st, details)
		assert.Equal(st, "IKE", details["protocol"])
		assert.Equal(st, "IKEv1.0", details["version"])
		assert.Equal(st, "Main Mode", details["exchange_type"])
		assert.Equal(st, "123456789abcdef0", details["responder_cookie"])
		assert.Equal(st, []string{"Cisco Unity"}, details["vendor_ids"])
		assert.Equal(st, "VPN Server (Cisco Unity)", details["service_type"])
	})

	t.Run("identifies vendors by ASCII fallback", func(st *testing.T) {
		p := probe.NewIKE()
		p.Build()

		response := buildIKEResponse(0x10, 0x02, ikePayload{0x0d, []byte("a strongSwan build")})

		details := p.Parse(response)

		require.NotNil(st, details)
		assert.Equal(st, []string{"strongSwan"}, details["vendor_ids"])
	})

	t.Run("flags NAT traversal on notify payloads", func(st *testing.T) {
		p := probe.NewIKE()
		p.Build()

		response := buildIKEResponse(0x10, 0x02,
			ikePayload{0x0d, ciscoUnityVendorID},
			ikePayload{0x0b, []byte{0x00, 0x00, 0x00, 0x01}},
		)

		details := p.Parse(response)

		require.NotNil(st, details)
		assert.Equal(st, true, details["nat_traversal"])
		assert.Equal(st, []string{"Cisco Unity"}, details["vendor_ids"])
	})

	t.Run("names IKEv2 exchange types", func(st *testing.T) {
		p := probe.NewIKE()
		p.Build()

		response := buildIKEResponse(0x20, 34, ikePayload{0x2b, []byte("strongSwan 5.9.1")})

		details := p.Parse(response)

		require.NotNil(st, details)
		assert.Equal(st, "IKEv2.0", details["version"])
		assert.Equal(st, "IKE_SA_INIT", details["exchange_type"])
		assert.Equal(st, []string{"strongSwan"}, details["vendor_ids"])
	})

	t.Run("reports a generic VPN server without vendor IDs", func(st *testing.T) {
		p := probe.NewIKE()
		p.Build()

		response := buildIKEResponse(0x10, 0x05)

		details := p.Parse(response)

		require.NotNil(st, details)
		assert.Equal(st, "Informational", details["exchange_type"])
		assert.Equal(st, "VPN Server (Generic IKE)", details["service_type"])
	})

	t.Run("stops walking on an invalid payload length", func(st *testing.T) {
		p := probe.NewIKE()
		p.Build()

		response := buildIKEResponse(0x10, 0x02, ikePayload{0x0d, ciscoUnityVendorID})

		// corrupt the vendor payload length so it overruns the buffer
		binary.BigEndian.PutUint16(response[30:32], 0xffff)

		details := p.Parse(response)

		require.NotNil(st, details)
		assert.Empty(st, details["vendor_ids"])
	})

	t.Run("ignores short responses", func(st *testing.T) {
		p := probe.NewIKE()
		p.Build()

		assert.Nil(st, p.Parse(make([]byte, 27)))
	})
}
