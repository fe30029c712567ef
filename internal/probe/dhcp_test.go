package probe_test

import (
	"encoding/binary"
	"testing"

	"github.com/lanehart/udpscout/internal/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDHCPOffer assembles a synthetic BOOTREPLY offering the given IP,
// echoing the transaction id from the built request
func buildDHCPOffer(request []byte, offeredIP [4]byte, msgType byte) []byte {
	response := make([]byte, 240)

	response[0] = 0x02 // BOOTREPLY
	response[1] = 0x01
	response[2] = 0x06

	copy(response[4:8], request[4:8])
	copy(response[16:20], offeredIP[:])

	binary.BigEndian.PutUint32(response[236:240], 0x63825363)

	// option 53 then end
	response = append(response, 0x35, 0x01, msgType)
	response = append(response, 0xff)

	return response
}

func TestDHCPProbe(t *testing.T) {
	t.Run("builds a discover request", func(st *testing.T) {
		p := probe.NewDHCP()

		payload := p.Build()

		require.GreaterOrEqual(st, len(payload), 240)

		// BOOTREQUEST over ethernet
		assert.Equal(st, byte(0x01), payload[0])
		assert.Equal(st, byte(0x01), payload[1])
		assert.Equal(st, byte(0x06), payload[2])

		// magic cookie then option 53 = DISCOVER
		assert.Equal(st, uint32(0x63825363), binary.BigEndian.Uint32(payload[236:240]))
		assert.Equal(st, []byte{0x35, 0x01, 0x01, 0xff}, payload[240:244])
	})

	t.Run("regenerates the transaction id on every build", func(st *testing.T) {
		p := probe.NewDHCP()

		first := p.Build()
		second := p.Build()

		assert.NotEqual(st, first[4:8], second[4:8])
	})

	t.Run("parses an offer", func(st *testing.T) {
		p := probe.NewDHCP()

		request := p.Build()
		details := p.Parse(buildDHCPOffer(request, [4]byte{10, 0, 0, 5}, 0x02))

		require.NotNil(st, details)
		assert.Equal(st, "DHCP", details["protocol"])
		assert.Equal(st, "Boot Reply", details["message_type"])
		assert.Equal(st, "OFFER", details["dhcp_type"])
		assert.Equal(st, "10.0.0.5", details["offered_ip"])
		assert.Equal(st, true, details["transaction_matched"])
	})

	t.Run("maps all message types", func(st *testing.T) {
		p := probe.NewDHCP()
		request := p.Build()

		expected := map[byte]string{
			1: "DISCOVER",
			2: "OFFER",
			5: "ACK",
			6: "NAK",
			9: "Type 9",
		}

		for msgType, name := range expected {
			details := p.Parse(buildDHCPOffer(request, [4]byte{10, 0, 0, 5}, msgType))

			require.NotNil(st, details)
			assert.Equal(st, name, details["dhcp_type"])
		}
	})

	t.Run("omits zero addresses", func(st *testing.T) {
		p := probe.NewDHCP()

		request := p.Build()
		details := p.Parse(buildDHCPOffer(request, [4]byte{0, 0, 0, 0}, 0x02))

		require.NotNil(st, details)
		assert.NotContains(st, details, "offered_ip")
		assert.NotContains(st, details, "server_ip")
	})

	t.Run("ignores short responses", func(st *testing.T) {
		p := probe.NewDHCP()
		p.Build()

		assert.Nil(st, p.Parse(make([]byte, 239)))
	})
}
