package probe_test

import (
	"encoding/binary"
	"testing"

	"github.com/lanehart/udpscout/internal/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDNSResponse assembles a synthetic response to the version.bind TXT
// CHAOS query, using a compression pointer for the answer name
func buildDNSResponse(rcode uint16, txtSegments []string) []byte {
	response := make([]byte, 12)

	binary.BigEndian.PutUint16(response[0:2], 0x1234)
	binary.BigEndian.PutUint16(response[2:4], 0x8400|rcode) // QR set, authoritative
	binary.BigEndian.PutUint16(response[4:6], 1)            // questions
	binary.BigEndian.PutUint16(response[6:8], 1)            // answers

	// echoed question: version.bind TXT CHAOS
	response = append(response, 7)
	response = append(response, "version"...)
	response = append(response, 4)
	response = append(response, "bind"...)
	response = append(response, 0)
	response = append(response, 0x00, 0x10, 0x00, 0x03)

	// answer name: pointer back to the question name
	response = append(response, 0xc0, 0x0c)
	response = append(response, 0x00, 0x10, 0x00, 0x03) // TXT, CHAOS
	response = append(response, 0x00, 0x00, 0x00, 0x00) // TTL

	rdata := []byte{}

	for _, seg := range txtSegments {
		rdata = append(rdata, byte(len(seg)))
		rdata = append(rdata, seg...)
	}

	dataLen := make([]byte, 2)
	binary.BigEndian.PutUint16(dataLen, uint16(len(rdata)))
	response = append(response, dataLen...)

	return append(response, rdata...)
}

func TestDNSProbe(t *testing.T) {
	t.Run("builds a version.bind TXT CHAOS query by default", func(st *testing.T) {
		p := probe.NewDNS()

		payload := p.Build()

		require.Greater(st, len(payload), 12)

		// standard query with one question
		assert.Equal(st, uint16(0x0100), binary.BigEndian.Uint16(payload[2:4]))
		assert.Equal(st, uint16(1), binary.BigEndian.Uint16(payload[4:6]))

		// question name is version.bind
		assert.Equal(st, byte(7), payload[12])
		assert.Equal(st, "version", string(payload[13:20]))
		assert.Equal(st, byte(4), payload[20])
		assert.Equal(st, "bind", string(payload[21:25]))

		// TXT type, CHAOS class
		qtype := binary.BigEndian.Uint16(payload[len(payload)-4 : len(payload)-2])
		qclass := binary.BigEndian.Uint16(payload[len(payload)-2:])
		assert.Equal(st, uint16(16), qtype)
		assert.Equal(st, uint16(3), qclass)
	})

	t.Run("uses IN class for regular queries", func(st *testing.T) {
		p := probe.NewDNSQuery("example.com", "A")

		payload := p.Build()

		qtype := binary.BigEndian.Uint16(payload[len(payload)-4 : len(payload)-2])
		qclass := binary.BigEndian.Uint16(payload[len(payload)-2:])
		assert.Equal(st, uint16(1), qtype)
		assert.Equal(st, uint16(1), qclass)
	})

	t.Run("parses a TXT answer with a compression pointer", func(st *testing.T) {
		p := probe.NewDNS()
		p.Build()

		details := p.Parse(buildDNSResponse(0, []string{"9.16.1"}))

		require.NotNil(st, details)
		assert.Equal(st, "DNS", details["protocol"])
		assert.Equal(st, "NOERROR", details["response_code_name"])
		assert.Equal(st, 1, details["answers"])

		answers, ok := details["answer_data"].([]probe.Details)

		require.True(st, ok)
		require.Len(st, answers, 1)
		assert.Equal(st, []string{"9.16.1"}, answers[0]["txt"])
	})

	t.Run("maps response codes", func(st *testing.T) {
		p := probe.NewDNS()
		p.Build()

		expected := map[uint16]string{
			0:  "NOERROR",
			1:  "FORMERR",
			2:  "SERVFAIL",
			3:  "NXDOMAIN",
			4:  "NOTIMP",
			5:  "REFUSED",
			11: "UNKNOWN",
		}

		for rcode, name := range expected {
			details := p.Parse(buildDNSResponse(rcode, nil))

			require.NotNil(st, details)
			assert.Equal(st, name, details["response_code_name"])
		}
	})

	t.Run("rejects responses without the QR bit", func(st *testing.T) {
		p := probe.NewDNS()

		query := p.Build()

		// a query is not a response
		assert.Nil(st, p.Parse(query))
	})

	t.Run("ignores truncated responses", func(st *testing.T) {
		p := probe.NewDNS()
		p.Build()

		assert.Nil(st, p.Parse([]byte{0x12, 0x34, 0x84}))
	})

	t.Run("survives a truncated answer section", func(st *testing.T) {
		p := probe.NewDNS()
		p.Build()

		response := buildDNSResponse(0, []string{"9.16.1"})
		details := p.Parse(response[:len(response)-4])

		// header fields still recoverable
		require.NotNil(st, details)
		assert.Equal(st, "NOERROR", details["response_code_name"])
	})
}
