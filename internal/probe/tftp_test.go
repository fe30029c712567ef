package probe_test

import (
	"testing"

	"github.com/lanehart/udpscout/internal/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTFTPProbe(t *testing.T) {
	p := probe.NewTFTP()

	t.Run("builds a read request", func(st *testing.T) {
		payload := p.Build()

		assert.Equal(st, []byte{0x00, 0x01}, payload[0:2])
		assert.Contains(st, string(payload), "test.txt")
		assert.Contains(st, string(payload), "octet")
		assert.Equal(st, byte(0x00), payload[len(payload)-1])
	})

	t.Run("parses a data packet", func(st *testing.T) {
		response := append([]byte{0x00, 0x03, 0x00, 0x01}, []byte("file contents")...)

		details := p.Parse(response)

		require.NotNil(st, details)
		assert.Equal(st, "TFTP", details["protocol"])
		assert.Equal(st, "DATA", details["response_type"])
		assert.Equal(st, 1, details["block"])
		assert.Equal(st, 13, details["data_size"])
	})

	t.Run("parses an error packet", func(st *testing.T) {
		response := append([]byte{0x00, 0x05, 0x00, 0x01}, []byte("File not found\x00")...)

		details := p.Parse(response)

		require.NotNil(st, details)
		assert.Equal(st, "ERROR", details["response_type"])
		assert.Equal(st, 1, details["error_code"])
		assert.Equal(st, "File not found", details["error_message"])
	})

	t.Run("reports unknown opcodes", func(st *testing.T) {
		details := p.Parse([]byte{0x00, 0x06, 0x00, 0x00})

		require.NotNil(st, details)
		assert.Equal(st, 6, details["opcode"])
	})

	t.Run("ignores short responses", func(st *testing.T) {
		assert.Nil(st, p.Parse([]byte{0x00, 0x03, 0x00}))
	})
}
