package probe

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// secondsBetween1900And1970 converts RFC 868 / NTP 1900-epoch timestamps to
// the unix epoch
const secondsBetween1900And1970 = 2208988800

// TimeProtocol probes the RFC 868 time service (port 37), which answers any
// datagram with a 4-byte big-endian count of seconds since 1900-01-01.
type TimeProtocol struct{}

// NewTimeProtocol returns a new time protocol probe
func NewTimeProtocol() *TimeProtocol {
	return &TimeProtocol{}
}

func (p *TimeProtocol) Name() string {
	return "Time"
}

func (p *TimeProtocol) Build() []byte {
	return []byte{0x00}
}

func (p *TimeProtocol) Parse(response []byte) Details {
	if len(response) == 0 {
		return nil
	}

	result := Details{
		"protocol":      "RFC 868 Time",
		"response_size": len(response),
	}

	if len(response) != 4 {
		// some implementations answer with text instead
		result["format"] = fmt.Sprintf("non-standard (%d bytes)", len(response))
		result["raw_data"] = hex.EncodeToString(response)

		text := strings.TrimSpace(string(response))

		if text != "" && isPrintableText([]byte(text)) {
			result["text_content"] = text
			result["possible_text_format"] = true
		}

		return result
	}

	timestamp := binary.BigEndian.Uint32(response)
	unixTimestamp := int64(timestamp) - secondsBetween1900And1970

	result["timestamp_1900"] = timestamp

	if unixTimestamp > 0 {
		result["timestamp_unix"] = unixTimestamp
		result["datetime"] = time.Unix(unixTimestamp, 0).UTC().Format("2006-01-02 15:04:05 UTC")
		result["format"] = "RFC 868 binary"
	} else {
		result["format"] = "RFC 868 binary (invalid)"
	}

	return result
}
