package probe

import (
	"encoding/hex"
	"strings"
)

var weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var timezones = []string{"GMT", "UTC", "EST", "PST", "CST", "MST"}

// Daytime probes the RFC 867 daytime service (port 13)
type Daytime struct{}

// NewDaytime returns a new daytime probe
func NewDaytime() *Daytime {
	return &Daytime{}
}

func (p *Daytime) Name() string {
	return "Daytime"
}

func (p *Daytime) Build() []byte {
	return []byte{0x00}
}

func (p *Daytime) Parse(response []byte) Details {
	if len(response) == 0 {
		return nil
	}

	result := Details{
		"protocol":      "RFC 867 Daytime",
		"response_size": len(response),
	}

	text := strings.TrimSpace(string(response))

	if !isPrintableText([]byte(text)) {
		// binary is unusual for daytime
		result["format"] = "binary"
		result["binary_data"] = hex.EncodeToString(response)

		return result
	}

	if text != "" {
		result["timestamp"] = text
		result["format"] = "human-readable"

		for _, day := range weekdays {
			if strings.Contains(text, day) {
				result["contains_weekday"] = true
				break
			}
		}

		for _, tz := range timezones {
			if strings.Contains(text, tz) {
				result["timezone_info"] = true
				break
			}
		}
	}

	return result
}
