package probe

import "strings"

// Generic is the catch-all probe for simple trigger/response UDP services
// (discard, QOTD, chargen, and the ports where RADIUS/SIP are not separately
// decoded). It sends a single null byte and classifies whatever comes back.
type Generic struct{}

// NewGeneric returns a new generic probe
func NewGeneric() *Generic {
	return &Generic{}
}

func (p *Generic) Name() string {
	return "Chargen"
}

func (p *Generic) Build() []byte {
	return []byte{0x00}
}

func (p *Generic) Parse(response []byte) Details {
	if len(response) == 0 {
		return nil
	}

	result := Details{
		"protocol":      "UDP Service",
		"response_size": len(response),
	}

	if !isPrintableText(response) {
		// binary response
		if len(response) == 4 {
			result["service_type"] = "Time Protocol"
		} else {
			result["binary_response"] = true
		}

		return result
	}

	text := string(response)

	if len(text) > 100 {
		result["response"] = text[:100] + "..."
	} else {
		result["response"] = text
	}

	switch {
	case strings.Contains(text, "GMT") || strings.Contains(text, "UTC"):
		result["service_type"] = "Daytime"
	case len(text) > 200 && containsAll(text, "abcdefghij"):
		result["service_type"] = "Chargen"
	case strings.Contains(text, `"`) || strings.Contains(strings.ToLower(text), "quote"):
		result["service_type"] = "Quote of the Day"
	}

	return result
}

// containsAll reports whether text contains every character in chars
func containsAll(text string, chars string) bool {
	for _, c := range chars {
		if !strings.ContainsRune(text, c) {
			return false
		}
	}

	return true
}
