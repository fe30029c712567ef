package probe

// Echo probes the RFC 862 echo service (port 7). Each built payload carries
// a fresh random token so the response can be positively correlated with
// this probe's own request.
type Echo struct {
	token string
}

// NewEcho returns a new echo probe
func NewEcho() *Echo {
	return &Echo{}
}

func (p *Echo) Name() string {
	return "Echo"
}

// Build generates a new random 16 character test token
func (p *Echo) Build() []byte {
	p.token = randomToken(16)
	return []byte(p.token)
}

func (p *Echo) Parse(response []byte) Details {
	if len(response) == 0 {
		return nil
	}

	result := Details{
		"protocol":      "Echo",
		"response_size": len(response),
	}

	if !isPrintableText(response) {
		result["binary_response"] = true
		return result
	}

	text := string(response)

	if text == p.token {
		result["service_type"] = "Echo Service"
		result["echo_verified"] = true
	} else {
		if len(text) > 50 {
			text = text[:50] + "..."
		}
		result["response"] = text
		result["echo_verified"] = false
	}

	return result
}
