package probe

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// DNS record types the parser renders specially
const (
	dnsTypeA    = 1
	dnsTypeTXT  = 16
	dnsTypeAAAA = 28
)

// dnsResponseCodes maps the low 4 bits of the flags field to rcode names
var dnsResponseCodes = map[int]string{
	0: "NOERROR",
	1: "FORMERR",
	2: "SERVFAIL",
	3: "NXDOMAIN",
	4: "NOTIMP",
	5: "REFUSED",
}

// DNS probes DNS and mDNS servers (ports 53/5353). The default query asks
// for the version.bind TXT record in the CHAOS class, which many servers
// answer with their software version.
type DNS struct {
	domain    string
	queryType string
}

// NewDNS returns a DNS probe with the default version.bind TXT query
func NewDNS() *DNS {
	return NewDNSQuery("version.bind", "TXT")
}

// NewDNSQuery returns a DNS probe querying the given domain and record type
// (A, AAAA, or TXT)
func NewDNSQuery(domain, queryType string) *DNS {
	return &DNS{
		domain:    domain,
		queryType: strings.ToUpper(queryType),
	}
}

func (p *DNS) Name() string {
	return "DNS"
}

func (p *DNS) Build() []byte {
	header := make([]byte, 12)

	// random transaction id, standard query, one question
	txid := binary.BigEndian.Uint16(randomBytes(2))

	if txid == 0 {
		txid = 1
	}

	binary.BigEndian.PutUint16(header[0:2], txid)
	binary.BigEndian.PutUint16(header[2:4], 0x0100)
	binary.BigEndian.PutUint16(header[4:6], 1)

	qtype, qclass := p.queryTypeAndClass()

	question := encodeDomain(p.domain)
	question = append(question, 0, 0, 0, 0)
	binary.BigEndian.PutUint16(question[len(question)-4:], qtype)
	binary.BigEndian.PutUint16(question[len(question)-2:], qclass)

	return append(header, question...)
}

func (p *DNS) queryTypeAndClass() (uint16, uint16) {
	switch p.queryType {
	case "A":
		return dnsTypeA, 1
	case "AAAA":
		return dnsTypeAAAA, 1
	case "TXT":
		if p.domain == "version.bind" {
			// CHAOS class for server version queries
			return dnsTypeTXT, 3
		}
		return dnsTypeTXT, 1
	default:
		return dnsTypeA, 1
	}
}

// encodeDomain converts a dotted domain name to DNS wire format. Labels
// longer than 63 bytes are truncated rather than rejected since the probe
// must never fail to build.
func encodeDomain(domain string) []byte {
	if domain == "" {
		return []byte{0}
	}

	encoded := []byte{}

	for _, part := range strings.Split(domain, ".") {
		if len(part) > 63 {
			part = part[:63]
		}

		encoded = append(encoded, byte(len(part)))
		encoded = append(encoded, part...)
	}

	return append(encoded, 0)
}

func (p *DNS) Parse(response []byte) Details {
	if len(response) < 12 {
		return nil
	}

	return safeParse("DNS", func() Details {
		flags := binary.BigEndian.Uint16(response[2:4])
		questions := binary.BigEndian.Uint16(response[4:6])
		answers := binary.BigEndian.Uint16(response[6:8])

		// QR bit must be set for a valid response
		if (flags>>15)&1 == 0 {
			return nil
		}

		rcode := int(flags & 0xF)

		result := Details{
			"protocol":       "DNS",
			"response_code":  rcode,
			"answers":        int(answers),
			"questions":      int(questions),
			"queried_domain": p.domain,
			"query_type":     p.queryType,
		}

		name, ok := dnsResponseCodes[rcode]

		if !ok {
			name = "UNKNOWN"
		}

		result["response_code_name"] = name

		if answers > 0 && len(response) > 12 {
			if answerData := parseAnswers(response); len(answerData) > 0 {
				result["answer_data"] = answerData
			}
		}

		return result
	})
}

// skipName advances idx past a possibly compression-pointer-terminated name
func skipName(response []byte, idx int) int {
	for idx < len(response) && response[idx] != 0 {
		if response[idx]&0xC0 == 0xC0 {
			// compression pointer consumes two bytes and ends the name
			return idx + 2
		}

		idx += int(response[idx]) + 1
	}

	if idx < len(response) && response[idx] == 0 {
		idx++
	}

	return idx
}

// parseAnswers walks the answer section, collecting at most 10 records to
// bound work on malicious input
func parseAnswers(response []byte) []Details {
	answers := []Details{}

	idx := 12

	// skip the echoed question section
	questions := int(binary.BigEndian.Uint16(response[4:6]))

	for i := 0; i < questions; i++ {
		idx = skipName(response, idx)
		idx += 4 // type and class
	}

	answerCount := int(binary.BigEndian.Uint16(response[6:8]))

	if answerCount > 10 {
		answerCount = 10
	}

	for i := 0; i < answerCount; i++ {
		if idx >= len(response)-10 {
			break
		}

		idx = skipName(response, idx)

		if idx+10 > len(response) {
			break
		}

		rrType := binary.BigEndian.Uint16(response[idx : idx+2])
		rrClass := binary.BigEndian.Uint16(response[idx+2 : idx+4])
		ttl := binary.BigEndian.Uint32(response[idx+4 : idx+8])
		dataLen := int(binary.BigEndian.Uint16(response[idx+8 : idx+10]))
		idx += 10

		if idx+dataLen > len(response) {
			break
		}

		rdata := response[idx : idx+dataLen]
		idx += dataLen

		answer := Details{
			"type":  int(rrType),
			"class": int(rrClass),
			"ttl":   int64(ttl),
		}

		switch rrType {
		case dnsTypeA:
			if len(rdata) == 4 {
				answer["ip"] = fmt.Sprintf("%d.%d.%d.%d", rdata[0], rdata[1], rdata[2], rdata[3])
			}
		case dnsTypeAAAA:
			if len(rdata) == 16 {
				groups := make([]string, 8)
				for g := 0; g < 8; g++ {
					groups[g] = fmt.Sprintf("%02x%02x", rdata[g*2], rdata[g*2+1])
				}
				answer["ipv6"] = strings.Join(groups, ":")
			}
		case dnsTypeTXT:
			answer["txt"] = parseTXTData(rdata)
		default:
			answer["raw_data"] = hex.EncodeToString(rdata)
		}

		answers = append(answers, answer)
	}

	return answers
}

// parseTXTData splits rdata into its length-prefixed text segments
func parseTXTData(rdata []byte) []string {
	segments := []string{}

	i := 0

	for i < len(rdata) {
		segLen := int(rdata[i])

		if i+segLen+1 > len(rdata) {
			break
		}

		segments = append(segments, string(rdata[i+1:i+1+segLen]))
		i += segLen + 1
	}

	return segments
}
