package probe

// registry maps well-known UDP port numbers to probe constructors. Several
// ports intentionally share the generic probe since those protocols are not
// separately decoded. Built once, never mutated.
var registry = map[int]func() Probe{
	7:    func() Probe { return NewEcho() },
	9:    func() Probe { return NewGeneric() }, // Discard
	13:   func() Probe { return NewDaytime() },
	17:   func() Probe { return NewGeneric() }, // QOTD
	19:   func() Probe { return NewGeneric() }, // Chargen
	37:   func() Probe { return NewTimeProtocol() },
	53:   func() Probe { return NewDNS() },
	67:   func() Probe { return NewDHCP() },
	68:   func() Probe { return NewDHCP() },
	69:   func() Probe { return NewTFTP() },
	123:  func() Probe { return NewNTP() },
	137:  func() Probe { return NewNetBIOS() },
	138:  func() Probe { return NewNetBIOS() },
	161:  func() Probe { return NewSNMP() },
	162:  func() Probe { return NewSNMP() },
	500:  func() Probe { return NewIKE() },
	514:  func() Probe { return NewSyslog() },
	1812: func() Probe { return NewGeneric() }, // RADIUS
	1813: func() Probe { return NewGeneric() }, // RADIUS accounting
	4500: func() Probe { return NewIKE() },     // IKE NAT-T
	5060: func() Probe { return NewGeneric() }, // SIP
	5353: func() Probe { return NewDNS() },     // mDNS
}

// commonPorts is the curated scan list used for "scan common ports" mode
var commonPorts = []int{
	7, 9, 13, 17, 19, 37, // legacy services
	53,         // DNS
	67, 68,     // DHCP
	69,         // TFTP
	123,        // NTP
	137, 138,   // NetBIOS
	161, 162,   // SNMP
	389,        // LDAP
	514,        // Syslog
	1812, 1813, // RADIUS
	5060, // SIP
	5353, // mDNS
}

// Lookup returns a fresh probe instance for the given port, or false when
// the port has no supported probe
func Lookup(port int) (Probe, bool) {
	constructor, ok := registry[port]

	if !ok {
		return nil, false
	}

	return constructor(), true
}

// CommonPorts returns the curated list of commonly probed UDP ports in
// ascending order. Callers receive a copy and may modify it freely.
func CommonPorts() []int {
	ports := make([]int, len(commonPorts))
	copy(ports, commonPorts)

	return ports
}
