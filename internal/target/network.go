package target

import (
	"errors"
	"fmt"
	"net"

	"github.com/jackpal/gateway"
)

// ipNetForIP finds the interface network containing ip
func ipNetForIP(ip net.IP) (*net.IPNet, error) {
	interfaces, err := net.Interfaces()

	if err != nil {
		return nil, err
	}

	for _, iface := range interfaces {
		addrs, err := iface.Addrs()

		if err != nil {
			continue
		}

		for _, addr := range addrs {
			_, ipnet, err := net.ParseCIDR(addr.String())

			if err != nil {
				continue
			}

			if ipnet.Contains(ip) {
				return ipnet, nil
			}
		}
	}

	return nil, errors.New("no interface network contains ip")
}

// LocalCIDR returns the CIDR block of this machine's preferred outbound
// interface, used as the default scan target when none is given
func LocalCIDR() (string, error) {
	gw, err := gateway.DiscoverGateway()

	if err != nil {
		return "", err
	}

	// udp doesn't make a full connection and will find the default ip
	// that traffic will use if say 2 are configured (wired and wireless)
	conn, err := net.Dial("udp", gw.String()+":80")

	if err != nil {
		return "", err
	}

	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)

	ipnet, err := ipNetForIP(localAddr.IP)

	if err != nil {
		return "", err
	}

	size, _ := ipnet.Mask.Size()

	return fmt.Sprintf("%s/%d", localAddr.IP.Mask(ipnet.Mask).String(), size), nil
}
