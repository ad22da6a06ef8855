// Package network enumerates local non-loopback interfaces, used by the
// validation layer to confirm a configured gateway interface actually exists.
package network

import (
	"fmt"
	"net"
)

// NonLoopbackIPv4Interfaces returns the names of all up, non-loopback
// interfaces carrying at least one IPv4 address.
func NonLoopbackIPv4Interfaces() ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list network interfaces: %w", err)
	}

	var names []string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip != nil && ip.To4() != nil {
				names = append(names, iface.Name)
				break
			}
		}
	}
	return names, nil
}

// HasInterface reports whether name matches one of the host's non-loopback
// IPv4-carrying interfaces.
func HasInterface(name string) bool {
	names, err := NonLoopbackIPv4Interfaces()
	if err != nil {
		return false
	}
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
