// Package ip provides small net/netip helpers shared by the validation,
// allocation, and synthesis layers.
package ip

import "net/netip"

// NetworkAddr returns the network (base) address of prefix, e.g. 10.0.0.0/24 -> 10.0.0.0.
func NetworkAddr(prefix netip.Prefix) netip.Addr {
	return prefix.Masked().Addr()
}

// BroadcastAddr computes the last address of an IPv4 prefix (its broadcast address).
func BroadcastAddr(prefix netip.Prefix) netip.Addr {
	p := prefix.Masked()
	if !p.Addr().Is4() {
		return netip.Addr{}
	}
	base := p.Addr().As4()
	ones := p.Bits()
	hostBits := 32 - ones

	var n uint32
	n |= uint32(base[0]) << 24
	n |= uint32(base[1]) << 16
	n |= uint32(base[2]) << 8
	n |= uint32(base[3])

	if hostBits >= 32 {
		n |= ^uint32(0)
	} else if hostBits > 0 {
		n |= (uint32(1) << hostBits) - 1
	}

	return netip.AddrFrom4([4]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
}
