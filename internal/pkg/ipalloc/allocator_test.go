package ipalloc

import (
	"net/netip"
	"testing"
)

func TestNextFreeSlash30(t *testing.T) {
	prefix := netip.MustParsePrefix("192.168.10.0/30")

	addr, ok := NextFree(prefix, map[netip.Addr]struct{}{})
	if !ok || addr.String() != "192.168.10.1" {
		t.Errorf("NextFree(empty taken) = %v, %v, want 192.168.10.1, true", addr, ok)
	}

	taken := map[netip.Addr]struct{}{netip.MustParseAddr("192.168.10.1"): {}}
	addr, ok = NextFree(prefix, taken)
	if !ok || addr.String() != "192.168.10.2" {
		t.Errorf("NextFree(taken=.1) = %v, %v, want 192.168.10.2, true", addr, ok)
	}

	taken[netip.MustParseAddr("192.168.10.2")] = struct{}{}
	if _, ok := NextFree(prefix, taken); ok {
		t.Error("NextFree(taken=.1,.2) on a /30: want ok=false, got true")
	}
}

func TestNextFreeExhaustsSubnet(t *testing.T) {
	prefix := netip.MustParsePrefix("192.168.10.0/29")
	taken := map[netip.Addr]struct{}{}
	var got []string
	for {
		addr, ok := NextFree(prefix, taken)
		if !ok {
			break
		}
		got = append(got, addr.String())
		taken[addr] = struct{}{}
	}
	want := []string{
		"192.168.10.1", "192.168.10.2", "192.168.10.3",
		"192.168.10.4", "192.168.10.5", "192.168.10.6",
	}
	if len(got) != len(want) {
		t.Fatalf("allocated %d addresses, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("allocation[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
