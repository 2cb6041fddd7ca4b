package util

import (
	"fmt"
	"net"
)

// ParseSubnets turns whitelist entries into networks. An entry is either
// CIDR notation or a bare address, which becomes a single host network.
func ParseSubnets(entries []string) ([]*net.IPNet, error) {
	var subnets []*net.IPNet

	for _, entry := range entries {
		if _, block, err := net.ParseCIDR(entry); err == nil {
			subnets = append(subnets, block)
			continue
		}

		addr := net.ParseIP(entry)
		if addr == nil {
			return nil, fmt.Errorf("%q is neither an IP address nor a CIDR block", entry)
		}
		subnets = append(subnets, hostNetwork(addr))
	}
	return subnets, nil
}

// hostNetwork returns the /32 or /128 network holding only addr
func hostNetwork(addr net.IP) *net.IPNet {
	if v4 := addr.To4(); v4 != nil {
		return &net.IPNet{IP: v4, Mask: net.CIDRMask(32, 32)}
	}
	return &net.IPNet{IP: addr.To16(), Mask: net.CIDRMask(128, 128)}
}

//ContainsIP checks if any of the subnets contains ip
func ContainsIP(subnets []*net.IPNet, ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, block := range subnets {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}
