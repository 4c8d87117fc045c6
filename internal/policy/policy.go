// Package policy validates caller-supplied RCON destinations so the
// dashboard cannot be used as a probe against internal infrastructure.
package policy

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mcraftr/craftd/internal/rcon"
)

var ipv4Re = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})\.(\d{1,3})\.(\d{1,3})$`)

// IsBlockedHost reports whether host is a literal that routes to loopback,
// private, link-local, CGNAT, or otherwise internal address space.
//
// The check is literal-only and does not resolve DNS, so a hostname can
// still resolve to a blocked range at connection time (DNS rebinding).
// Treat this as defense in depth, not a complete guarantee.
func IsBlockedHost(host string) bool {
	h := strings.ToLower(strings.TrimSpace(host))

	// Docker host alias and bare loopback names
	if h == "host.docker.internal" || h == "localhost" || h == "localhost." {
		return true
	}

	// Strip brackets from IPv6 literals, e.g. [::1] -> ::1
	if strings.HasPrefix(h, "[") && strings.HasSuffix(h, "]") {
		h = h[1 : len(h)-1]
	}

	// IPv6 special addresses
	switch {
	case h == "::" || h == "::1": // any-address / loopback
		return true
	case strings.HasPrefix(h, "::ffff:"): // IPv4-mapped
		return true
	case strings.HasPrefix(h, "fe80"): // fe80::/10 link-local
		return true
	case strings.HasPrefix(h, "fc"), strings.HasPrefix(h, "fd"): // fc00::/7 ULA
		return true
	}

	// IPv4 dotted-decimal
	m := ipv4Re.FindStringSubmatch(h)
	if m == nil {
		return false
	}

	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])

	switch {
	case a == 0: // 0.0.0.0/8 any-address
		return true
	case a == 127: // loopback
		return true
	case a == 10: // 10.0.0.0/8
		return true
	case a == 172 && b >= 16 && b <= 31: // 172.16.0.0/12
		return true
	case a == 192 && b == 168: // 192.168.0.0/16
		return true
	case a == 169 && b == 254: // 169.254.0.0/16 link-local
		return true
	case a == 100 && b >= 64 && b <= 127: // 100.64.0.0/10 CGNAT / VPN mesh
		return true
	}

	return false
}

// ParsePort parses a port string, falling back to the RCON default when the
// value is absent or outside [1, 65535]. A bad port never fails the request.
func ParsePort(raw string) uint16 {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > 65535 {
		return rcon.DefaultPort
	}

	return uint16(n)
}
