package fetcher

import (
	"fmt"
	"net"
	"net/url"
)

// validateURL validates a feed URL before making an HTTP request. It blocks
// non-HTTP schemes and, when denyPrivateIPs is set, hostnames resolving to
// private, loopback, or link-local addresses (SSRF prevention — feed URLs
// come from the catalog today but also from operator configuration).
func validateURL(urlStr string, denyPrivateIPs bool) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return nil
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", ErrInvalidURL, hostname, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: hostname '%s' resolves to %s", ErrPrivateIP, hostname, ip.String())
		}
	}
	return nil
}

// isPrivateIP reports whether an IP is loopback, private, or link-local.
// Covers both IPv4 (127.0.0.0/8, RFC1918 ranges, 169.254.0.0/16) and IPv6
// (::1, fc00::/7, fe80::/10).
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}
