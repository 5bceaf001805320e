// Package urlutil implements the narrow URL grammar spec §6 describes for
// the HTTP collaborator: "scheme://host[:port][/path][?query][#fragment]".
// It is built directly against that grammar rather than on top of the
// standard library's net/url, because net/url accepts a much broader
// grammar (relative references, opaque URIs, userinfo) than this
// component's contract allows and doesn't expose the "missing scheme is
// an error" and "round-trips byte-for-byte through Format" requirements
// as first-class behavior — no third-party library in the example pack
// offers that narrower contract either, so this one stdlib-only leaf is
// justified directly against the grammar.
package urlutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/columndb/columndb/internal/dberr"
)

// URL is a parsed "scheme://host[:port][/path][?query][#fragment]"
// reference. Port is -1 when not specified.
type URL struct {
	Scheme   string
	Host     string
	Port     int
	Path     string
	Query    string
	Fragment string
}

// Parse parses s per the grammar in spec §6. A missing scheme is
// InvalidInput; an out-of-range port is InvalidInput (spec: "port must
// fit in 16 bits").
func Parse(s string) (URL, error) {
	schemeIdx := strings.Index(s, "://")
	if schemeIdx <= 0 {
		return URL{}, fmt.Errorf("missing scheme in %q: %w", s, dberr.InvalidInput)
	}
	u := URL{Scheme: s[:schemeIdx], Port: -1, Path: "/"}
	rest := s[schemeIdx+len("://"):]

	if idx := strings.IndexByte(rest, '#'); idx != -1 {
		u.Fragment = rest[idx+1:]
		rest = rest[:idx]
	}
	if idx := strings.IndexByte(rest, '?'); idx != -1 {
		u.Query = rest[idx+1:]
		rest = rest[:idx]
	}
	if idx := strings.IndexByte(rest, '/'); idx != -1 {
		u.Path = rest[idx:]
		rest = rest[:idx]
	}

	hostPort := rest
	if idx := strings.LastIndexByte(hostPort, ':'); idx != -1 {
		portStr := hostPort[idx+1:]
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 0 || port > 65535 {
			return URL{}, fmt.Errorf("invalid port %q in %q: %w", portStr, s, dberr.InvalidInput)
		}
		u.Port = port
		u.Host = hostPort[:idx]
	} else {
		u.Host = hostPort
	}

	if u.Host == "" {
		return URL{}, fmt.Errorf("missing host in %q: %w", s, dberr.InvalidInput)
	}
	return u, nil
}

// Format renders u back into its canonical string form. For canonical
// input (explicit path, no empty "?" or "#", no leading-zero port),
// Format(Parse(s)) == s (spec §8's round-trip property); a URL without a
// path comes back with "/".
func (u URL) Format() string {
	var sb strings.Builder
	sb.WriteString(u.Scheme)
	sb.WriteString("://")
	sb.WriteString(u.Host)
	if u.Port >= 0 {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(u.Port))
	}
	sb.WriteString(u.Path)
	if u.Query != "" {
		sb.WriteByte('?')
		sb.WriteString(u.Query)
	}
	if u.Fragment != "" {
		sb.WriteByte('#')
		sb.WriteString(u.Fragment)
	}
	return sb.String()
}
