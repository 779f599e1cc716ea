package psl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSuffixMatch is returned when no trailing label sequence of the host is a known public suffix.
	ErrNoSuffixMatch = errors.New("no public suffix matches host")

	// ErrMalformedHost is returned when the matched public suffix leaves no label for the domain.
	ErrMalformedHost = errors.New("no domain label left of public suffix")
)

// SplitHost splits url into its optional protocol, the host, and the remainder.
//
// The protocol is a leading run of word characters followed by "://".
// The host runs from the end of the protocol prefix to the first '/', '#', '?',
// or the end of url. The remainder starts at that delimiter.
func SplitHost(url string) (protocol, host, rest string) {
	host = url
	if i := strings.Index(url, "://"); i > 0 && isWord(url[:i]) {
		protocol = url[:i]
		host = url[i+3:]
	}
	if i := strings.IndexAny(host, "/#?"); i != -1 {
		host, rest = host[:i], host[i:]
	}
	return
}

func isWord(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return false
		}
	}
	return true
}

// Resolve finds the registrable domain label and the public suffix of url's host.
// See [Set.ResolveHost].
func (s *Set) Resolve(url string) (domain, topDomain string, err error) {
	_, host, _ := SplitHost(url)
	return s.ResolveHost(host)
}

// ResolveHost finds the longest trailing sequence of labels in host that is in the set,
// and returns it together with the label immediately to its left.
//
// Candidates are tested from the whole host down to the last label, so that
// "example.co.uk" resolves to "co.uk" even when "uk" is also in the set,
// and labels in the subdomain chain that look like suffixes never anchor the match.
func (s *Set) ResolveHost(host string) (domain, topDomain string, err error) {
	// Advancing past the leftmost remaining dot yields candidates in decreasing label count.
	for start := 0; ; {
		if _, ok := s.suffixes[host[start:]]; ok {
			if start == 0 {
				return "", "", fmt.Errorf("%w: %q", ErrMalformedHost, host)
			}
			left := host[:start-1]
			domain = left[strings.LastIndexByte(left, '.')+1:]
			if domain == "" {
				return "", "", fmt.Errorf("%w: %q", ErrMalformedHost, host)
			}
			return domain, host[start:], nil
		}

		i := strings.IndexByte(host[start:], '.')
		if i == -1 {
			return "", "", fmt.Errorf("%w: %q", ErrNoSuffixMatch, host)
		}
		start += i + 1
	}
}
