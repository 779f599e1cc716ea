package urlparser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/database64128/urlparse-go/psl"
)

// ErrUnparseable is returned when the host of a URL does not end with the given public suffix
// on a label boundary.
var ErrUnparseable = errors.New("host does not end with public suffix")

const www = "www"

// Parse extracts the components of url, given the public suffix of its host.
//
// topDomain is used verbatim and is not re-derived. It is normally the result
// of [psl.Set.Resolve] on the same url.
func Parse(url, topDomain string) (*ParsedURL, error) {
	protocol, host, rest := psl.SplitHost(url)

	if topDomain == "" || len(host) <= len(topDomain) || !strings.HasSuffix(host, topDomain) || host[len(host)-len(topDomain)-1] != '.' {
		return nil, fmt.Errorf("%w: %q does not end with %q", ErrUnparseable, url, topDomain)
	}

	p := ParsedURL{
		TopDomain: topDomain,
	}

	labels := host[:len(host)-len(topDomain)-1]
	if i := strings.LastIndexByte(labels, '.'); i != -1 {
		p.Domain, labels = labels[i+1:], labels[:i]
	} else {
		p.Domain, labels = labels, ""
	}
	if p.Domain == "" {
		return nil, fmt.Errorf("%w: %q", psl.ErrMalformedHost, url)
	}

	if protocol != "" {
		p.Protocol = &protocol
	}

	if labels == www || strings.HasPrefix(labels, www+".") {
		w := www
		p.WWW = &w
		labels = labels[len(www):]
	}
	if subDomain := strings.Trim(labels, "."); subDomain != "" {
		p.SubDomain = &subDomain
	}

	pathEnd := strings.IndexAny(rest, "#?")
	if pathEnd == -1 {
		pathEnd = len(rest)
	}
	if path := rest[:pathEnd]; path != "" {
		p.Path = &path
		lastSlash := strings.LastIndexByte(path, '/')
		if lastSlash > 0 {
			dir := path[:lastSlash+1]
			p.Dir = &dir
		}
		if file := path[lastSlash+1:]; file != "" {
			p.File = &file
		}
	}
	rest = rest[pathEnd:]

	if strings.HasPrefix(rest, "#") {
		fragment := rest[1:]
		rest = ""
		if i := strings.IndexByte(fragment, '?'); i != -1 {
			fragment, rest = fragment[:i], fragment[i:]
		}
		if fragment != "" {
			p.Fragment = &fragment
		}
	}

	if strings.HasPrefix(rest, "?") {
		query := rest[1:]
		if i := strings.IndexByte(query, '#'); i != -1 {
			if fragment := query[i+1:]; fragment != "" && p.Fragment == nil {
				p.Fragment = &fragment
			}
			query = query[:i]
		}
		p.Query = parseQuery(query)
	}

	return &p, nil
}

// parseQuery splits query on '&', then each group on its first '='.
// Empty groups are skipped. The last value of a duplicated key wins.
// It returns nil if no groups remain.
func parseQuery(query string) map[string]*string {
	var m map[string]*string
	for _, group := range strings.Split(query, "&") {
		if group == "" {
			continue
		}
		if m == nil {
			m = make(map[string]*string)
		}
		key, value, found := strings.Cut(group, "=")
		if !found {
			m[key] = nil
			continue
		}
		m[key] = &value
	}
	return m
}
