// Package urlparser decomposes URL-like strings into protocol, www marker,
// subdomain, domain, public suffix, path, fragment, and query.
//
// Parsing is a two-stage pipeline. The public suffix of the host is resolved
// first by [psl.Set.Resolve], then [Parse] extracts every field anchored on
// that suffix. Input is never rejected for not being a valid URL. Only a host
// that cannot be split around a known public suffix fails.
package urlparser

import "strings"

// ParsedURL holds the components of a parsed URL.
// Nil pointers mark absent components.
//
// A ParsedURL is never modified after [Parse] returns it,
// so it may be shared between goroutines.
type ParsedURL struct {
	// Protocol is the scheme before "://".
	Protocol *string `json:"protocol"`

	// WWW is "www" if the host starts with a www label.
	WWW *string `json:"www"`

	// SubDomain is the dot-joined labels between the www marker and Domain.
	SubDomain *string `json:"subDomain"`

	// Domain is the label immediately left of TopDomain.
	Domain string `json:"domain"`

	// TopDomain is the public suffix.
	TopDomain string `json:"topDomain"`

	// Path is everything from the first '/' after the host up to '#' or '?'.
	Path *string `json:"path"`

	// Dir is the leading part of Path up to and including its last '/'.
	Dir *string `json:"dir"`

	// File is the part of Path after its last '/'.
	File *string `json:"file"`

	// Fragment is the text after '#'. A following '?' starts the query.
	Fragment *string `json:"fragment"`

	// Query maps query keys to values. A key without '=' maps to nil.
	Query map[string]*string `json:"query"`
}

// BaseURL returns "protocol://[www.][subdomain.]domain.topdomain".
// The protocol defaults to "http".
func (p *ParsedURL) BaseURL() string {
	protocol := "http"
	if p.Protocol != nil {
		protocol = *p.Protocol
	}

	var b strings.Builder
	b.WriteString(protocol)
	b.WriteString("://")
	if p.WWW != nil {
		b.WriteString("www.")
	}
	if p.SubDomain != nil && *p.SubDomain != "www." {
		b.WriteString(*p.SubDomain)
		b.WriteByte('.')
	}
	b.WriteString(p.Domain)
	b.WriteByte('.')
	b.WriteString(p.TopDomain)
	return b.String()
}

// Map returns the components keyed by their legacy names:
// protocol, www, sub_domain, domain, top_domain, path, dir, file, fragment, query.
// Absent components map to nil. Present ones map to a string,
// except query, which maps to a map[string]*string.
func (p *ParsedURL) Map() map[string]any {
	m := map[string]any{
		"protocol":   optional(p.Protocol),
		"www":        optional(p.WWW),
		"sub_domain": optional(p.SubDomain),
		"domain":     p.Domain,
		"top_domain": p.TopDomain,
		"path":       optional(p.Path),
		"dir":        optional(p.Dir),
		"file":       optional(p.File),
		"fragment":   optional(p.Fragment),
		"query":      nil,
	}
	if p.Query != nil {
		m["query"] = p.Query
	}
	return m
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
