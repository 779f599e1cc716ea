package urlparser

import (
	"sync"

	"github.com/database64128/urlparse-go/psl"
	"go.uber.org/zap"
)

// Parser resolves public suffixes with a [psl.Set] and parses URLs around them.
//
// Parser is safe for concurrent use.
type Parser struct {
	set            *psl.Set
	logger         *zap.Logger
	deprecatedOnce sync.Once
}

// NewParser returns a parser that resolves public suffixes with set.
// A nil logger discards log output.
func NewParser(set *psl.Set, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		set:    set,
		logger: logger,
	}
}

// Set returns the public suffix set used by the parser.
func (p *Parser) Set() *psl.Set {
	return p.set
}

// Parse resolves the public suffix of url's host and parses url around it.
//
// The returned error wraps [psl.ErrNoSuffixMatch], [psl.ErrMalformedHost], or [ErrUnparseable].
func (p *Parser) Parse(url string) (*ParsedURL, error) {
	_, topDomain, err := p.set.Resolve(url)
	if err != nil {
		return nil, err
	}
	return Parse(url, topDomain)
}

// BaseURL parses url and returns its base URL.
// See [ParsedURL.BaseURL].
func (p *Parser) BaseURL(url string) (string, error) {
	pu, err := p.Parse(url)
	if err != nil {
		return "", err
	}
	return pu.BaseURL(), nil
}

// ParseMap parses url and returns its components as a map.
//
// Deprecated: Use [Parser.Parse] and [ParsedURL.Map].
func (p *Parser) ParseMap(url string) (map[string]any, error) {
	p.deprecatedOnce.Do(func() {
		p.logger.Warn("ParseMap is deprecated, use Parse and ParsedURL.Map instead")
	})
	pu, err := p.Parse(url)
	if err != nil {
		return nil, err
	}
	return pu.Map(), nil
}
