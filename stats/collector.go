// Package stats counts parse requests by endpoint and outcome.
package stats

import (
	"cmp"
	"errors"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/database64128/urlparse-go/psl"
	"github.com/database64128/urlparse-go/urlparser"
)

// Outcome is the result category of a parse request.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeNoSuffixMatch
	OutcomeMalformedHost
	OutcomeUnparseable
)

// OutcomeOf classifies the error returned by a parse operation.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, psl.ErrNoSuffixMatch):
		return OutcomeNoSuffixMatch
	case errors.Is(err, psl.ErrMalformedHost):
		return OutcomeMalformedHost
	case errors.Is(err, urlparser.ErrUnparseable):
		return OutcomeUnparseable
	default:
		return OutcomeUnparseable
	}
}

type countsCollector struct {
	requests      atomic.Uint64
	successes     atomic.Uint64
	noSuffixMatch atomic.Uint64
	malformedHost atomic.Uint64
	unparseable   atomic.Uint64
	cacheHits     atomic.Uint64
}

func (cc *countsCollector) collect(outcome Outcome, cacheHit bool) {
	cc.requests.Add(1)
	switch outcome {
	case OutcomeSuccess:
		cc.successes.Add(1)
	case OutcomeNoSuffixMatch:
		cc.noSuffixMatch.Add(1)
	case OutcomeMalformedHost:
		cc.malformedHost.Add(1)
	default:
		cc.unparseable.Add(1)
	}
	if cacheHit {
		cc.cacheHits.Add(1)
	}
}

// Counts stores request counters.
type Counts struct {
	Requests      uint64 `json:"requests"`
	Successes     uint64 `json:"successes"`
	NoSuffixMatch uint64 `json:"noSuffixMatch"`
	MalformedHost uint64 `json:"malformedHost"`
	Unparseable   uint64 `json:"unparseable"`
	CacheHits     uint64 `json:"cacheHits"`
}

// Add adds the counters in u to c.
func (c *Counts) Add(u Counts) {
	c.Requests += u.Requests
	c.Successes += u.Successes
	c.NoSuffixMatch += u.NoSuffixMatch
	c.MalformedHost += u.MalformedHost
	c.Unparseable += u.Unparseable
	c.CacheHits += u.CacheHits
}

// Failures returns the number of failed requests.
func (c Counts) Failures() uint64 {
	return c.NoSuffixMatch + c.MalformedHost + c.Unparseable
}

func (cc *countsCollector) snapshot() Counts {
	return Counts{
		Requests:      cc.requests.Load(),
		Successes:     cc.successes.Load(),
		NoSuffixMatch: cc.noSuffixMatch.Load(),
		MalformedHost: cc.malformedHost.Load(),
		Unparseable:   cc.unparseable.Load(),
		CacheHits:     cc.cacheHits.Load(),
	}
}

func (cc *countsCollector) snapshotAndReset() Counts {
	return Counts{
		Requests:      cc.requests.Swap(0),
		Successes:     cc.successes.Swap(0),
		NoSuffixMatch: cc.noSuffixMatch.Swap(0),
		MalformedHost: cc.malformedHost.Swap(0),
		Unparseable:   cc.unparseable.Swap(0),
		CacheHits:     cc.cacheHits.Swap(0),
	}
}

// Endpoint stores the counters of one endpoint.
type Endpoint struct {
	Name string `json:"endpoint"`
	Counts
}

// Compare is useful for sorting endpoints by name.
func (e Endpoint) Compare(other Endpoint) int {
	return cmp.Compare(e.Name, other.Name)
}

// Server stores the server's request counters,
// totaled and broken down by endpoint.
type Server struct {
	Counts
	Endpoints []Endpoint `json:"endpoints,omitempty"`
}

type serverCollector struct {
	ccs map[string]*countsCollector
	mu  sync.RWMutex
}

// NewServerCollector returns a new collector for collecting server request counters.
func NewServerCollector() Collector {
	return &serverCollector{
		ccs: make(map[string]*countsCollector),
	}
}

func (sc *serverCollector) countsCollector(endpoint string) *countsCollector {
	sc.mu.RLock()
	cc := sc.ccs[endpoint]
	sc.mu.RUnlock()
	if cc == nil {
		sc.mu.Lock()
		cc = sc.ccs[endpoint]
		if cc == nil {
			cc = &countsCollector{}
			sc.ccs[endpoint] = cc
		}
		sc.mu.Unlock()
	}
	return cc
}

// CollectRequest implements the Collector CollectRequest method.
func (sc *serverCollector) CollectRequest(endpoint string, outcome Outcome, cacheHit bool) {
	sc.countsCollector(endpoint).collect(outcome, cacheHit)
}

func (sc *serverCollector) snapshotFunc(snapshot func(*countsCollector) Counts) (s Server) {
	sc.mu.RLock()
	s.Endpoints = make([]Endpoint, 0, len(sc.ccs))
	for name, cc := range sc.ccs {
		e := Endpoint{Name: name, Counts: snapshot(cc)}
		s.Counts.Add(e.Counts)
		s.Endpoints = append(s.Endpoints, e)
	}
	sc.mu.RUnlock()
	slices.SortFunc(s.Endpoints, Endpoint.Compare)
	return
}

// Snapshot implements the Collector Snapshot method.
func (sc *serverCollector) Snapshot() Server {
	return sc.snapshotFunc((*countsCollector).snapshot)
}

// SnapshotAndReset implements the Collector SnapshotAndReset method.
func (sc *serverCollector) SnapshotAndReset() Server {
	return sc.snapshotFunc((*countsCollector).snapshotAndReset)
}

// Collector collects request counters.
type Collector interface {
	// CollectRequest counts one request to the endpoint.
	CollectRequest(endpoint string, outcome Outcome, cacheHit bool)

	// Snapshot returns the server's request counters.
	Snapshot() Server

	// SnapshotAndReset returns the server's request counters and resets them.
	SnapshotAndReset() Server
}

// NoopCollector is a no-op collector.
// Its collect method does nothing and its snapshot methods return empty counters.
type NoopCollector struct{}

// CollectRequest implements the Collector CollectRequest method.
func (NoopCollector) CollectRequest(endpoint string, outcome Outcome, cacheHit bool) {}

// Snapshot implements the Collector Snapshot method.
func (NoopCollector) Snapshot() Server {
	return Server{}
}

// SnapshotAndReset implements the Collector SnapshotAndReset method.
func (NoopCollector) SnapshotAndReset() Server {
	return Server{}
}

// Config stores configuration for the stats collector.
type Config struct {
	Enabled bool `json:"enabled"`
}

// Collector returns a new stats collector from the config.
func (c Config) Collector() Collector {
	if c.Enabled {
		return NewServerCollector()
	}
	return NoopCollector{}
}
