// Package psl implements a public suffix set and the suffix matcher that
// finds where the registrable domain of a host ends and its public suffix begins.
//
// Entries are matched literally. Wildcard ("*.ck") and exception ("!www.ck")
// rules of the public suffix list format are stored as-is and only match a
// host label that is literally "*" or "!www", not arbitrary subdomains.
package psl

import (
	"bufio"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"lukechampine.com/blake3"
)

const (
	commentPrefix         = "//"
	capacityHintPrefix    = "// urlparse-go suffix list capacity hint "
	capacityHintPrefixLen = len(capacityHintPrefix)
	icannBeginMarker      = "// ===BEGIN ICANN DOMAINS==="
	icannEndMarker        = "// ===END ICANN DOMAINS==="
)

var errEmptyList = errors.New("empty public suffix list")

// ParseOptions controls how a public suffix list is read.
type ParseOptions struct {
	// ICANNOnly keeps only the entries between the ICANN section markers,
	// dropping private domains such as "github.io".
	ICANNOnly bool
}

// Set is an immutable set of public suffixes.
//
// A Set is safe for concurrent use once constructed.
type Set struct {
	suffixes    map[string]struct{}
	fingerprint [32]byte
}

// NewSet returns a set containing the given suffixes.
// Empty strings are ignored.
func NewSet(suffixes ...string) (*Set, error) {
	m := make(map[string]struct{}, len(suffixes))
	for _, s := range suffixes {
		if s != "" {
			m[s] = struct{}{}
		}
	}
	return newSet(m)
}

func newSet(m map[string]struct{}) (*Set, error) {
	if len(m) == 0 {
		return nil, errEmptyList
	}
	s := &Set{suffixes: m}
	s.fingerprint = blake3.Sum256([]byte(strings.Join(s.Suffixes(), "\n")))
	return s, nil
}

// FromText parses a public suffix list in its text format.
//
// Each line holds one suffix. Lines starting with "//" are comments.
// Blank lines are skipped. Surrounding whitespace and line endings are trimmed.
//
// The returned set does not reference text, so text may be unmapped afterwards.
func FromText(text string, opts ParseOptions) (*Set, error) {
	var (
		line     string
		capacity int
		inICANN  bool
	)

	if strings.HasPrefix(text, capacityHintPrefix) {
		line, text = nextLine(text[capacityHintPrefixLen:])
		c, err := strconv.Atoi(line)
		if err != nil || c < 0 {
			return nil, fmt.Errorf("bad capacity hint: %q", line)
		}
		capacity = c
	}

	m := make(map[string]struct{}, capacity)

	for len(text) > 0 {
		line, text = nextLine(text)

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, icannBeginMarker):
			inICANN = true
			continue
		case strings.HasPrefix(line, icannEndMarker):
			inICANN = false
			continue
		case strings.HasPrefix(line, commentPrefix):
			continue
		case opts.ICANNOnly && !inICANN:
			continue
		}

		m[strings.Clone(line)] = struct{}{}
	}

	return newSet(m)
}

// nextLine returns the next line with surrounding whitespace trimmed, and the remaining text.
func nextLine(text string) (string, string) {
	lfIndex := strings.IndexByte(text, '\n')
	if lfIndex == -1 {
		return strings.TrimSpace(text), text[len(text):]
	}
	return strings.TrimSpace(text[:lfIndex]), text[lfIndex+1:]
}

// setGob is the set's gob serialization structure.
type setGob struct {
	Suffixes []string
}

// FromGob decodes a set written by [Set.WriteGob].
func FromGob(r io.Reader) (*Set, error) {
	var sg setGob
	if err := gob.NewDecoder(r).Decode(&sg); err != nil {
		return nil, err
	}
	return NewSet(sg.Suffixes...)
}

// WriteGob encodes the set in gob format.
func (s *Set) WriteGob(w io.Writer) error {
	return gob.NewEncoder(w).Encode(setGob{Suffixes: s.Suffixes()})
}

// WriteText writes the set in the text format, one sorted suffix per line,
// preceded by a capacity hint comment.
func (s *Set) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(capacityHintPrefix)
	bw.WriteString(strconv.Itoa(len(s.suffixes)))
	bw.WriteByte('\n')
	for _, suffix := range s.Suffixes() {
		bw.WriteString(suffix)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Contains returns whether suffix is in the set.
func (s *Set) Contains(suffix string) bool {
	_, ok := s.suffixes[suffix]
	return ok
}

// Len returns the number of suffixes in the set.
func (s *Set) Len() int {
	return len(s.suffixes)
}

// Suffixes returns the suffixes in sorted order.
func (s *Set) Suffixes() []string {
	suffixes := make([]string, 0, len(s.suffixes))
	for suffix := range s.suffixes {
		suffixes = append(suffixes, suffix)
	}
	slices.Sort(suffixes)
	return suffixes
}

// Fingerprint returns the BLAKE3-256 hash of the sorted suffixes joined by newlines.
// Two sets with the same contents have the same fingerprint.
func (s *Set) Fingerprint() [32]byte {
	return s.fingerprint
}

// FingerprintString returns the hex-encoded fingerprint.
func (s *Set) FingerprintString() string {
	return hex.EncodeToString(s.fingerprint[:])
}
