package psl

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const testListText = `// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0.

// ===BEGIN ICANN DOMAINS===

com
no
nogo.no
uk
co.uk
*.ck
!www.ck
   
// ===END ICANN DOMAINS===
// ===BEGIN PRIVATE DOMAINS===
github.io
// ===END PRIVATE DOMAINS===
`

func mustSetFromText(t *testing.T, text string, opts ParseOptions) *Set {
	t.Helper()
	s, err := FromText(text, opts)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func testContains(t *testing.T, s *Set, suffixes []string, want bool) {
	t.Helper()
	for _, suffix := range suffixes {
		if got := s.Contains(suffix); got != want {
			t.Errorf("s.Contains(%q) = %v, want %v", suffix, got, want)
		}
	}
}

func TestFromText(t *testing.T) {
	s := mustSetFromText(t, testListText, ParseOptions{})
	if s.Len() != 8 {
		t.Errorf("s.Len() = %d, want 8", s.Len())
	}
	testContains(t, s, []string{"com", "no", "nogo.no", "uk", "co.uk", "*.ck", "!www.ck", "github.io"}, true)
	testContains(t, s, []string{"", "ck", "www.ck", "io", "// ===BEGIN ICANN DOMAINS==="}, false)
}

func TestFromTextICANNOnly(t *testing.T) {
	s := mustSetFromText(t, testListText, ParseOptions{ICANNOnly: true})
	if s.Len() != 7 {
		t.Errorf("s.Len() = %d, want 7", s.Len())
	}
	testContains(t, s, []string{"com", "co.uk"}, true)
	testContains(t, s, []string{"github.io"}, false)
}

func TestFromTextCRLF(t *testing.T) {
	s := mustSetFromText(t, "// comment\r\ncom\r\n\r\nco.uk\r\n", ParseOptions{})
	testContains(t, s, []string{"com", "co.uk"}, true)
	testContains(t, s, []string{"com\r", "co.uk\r"}, false)
}

func TestFromTextEmpty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "// only a comment\n"} {
		if _, err := FromText(text, ParseOptions{}); !errors.Is(err, errEmptyList) {
			t.Errorf("FromText(%q) error = %v, want %v", text, err, errEmptyList)
		}
	}
}

func TestFromTextBadCapacityHint(t *testing.T) {
	if _, err := FromText(capacityHintPrefix+"lots\ncom\n", ParseOptions{}); err == nil {
		t.Error("FromText with bad capacity hint succeeded")
	}
}

func TestWriteTextRoundTrip(t *testing.T) {
	s := mustSetFromText(t, testListText, ParseOptions{})

	var buf bytes.Buffer
	if err := s.WriteText(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), capacityHintPrefix+"8\n") {
		t.Errorf("WriteText output does not start with capacity hint: %q", buf.String())
	}

	rs := mustSetFromText(t, buf.String(), ParseOptions{})
	if rs.Fingerprint() != s.Fingerprint() {
		t.Errorf("fingerprint after text round trip = %s, want %s", rs.FingerprintString(), s.FingerprintString())
	}
}

func TestWriteGobRoundTrip(t *testing.T) {
	s := mustSetFromText(t, testListText, ParseOptions{})

	var buf bytes.Buffer
	if err := s.WriteGob(&buf); err != nil {
		t.Fatal(err)
	}
	rs, err := FromGob(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if rs.Fingerprint() != s.Fingerprint() {
		t.Errorf("fingerprint after gob round trip = %s, want %s", rs.FingerprintString(), s.FingerprintString())
	}
}

func TestFingerprint(t *testing.T) {
	a, err := NewSet("com", "co.uk")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSet("co.uk", "com", "com", "")
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewSet("com")
	if err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("sets with the same suffixes have different fingerprints")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("sets with different suffixes have the same fingerprint")
	}
	if len(a.FingerprintString()) != 64 {
		t.Errorf("len(a.FingerprintString()) = %d, want 64", len(a.FingerprintString()))
	}
}

func TestSplitHost(t *testing.T) {
	for _, c := range []struct {
		url      string
		protocol string
		host     string
		rest     string
	}{
		{"", "", "", ""},
		{"example.com", "", "example.com", ""},
		{"http://example.com", "http", "example.com", ""},
		{"ftp://a.b.example.com/dir/file.js?x=1#frag", "ftp", "a.b.example.com", "/dir/file.js?x=1#frag"},
		{"example.com#frag", "", "example.com", "#frag"},
		{"example.com?q=http://other.com", "", "example.com", "?q=http://other.com"},
		{"example.com/redirect?to=http://other.com", "", "example.com", "/redirect?to=http://other.com"},
		{"git+ssh://example.com", "", "git+ssh:", "//example.com"},
		{"://example.com", "", ":", "//example.com"},
	} {
		protocol, host, rest := SplitHost(c.url)
		if protocol != c.protocol || host != c.host || rest != c.rest {
			t.Errorf("SplitHost(%q) = %q, %q, %q; want %q, %q, %q", c.url, protocol, host, rest, c.protocol, c.host, c.rest)
		}
	}
}

func TestResolve(t *testing.T) {
	s := mustSetFromText(t, testListText, ParseOptions{})

	for _, c := range []struct {
		url       string
		domain    string
		topDomain string
	}{
		{"example.com", "example", "com"},
		{"www.example.com", "example", "com"},
		{"http://mysubdomain.example.co.uk", "example", "co.uk"},
		{"example.uk", "example", "uk"},
		{"test.com.hello.nogo.no", "hello", "nogo.no"},
		{"http://a.b.example.com/dir1/dir2/file.js?x=1&y=2#frag", "example", "com"},
		{"http://www..example.com", "example", "com"},
		{"user.github.io/repo", "user", "github.io"},
		{"foo.*.ck", "foo", "*.ck"},
	} {
		domain, topDomain, err := s.Resolve(c.url)
		if err != nil {
			t.Errorf("s.Resolve(%q) error = %v", c.url, err)
			continue
		}
		if domain != c.domain || topDomain != c.topDomain {
			t.Errorf("s.Resolve(%q) = %q, %q; want %q, %q", c.url, domain, topDomain, c.domain, c.topDomain)
		}
	}
}

func TestResolveLongestMatch(t *testing.T) {
	for _, c := range []struct {
		suffixes  []string
		host      string
		domain    string
		topDomain string
	}{
		{[]string{"no"}, "test.com.hello.nogo.no", "nogo", "no"},
		{[]string{"no", "com"}, "test.com.hello.nogo.no", "nogo", "no"},
		{[]string{"no", "nogo.no"}, "test.com.hello.nogo.no", "hello", "nogo.no"},
		{[]string{"uk", "co.uk"}, "example.co.uk", "example", "co.uk"},
		{[]string{"uk"}, "example.co.uk", "co", "uk"},
	} {
		s, err := NewSet(c.suffixes...)
		if err != nil {
			t.Fatal(err)
		}
		domain, topDomain, err := s.ResolveHost(c.host)
		if err != nil {
			t.Errorf("ResolveHost(%q) with %v error = %v", c.host, c.suffixes, err)
			continue
		}
		if domain != c.domain || topDomain != c.topDomain {
			t.Errorf("ResolveHost(%q) with %v = %q, %q; want %q, %q", c.host, c.suffixes, domain, topDomain, c.domain, c.topDomain)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	s := mustSetFromText(t, testListText, ParseOptions{})

	for _, c := range []struct {
		url  string
		want error
	}{
		{"", ErrNoSuffixMatch},
		{"localhost", ErrNoSuffixMatch},
		{"example.org", ErrNoSuffixMatch},
		{"http://example.invalid/path", ErrNoSuffixMatch},
		{"example.com.", ErrNoSuffixMatch},
		{"192.0.2.1", ErrNoSuffixMatch},
		{"example.com:8080", ErrNoSuffixMatch},
		{"com", ErrMalformedHost},
		{"http://co.uk/", ErrMalformedHost},
		{".com", ErrMalformedHost},
		{"example..com", ErrMalformedHost},
	} {
		if _, _, err := s.Resolve(c.url); !errors.Is(err, c.want) {
			t.Errorf("s.Resolve(%q) error = %v, want %v", c.url, err, c.want)
		}
	}
}

func writeTestList(t *testing.T) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), DefaultPath)
	if err := os.WriteFile(name, []byte(testListText), 0644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestConfigSet(t *testing.T) {
	path := writeTestList(t)

	s, err := Config{Path: path}.Set()
	if err != nil {
		t.Fatal(err)
	}
	testContains(t, s, []string{"com", "co.uk", "github.io"}, true)

	s, err = Config{Path: path, Format: "text", ICANNOnly: true}.Set()
	if err != nil {
		t.Fatal(err)
	}
	testContains(t, s, []string{"github.io"}, false)

	gobPath := filepath.Join(t.TempDir(), "public_suffix_list.gob")
	f, err := os.Create(gobPath)
	if err != nil {
		t.Fatal(err)
	}
	err = s.WriteGob(f)
	f.Close()
	if err != nil {
		t.Fatal(err)
	}

	gs, err := Config{Path: gobPath, Format: "gob"}.Set()
	if err != nil {
		t.Fatal(err)
	}
	if gs.Fingerprint() != s.Fingerprint() {
		t.Errorf("gob set fingerprint = %s, want %s", gs.FingerprintString(), s.FingerprintString())
	}
}

func TestConfigSetErrors(t *testing.T) {
	path := writeTestList(t)

	for _, c := range []Config{
		{Path: filepath.Join(t.TempDir(), "missing.dat")},
		{Path: path, Format: "yaml"},
		{Path: path, Format: "gob"},
	} {
		if _, err := c.Set(); err == nil {
			t.Errorf("%+v.Set() succeeded, want error", c)
		}
	}
}

func TestLazy(t *testing.T) {
	l := NewLazy(Config{Path: writeTestList(t)}, nil)

	const n = 16
	sets := make([]*Set, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := l.Get()
			if err != nil {
				t.Error(err)
				return
			}
			sets[i] = s
		}()
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if sets[i] != sets[0] {
			t.Fatalf("Get returned different sets: %p and %p", sets[0], sets[i])
		}
	}
}

func TestLazyError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.dat")
	l := NewLazy(Config{Path: path}, nil)

	if _, err := l.Get(); err == nil {
		t.Fatal("Get succeeded before the list exists")
	}

	if err := os.WriteFile(path, []byte(testListText), 0644); err != nil {
		t.Fatal(err)
	}

	// The first result is cached, including failures.
	if _, err := l.Get(); err == nil {
		t.Error("Get succeeded after a cached failure")
	}
}
