package psl

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/database64128/urlparse-go/mmap"
	"go.uber.org/zap"
)

// DefaultPath is the list file used when [Config.Path] is empty.
const DefaultPath = "public_suffix_list.dat"

// Config is the configuration for loading a public suffix set from a file.
type Config struct {
	// Path is the path to the list file.
	// If empty, [DefaultPath] is used.
	Path string `json:"path"`

	// Format is the file format: "text" (default) or "gob".
	Format string `json:"format"`

	// ICANNOnly keeps only the ICANN section of a text list.
	ICANNOnly bool `json:"icannOnly"`
}

// Set loads the set described by the configuration.
func (c Config) Set() (*Set, error) {
	path := c.Path
	if path == "" {
		path = DefaultPath
	}

	switch c.Format {
	case "text", "":
		data, err := mmap.ReadFile[string](path)
		if err != nil {
			return nil, fmt.Errorf("failed to load public suffix list %s: %w", path, err)
		}
		defer mmap.Unmap(data)

		s, err := FromText(data, ParseOptions{ICANNOnly: c.ICANNOnly})
		if err != nil {
			return nil, fmt.Errorf("failed to load public suffix list %s: %w", path, err)
		}
		return s, nil

	case "gob":
		data, err := mmap.ReadFile[[]byte](path)
		if err != nil {
			return nil, fmt.Errorf("failed to load public suffix list %s: %w", path, err)
		}
		defer mmap.Unmap(data)

		s, err := FromGob(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to load public suffix list %s: %w", path, err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("invalid public suffix list format: %s", c.Format)
	}
}

// Lazy loads a set on first use and caches it for the lifetime of the Lazy.
//
// Concurrent callers of Get block until the single load completes.
// After that, Get is a lock-free read of the cached result.
type Lazy struct {
	config Config
	logger *zap.Logger
	once   sync.Once
	set    *Set
	err    error
}

// NewLazy returns a Lazy that loads the set described by config.
func NewLazy(config Config, logger *zap.Logger) *Lazy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lazy{
		config: config,
		logger: logger,
	}
}

// Get returns the set, loading it if this is the first call.
// A load failure is cached and returned by every subsequent call.
func (l *Lazy) Get() (*Set, error) {
	l.once.Do(l.load)
	return l.set, l.err
}

func (l *Lazy) load() {
	l.set, l.err = l.config.Set()
	if l.err != nil {
		l.logger.Error("Failed to load public suffix list",
			zap.String("path", l.config.Path),
			zap.Error(l.err),
		)
		return
	}
	l.logger.Info("Loaded public suffix list",
		zap.String("path", l.config.Path),
		zap.Int("suffixes", l.set.Len()),
		zap.String("fingerprint", l.set.FingerprintString()),
	)
}
