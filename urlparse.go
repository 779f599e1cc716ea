// Package urlparse splits URL-like strings into protocol, subdomain, registrable domain,
// public suffix, path, fragment, and query, anchored on a public suffix list.
//
// The parsing library lives in the urlparser and psl packages.
// This package holds what the binaries share.
package urlparse

import (
	"context"

	"go.uber.org/zap"
)

// Version is the current version of urlparse-go.
const Version = "1.0.0"

// Service is the common service abstraction in this module.
type Service interface {
	// ZapField returns a [zap.Field] that identifies the service.
	ZapField() zap.Field

	// Start starts the service.
	Start(ctx context.Context) error

	// Stop stops the service.
	Stop() error
}
