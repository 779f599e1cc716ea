// Package v1 implements the URL parsing REST API v1.
package v1

import (
	"github.com/database64128/urlparse-go"
	"github.com/database64128/urlparse-go/cache"
	"github.com/database64128/urlparse-go/stats"
	"github.com/database64128/urlparse-go/urlparser"
	"github.com/gofiber/fiber/v2"
)

// StandardError is the standard error response.
type StandardError struct {
	Message string `json:"error"`
}

// ServerInfo contains information about the API server and its public suffix list.
type ServerInfo struct {
	Name        string `json:"server"`
	Version     string `json:"version"`
	APIVersion  string `json:"apiVersion"`
	Suffixes    int    `json:"suffixes"`
	Fingerprint string `json:"fingerprint"`
}

// parseResult is a cached parse outcome. Failures are cached too,
// since parsing the same input always fails the same way.
type parseResult struct {
	pu  *urlparser.ParsedURL
	err error
}

// Handler handles URL parsing API requests.
type Handler struct {
	parser *urlparser.Parser
	cache  *cache.LockedCache[string, parseResult]
	sc     stats.Collector
	info   ServerInfo
}

// NewHandler returns a new handler that parses with parser,
// caches up to cacheSize parse results, and counts requests with sc.
// A negative cacheSize disables caching.
func NewHandler(parser *urlparser.Parser, cacheSize int, sc stats.Collector) *Handler {
	h := Handler{
		parser: parser,
		sc:     sc,
		info: ServerInfo{
			Name:        "urlparse-go",
			Version:     urlparse.Version,
			APIVersion:  "v1",
			Suffixes:    parser.Set().Len(),
			Fingerprint: parser.Set().FingerprintString(),
		},
	}
	if cacheSize >= 0 {
		h.cache = cache.NewLockedCache[string, parseResult](cacheSize)
	}
	return &h
}

// Routes sets up routes for the /v1 endpoint.
func Routes(router fiber.Router, h *Handler) {
	v1 := router.Group("/v1")
	v1.Get("", h.GetServerInfo)
	v1.Get("/info", h.GetServerInfo)
	v1.Get("/stats", h.GetStats)
	v1.Get("/parse", RequireURL, h.Parse)
	v1.Get("/base", RequireURL, h.GetBaseURL)
	v1.Get("/resolve", RequireURL, h.Resolve)
}
