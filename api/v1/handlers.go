package v1

import (
	"strings"

	"github.com/database64128/urlparse-go/stats"
	"github.com/database64128/urlparse-go/urlparser"
	"github.com/gofiber/fiber/v2"
)

// GetServerInfo returns information about the API server.
func (h *Handler) GetServerInfo(c *fiber.Ctx) error {
	return c.JSON(&h.info)
}

// GetStats returns request counters.
// With "clear=true", the counters are reset after the snapshot.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	if c.Query("clear") == "true" {
		return c.JSON(h.sc.SnapshotAndReset())
	}
	return c.JSON(h.sc.Snapshot())
}

// RequireURL is a middleware that rejects requests without a non-empty url query parameter.
func RequireURL(c *fiber.Ctx) error {
	if c.Query("url") == "" {
		return c.Status(fiber.StatusBadRequest).JSON(&StandardError{Message: "missing url query parameter"})
	}
	return c.Next()
}

// parse parses the url query parameter, consulting the cache first,
// and counts the request under endpoint.
func (h *Handler) parse(c *fiber.Ctx, endpoint string) (*urlparser.ParsedURL, error) {
	// Query values are only valid within the handler, and url is kept as a cache key.
	url := strings.Clone(c.Query("url"))

	var (
		r   parseResult
		hit bool
	)
	compute := func() parseResult {
		pu, err := h.parser.Parse(url)
		return parseResult{pu, err}
	}
	if h.cache != nil {
		r, hit = h.cache.GetOrCompute(url, compute)
	} else {
		r = compute()
	}

	h.sc.CollectRequest(endpoint, stats.OutcomeOf(r.err), hit)
	return r.pu, r.err
}

func parseError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(&StandardError{Message: err.Error()})
}

// Parse returns the parsed components of a URL.
// With "legacy=true", the components are returned in the deprecated map form.
func (h *Handler) Parse(c *fiber.Ctx) error {
	pu, err := h.parse(c, "parse")
	if err != nil {
		return parseError(c, err)
	}
	if c.Query("legacy") == "true" {
		c.Set("Deprecation", "true")
		return c.JSON(pu.Map())
	}
	return c.JSON(pu)
}

// BaseURLResponse is the response of the base URL endpoint.
type BaseURLResponse struct {
	BaseURL string `json:"baseURL"`
}

// GetBaseURL returns the base URL of a URL.
func (h *Handler) GetBaseURL(c *fiber.Ctx) error {
	pu, err := h.parse(c, "base")
	if err != nil {
		return parseError(c, err)
	}
	return c.JSON(&BaseURLResponse{BaseURL: pu.BaseURL()})
}

// ResolveResponse is the response of the resolve endpoint.
type ResolveResponse struct {
	Domain    string `json:"domain"`
	TopDomain string `json:"topDomain"`
}

// Resolve returns the registrable domain label and public suffix of a URL's host.
func (h *Handler) Resolve(c *fiber.Ctx) error {
	domain, topDomain, err := h.parser.Set().Resolve(c.Query("url"))
	h.sc.CollectRequest("resolve", stats.OutcomeOf(err), false)
	if err != nil {
		return parseError(c, err)
	}
	return c.JSON(&ResolveResponse{Domain: domain, TopDomain: topDomain})
}
