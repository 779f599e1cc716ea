// Package api serves the URL parsing REST API.
package api

import (
	"context"
	"errors"
	"path"

	v1 "github.com/database64128/urlparse-go/api/v1"
	"github.com/database64128/urlparse-go/jsoncfg"
	"github.com/database64128/urlparse-go/psl"
	"github.com/database64128/urlparse-go/stats"
	"github.com/database64128/urlparse-go/urlparser"
	"github.com/database64128/tfo-go/v2"
	"github.com/gofiber/contrib/fiberzap"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DefaultCacheSize is the number of parse results cached when [Config.CacheSize] is zero.
const DefaultCacheSize = 4096

// Config stores the configuration for the RESTful API.
type Config struct {
	// Enabled controls whether the API server is enabled.
	Enabled bool `json:"enabled"`

	// Listen is the TCP address to listen on.
	Listen string `json:"listen"`

	// FastOpen enables TCP Fast Open on the listener.
	FastOpen bool `json:"fastOpen"`

	// EnableTrustedProxyCheck enables trusted proxy checks.
	EnableTrustedProxyCheck bool `json:"enableTrustedProxyCheck"`

	// TrustedProxies is the list of trusted proxies.
	// This only takes effect if EnableTrustedProxyCheck is true.
	TrustedProxies []string `json:"trustedProxies"`

	// ProxyHeader is the header used to determine the client's IP address.
	// If empty, the remote peer's address is used.
	ProxyHeader string `json:"proxyHeader"`

	// SecretPath adds a secret path prefix to API endpoints.
	// If empty, no secret path is added.
	SecretPath string `json:"secretPath"`

	// CacheSize is the number of parse results to cache.
	// Zero means [DefaultCacheSize]. A negative value disables the cache.
	CacheSize int `json:"cacheSize"`

	// ReadTimeout is the maximum duration for reading a request.
	// Zero means no timeout.
	ReadTimeout jsoncfg.Duration `json:"readTimeout"`

	// WriteTimeout is the maximum duration for writing a response.
	// Zero means no timeout.
	WriteTimeout jsoncfg.Duration `json:"writeTimeout"`

	// Stats controls request counting for the stats endpoint.
	Stats stats.Config `json:"stats"`
}

// NewServer returns a new API server from the config.
func (c *Config) NewServer(logger *zap.Logger, set *psl.Set) (*Server, error) {
	if c.Listen == "" {
		return nil, errors.New("no listen address specified")
	}
	return &Server{
		logger: logger,
		listenConfig: tfo.ListenConfig{
			DisableTFO: !c.FastOpen,
		},
		listen: c.Listen,
		app:    c.newApp(logger, set),
	}, nil
}

func (c *Config) newApp(logger *zap.Logger, set *psl.Set) *fiber.App {
	app := fiber.New(fiber.Config{
		ProxyHeader:             c.ProxyHeader,
		DisableStartupMessage:   true,
		EnableTrustedProxyCheck: c.EnableTrustedProxyCheck,
		TrustedProxies:          c.TrustedProxies,
		ReadTimeout:             c.ReadTimeout.Value(),
		WriteTimeout:            c.WriteTimeout.Value(),
	})

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger,
	}))

	cacheSize := c.CacheSize
	if cacheSize == 0 {
		cacheSize = DefaultCacheSize
	}

	router := app.Group(joinPatternPath("/", c.SecretPath, "/api"))
	h := v1.NewHandler(urlparser.NewParser(set, logger), cacheSize, c.Stats.Collector())
	v1.Routes(router, h)

	return app
}

// joinPatternPath joins path elements into a pattern path.
func joinPatternPath(elem ...string) string {
	p := path.Join(elem...)
	if p == "" {
		return ""
	}
	// Add back the trailing slash removed by [path.Join].
	if last := elem[len(elem)-1]; last != "" && last[len(last)-1] == '/' {
		if p[len(p)-1] != '/' {
			return p + "/"
		}
	}
	return p
}

// Server is the RESTful API server.
type Server struct {
	logger       *zap.Logger
	listenConfig tfo.ListenConfig
	listen       string
	app          *fiber.App
}

// String implements [fmt.Stringer.String].
func (s *Server) String() string {
	return "API server"
}

// ZapField implements [urlparse.Service.ZapField].
func (s *Server) ZapField() zap.Field {
	return zap.Stringer("service", s)
}

// Start starts the API server.
func (s *Server) Start(ctx context.Context) error {
	ln, err := s.listenConfig.Listen(ctx, "tcp", s.listen)
	if err != nil {
		return err
	}

	go func() {
		if err := s.app.Listener(ln); err != nil {
			s.logger.Error("Failed to serve API", zap.Error(err))
		}
	}()

	s.logger.Info("Started API server", zap.Stringer("listenAddress", ln.Addr()))
	return nil
}

// Stop stops the API server.
func (s *Server) Stop() error {
	return s.app.Shutdown()
}
