// Package service wires the configured suffix list into the runnable services.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/database64128/urlparse-go"
	"github.com/database64128/urlparse-go/api"
	"github.com/database64128/urlparse-go/psl"
	"go.uber.org/zap"
)

var errNoServices = errors.New("no services to start")

// Config is the main configuration structure.
// It may be marshaled as or unmarshaled from JSON.
type Config struct {
	SuffixList psl.Config `json:"suffixList"`
	API        api.Config `json:"api"`
}

// Manager initializes the service manager.
//
// Initialization order: suffix list -> API server
func (sc *Config) Manager(logger *zap.Logger) (*Manager, error) {
	if !sc.API.Enabled {
		return nil, errNoServices
	}

	set, err := psl.NewLazy(sc.SuffixList, logger).Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load suffix list: %w", err)
	}

	var services []urlparse.Service

	apiServer, err := sc.API.NewServer(logger, set)
	if err != nil {
		return nil, fmt.Errorf("failed to create API server: %w", err)
	}
	services = append(services, apiServer)

	return &Manager{services, set, logger}, nil
}

// Manager manages the services.
type Manager struct {
	services []urlparse.Service
	set      *psl.Set
	logger   *zap.Logger
}

// Set returns the suffix set shared by all services.
func (m *Manager) Set() *psl.Set {
	return m.set
}

// Start starts all configured services.
func (m *Manager) Start(ctx context.Context) error {
	for _, s := range m.services {
		if err := s.Start(ctx); err != nil {
			kv := s.ZapField()
			return fmt.Errorf("failed to start %s=%q: %w", kv.Key, kv.String, err)
		}
	}
	return nil
}

// Stop stops all running services.
func (m *Manager) Stop() {
	for _, s := range m.services {
		kv := s.ZapField()
		if err := s.Stop(); err != nil {
			m.logger.Warn("Failed to stop service", kv, zap.Error(err))
			continue
		}
		m.logger.Info("Stopped service", kv)
	}
}
