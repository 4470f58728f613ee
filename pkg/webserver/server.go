// Package webserver is the portal's thin HTTP surface. All HTTP semantics
// live here; the resolution engine itself never sees a request or produces
// a status code.
package webserver

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/brightline/portald/pkg/authorization"
	"github.com/brightline/portald/pkg/workflows"
)

// Config holds the web server configuration
type Config struct {
	ListenAddr string
	Port       int

	// SessionSecret verifies the session tokens minted by the OAuth
	// front-end after sign-in
	SessionSecret string

	// ResolveTimeout bounds the external reads behind one resolution
	ResolveTimeout time.Duration
}

// Server serves the access-resolution API
type Server struct {
	config    *Config
	resolver  *authorization.Resolver
	workflows *workflows.Registry
	app       *fiber.App
}

// New creates a new web server
func New(config *Config, resolver *authorization.Resolver, registry *workflows.Registry) (*Server, error) {
	if config.SessionSecret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if config.ResolveTimeout <= 0 {
		config.ResolveTimeout = 10 * time.Second
	}

	s := &Server{
		config:    config,
		resolver:  resolver,
		workflows: registry,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
	})

	app.Get("/healthz", s.handleHealth)

	api := app.Group("/api", s.requireSession)
	api.Get("/access", s.handleAccessAll)
	api.Get("/access/:dashboard", s.handleAccess)
	api.Get("/workflows/position-control", s.handlePositionPermissions)
	api.Get("/workflows/onboarding", s.handleOnboardingPermissions)

	s.app = app
	return s, nil
}

// ListenAndServe starts the server and blocks
func (s *Server) ListenAndServe() error {
	return s.app.Listen(fmt.Sprintf("%s:%d", s.config.ListenAddr, s.config.Port))
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
