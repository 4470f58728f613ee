package webserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/brightline/portald/pkg/authorization"
	"github.com/brightline/portald/pkg/directory"
	"github.com/brightline/portald/pkg/identity"
)

type grantResponse struct {
	Dashboard string   `json:"dashboard"`
	Granted   bool     `json:"granted"`
	Source    string   `json:"source"`
	Label     string   `json:"label,omitempty"`
	Scope     scopeDTO `json:"scope"`
	Degraded  bool     `json:"degraded,omitempty"`
}

type scopeDTO struct {
	Unrestricted bool     `json:"unrestricted"`
	Schools      []string `json:"schools,omitempty"`
	StaffIDs     []string `json:"staff_ids,omitempty"`
}

func toResponse(grant authorization.AccessGrant) grantResponse {
	return grantResponse{
		Dashboard: grant.Dashboard.Name,
		Granted:   grant.Granted,
		Source:    string(grant.Source),
		Label:     grant.Label,
		Scope: scopeDTO{
			Unrestricted: grant.Scope.Unrestricted,
			Schools:      grant.Scope.Schools,
			StaffIDs:     grant.Scope.StaffIDs,
		},
		Degraded: grant.Degraded,
	}
}

// handleAccess resolves the session identity against one dashboard.
// Denied resolutions are 403 with the grant body so the portal UI can say
// why; identity failures are 401; a directory outage is 503 (retryable).
func (s *Server) handleAccess(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), s.config.ResolveTimeout)
	defer cancel()

	grant, err := s.resolver.ResolveAddress(ctx, sessionEmail(c), c.Params("dashboard"))
	switch {
	case errors.Is(err, authorization.ErrUnknownDashboard):
		return fiber.NewError(http.StatusNotFound, "unknown dashboard")
	case errors.Is(err, identity.ErrMalformedAddress), errors.Is(err, identity.ErrDomainRejected):
		return fiber.NewError(http.StatusUnauthorized, "account not recognized")
	case errors.Is(err, directory.ErrUnavailable):
		return fiber.NewError(http.StatusServiceUnavailable, "staff directory unavailable, try again")
	case err != nil:
		return fiber.NewError(http.StatusInternalServerError, "access resolution failed")
	}

	if !grant.Granted {
		return c.Status(http.StatusForbidden).JSON(toResponse(grant))
	}
	return c.JSON(toResponse(grant))
}

// handleAccessAll resolves every dashboard for the session identity, for
// the portal landing page
func (s *Server) handleAccessAll(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), s.config.ResolveTimeout)
	defer cancel()

	responses := make([]grantResponse, 0, len(authorization.Dashboards()))
	for _, dashboard := range authorization.Dashboards() {
		grant, err := s.resolver.ResolveAddress(ctx, sessionEmail(c), dashboard.Name)
		switch {
		case errors.Is(err, identity.ErrMalformedAddress), errors.Is(err, identity.ErrDomainRejected):
			return fiber.NewError(http.StatusUnauthorized, "account not recognized")
		case errors.Is(err, directory.ErrUnavailable):
			return fiber.NewError(http.StatusServiceUnavailable, "staff directory unavailable, try again")
		case err != nil:
			return fiber.NewError(http.StatusInternalServerError, "access resolution failed")
		}
		responses = append(responses, toResponse(grant))
	}
	return c.JSON(fiber.Map{"dashboards": responses})
}

func (s *Server) handlePositionPermissions(c *fiber.Ctx) error {
	email, err := s.canonicalEmail(c)
	if err != nil {
		return err
	}
	perms, ok := s.workflows.PositionPermissions(email)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "no position control access")
	}
	return c.JSON(perms)
}

func (s *Server) handleOnboardingPermissions(c *fiber.Ctx) error {
	email, err := s.canonicalEmail(c)
	if err != nil {
		return err
	}
	perms, ok := s.workflows.OnboardingPermissions(email)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "no onboarding access")
	}
	return c.JSON(perms)
}

func (s *Server) canonicalEmail(c *fiber.Ctx) (string, error) {
	email, err := s.resolver.Identity().Resolve(sessionEmail(c))
	if err != nil {
		return "", fiber.NewError(http.StatusUnauthorized, "account not recognized")
	}
	return email, nil
}
