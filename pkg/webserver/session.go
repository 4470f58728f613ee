package webserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
)

const sessionEmailKey = "session_email"

// sessionClaims is the payload of the session token the OAuth front-end
// issues after sign-in. Only the email matters here; authorization is
// recomputed per request.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// requireSession extracts the authenticated email from the bearer token and
// stores it on the request context. It performs no authorization.
func (s *Server) requireSession(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.SessionSecret), nil
	})
	if err != nil || !parsed.Valid || claims.Email == "" {
		return fiber.NewError(http.StatusUnauthorized, "invalid session")
	}

	c.Locals(sessionEmailKey, claims.Email)
	return c.Next()
}

func sessionEmail(c *fiber.Ctx) string {
	if email, ok := c.Locals(sessionEmailKey).(string); ok {
		return email
	}
	return ""
}
