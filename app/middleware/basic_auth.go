// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/golfveneto/suggestion-box/app/dto"
	"github.com/golfveneto/suggestion-box/config"
)

// BasicAuthMiddleware gates the admin routes behind a single shared
// credential pair. Every request is re-checked; there is no session state.
type BasicAuthMiddleware struct {
	adminCfg config.AdminConfig
}

// NewBasicAuthMiddleware creates a new basic auth middleware
func NewBasicAuthMiddleware(adminCfg config.AdminConfig) *BasicAuthMiddleware {
	return &BasicAuthMiddleware{adminCfg: adminCfg}
}

// challenge rejects the request. The body is identical whether the header
// was absent, malformed, or carried the wrong credentials.
func (m *BasicAuthMiddleware) challenge(c fiber.Ctx) error {
	c.Set("WWW-Authenticate", `Basic realm="Admin Area"`)
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: "Authentication required",
		Error: dto.ErrorDetail{
			Code: "AUTHENTICATION_REQUIRED",
		},
	})
}

// Authenticate validates the Basic authorization header against the
// configured admin credential pair
func (m *BasicAuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return m.challenge(c)
		}

		const prefix = "Basic "
		if !strings.HasPrefix(authHeader, prefix) {
			return m.challenge(c)
		}

		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(authHeader, prefix))
		if err != nil {
			return m.challenge(c)
		}

		username, password, ok := strings.Cut(string(decoded), ":")
		if !ok {
			return m.challenge(c)
		}

		// A deployment without admin credentials must never let anyone
		// through, and must not masquerade as a bad-password rejection.
		if m.adminCfg.Username == "" || m.adminCfg.Password == "" {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
				Success: false,
				Message: "Server configuration error",
				Error: dto.ErrorDetail{
					Code: "ADMIN_CREDENTIALS_NOT_CONFIGURED",
				},
			})
		}

		userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(m.adminCfg.Username))
		passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(m.adminCfg.Password))
		if userMatch != 1 || passMatch != 1 {
			return m.challenge(c)
		}

		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}
