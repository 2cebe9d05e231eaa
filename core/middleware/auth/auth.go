package auth

import (
	"errors"
	"fmt"
	"strings"

	"secure-file-server/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserKey is the Fiber locals key holding the authenticated username.
const UserKey = "user"

// ChallengeBody is the body sent with every 401 response.
const ChallengeBody = "Authentication required"

// Verifier decides whether a username/password pair is accepted.
type Verifier interface {
	Verify(username, password string) bool
}

// Config defines the config for the Basic auth middleware.
type Config struct {
	// Realm is advertised in the WWW-Authenticate header.
	Realm string
	// Verifier checks decoded credentials.
	Verifier Verifier
	// Logger receives decode errors. Defaults to a no-op logger.
	Logger *zap.Logger
}

// New creates the Basic authentication middleware.
// Missing, malformed and rejected credentials all get the same challenge.
func New(cfg Config) fiber.Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	challenge := fmt.Sprintf(`Basic realm="%s"`, strings.ReplaceAll(cfg.Realm, `"`, `\"`))

	return func(c *fiber.Ctx) error {
		err := authenticate(c, cfg.Verifier)
		if err == nil {
			return c.Next()
		}

		if errors.Is(err, ErrDecode) {
			logger.WithRayID(cfg.Logger, c).Warn("Authentication decode error", zap.Error(err))
		} else {
			logger.WithRayID(cfg.Logger, c).Debug("Authentication rejected", zap.Error(err))
		}

		c.Set(fiber.HeaderWWWAuthenticate, challenge)
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
		return c.Status(fiber.StatusUnauthorized).SendString(ChallengeBody)
	}
}

func authenticate(c *fiber.Ctx, verifier Verifier) error {
	username, password, err := ParseBasic(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}
	if verifier == nil || !verifier.Verify(username, password) {
		return ErrMismatch
	}
	c.Locals(UserKey, username)
	return nil
}
