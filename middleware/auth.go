// middleware/auth.go
package middleware

import (
	"errors"
	"fmt"
	"strings"

	"neuroflow/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// SessionLocal is the fiber.Ctx locals key holding the resolved storage.Session.
const SessionLocal = "session"

const (
	userIDHeader       = "X-User-ID"
	sessionTokenHeader = "X-Session-Token"
)

// UserContextMiddleware resolves the caller's storage session. A signed session token
// (HS256, subject = user id) wins over the X-User-ID header set by a gateway. A request with
// neither runs as the guest.
func UserContextMiddleware(jwtSecret string, logger *zap.Logger) fiber.Handler {
	logger = logger.Named("identity")
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get(userIDHeader))

		if raw := strings.TrimSpace(c.Get(sessionTokenHeader)); raw != "" {
			if jwtSecret == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "session tokens are not accepted by this server",
				})
			}
			sub, err := subjectFromToken(raw, jwtSecret)
			if err != nil {
				logger.Info("🚫 rejected session token", zap.String("path", c.Path()), zap.Error(err))
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "invalid session token",
					"cause": err.Error(),
				})
			}
			userID = sub
		}

		sess, err := storage.SessionFor(storage.StaticIdentity(userID))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid user id",
				"cause": err.Error(),
			})
		}

		c.Locals(SessionLocal, sess)
		logger.Debug("👤 session resolved", zap.String("namespace", sess.Namespace()), zap.String("path", c.Path()))
		return c.Next()
	}
}

// SessionFrom returns the session stored by UserContextMiddleware, or the guest session.
func SessionFrom(c *fiber.Ctx) storage.Session {
	if sess, ok := c.Locals(SessionLocal).(storage.Session); ok {
		return sess
	}
	return storage.GuestSession()
}

func subjectFromToken(raw, secret string) (string, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}
