package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func identityApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(UserContextMiddleware(secret, zap.NewNop()))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(SessionFrom(c).Namespace())
	})
	return app
}

func signed(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func do(t *testing.T, app *fiber.App, headers map[string]string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestUserContextMiddleware(t *testing.T) {
	app := identityApp(testSecret)
	exp := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name     string
		headers  map[string]string
		wantCode int
		wantNS   string
	}{
		{"no identity is guest", nil, fiber.StatusOK, "guest"},
		{"gateway header", map[string]string{"X-User-ID": "alice"}, fiber.StatusOK, "alice"},
		{"reserved id", map[string]string{"X-User-ID": "guest"}, fiber.StatusBadRequest, ""},
		{"malformed id", map[string]string{"X-User-ID": "a b/c"}, fiber.StatusBadRequest, ""},
		{"token subject wins", map[string]string{
			"X-User-ID":       "mallory",
			"X-Session-Token": signed(t, jwt.MapClaims{"sub": "bob", "exp": exp}, testSecret),
		}, fiber.StatusOK, "bob"},
		{"wrong secret", map[string]string{"X-Session-Token": signed(t, jwt.MapClaims{"sub": "bob"}, "other")}, fiber.StatusUnauthorized, ""},
		{"expired", map[string]string{"X-Session-Token": signed(t, jwt.MapClaims{"sub": "bob", "exp": time.Now().Add(-time.Hour).Unix()}, testSecret)}, fiber.StatusUnauthorized, ""},
		{"no subject", map[string]string{"X-Session-Token": signed(t, jwt.MapClaims{"exp": exp}, testSecret)}, fiber.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := do(t, app, tc.headers)
			assert.Equal(t, tc.wantCode, code)
			if tc.wantNS != "" {
				assert.Equal(t, tc.wantNS, body)
			}
		})
	}
}

func TestSessionTokensNeedSecret(t *testing.T) {
	app := identityApp("")
	code, _ := do(t, app, map[string]string{"X-Session-Token": signed(t, jwt.MapClaims{"sub": "bob"}, testSecret)})
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestGatewayAuthMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(GatewayAuthMiddleware("svc-token", zap.NewNop()))
	app.Get("/whoami", func(c *fiber.Ctx) error { return c.SendString("ok") })

	code, _ := do(t, app, nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)
	code, _ = do(t, app, map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, fiber.StatusUnauthorized, code)
	code, _ = do(t, app, map[string]string{"Authorization": "Bearer svc-token"})
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = do(t, app, map[string]string{"Authorization": "svc-token"})
	assert.Equal(t, fiber.StatusOK, code)
}

func TestGatewayDisabledWithoutToken(t *testing.T) {
	app := fiber.New()
	app.Use(GatewayAuthMiddleware("", zap.NewNop()))
	app.Get("/whoami", func(c *fiber.Ctx) error { return c.SendString("ok") })
	code, body := do(t, app, nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "ok", body)
}
