package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bulusma.link/configs"
	"bulusma.link/configs/configslog"
	"bulusma.link/services"
)

const testSecret = "test-gizli-anahtar"

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	if configslog.Log == nil {
		configslog.InitLogger()
	}
	configs.SetConfig(&configs.Config{
		JWTSecret: testSecret,
		JWTIssuer: "bulusma.link",
		JWTTTL:    3 * time.Hour,
	})

	app := fiber.New()
	app.Get("/korunan", AuthMiddleware, func(c *fiber.Ctx) error {
		userID, ok := CurrentUserID(c)
		require.True(t, ok)
		return c.SendString(strconv.FormatUint(uint64(userID), 10))
	})
	return app
}

// signTestToken verilen subject ve geçerlilik süresiyle token üretir.
func signTestToken(t *testing.T, subject string, ttl time.Duration, secret string) string {
	t.Helper()
	now := time.Now().UTC()
	claims := services.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    "bulusma.link",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: "User",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	app := setupTestApp(t)

	doRequest := func(authHeader string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, "/korunan", nil)
		if authHeader != "" {
			req.Header.Set(fiber.HeaderAuthorization, authHeader)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("geçerli token geçer", func(t *testing.T) {
		token := signTestToken(t, "42", time.Hour, testSecret)
		resp := doRequest("Bearer " + token)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "42", string(body))
	})

	t.Run("başlık yoksa 401", func(t *testing.T) {
		resp := doRequest("")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("bearer öneki yoksa 401", func(t *testing.T) {
		resp := doRequest("Basic abc123")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("süresi dolmuş token 401", func(t *testing.T) {
		token := signTestToken(t, "42", -time.Hour, testSecret)
		resp := doRequest("Bearer " + token)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("yanlış anahtarla imzalı token 401", func(t *testing.T) {
		token := signTestToken(t, "42", time.Hour, "baska-anahtar")
		resp := doRequest("Bearer " + token)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("sayı olmayan subject 401", func(t *testing.T) {
		token := signTestToken(t, "kullanici-kirk-iki", time.Hour, testSecret)
		resp := doRequest("Bearer " + token)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("sıfır subject 401", func(t *testing.T) {
		token := signTestToken(t, "0", time.Hour, testSecret)
		resp := doRequest("Bearer " + token)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestCurrentUserID_WithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/acik", func(c *fiber.Ctx) error {
		_, ok := CurrentUserID(c)
		assert.False(t, ok)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/acik", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
