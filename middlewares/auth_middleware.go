package middlewares

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"bulusma.link/configs"
	"bulusma.link/configs/configslog"
	"bulusma.link/services"
)

// Locals anahtarları. Handler'lar kullanıcı kimliğini buradan okur ve
// servislere açık parametre olarak geçirir.
const (
	LocalUserID   = "userID"
	LocalUserRole = "userRole"
)

// AuthMiddleware Authorization başlığındaki bearer token'ı doğrular.
// Token yoksa veya geçersizse 401 döner; subject claim'i sayı değilse de
// istek reddedilir (bozuk token, geçersiz kimlik durumu).
func AuthMiddleware(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "oturum gerekli"})
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	claims := &services.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("beklenmeyen imza yöntemi")
		}
		return []byte(configs.GetConfig().JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "geçersiz veya süresi dolmuş oturum"})
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		configslog.Log.Warn("AuthMiddleware: subject claim sayı değil", zap.String("subject", claims.Subject))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "geçersiz oturum kimliği"})
	}

	c.Locals(LocalUserID, uint(userID))
	c.Locals(LocalUserRole, claims.Role)
	return c.Next()
}

// CurrentUserID locals'taki doğrulanmış kullanıcı ID'sini döndürür.
// AuthMiddleware'den geçmemiş bir istekte false döner.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals(LocalUserID).(uint)
	return userID, ok && userID != 0
}
