package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bulusma.link/configs"
	"bulusma.link/dto"
)

func TestRegister(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthService()

	t.Run("başarılı kayıt", func(t *testing.T) {
		user, err := svc.Register(context.Background(), dto.RegisterRequest{
			Email:      "yeni@ornek.com",
			Password:   "gizli123",
			PublicName: "Yeni Kullanıcı",
		})
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "User", user.Role)
		// Parola asla düz metin saklanmaz.
		assert.NotEqual(t, "gizli123", user.PasswordHash)
	})

	t.Run("aynı e-posta ikinci kez kaydolamaz", func(t *testing.T) {
		_, err := svc.Register(context.Background(), dto.RegisterRequest{
			Email: "yeni@ornek.com", Password: "baska123",
		})
		require.ErrorIs(t, err, ErrAuthEmailTaken)
	})

	t.Run("kısa parola reddedilir", func(t *testing.T) {
		_, err := svc.Register(context.Background(), dto.RegisterRequest{
			Email: "kisa@ornek.com", Password: "123",
		})
		require.ErrorIs(t, err, ErrAuthPasswordTooShort)
	})

	t.Run("geçersiz e-posta reddedilir", func(t *testing.T) {
		_, err := svc.Register(context.Background(), dto.RegisterRequest{
			Email: "eposta-degil", Password: "gizli123",
		})
		require.ErrorIs(t, err, ErrAuthInvalidInput)
	})
}

func TestLogin(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthService()

	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "giris@ornek.com", Password: "gizli123",
	})
	require.NoError(t, err)

	t.Run("doğru bilgilerle token döner", func(t *testing.T) {
		tokenString, err := svc.Login(context.Background(), dto.LoginRequest{
			Email: "giris@ornek.com", Password: "gizli123",
		})
		require.NoError(t, err)
		require.NotEmpty(t, tokenString)

		claims := &Claims{}
		parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(configs.GetConfig().JWTSecret), nil
		})
		require.NoError(t, err)
		require.True(t, parsed.Valid)
		assert.Equal(t, strconv.FormatUint(uint64(user.ID), 10), claims.Subject)
		assert.Equal(t, "User", claims.Role)
		assert.Equal(t, configs.GetConfig().JWTIssuer, claims.Issuer)
	})

	t.Run("yanlış parola", func(t *testing.T) {
		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email: "giris@ornek.com", Password: "yanlis",
		})
		require.ErrorIs(t, err, ErrAuthInvalidCredentials)
	})

	t.Run("kayıtsız e-posta", func(t *testing.T) {
		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email: "yok@ornek.com", Password: "gizli123",
		})
		require.ErrorIs(t, err, ErrAuthInvalidCredentials)
	})
}
