package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bulusma.link/configs"
	"bulusma.link/configs/configslog"
	"bulusma.link/dto"
	"bulusma.link/models"
	"bulusma.link/repositories"
)

// AuthServiceError özel servis hataları
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrAuthEmailTaken         AuthServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrAuthInvalidCredentials AuthServiceError = "e-posta veya şifre hatalı"
	ErrAuthPasswordTooShort   AuthServiceError = "şifre en az 6 karakter olmalı"
	ErrAuthInvalidInput       AuthServiceError = "geçersiz girdi verisi"
	ErrAuthHashingFailed      AuthServiceError = "şifre oluşturulamadı"
	ErrAuthTokenFailed        AuthServiceError = "oturum anahtarı üretilemedi"
)

// Claims bearer token'ın içeriği: subject kullanıcı ID'si, role yetki.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// IAuthService hesap ve oturum işlemleri için arayüz.
type IAuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	// Login doğrulama başarılıysa imzalı bearer token döner.
	Login(ctx context.Context, req dto.LoginRequest) (string, error)
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	repo repositories.IUserRepository
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService() IAuthService {
	return &AuthService{repo: repositories.NewUserRepository()}
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	if req.Email == "" || !contactPattern.MatchString(req.Email) {
		return nil, fmt.Errorf("%w: geçersiz e-posta", ErrAuthInvalidInput)
	}
	if len(req.Password) < 6 {
		return nil, ErrAuthPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Register: bcrypt hatası", zap.Error(err))
		return nil, ErrAuthHashingFailed
	}

	user := models.User{
		Email:         req.Email,
		PasswordHash:  string(hashed),
		PublicName:    req.PublicName,
		PublicContact: req.PublicContact,
		Role:          "User",
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrAuthEmailTaken
		}
		return nil, err
	}
	configslog.SLog.Infof("Yeni kullanıcı kaydedildi: ID %d", user.ID)
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (string, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrAuthInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return "", ErrAuthInvalidCredentials
	}

	token, err := GenerateToken(user)
	if err != nil {
		configslog.Log.Error("Login: token üretilemedi", zap.Uint("userID", user.ID), zap.Error(err))
		return "", ErrAuthTokenFailed
	}
	configslog.SLog.Infof("Kullanıcı giriş yaptı: ID %d", user.ID)
	return token, nil
}

// GenerateToken kullanıcı için HS256 imzalı bearer token üretir.
func GenerateToken(user *models.User) (string, error) {
	c := configs.GetConfig()
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    c.JWTIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.JWTTTL)),
		},
		Role: user.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.JWTSecret))
}

// Arayüz uyumluluğu kontrolü
var _ IAuthService = (*AuthService)(nil)
