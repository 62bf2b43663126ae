package seeders

import (
	"errors"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bulusma.link/configs/configslog"
	"bulusma.link/models"
)

const (
	defaultSystemEmail = "system@bulusma.link"
	defaultSystemName  = "Sistem"
)

// SeedSystemUser ID'si 1 olan sistem kullanıcısını oluşturur veya günceller.
// Parola SYSTEM_USER_PASSWORD ortam değişkeninden okunur; boşsa yeni
// kullanıcı oluşturulmaz.
func SeedSystemUser(db *gorm.DB) error {
	email := os.Getenv("SYSTEM_USER_EMAIL")
	if email == "" {
		email = defaultSystemEmail
	}
	password := os.Getenv("SYSTEM_USER_PASSWORD")

	var existingUser models.User
	result := db.Where("email = ?", email).First(&existingUser)

	if result.Error == nil {
		if existingUser.IsSystem {
			configslog.SLog.Debugf("Sistem kullanıcısı '%s' zaten mevcut, oluşturma atlanıyor.", email)
			return nil
		}
		configslog.SLog.Infof("Mevcut kullanıcı '%s' sistem kullanıcısı olarak işaretleniyor.", email)
		return db.Model(&existingUser).Update("is_system", true).Error
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	if password == "" {
		configslog.SLog.Warn("SYSTEM_USER_PASSWORD tanımlı değil, sistem kullanıcısı oluşturulmayacak.")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı parolası hashlenemedi", zap.Error(err))
		return err
	}

	systemUser := models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		PublicName:   defaultSystemName,
		Role:         "Admin",
		IsSystem:     true,
	}

	if err := db.Create(&systemUser).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Sistem kullanıcısı '%s' başarıyla oluşturuldu (ID: %d).", email, systemUser.ID)
	return nil
}
