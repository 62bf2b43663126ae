package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bulusma.link/configs/configslog"
	"bulusma.link/models"
)

// MigrateMembersTable Member modeli için tabloyu oluşturur/günceller.
// Meets tablosu FK için önce migrate edilmiş olmalı.
func MigrateMembersTable(db *gorm.DB) error {
	configslog.SLog.Info("Members tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.Member{}); err != nil {
		configslog.Log.Error("Members tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Members tablosu migrate işlemi tamamlandı.")
	return nil
}
