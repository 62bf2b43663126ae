package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bulusma.link/configs/configslog"
	"bulusma.link/models"
)

// MigrateMeetsTable Meet modeli için tabloyu oluşturur/günceller.
// Users ve meet_statuses tabloları FK'lar için önce migrate edilmiş olmalı.
func MigrateMeetsTable(db *gorm.DB) error {
	configslog.SLog.Info("Meets tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.Meet{}); err != nil {
		configslog.Log.Error("Meets tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Meets tablosu migrate işlemi tamamlandı.")
	return nil
}
