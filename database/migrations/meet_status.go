package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bulusma.link/configs/configslog"
	"bulusma.link/models"
)

func MigrateMeetStatusTable(db *gorm.DB) error {
	configslog.SLog.Info("Meet_statuses tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.MeetStatus{}); err != nil {
		configslog.Log.Error("Meet_statuses tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Meet_statuses tablosu migrate işlemi tamamlandı.")
	return nil
}
