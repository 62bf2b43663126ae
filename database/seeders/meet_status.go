package seeders

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"bulusma.link/configs/configslog"
	"bulusma.link/models"
)

func SeedMeetStatuses(db *gorm.DB) error {
	statusesToSeed := []models.MeetStatus{
		{ID: models.StatusPlanned, Title: "Planned", Description: "Buluşma planlandı, henüz başlamadı"},
		{ID: models.StatusInProgress, Title: "InProgress", Description: "Buluşma şu anda devam ediyor"},
		{ID: models.StatusCompleted, Title: "Completed", Description: "Buluşma tamamlandı"},
		{ID: models.StatusCancelled, Title: "Cancelled", Description: "Buluşma iptal edildi"},
		{ID: models.StatusOpenForRegistration, Title: "OpenForRegistration", Description: "Buluşma kayıt için açık"},
	}

	var createdCount int64 = 0
	var errorOccurred bool = false

	configslog.SLog.Info("Buluşma durumları seed işlemi başlıyor...")

	for _, statusToSeed := range statusesToSeed {
		var existingStatus models.MeetStatus
		result := db.Where("id = ?", statusToSeed.ID).First(&existingStatus)

		if result.Error == nil {
			configslog.SLog.Debugf("Buluşma durumu '%s' zaten mevcut, oluşturma atlanıyor.", statusToSeed.Title)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Buluşma durumu kontrol edilirken veritabanı hatası",
				zap.String("status_title", statusToSeed.Title),
				zap.Error(result.Error),
			)
			errorOccurred = true
			continue
		}

		configslog.SLog.Infof("Buluşma durumu '%s' oluşturuluyor...", statusToSeed.Title)

		if err := db.Create(&statusToSeed).Error; err != nil {
			configslog.Log.Error("Buluşma durumu oluşturulamadı",
				zap.String("status_title", statusToSeed.Title),
				zap.Error(err),
			)
			errorOccurred = true
			continue
		}

		configslog.SLog.Infof("Buluşma durumu '%s' başarıyla oluşturuldu (ID: %d).", statusToSeed.Title, statusToSeed.ID)
		createdCount++
	}

	if createdCount > 0 {
		configslog.SLog.Infof("%d adet yeni buluşma durumu başarıyla seed edildi.", createdCount)
	} else if !errorOccurred {
		configslog.SLog.Info("Tüm buluşma durumları zaten mevcut, yeni ekleme yapılmadı.")
	}

	if errorOccurred {
		return errors.New("buluşma durumları seed edilirken en az bir hata oluştu")
	}

	configslog.SLog.Info("Buluşma durumları seed işlemi başarıyla tamamlandı.")
	return nil
}
