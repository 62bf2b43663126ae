package repositories

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"bulusma.link/configs/configsdatabase"
	"bulusma.link/configs/configslog"
	"bulusma.link/models"
)

// IMeetStatusRepository durum lookup tablosu için arayüz. Tablo seed ile
// doldurulur, çalışma zamanında salt okunurdur.
type IMeetStatusRepository interface {
	FindAll(ctx context.Context) ([]models.MeetStatus, error)
	FindByID(ctx context.Context, id int) (*models.MeetStatus, error)
	Exists(ctx context.Context, id int) (bool, error)
}

// MeetStatusRepository IMeetStatusRepository arayüzünü uygular.
type MeetStatusRepository struct {
	db *gorm.DB
}

// NewMeetStatusRepository yeni bir MeetStatusRepository örneği oluşturur.
func NewMeetStatusRepository() IMeetStatusRepository {
	return &MeetStatusRepository{db: configsdatabase.GetDB()}
}

// NewMeetStatusRepositoryTx transaction'a bağlı repository oluşturur.
func NewMeetStatusRepositoryTx(tx *gorm.DB) IMeetStatusRepository {
	return &MeetStatusRepository{db: tx}
}

func (r *MeetStatusRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *MeetStatusRepository) FindAll(ctx context.Context) ([]models.MeetStatus, error) {
	var statuses []models.MeetStatus
	if err := r.getDB(ctx).Order("id asc").Find(&statuses).Error; err != nil {
		configslog.Log.Error("MeetStatusRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	return statuses, nil
}

func (r *MeetStatusRepository) FindByID(ctx context.Context, id int) (*models.MeetStatus, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	var status models.MeetStatus
	if err := r.getDB(ctx).First(&status, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("MeetStatusRepository.FindByID: DB error", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return &status, nil
}

func (r *MeetStatusRepository) Exists(ctx context.Context, id int) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	var count int64
	if err := r.getDB(ctx).Model(&models.MeetStatus{}).Where("id = ?", id).Count(&count).Error; err != nil {
		configslog.Log.Error("MeetStatusRepository.Exists: DB error", zap.Int("id", id), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// Arayüz uyumluluğu kontrolü
var _ IMeetStatusRepository = (*MeetStatusRepository)(nil)
