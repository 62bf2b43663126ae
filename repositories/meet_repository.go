package repositories

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"bulusma.link/configs/configsdatabase"
	"bulusma.link/configs/configslog"
	"bulusma.link/models"
	"bulusma.link/pkg/queryparams"
)

// IMeetRepository buluşma veritabanı işlemleri için arayüz.
type IMeetRepository interface {
	Create(ctx context.Context, meet *models.Meet) error
	// FindByUid buluşmayı ilişkileriyle getirir. ownerID verilirse sadece o
	// kullanıcıya ait kayıt döner; sahiplik dışı kayıtlar bulunamadı sayılır.
	FindByUid(ctx context.Context, uid string, ownerID *uint) (*models.Meet, error)
	FindAllByOwnerPaginated(ctx context.Context, ownerID uint, params queryparams.ListParams) ([]models.Meet, int64, error)
	// UpdateFields verilen sütunları günceller. Kayıt bu arada silinmiş veya
	// değişmişse ErrConcurrentUpdate döner.
	UpdateFields(ctx context.Context, uid string, fields map[string]interface{}) error
	Delete(ctx context.Context, meet *models.Meet, deletedByUserID uint) error
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
}

// MeetRepository IMeetRepository arayüzünü uygular.
type MeetRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Meet]
}

// NewMeetRepository yeni bir MeetRepository örneği oluşturur.
func NewMeetRepository() IMeetRepository {
	db := configsdatabase.GetDB()
	base := NewBaseRepository[models.Meet](db)
	base.SetAllowedSortColumns([]string{"uid", "title", "date", "status_id", "created_at"})
	return &MeetRepository{db: db, base: base}
}

// NewMeetRepositoryTx transaction'a bağlı repository oluşturur.
func NewMeetRepositoryTx(tx *gorm.DB) IMeetRepository {
	base := NewBaseRepository[models.Meet](tx)
	base.SetAllowedSortColumns([]string{"uid", "title", "date", "status_id", "created_at"})
	return &MeetRepository{db: tx, base: base}
}

func (r *MeetRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// meetQuery ilişkili verileri her zaman birlikte yükler.
func (r *MeetRepository) meetQuery(ctx context.Context) *gorm.DB {
	return r.getDB(ctx).Preload("Status").Preload("Owner").Preload("Members")
}

// Create yeni bir buluşma oluşturur. UUID BeforeCreate hook'unda üretilir.
func (r *MeetRepository) Create(ctx context.Context, meet *models.Meet) error {
	if meet == nil || meet.OwnerID == 0 {
		return errors.New("sahibi olmayan buluşma oluşturulamaz")
	}
	return r.getDB(ctx).Create(meet).Error
}

func (r *MeetRepository) FindByUid(ctx context.Context, uid string, ownerID *uint) (*models.Meet, error) {
	if uid == "" {
		return nil, ErrNotFound
	}
	query := r.meetQuery(ctx).Where("uid = ?", uid)
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}
	var meet models.Meet
	if err := query.First(&meet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("MeetRepository.FindByUid: DB error", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}
	return &meet, nil
}

func (r *MeetRepository) FindAllByOwnerPaginated(ctx context.Context, ownerID uint, params queryparams.ListParams) ([]models.Meet, int64, error) {
	if ownerID == 0 {
		return nil, 0, errors.New("geçersiz User ID")
	}
	var meets []models.Meet
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Meet{}).Where("owner_id = ?", ownerID)
	if params.Name != "" {
		query = query.Where("lower(title) LIKE lower(?)", "%"+params.Name+"%")
	}
	if params.Status != "" {
		query = query.Where("status_id = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("MeetRepository.Count (Paginated by Owner): DB error", zap.Uint("ownerID", ownerID), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return meets, 0, nil
	}

	sortBy := params.SortBy
	if !r.base.AllowedSortColumn(sortBy) {
		configslog.SLog.Warn("Geçersiz Meet sıralama alanı istendi, varsayılan kullanılıyor.", zap.String("requestedSortBy", sortBy))
		sortBy = "created_at"
	}
	query = query.Order(sortBy + " " + params.OrderBy).
		Preload("Status").Preload("Owner").Preload("Members").
		Limit(params.PerPage).Offset(params.CalculateOffset())

	if err := query.Find(&meets).Error; err != nil {
		configslog.Log.Error("MeetRepository.Find (Paginated by Owner): DB error", zap.Uint("ownerID", ownerID), zap.Error(err))
		return nil, totalCount, err
	}
	return meets, totalCount, nil
}

// UpdateFields kaydı kısmi olarak günceller. RowsAffected 0 ise kayıt bu
// sırada silinmiştir: sessiz no-op yerine ErrConcurrentUpdate döner.
func (r *MeetRepository) UpdateFields(ctx context.Context, uid string, fields map[string]interface{}) error {
	if uid == "" || len(fields) == 0 {
		return errors.New("güncellenecek buluşma geçerli değil")
	}
	if userID := models.UserIDFromContext(ctx); userID != 0 {
		fields["updated_by"] = &userID
	}
	result := r.getDB(ctx).Model(&models.Meet{}).
		Where("uid = ? AND deleted_at IS NULL", uid).
		Updates(fields)
	if result.Error != nil {
		configslog.Log.Error("MeetRepository.UpdateFields: DB error", zap.String("uid", uid), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}

// Delete buluşmayı soft delete eder; katılımcıları aynı transaction içinde
// kalıcı olarak siler (cascade). (meet_uid, contact) unique index'i silinen
// kayıtlarla çakışmamalı.
func (r *MeetRepository) Delete(ctx context.Context, meet *models.Meet, deletedByUserID uint) error {
	if meet == nil || meet.Uid == "" {
		return errors.New("silinecek buluşma geçerli değil")
	}
	db := r.getDB(ctx)

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meet_uid = ?", meet.Uid).Delete(&models.Member{}).Error; err != nil {
			configslog.Log.Error("MeetRepository.Delete: katılımcılar silinemedi", zap.String("uid", meet.Uid), zap.Error(err))
			return err
		}

		now := time.Now().UTC()
		updateData := map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID}
		result := tx.Model(&models.Meet{}).Where("uid = ? AND deleted_at IS NULL", meet.Uid).Updates(updateData)
		if result.Error != nil {
			configslog.Log.Error("MeetRepository.Delete: DB error", zap.String("uid", meet.Uid), zap.Error(result.Error))
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *MeetRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	if ownerID == 0 {
		return 0, errors.New("geçersiz User ID")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.Meet{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

// Arayüz uyumluluğu kontrolü
var _ IMeetRepository = (*MeetRepository)(nil)
