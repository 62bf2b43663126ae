package repositories

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"bulusma.link/configs/configsdatabase"
	"bulusma.link/configs/configslog"
	"bulusma.link/models"
)

// IMemberRepository katılımcı veritabanı işlemleri için arayüz.
type IMemberRepository interface {
	FindAll(ctx context.Context) ([]models.Member, error)
	FindByID(ctx context.Context, id uint) (*models.Member, error)
	FindByQrCode(ctx context.Context, qrCode string) (*models.Member, error)
	FindAllByMeetUid(ctx context.Context, meetUid string) ([]models.Member, error)
	// Create tek bir katılımcı kaydeder. Aynı buluşmada aynı contact varsa
	// ErrDuplicate döner.
	Create(ctx context.Context, member *models.Member) error
	// CreateBatch bir buluşmanın katılımcılarını tek seferde kaydeder;
	// buluşma oluşturma transaction'ının parçasıdır.
	CreateBatch(ctx context.Context, members []models.Member) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

// MemberRepository IMemberRepository arayüzünü uygular.
type MemberRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Member]
}

// NewMemberRepository yeni bir MemberRepository örneği oluşturur.
func NewMemberRepository() IMemberRepository {
	db := configsdatabase.GetDB()
	return &MemberRepository{db: db, base: NewBaseRepository[models.Member](db)}
}

// NewMemberRepositoryTx transaction'a bağlı repository oluşturur.
func NewMemberRepositoryTx(tx *gorm.DB) IMemberRepository {
	return &MemberRepository{db: tx, base: NewBaseRepository[models.Member](tx)}
}

func (r *MemberRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// memberQuery buluşma, sahibi ve durumu her zaman birlikte yükler.
func (r *MemberRepository) memberQuery(ctx context.Context) *gorm.DB {
	return r.getDB(ctx).Preload("Meet").Preload("Meet.Owner").Preload("Meet.Status")
}

// isDuplicateErr unique index ihlalini yakalar. TranslateError açık
// olduğunda gorm.ErrDuplicatedKey döner; string kontrolü eski Postgres
// sürücü sürümleri için yedek.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// FindAll tüm katılımcıları ilişkileriyle döndürür (görüntüleme amaçlı snapshot).
func (r *MemberRepository) FindAll(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	if err := r.memberQuery(ctx).Order("id asc").Find(&members).Error; err != nil {
		configslog.Log.Error("MemberRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	return members, nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var member models.Member
	if err := r.memberQuery(ctx).First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("MemberRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &member, nil
}

// FindByQrCode check-in için QR token ile katılımcıyı bulur.
func (r *MemberRepository) FindByQrCode(ctx context.Context, qrCode string) (*models.Member, error) {
	if qrCode == "" {
		return nil, ErrNotFound
	}
	var member models.Member
	if err := r.memberQuery(ctx).Where("qr_code = ?", qrCode).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("MemberRepository.FindByQrCode: DB error", zap.Error(err))
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) FindAllByMeetUid(ctx context.Context, meetUid string) ([]models.Member, error) {
	if meetUid == "" {
		return nil, errors.New("geçersiz Meet UID")
	}
	var members []models.Member
	if err := r.getDB(ctx).Where("meet_uid = ?", meetUid).Order("id asc").Find(&members).Error; err != nil {
		configslog.Log.Error("MemberRepository.FindAllByMeetUid: DB error", zap.String("meetUid", meetUid), zap.Error(err))
		return nil, err
	}
	return members, nil
}

func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member == nil || member.MeetUid == "" {
		return errors.New("buluşması olmayan katılımcı oluşturulamaz")
	}
	if member.Role == "" {
		member.Role = models.RoleGuest
	}
	if err := r.getDB(ctx).Create(member).Error; err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicate
		}
		configslog.Log.Error("MemberRepository.Create: DB error", zap.String("meetUid", member.MeetUid), zap.Error(err))
		return err
	}
	return nil
}

func (r *MemberRepository) CreateBatch(ctx context.Context, members []models.Member) error {
	if len(members) == 0 {
		return nil
	}
	for i := range members {
		if members[i].Role == "" {
			members[i].Role = models.RoleGuest
		}
	}
	if err := r.getDB(ctx).Create(&members).Error; err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicate
		}
		configslog.Log.Error("MemberRepository.CreateBatch: DB error", zap.Int("count", len(members)), zap.Error(err))
		return err
	}
	return nil
}

// Update verilen sütunları kısmi olarak günceller.
func (r *MemberRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if id == 0 || len(fields) == 0 {
		return errors.New("güncellenecek katılımcı geçerli değil")
	}
	result := r.getDB(ctx).Model(&models.Member{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if isDuplicateErr(result.Error) {
			return ErrDuplicate
		}
		configslog.Log.Error("MemberRepository.Update: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrNotFound
	}
	result := r.getDB(ctx).Delete(&models.Member{}, id)
	if result.Error != nil {
		configslog.Log.Error("MemberRepository.Delete: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Arayüz uyumluluğu kontrolü
var _ IMemberRepository = (*MemberRepository)(nil)
