package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"bulusma.link/configs/configsdatabase"
	"bulusma.link/configs/configslog"
	"bulusma.link/dto"
	"bulusma.link/models"
	"bulusma.link/pkg/queryparams"
	"bulusma.link/repositories"
)

// MeetServiceError özel servis hataları
type MeetServiceError string

func (e MeetServiceError) Error() string { return string(e) }

const (
	ErrMeetNotFound       MeetServiceError = "buluşma bulunamadı"
	ErrMeetCreationFailed MeetServiceError = "buluşma oluşturulamadı"
	ErrMeetUpdateFailed   MeetServiceError = "buluşma güncellenemedi"
	ErrMeetDeletionFailed MeetServiceError = "buluşma silinemedi"
	ErrMeetUpdateConflict MeetServiceError = "buluşma bu sırada başka bir istek tarafından değiştirildi veya silindi"
	ErrMeetInvalidInput   MeetServiceError = "geçersiz girdi verisi"
	ErrMeetTitleRequired  MeetServiceError = "buluşma başlığı zorunludur"
	ErrMeetDateRequired   MeetServiceError = "buluşma tarihi zorunludur"
	ErrMeetInvalidLimit   MeetServiceError = "katılımcı limiti negatif olamaz"
	ErrMeetInvalidStatus  MeetServiceError = "geçersiz buluşma durumu"
	ErrMeetLimitExceeded  MeetServiceError = "katılımcı sayısı buluşma limitini aşıyor"
)

// IMeetService buluşma işlemleri için arayüz.
type IMeetService interface {
	// CreateMeetWithMembers buluşmayı ve varsa katılımcılarını tek atomik
	// transaction içinde oluşturur. Limit ve rol kontrolleri transaction
	// açılmadan yapılır; transaction içindeki her hata tam rollback bırakır.
	CreateMeetWithMembers(ctx context.Context, ownerID uint, req dto.CreateMeetRequest) (*models.Meet, error)
	GetMeetForOwner(ctx context.Context, uid string, ownerID uint) (*models.Meet, error)
	GetMeetPublic(ctx context.Context, uid string) (*models.Meet, error)
	ListMeetsForOwner(ctx context.Context, ownerID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateMeet(ctx context.Context, uid string, ownerID uint, req dto.UpdateMeetRequest) error
	DeleteMeet(ctx context.Context, uid string, ownerID uint) error
	GetMeetCountForOwner(ctx context.Context, ownerID uint) (int64, error)
}

// MeetService IMeetService arayüzünü uygular.
type MeetService struct {
	repo       repositories.IMeetRepository
	statusRepo repositories.IMeetStatusRepository
	qr         IQrService
	db         *gorm.DB // Transaction için
}

// NewMeetService yeni bir MeetService örneği oluşturur.
func NewMeetService() IMeetService {
	return &MeetService{
		repo:       repositories.NewMeetRepository(),
		statusRepo: repositories.NewMeetStatusRepository(),
		qr:         NewQrService(),
		db:         configsdatabase.GetDB(),
	}
}

// --- Yardımcı Fonksiyonlar ---

// ShiftLimit katılımcı sayısı limiti aşıyorsa true (reddet) döner.
// Limit 0 ise sınırsızdır; limite eşit sayı kabul edilir.
func ShiftLimit(req dto.CreateMeetRequest) bool {
	return req.LimitMembers != 0 && len(req.Members) > req.LimitMembers
}

// validateMeetInput oluşturma ve güncelleme için ortak alan kontrolleri.
func validateMeetInput(title string, dateZero bool, statusID, limitMembers int) error {
	if title == "" {
		return ErrMeetTitleRequired
	}
	if dateZero {
		return ErrMeetDateRequired
	}
	if limitMembers < 0 {
		return ErrMeetInvalidLimit
	}
	// Ucuz ön kontrol; kesin kontrol transaction içinde veritabanından yapılır.
	if !models.KnownStatusID(statusID) {
		return ErrMeetInvalidStatus
	}
	return nil
}

// --- Servis Metodları ---

// CreateMeetWithMembers kayıt iş akışının tamamı:
// limit -> rol -> transaction(durum -> buluşma -> katılımcılar) -> yeniden yükleme.
func (s *MeetService) CreateMeetWithMembers(ctx context.Context, ownerID uint, req dto.CreateMeetRequest) (*models.Meet, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("%w: geçersiz sahip ID", ErrMeetInvalidInput)
	}
	if err := validateMeetInput(req.Title, req.Date.IsZero(), req.StatusID, req.LimitMembers); err != nil {
		return nil, err
	}

	// Limit kontrolü: transaction açılmadan ucuz çıkış.
	if ShiftLimit(req) {
		return nil, ErrMeetLimitExceeded
	}
	// Rol ve contact kontrolleri de transaction öncesi yapılır.
	if !CheckRoleMembers(req) {
		return nil, ErrMemberInvalidRole
	}
	for _, m := range req.Members {
		if err := validateMemberInput(m.Name, m.Contact); err != nil {
			return nil, err
		}
	}

	var createdUid string
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, ownerID)
		meetRepoTx := repositories.NewMeetRepositoryTx(tx)
		memberRepoTx := repositories.NewMemberRepositoryTx(tx)
		statusRepoTx := repositories.NewMeetStatusRepositoryTx(tx)

		// a. Durum veritabanında gerçekten var mı?
		exists, err := statusRepoTx.Exists(txCtx, req.StatusID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrMeetInvalidStatus
		}

		// b. Buluşmayı oluştur; sahibi çağıran kullanıcı.
		meet := models.Meet{
			Title:          req.Title,
			Date:           req.Date,
			Location:       req.Location,
			StatusID:       req.StatusID,
			LimitMembers:   req.LimitMembers,
			AllowedPlusOne: req.AllowedPlusOne,
			OwnerID:        ownerID,
		}
		if err := meetRepoTx.Create(txCtx, &meet); err != nil {
			return ErrMeetCreationFailed
		}

		// c. Katılımcıları oluştur; her birine kendi QR token'ı.
		if len(req.Members) > 0 {
			members := make([]models.Member, 0, len(req.Members))
			for _, m := range req.Members {
				role := models.MemberRole(m.Role)
				if m.Role == "" {
					role = models.RoleGuest
				}
				members = append(members, models.Member{
					Name:      m.Name,
					Companion: m.Companion,
					Contact:   m.Contact,
					Role:      role,
					MeetUid:   meet.Uid,
					QrCode:    s.qr.GenerateToken(meet.Uid),
				})
			}
			if err := memberRepoTx.CreateBatch(txCtx, members); err != nil {
				if errors.Is(err, repositories.ErrDuplicate) {
					return ErrMemberDuplicateContact
				}
				return ErrMemberCreationFailed
			}
		}

		createdUid = meet.Uid
		return nil // Commit
	})
	if txErr != nil {
		// Rollback zaten yapıldı; iz bırakılmadı.
		return nil, txErr
	}

	// Oluşturulan buluşmayı ilişkileriyle yeniden yükle.
	created, err := s.repo.FindByUid(ctx, createdUid, nil)
	if err != nil {
		configslog.Log.Error("CreateMeetWithMembers: oluşturulan buluşma yeniden yüklenemedi", zap.String("uid", createdUid), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Buluşma başarıyla oluşturuldu: %s, Başlık: %s, Katılımcı: %d (Sahibi: %d)",
		created.Uid, created.Title, len(created.Members), ownerID)
	return created, nil
}

// GetMeetForOwner yönetim işlemleri için sahiplik kapsamlı okuma.
// Başkasına ait buluşma ile hiç olmayan buluşma ayırt edilmez.
func (s *MeetService) GetMeetForOwner(ctx context.Context, uid string, ownerID uint) (*models.Meet, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("%w: geçersiz kullanıcı ID", ErrMeetInvalidInput)
	}
	meet, err := s.repo.FindByUid(ctx, uid, &ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMeetNotFound
		}
		return nil, err
	}
	return meet, nil
}

// GetMeetPublic check-in ve herkese açık görünümler için kapsamsız okuma.
func (s *MeetService) GetMeetPublic(ctx context.Context, uid string) (*models.Meet, error) {
	meet, err := s.repo.FindByUid(ctx, uid, nil)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMeetNotFound
		}
		return nil, err
	}
	return meet, nil
}

// ListMeetsForOwner kullanıcının buluşmalarını sayfalayarak getirir.
func (s *MeetService) ListMeetsForOwner(ctx context.Context, ownerID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("%w: geçersiz kullanıcı ID", ErrMeetInvalidInput)
	}
	params.Validate()

	meets, totalCount, err := s.repo.FindAllByOwnerPaginated(ctx, ownerID, params)
	if err != nil {
		return nil, err
	} // Repo loglar

	data := make([]dto.MeetResponse, 0, len(meets))
	for i := range meets {
		data = append(data, dto.MapMeetToResponse(&meets[i]))
	}

	return &queryparams.PaginatedResult{
		Data: data,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateMeet sahibin buluşmasını günceller. Kayıt fetch ile güncelleme
// arasında silinmişse sessiz no-op yerine ErrMeetUpdateConflict döner.
func (s *MeetService) UpdateMeet(ctx context.Context, uid string, ownerID uint, req dto.UpdateMeetRequest) error {
	if uid == "" || ownerID == 0 {
		return fmt.Errorf("%w: geçersiz UID veya kullanıcı ID", ErrMeetInvalidInput)
	}
	if err := validateMeetInput(req.Title, req.Date.IsZero(), req.StatusID, req.LimitMembers); err != nil {
		return err
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, ownerID)
		meetRepoTx := repositories.NewMeetRepositoryTx(tx)
		statusRepoTx := repositories.NewMeetStatusRepositoryTx(tx)

		exists, err := statusRepoTx.Exists(txCtx, req.StatusID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrMeetInvalidStatus
		}

		// Kaydı sahiplik kapsamlı al. Fetch ile güncelleme arasındaki yarışı
		// aşağıdaki RowsAffected kontrolü yakalar.
		if _, err := meetRepoTx.FindByUid(txCtx, uid, &ownerID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrMeetNotFound
			}
			return err
		}

		fields := map[string]interface{}{
			"title":            req.Title,
			"date":             req.Date,
			"location":         req.Location,
			"status_id":        req.StatusID,
			"limit_members":    req.LimitMembers,
			"allowed_plus_one": req.AllowedPlusOne,
		}
		if err := meetRepoTx.UpdateFields(txCtx, uid, fields); err != nil {
			if errors.Is(err, repositories.ErrConcurrentUpdate) {
				return ErrMeetUpdateConflict
			}
			return ErrMeetUpdateFailed
		}
		return nil // Commit
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrMeetNotFound) {
			configslog.Log.Error("UpdateMeet transaction failed", zap.String("uid", uid), zap.Uint("ownerID", ownerID), zap.Error(txErr))
		}
		return txErr
	}
	configslog.SLog.Infof("Buluşma başarıyla güncellendi: %s (Güncelleyen: %d)", uid, ownerID)
	return nil
}

// DeleteMeet sahibin buluşmasını ve katılımcılarını siler (cascade).
func (s *MeetService) DeleteMeet(ctx context.Context, uid string, ownerID uint) error {
	if uid == "" || ownerID == 0 {
		return fmt.Errorf("%w: geçersiz UID veya kullanıcı ID", ErrMeetInvalidInput)
	}

	meet, err := s.repo.FindByUid(ctx, uid, &ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMeetNotFound
		}
		return err
	}

	ctxWithUser := models.ContextWithUserID(ctx, ownerID)
	if err := s.repo.Delete(ctxWithUser, meet, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMeetNotFound
		} // Zaten silinmişse
		configslog.Log.Error("DeleteMeet failed", zap.String("uid", uid), zap.Uint("ownerID", ownerID), zap.Error(err))
		return ErrMeetDeletionFailed
	}
	configslog.SLog.Infof("Buluşma ve katılımcıları silindi: %s (Silen: %d)", uid, ownerID)
	return nil
}

// GetMeetCountForOwner kullanıcının buluşma sayısını döndürür.
func (s *MeetService) GetMeetCountForOwner(ctx context.Context, ownerID uint) (int64, error) {
	count, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		configslog.Log.Error("Kullanıcı buluşma sayısı alınırken hata", zap.Uint("ownerID", ownerID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// Arayüz uyumluluğu kontrolü
var _ IMeetService = (*MeetService)(nil)
