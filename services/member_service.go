package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"bulusma.link/configs/configslog"
	"bulusma.link/dto"
	"bulusma.link/models"
	"bulusma.link/repositories"
)

// MemberServiceError özel servis hataları
type MemberServiceError string

func (e MemberServiceError) Error() string { return string(e) }

const (
	ErrMemberNotFound         MemberServiceError = "katılımcı bulunamadı"
	ErrMemberCreationFailed   MemberServiceError = "katılımcı oluşturulamadı"
	ErrMemberUpdateFailed     MemberServiceError = "katılımcı güncellenemedi"
	ErrMemberDeletionFailed   MemberServiceError = "katılımcı silinemedi"
	ErrMemberInvalidInput     MemberServiceError = "geçersiz katılımcı verisi"
	ErrMemberNameRequired     MemberServiceError = "katılımcı adı zorunludur"
	ErrMemberInvalidRole      MemberServiceError = "geçersiz katılımcı rolü"
	ErrMemberInvalidContact   MemberServiceError = "iletişim adresi geçerli bir e-posta olmalı"
	ErrMemberDuplicateContact MemberServiceError = "bu iletişim adresi bu buluşmaya zaten kayıtlı"
	ErrMemberMeetNotFound     MemberServiceError = "kayıt olunacak buluşma bulunamadı"
)

// contactPattern e-posta biçimi için kaba kontrol; kesin doğrulama değil.
var contactPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IMemberService katılımcı işlemleri için arayüz. Sahiplik gerektiren
// işlemler çağıran kullanıcının ID'sini açık parametre olarak alır.
type IMemberService interface {
	// RegisterMember mevcut bir buluşmaya tekil kayıt (self-registration).
	// Katılımcıya taze bir QR token verilir.
	RegisterMember(ctx context.Context, req dto.RegisterMemberRequest) (*models.Member, error)
	ListMembers(ctx context.Context) ([]models.Member, error)
	// GetMemberForOwner katılımcıyı sadece buluşmasının sahibine gösterir.
	// Başkasına ait katılımcı ile hiç olmayan katılımcı ayırt edilmez.
	GetMemberForOwner(ctx context.Context, id uint, callerUserID uint) (*models.Member, error)
	GetMemberByQr(ctx context.Context, token string) (*models.Member, error)
	UpdateMember(ctx context.Context, id uint, callerUserID uint, req dto.UpdateMemberRequest) error
	DeleteMember(ctx context.Context, id uint, callerUserID uint) error
}

// MemberService IMemberService arayüzünü uygular.
type MemberService struct {
	repo     repositories.IMemberRepository
	meetRepo repositories.IMeetRepository
	qr       IQrService
}

// NewMemberService yeni bir MemberService örneği oluşturur.
func NewMemberService() IMemberService {
	return &MemberService{
		repo:     repositories.NewMemberRepository(),
		meetRepo: repositories.NewMeetRepository(),
		qr:       NewQrService(),
	}
}

// --- Yardımcı Fonksiyonlar ---

// CheckRoleMembers istekteki tüm roller boş ya da tanımlı ise true döner.
// Genel validasyon hatası yerine alana özgü mesaj dönebilmek için ayrı kontrol.
func CheckRoleMembers(req dto.CreateMeetRequest) bool {
	for _, m := range req.Members {
		if m.Role != "" && !models.MemberRole(m.Role).IsValid() {
			return false
		}
	}
	return true
}

// validateMemberInput ad ve iletişim adresi için ortak kontroller.
func validateMemberInput(name, contact string) error {
	if name == "" {
		return ErrMemberNameRequired
	}
	if !contactPattern.MatchString(contact) {
		return ErrMemberInvalidContact
	}
	return nil
}

// --- Servis Metodları ---

func (s *MemberService) RegisterMember(ctx context.Context, req dto.RegisterMemberRequest) (*models.Member, error) {
	if err := validateMemberInput(req.Name, req.Contact); err != nil {
		return nil, err
	}
	if req.MeetUid == "" {
		return nil, fmt.Errorf("%w: buluşma UID zorunludur", ErrMemberInvalidInput)
	}

	// Buluşma var mı? Self-registration herkese açık (kapsamsız) okuma kullanır.
	if _, err := s.meetRepo.FindByUid(ctx, req.MeetUid, nil); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberMeetNotFound
		}
		return nil, err
	}

	member := models.Member{
		Name:      req.Name,
		Companion: req.Companion,
		Contact:   req.Contact,
		Role:      models.RoleGuest,
		MeetUid:   req.MeetUid,
		QrCode:    s.qr.GenerateToken(req.MeetUid),
	}
	if err := s.repo.Create(ctx, &member); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrMemberDuplicateContact
		}
		configslog.Log.Error("RegisterMember failed", zap.String("meetUid", req.MeetUid), zap.Error(err))
		return nil, ErrMemberCreationFailed
	}

	// İlişkileri doldurmak için yeniden yükle.
	created, err := s.repo.FindByID(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	configslog.SLog.Infof("Katılımcı kaydedildi: ID %d, Buluşma: %s", created.ID, req.MeetUid)
	return created, nil
}

// ListMembers tüm katılımcıları buluşma/sahip/durum bilgisiyle döndürür.
func (s *MemberService) ListMembers(ctx context.Context) ([]models.Member, error) {
	return s.repo.FindAll(ctx)
}

func (s *MemberService) GetMemberForOwner(ctx context.Context, id uint, callerUserID uint) (*models.Member, error) {
	if callerUserID == 0 {
		return nil, fmt.Errorf("%w: geçersiz kullanıcı ID", ErrMemberInvalidInput)
	}
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	// Sahiplik kontrolü: varlık bilgisi sızdırılmaz, yetkisizlik de
	// "bulunamadı" olarak döner.
	if member.Meet.Uid == "" || member.Meet.OwnerID != callerUserID {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

// GetMemberByQr check-in: QR token ile kapsamsız katılımcı araması.
func (s *MemberService) GetMemberByQr(ctx context.Context, token string) (*models.Member, error) {
	if token == "" {
		return nil, ErrMemberNotFound
	}
	member, err := s.repo.FindByQrCode(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// UpdateMember kısmi güncelleme: sadece dolu alanlar uygulanır. Rol dolu ama
// tanımsızsa ErrMemberInvalidRole döner.
func (s *MemberService) UpdateMember(ctx context.Context, id uint, callerUserID uint, req dto.UpdateMemberRequest) error {
	member, err := s.GetMemberForOwner(ctx, id, callerUserID)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Companion != "" {
		fields["companion"] = req.Companion
	}
	if req.Contact != "" {
		if !contactPattern.MatchString(req.Contact) {
			return ErrMemberInvalidContact
		}
		fields["contact"] = req.Contact
	}
	if req.Role != "" {
		if !models.MemberRole(req.Role).IsValid() {
			return ErrMemberInvalidRole
		}
		fields["role"] = req.Role
	}
	if len(fields) == 0 {
		return nil // Değişiklik yok
	}

	ctxWithUser := models.ContextWithUserID(ctx, callerUserID)
	if err := s.repo.Update(ctxWithUser, member.ID, fields); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrMemberDuplicateContact
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		configslog.Log.Error("UpdateMember failed", zap.Uint("id", id), zap.Uint("callerUserID", callerUserID), zap.Error(err))
		return ErrMemberUpdateFailed
	}
	configslog.SLog.Infof("Katılımcı güncellendi: ID %d (Güncelleyen: %d)", id, callerUserID)
	return nil
}

// DeleteMember sahiplik kapsamlı silme.
func (s *MemberService) DeleteMember(ctx context.Context, id uint, callerUserID uint) error {
	member, err := s.GetMemberForOwner(ctx, id, callerUserID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, member.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		configslog.Log.Error("DeleteMember failed", zap.Uint("id", id), zap.Error(err))
		return ErrMemberDeletionFailed
	}
	configslog.SLog.Infof("Katılımcı silindi: ID %d (Silen: %d)", id, callerUserID)
	return nil
}

// Arayüz uyumluluğu kontrolü
var _ IMemberService = (*MemberService)(nil)
