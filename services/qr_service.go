package services

import (
	"encoding/base64"
	"errors"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// maxTokenLength qr_code sütununun genişliği; üretilen token bunu aşamaz.
const maxTokenLength = 160

// IQrService check-in token üretimi ve QR görseli için arayüz.
type IQrService interface {
	// GenerateToken katılımcının check-in kimliği olacak opak token'ı üretir.
	// Token kriptografik rastgele bir UUID ile buluşma UID'sinin
	// base64url kodlamasıdır; tahmin edilemez ve çakışma ihtimali ihmal
	// edilebilir düzeydedir. Çakışma olursa veritabanındaki unique index yakalar.
	GenerateToken(meetUid string) string
	// GeneratePNG verilen veriyi PNG QR görseline çevirir. İçerik hiçbir
	// zaman yorumlanmaz, sadece kodlanır.
	GeneratePNG(data string, size int) ([]byte, error)
}

// QrService IQrService arayüzünü uygular.
type QrService struct{}

// NewQrService yeni bir QrService örneği oluşturur.
func NewQrService() IQrService {
	return &QrService{}
}

func (s *QrService) GenerateToken(meetUid string) string {
	source := uuid.NewString() + "-" + meetUid
	token := base64.RawURLEncoding.EncodeToString([]byte(source))
	if len(token) > maxTokenLength {
		token = token[:maxTokenLength]
	}
	return token
}

func (s *QrService) GeneratePNG(data string, size int) ([]byte, error) {
	if data == "" {
		return nil, errors.New("kodlanacak veri boş olamaz")
	}
	if size <= 0 {
		return nil, errors.New("geçersiz görsel boyutu")
	}
	return qrcode.Encode(data, qrcode.Medium, size)
}

// Arayüz uyumluluğu kontrolü
var _ IQrService = (*QrService)(nil)
