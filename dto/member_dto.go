package dto

import (
	"time"

	"bulusma.link/models"
)

// CreateMemberWithMeetRequest buluşma oluşturma isteğinin içindeki katılımcı.
// Role boş bırakılırsa guest atanır.
type CreateMemberWithMeetRequest struct {
	Name      string `json:"name"`
	Companion string `json:"companion"`
	Contact   string `json:"contact"`
	Role      string `json:"role,omitempty"`
}

// RegisterMemberRequest mevcut bir buluşmaya tekil kayıt isteği.
type RegisterMemberRequest struct {
	Name      string `json:"name"`
	Companion string `json:"companion"`
	Contact   string `json:"contact"`
	MeetUid   string `json:"meet_uid"`
}

// UpdateMemberRequest kısmi güncelleme: sadece dolu alanlar uygulanır.
type UpdateMemberRequest struct {
	Name      string `json:"name,omitempty"`
	Companion string `json:"companion,omitempty"`
	Contact   string `json:"contact,omitempty"`
	Role      string `json:"role,omitempty"`
}

// MemberResponse katılımcının dışa dönük görünümü. QR token sadece
// kayıt/check-in cevaplarında döner, listelemelerde dönmez.
type MemberResponse struct {
	ID        uint          `json:"id"`
	Name      string        `json:"name"`
	Companion string        `json:"companion,omitempty"`
	Contact   string        `json:"contact"`
	Role      string        `json:"role"`
	MeetUid   string        `json:"meet_uid"`
	QrCode    string        `json:"qr_code,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	Meet      *MeetResponse `json:"meet,omitempty"`
}

// MapMemberToResponse modelden dışa dönük görünüme çevirir. withQr true ise
// check-in token'ı da cevaba eklenir.
func MapMemberToResponse(member *models.Member, withQr bool) MemberResponse {
	resp := MemberResponse{
		ID:        member.ID,
		Name:      member.Name,
		Companion: member.Companion,
		Contact:   member.Contact,
		Role:      string(member.Role),
		MeetUid:   member.MeetUid,
		CreatedAt: member.CreatedAt,
	}
	if withQr {
		resp.QrCode = member.QrCode
	}
	return resp
}

// MapMemberWithMeetToResponse katılımcıyı buluşma bilgisiyle birlikte çevirir
// (liste ve check-in görünümleri için).
func MapMemberWithMeetToResponse(member *models.Member, withQr bool) MemberResponse {
	resp := MapMemberToResponse(member, withQr)
	if member.Meet.Uid != "" {
		meetResp := MapMeetToResponse(&member.Meet)
		// İç içe cevapta katılımcı listesini tekrar etmeye gerek yok.
		meetResp.Members = nil
		resp.Meet = &meetResp
	}
	return resp
}
