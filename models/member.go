package models

import "time"

// MemberRole katılımcının buluşmadaki rolünü tanımlar.
type MemberRole string

const (
	RoleMain  MemberRole = "main"  // Buluşmanın ana kişisi
	RoleAdmin MemberRole = "admin" // Yönetici
	RoleStaff MemberRole = "staff" // Görevli
	RoleGuest MemberRole = "guest" // Misafir (varsayılan)
)

// IsValid rolün tanımlı değerlerden biri olup olmadığını söyler.
func (r MemberRole) IsValid() bool {
	switch r {
	case RoleMain, RoleAdmin, RoleStaff, RoleGuest:
		return true
	}
	return false
}

// Member bir buluşmaya yapılmış tek bir kayıt (katılımcı).
// Soft delete kullanılmaz: (meet_uid, contact) unique index'i silinen
// kayıtların aynı contact ile yeniden kaydolmasını engellememeli.
type Member struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	Name      string     `gorm:"type:varchar(60);not null" json:"name"`
	Companion string     `gorm:"type:varchar(60)" json:"companion"`
	Contact   string     `gorm:"type:varchar(80);not null;index:idx_member_meet_contact,unique" json:"contact"`
	Role      MemberRole `gorm:"type:varchar(20);not null;default:'guest'" json:"role"`
	MeetUid   string     `gorm:"type:uuid;not null;index:idx_member_meet_contact,unique" json:"meet_uid"`
	QrCode    string     `gorm:"type:varchar(160);uniqueIndex;not null" json:"qr_code"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// İlişki
	Meet Meet `gorm:"foreignKey:MeetUid;references:Uid" json:"-"`
}
