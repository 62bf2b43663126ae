package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meet tek bir kullanıcıya ait buluşmayı (etkinliği) temsil eder.
// Birincil anahtar UUID'dir; sahibi oluşturulduktan sonra değişmez.
type Meet struct {
	Uid            string         `gorm:"type:uuid;primaryKey" json:"uid"`
	Title          string         `gorm:"type:varchar(160);not null" json:"title"`
	Date           time.Time      `gorm:"index" json:"date"`
	Location       string         `gorm:"type:varchar(260)" json:"location"`
	StatusID       int            `gorm:"not null;index" json:"status_id"`
	LimitMembers   int            `gorm:"not null;default:0" json:"limit_members"` // 0 = limitsiz
	AllowedPlusOne bool           `gorm:"default:false" json:"allowed_plus_one"`
	OwnerID        uint           `gorm:"not null;index" json:"owner_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy      *uint          `json:"-"`
	UpdatedBy      *uint          `json:"-"`
	DeletedBy      *uint          `json:"-"`

	// İlişkiler
	Status  MeetStatus `gorm:"foreignKey:StatusID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Owner   User       `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Members []Member   `gorm:"foreignKey:MeetUid;references:Uid;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// BeforeCreate UUID üretir ve audit alanını doldurur.
func (m *Meet) BeforeCreate(tx *gorm.DB) error {
	if m.Uid == "" {
		m.Uid = uuid.NewString()
	}
	if userID := UserIDFromContext(tx.Statement.Context); userID != 0 {
		m.CreatedBy = &userID
	}
	return nil
}

// BeforeUpdate UpdatedBy alanını context'teki kullanıcıdan doldurur.
func (m *Meet) BeforeUpdate(tx *gorm.DB) error {
	if userID := UserIDFromContext(tx.Statement.Context); userID != 0 {
		m.UpdatedBy = &userID
	}
	return nil
}
