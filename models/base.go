package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

// CtxUserIDKey transaction context'inde işlemi yapan kullanıcı ID'sini taşır.
// BeforeCreate/BeforeUpdate hookları audit alanlarını buradan doldurur.
const CtxUserIDKey contextKey = "user_id"

// ContextWithUserID audit hookları için context'e kullanıcı ID'sini ekler.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, CtxUserIDKey, userID)
}

// UserIDFromContext context'teki kullanıcı ID'sini döndürür, yoksa 0.
func UserIDFromContext(ctx context.Context) uint {
	if id, ok := ctx.Value(CtxUserIDKey).(uint); ok {
		return id
	}
	return 0
}

// BaseModel tüm ana tablolarda ortak olan kimlik, zaman ve audit alanları.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *uint          `gorm:"index" json:"-"`
	UpdatedBy *uint          `json:"-"`
	DeletedBy *uint          `json:"-"`
}

// BeforeCreate CreatedBy alanını context'teki kullanıcıdan doldurur.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if userID := UserIDFromContext(tx.Statement.Context); userID != 0 {
		b.CreatedBy = &userID
	}
	return nil
}

// BeforeUpdate UpdatedBy alanını context'teki kullanıcıdan doldurur.
func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID := UserIDFromContext(tx.Statement.Context); userID != 0 {
		b.UpdatedBy = &userID
	}
	return nil
}
