package models

// User buluşma oluşturabilen bir hesap sahibini temsil eder.
type User struct {
	BaseModel
	Email         string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	PasswordHash  string `gorm:"type:varchar(255);not null" json:"-"`
	PublicName    string `gorm:"type:varchar(100)" json:"public_name"`
	PublicContact string `gorm:"type:varchar(150)" json:"public_contact"`
	Role          string `gorm:"type:varchar(20);not null;default:'User'" json:"role"`
	IsSystem      bool   `gorm:"default:false" json:"-"` // Sistem kullanıcısı sahiplik kontrollerini atlar

	// İlişkiler
	Meets []Meet `gorm:"foreignKey:OwnerID" json:"-"`
}
