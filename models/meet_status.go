package models

// MeetStatus sabit, seed ile doldurulan buluşma yaşam döngüsü durumları.
// Çalışma zamanında salt okunurdur.
type MeetStatus struct {
	ID          int    `gorm:"primarykey" json:"id"`
	Title       string `gorm:"type:varchar(60);uniqueIndex;not null" json:"title"`
	Description string `gorm:"type:varchar(120)" json:"description,omitempty"`
}

// Seed edilen durum ID'leri. Sıra veritabanındaki kayıtlarla birebir aynı olmalı.
const (
	StatusPlanned             = 1
	StatusInProgress          = 2
	StatusCompleted           = 3
	StatusCancelled           = 4
	StatusOpenForRegistration = 5
)

// KnownStatusID verilen ID'nin seed edilen aralıkta olup olmadığını söyler.
// Kesin kontrol transaction içinde veritabanından yapılır, bu sadece ucuz ön kontrol.
func KnownStatusID(id int) bool {
	return id >= StatusPlanned && id <= StatusOpenForRegistration
}
