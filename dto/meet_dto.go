package dto

import (
	"time"

	"bulusma.link/models"
)

// CreateMeetRequest buluşma oluşturma isteği. Members doluysa katılımcılar
// aynı transaction içinde oluşturulur.
type CreateMeetRequest struct {
	Title          string                    `json:"title"`
	Date           time.Time                 `json:"date"`
	Location       string                    `json:"location"`
	StatusID       int                       `json:"status_id"`
	LimitMembers   int                       `json:"limit_members"`
	AllowedPlusOne bool                      `json:"allowed_plus_one"`
	Members        []CreateMemberWithMeetRequest `json:"members,omitempty"`
}

// UpdateMeetRequest buluşma güncelleme isteği. Sahibi değiştirilemez.
type UpdateMeetRequest struct {
	Title          string    `json:"title"`
	Date           time.Time `json:"date"`
	Location       string    `json:"location"`
	StatusID       int       `json:"status_id"`
	LimitMembers   int       `json:"limit_members"`
	AllowedPlusOne bool      `json:"allowed_plus_one"`
}

// MeetStatusResponse durum bilgisinin dışa dönük görünümü.
type MeetStatusResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// MeetOwnerResponse sahibin herkese açık bilgileri.
type MeetOwnerResponse struct {
	ID            uint   `json:"id"`
	PublicName    string `json:"public_name"`
	PublicContact string `json:"public_contact"`
}

// MeetResponse buluşmanın dışa dönük görünümü.
type MeetResponse struct {
	Uid            string               `json:"uid"`
	Title          string               `json:"title"`
	Date           time.Time            `json:"date"`
	Location       string               `json:"location"`
	LimitMembers   int                  `json:"limit_members"`
	AllowedPlusOne bool                 `json:"allowed_plus_one"`
	OwnerID        uint                 `json:"owner_id"`
	Status         MeetStatusResponse   `json:"status"`
	Owner          *MeetOwnerResponse   `json:"owner,omitempty"`
	Members        []MemberResponse     `json:"members"`
}

// MapMeetToResponse modelden dışa dönük görünüme çevirir. İlişkilerin
// preload edilmiş olması beklenir.
func MapMeetToResponse(meet *models.Meet) MeetResponse {
	resp := MeetResponse{
		Uid:            meet.Uid,
		Title:          meet.Title,
		Date:           meet.Date,
		Location:       meet.Location,
		LimitMembers:   meet.LimitMembers,
		AllowedPlusOne: meet.AllowedPlusOne,
		OwnerID:        meet.OwnerID,
		Status: MeetStatusResponse{
			ID:          meet.Status.ID,
			Title:       meet.Status.Title,
			Description: meet.Status.Description,
		},
		Members: make([]MemberResponse, 0, len(meet.Members)),
	}
	if meet.Owner.ID != 0 {
		resp.Owner = &MeetOwnerResponse{
			ID:            meet.Owner.ID,
			PublicName:    meet.Owner.PublicName,
			PublicContact: meet.Owner.PublicContact,
		}
	}
	for i := range meet.Members {
		resp.Members = append(resp.Members, MapMemberToResponse(&meet.Members[i], false))
	}
	return resp
}
