package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"bulusma.link/configs/configslog"
	"bulusma.link/dto"
	"bulusma.link/middlewares"
	"bulusma.link/pkg/queryparams"
	"bulusma.link/services"
)

// MeetHandler buluşma yönetimi uçları.
type MeetHandler struct {
	service services.IMeetService
}

// NewMeetHandler yeni bir MeetHandler örneği oluşturur.
func NewMeetHandler() *MeetHandler {
	return &MeetHandler{service: services.NewMeetService()}
}

// meetErrorStatus servis hatasını HTTP koduna çevirir.
func meetErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrMeetNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrMeetUpdateConflict):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrMeetLimitExceeded),
		errors.Is(err, services.ErrMeetInvalidStatus),
		errors.Is(err, services.ErrMeetInvalidLimit),
		errors.Is(err, services.ErrMeetTitleRequired),
		errors.Is(err, services.ErrMeetDateRequired),
		errors.Is(err, services.ErrMeetInvalidInput),
		errors.Is(err, services.ErrMemberInvalidRole),
		errors.Is(err, services.ErrMemberInvalidContact),
		errors.Is(err, services.ErrMemberNameRequired),
		errors.Is(err, services.ErrMemberDuplicateContact):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ListMeets GET /api/meets — çağıran kullanıcının buluşmaları.
func (h *MeetHandler) ListMeets(c *fiber.Ctx) error {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "oturum gerekli"})
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.ListMeetsForOwner(c.UserContext(), userID, params)
	if err != nil {
		configslog.Log.Error("ListMeets error", zap.Uint("userID", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
	}
	return c.JSON(result)
}

// GetMeet GET /api/meets/:uid — herkese açık okuma.
func (h *MeetHandler) GetMeet(c *fiber.Ctx) error {
	uid := c.Params("uid")

	meet, err := h.service.GetMeetPublic(c.UserContext(), uid)
	if err != nil {
		if errors.Is(err, services.ErrMeetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("GetMeet error", zap.String("uid", uid), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
	}
	return c.JSON(dto.MapMeetToResponse(meet))
}

// CreateMeet POST /api/meets — buluşmayı ve varsa katılımcılarını oluşturur.
func (h *MeetHandler) CreateMeet(c *fiber.Ctx) error {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "oturum gerekli"})
	}

	var req dto.CreateMeetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	meet, err := h.service.CreateMeetWithMembers(c.UserContext(), userID, req)
	if err != nil {
		status := meetErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("CreateMeet error", zap.Uint("userID", userID), zap.Error(err))
			return c.Status(status).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MapMeetToResponse(meet))
}

// UpdateMeet PUT /api/meets/:uid — sadece sahibi güncelleyebilir.
func (h *MeetHandler) UpdateMeet(c *fiber.Ctx) error {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "oturum gerekli"})
	}
	uid := c.Params("uid")

	var req dto.UpdateMeetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	if err := h.service.UpdateMeet(c.UserContext(), uid, userID, req); err != nil {
		status := meetErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("UpdateMeet error", zap.String("uid", uid), zap.Uint("userID", userID), zap.Error(err))
			return c.Status(status).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMeet DELETE /api/meets/:uid — katılımcılarıyla birlikte siler.
func (h *MeetHandler) DeleteMeet(c *fiber.Ctx) error {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "oturum gerekli"})
	}
	uid := c.Params("uid")

	if err := h.service.DeleteMeet(c.UserContext(), uid, userID); err != nil {
		if errors.Is(err, services.ErrMeetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("DeleteMeet error", zap.String("uid", uid), zap.Uint("userID", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
