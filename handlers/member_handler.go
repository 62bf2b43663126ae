package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"bulusma.link/configs"
	"bulusma.link/configs/configslog"
	"bulusma.link/dto"
	"bulusma.link/middlewares"
	"bulusma.link/services"
)

// MemberHandler katılımcı ve check-in uçları.
type MemberHandler struct {
	service services.IMemberService
	qr      services.IQrService
}

// NewMemberHandler yeni bir MemberHandler örneği oluşturur.
func NewMemberHandler() *MemberHandler {
	return &MemberHandler{
		service: services.NewMemberService(),
		qr:      services.NewQrService(),
	}
}

func memberErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrMemberNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrMemberMeetNotFound),
		errors.Is(err, services.ErrMemberDuplicateContact),
		errors.Is(err, services.ErrMemberInvalidRole),
		errors.Is(err, services.ErrMemberInvalidContact),
		errors.Is(err, services.ErrMemberNameRequired),
		errors.Is(err, services.ErrMemberInvalidInput):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ListMembers GET /api/members — tüm katılımcılar, buluşma bilgisiyle.
func (h *MemberHandler) ListMembers(c *fiber.Ctx) error {
	members, err := h.service.ListMembers(c.UserContext())
	if err != nil {
		configslog.Log.Error("ListMembers error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
	}

	resp := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		resp = append(resp, dto.MapMemberWithMeetToResponse(&members[i], false))
	}
	return c.JSON(resp)
}

// GetMember GET /api/members/:id — sadece buluşmanın sahibi görebilir.
func (h *MemberHandler) GetMember(c *fiber.Ctx) error {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "oturum gerekli"})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz katılımcı ID"})
	}

	member, err := h.service.GetMemberForOwner(c.UserContext(), uint(id), userID)
	if err != nil {
		status := memberErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("GetMember error", zap.Int("id", id), zap.Error(err))
			return c.Status(status).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(dto.MapMemberWithMeetToResponse(member, true))
}

// RegisterMember POST /api/members — herkese açık self-registration.
func (h *MemberHandler) RegisterMember(c *fiber.Ctx) error {
	var req dto.RegisterMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	member, err := h.service.RegisterMember(c.UserContext(), req)
	if err != nil {
		status := memberErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("RegisterMember error", zap.String("meetUid", req.MeetUid), zap.Error(err))
			return c.Status(status).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	// QR token kayıt cevabında döner: katılımcının check-in kimliği.
	return c.Status(fiber.StatusCreated).JSON(dto.MapMemberWithMeetToResponse(member, true))
}

// UpdateMember PUT /api/members/:id — kısmi güncelleme, sahiplik kapsamlı.
func (h *MemberHandler) UpdateMember(c *fiber.Ctx) error {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "oturum gerekli"})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz katılımcı ID"})
	}

	var req dto.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	if err := h.service.UpdateMember(c.UserContext(), uint(id), userID, req); err != nil {
		status := memberErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("UpdateMember error", zap.Int("id", id), zap.Uint("userID", userID), zap.Error(err))
			return c.Status(status).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMember DELETE /api/members/:id — sahiplik kapsamlı silme.
func (h *MemberHandler) DeleteMember(c *fiber.Ctx) error {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "oturum gerekli"})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz katılımcı ID"})
	}

	if err := h.service.DeleteMember(c.UserContext(), uint(id), userID); err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("DeleteMember error", zap.Int("id", id), zap.Uint("userID", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMemberByQr GET /api/members/qr/:code — check-in araması.
func (h *MemberHandler) GetMemberByQr(c *fiber.Ctx) error {
	code := c.Params("code")

	member, err := h.service.GetMemberByQr(c.UserContext(), code)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("GetMemberByQr error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
	}
	return c.JSON(dto.MapMemberWithMeetToResponse(member, true))
}

// GetMemberQrImage GET /api/members/qr/:code/image — token'ın PNG görseli.
// Token gerçek bir katılımcıya ait olmalı; içerik hiçbir zaman yorumlanmaz.
func (h *MemberHandler) GetMemberQrImage(c *fiber.Ctx) error {
	code := c.Params("code")

	member, err := h.service.GetMemberByQr(c.UserContext(), code)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("GetMemberQrImage error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
	}

	png, err := h.qr.GeneratePNG(member.QrCode, configs.GetConfig().QRImageSize)
	if err != nil {
		configslog.Log.Error("GetMemberQrImage: görsel üretilemedi", zap.Uint("memberID", member.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
