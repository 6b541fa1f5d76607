package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/workbridge/unified-identity/internal/dto"
	"github.com/workbridge/unified-identity/internal/middleware"
	"github.com/workbridge/unified-identity/internal/services"
	"github.com/workbridge/unified-identity/internal/store"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile returns the unified dashboard view for the authenticated
// canonical identity.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{
			Success: false, Message: "Unauthorized",
		})
	}

	data, err := h.profileService.GetUnifiedProfile(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Response{
				Success: false, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Response{
			Success: false, Message: "Internal server error",
		})
	}

	return c.JSON(dto.Response{Success: true, Data: data})
}
