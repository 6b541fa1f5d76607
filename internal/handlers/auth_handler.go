package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/workbridge/unified-identity/internal/dto"
	"github.com/workbridge/unified-identity/internal/services"
	"github.com/workbridge/unified-identity/internal/store"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{
			Success: false, Message: "Invalid request body",
		})
	}

	data, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Response{
				Success: false, Message: err.Error(),
			})
		}
		if errors.Is(err, store.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.Response{
				Success: false, Message: "Email already registered",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Response{
			Success: false, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.Response{
		Success: true,
		Message: "Registration successful",
		Data:    data,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{
			Success: false, Message: "Invalid request body",
		})
	}

	data, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Response{
			Success: false, Message: "Internal server error",
		})
	}

	return c.JSON(dto.Response{Success: true, Data: data})
}
