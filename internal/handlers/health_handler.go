package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/workbridge/unified-identity/internal/database"
	"github.com/workbridge/unified-identity/internal/dto"
)

type HealthHandler struct {
	stores map[string]*gorm.DB
}

// NewHealthHandler takes the named store handles to ping (master plus the
// platform stores).
func NewHealthHandler(stores map[string]*gorm.DB) *HealthHandler {
	return &HealthHandler{stores: stores}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	stores := make(map[string]string, len(h.stores))
	for name, db := range h.stores {
		if err := database.Ping(db); err != nil {
			stores[name] = "unhealthy: " + err.Error()
			status = "degraded"
		} else {
			stores[name] = "ok"
		}
	}

	return c.JSON(dto.Response{
		Success: true,
		Data: dto.HealthData{
			Status:    status,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Stores:    stores,
		},
	})
}
