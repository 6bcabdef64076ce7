package handlers

import (
	"crypto/subtle"

	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/feed"
	applog "github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/log"

	"github.com/gofiber/fiber/v2"
)

// SyncHandler exposes the CRM feed synchronizer on two surfaces: an admin UI
// action and a shared-secret HTTP trigger for schedulers.
type SyncHandler struct {
	Sync *feed.Synchronizer
	Key  string
}

// TriggerAdmin backs POST /admin/sync. Access control is RequireAdmin's job.
func (h *SyncHandler) TriggerAdmin(c *fiber.Ctx) error {
	rep := h.Sync.Run()
	if rep.Success {
		applog.Audit(c, "sync.run", map[string]any{"categories": rep.Categories, "products": rep.Products})
	} else {
		applog.Error(c, "sync.fail", nil, map[string]any{"kind": rep.ErrorKind, "error": rep.Error})
	}
	return render(c, "admin_sync", fiber.Map{"Report": rep})
}

// TriggerKey backs GET /api/v1/sync?key=...; a key mismatch yields 401.
func (h *SyncHandler) TriggerKey(c *fiber.Ctx) error {
	key := c.Query("key")
	if h.Key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.Key)) != 1 {
		applog.Security(c, "sync.denied", nil)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	rep := h.Sync.Run()
	if rep.Success {
		applog.Audit(c, "sync.run", map[string]any{"categories": rep.Categories, "products": rep.Products})
	}
	return c.JSON(rep)
}
