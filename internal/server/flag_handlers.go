package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags handles GET /api/flags: the configured flags evaluated
// for the current user, so clients can gate UI without re-deploys.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	if s.flags == nil {
		return c.JSON(fiber.Map{"flags": map[string]bool{}})
	}
	return c.JSON(fiber.Map{"flags": s.flags.Snapshot(currentUserID(c))})
}
