package middleware

import (
	"github.com/gofiber/fiber/v2"

	"solohunter/backend/ratelimit"
	"solohunter/backend/utils"
)

// RateLimit rejects the request with 429 when the user has exhausted
// the action's window. Must run after Identity.
func RateLimit(limiter *ratelimit.Limiter, action ratelimit.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if !limiter.Allow(user.ID, action) {
			return utils.Error(c, fiber.StatusTooManyRequests, utils.ErrRateLimited)
		}
		return c.Next()
	}
}
