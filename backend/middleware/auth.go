package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"solohunter/backend/config"
	"solohunter/backend/models"
	"solohunter/backend/utils"
)

const userLocal = "currentUser"

// Identity resolves the calling user from the X-Firebase-Uid header or,
// failing that, a locally minted JWT in Authorization. 401 when neither
// is present, 404 when the uid maps to no known user.
func Identity(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid := c.Get("X-Firebase-Uid")
		if uid == "" {
			var err error
			uid, err = utils.ExtractUIDFromToken(c, cfg)
			if err != nil {
				return utils.Unauthorized(c, "Missing X-Firebase-Uid header")
			}
		}

		var user models.User
		if err := db.Where("firebase_uid = ?", uid).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound(c, "Unknown user")
			}
			return utils.FromError(c, err)
		}

		c.Locals(userLocal, &user)
		return c.Next()
	}
}

// CurrentUser returns the user resolved by Identity. Only valid on
// routes behind that middleware.
func CurrentUser(c *fiber.Ctx) *models.User {
	return c.Locals(userLocal).(*models.User)
}
