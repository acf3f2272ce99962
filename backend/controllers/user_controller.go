package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"solohunter/backend/middleware"
	"solohunter/backend/models"
	"solohunter/backend/store"
	"solohunter/backend/utils"
)

type UserController struct {
	Store *store.Adapter
	Hub   *store.Hub
}

func NewUserController(st *store.Adapter, hub *store.Hub) *UserController {
	return &UserController{Store: st, Hub: hub}
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags user
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	// Re-read so the profile reflects any completion that landed since
	// the middleware resolved the user.
	var fresh models.User
	if err := uc.Store.DB().First(&fresh, user.ID).Error; err != nil {
		return utils.FromError(c, err)
	}

	return c.JSON(fresh)
}

// UpdateProfile godoc
// @Summary Update display name or email
// @Description XP, level, rank and streak are derived state and never directly writable
// @Tags user
// @Accept json
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	type ProfileInput struct {
		DisplayName string `json:"displayName"`
		Email       string `json:"email"`
	}
	var input ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	fields := map[string]interface{}{}
	if input.DisplayName != "" {
		fields["display_name"] = input.DisplayName
	}
	if input.Email != "" {
		fields["email"] = input.Email
	}
	if len(fields) == 0 {
		return utils.BadRequest(c, "Nothing to update")
	}

	if err := uc.Store.DB().Model(&models.User{}).Where("id = ?", user.ID).Updates(fields).Error; err != nil {
		return utils.FromError(c, err)
	}

	var fresh models.User
	if err := uc.Store.DB().First(&fresh, user.ID).Error; err != nil {
		return utils.FromError(c, err)
	}

	uc.Hub.Broadcast(user.ID, "profile")
	return c.JSON(fresh)
}

// ResetData godoc
// @Summary Wipe the caller's data and restore defaults
// @Description Deletes goals, notes, calendar events and unlocks; zeroes the profile progress; reseeds categories, streak and settings
// @Tags user
// @Produce json
// @Success 200 {object} models.User
// @Security ApiKeyAuth
// @Router /user/reset [post]
func (uc *UserController) ResetData(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	err := uc.Store.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Goal{}, &models.Note{}, &models.CalendarEvent{},
			&models.Category{}, &models.AchievementUnlock{},
		} {
			if err := tx.Where("user_id = ?", user.ID).Delete(model).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"level":      1,
			"current_xp": 0,
			"total_xp":   0,
			"rank":       "E-Rank",
			"streak":     0,
		}).Error; err != nil {
			return err
		}

		// Streak and settings rows are singletons per user; reset them
		// in place rather than delete-and-recreate.
		if err := tx.Model(&models.StreakRecord{}).Where("user_id = ?", user.ID).Updates(map[string]interface{}{
			"current_streak":       0,
			"longest_streak":       0,
			"last_completion_date": "",
			"total_completions":    0,
			"weekly_progress":      "0000000",
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.UserSettings{}).Where("user_id = ?", user.ID).Updates(map[string]interface{}{
			"notifications_enabled": true,
			"reminder_time":         "09:00",
			"theme":                 "dark",
			"daily_goal_target":     3,
		}).Error; err != nil {
			return err
		}
		categories := models.DefaultCategories(user.ID)
		return tx.Create(&categories).Error
	})
	if err != nil {
		return utils.FromError(c, err)
	}

	var fresh models.User
	if err := uc.Store.DB().First(&fresh, user.ID).Error; err != nil {
		return utils.FromError(c, err)
	}

	for _, collection := range []string{"goals", "notes", "calendar-events", "categories", "profile"} {
		uc.Hub.Broadcast(user.ID, collection)
	}
	return c.JSON(fresh)
}
