package controllers

import (
	"errors"
	"regexp"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"solohunter/backend/middleware"
	"solohunter/backend/models"
	"solohunter/backend/store"
	"solohunter/backend/utils"
)

type SettingsController struct {
	Store *store.Adapter
	Hub   *store.Hub
}

func NewSettingsController(st *store.Adapter, hub *store.Hub) *SettingsController {
	return &SettingsController{Store: st, Hub: hub}
}

var reminderTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// GetSettings godoc
// @Summary Get the caller's settings
// @Tags settings
// @Produce json
// @Success 200 {object} models.UserSettings
// @Security ApiKeyAuth
// @Router /settings [get]
func (sc *SettingsController) GetSettings(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var settings models.UserSettings
	err := sc.Store.DB().Where("user_id = ?", user.ID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Settings not found")
		}
		return utils.FromError(c, err)
	}

	return c.JSON(settings)
}

// UpdateSettings godoc
// @Summary Update notification, theme and daily-target preferences
// @Tags settings
// @Accept json
// @Produce json
// @Success 200 {object} models.UserSettings
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /settings [put]
func (sc *SettingsController) UpdateSettings(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	type SettingsInput struct {
		NotificationsEnabled *bool  `json:"notificationsEnabled"`
		ReminderTime         string `json:"reminderTime"`
		Theme                string `json:"theme"`
		DailyGoalTarget      *int   `json:"dailyGoalTarget"`
	}
	var input SettingsInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	errs := map[string]string{}
	if input.ReminderTime != "" && !reminderTimeRe.MatchString(input.ReminderTime) {
		errs["reminderTime"] = "expected HH:MM"
	}
	if input.DailyGoalTarget != nil && (*input.DailyGoalTarget < 1 || *input.DailyGoalTarget > 50) {
		errs["dailyGoalTarget"] = "dailyGoalTarget must be between 1 and 50"
	}
	if len(errs) > 0 {
		return utils.ValidationError(c, errs)
	}

	fields := map[string]interface{}{}
	if input.NotificationsEnabled != nil {
		fields["notifications_enabled"] = *input.NotificationsEnabled
	}
	if input.ReminderTime != "" {
		fields["reminder_time"] = input.ReminderTime
	}
	if input.Theme != "" {
		fields["theme"] = input.Theme
	}
	if input.DailyGoalTarget != nil {
		fields["daily_goal_target"] = *input.DailyGoalTarget
	}
	if len(fields) == 0 {
		return utils.BadRequest(c, "Nothing to update")
	}

	if err := sc.Store.DB().Model(&models.UserSettings{}).Where("user_id = ?", user.ID).Updates(fields).Error; err != nil {
		return utils.FromError(c, err)
	}

	var settings models.UserSettings
	if err := sc.Store.DB().Where("user_id = ?", user.ID).First(&settings).Error; err != nil {
		return utils.FromError(c, err)
	}

	sc.Hub.Broadcast(user.ID, "settings")
	return c.JSON(settings)
}
