package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"solohunter/backend/middleware"
	"solohunter/backend/models"
	"solohunter/backend/store"
	"solohunter/backend/streak"
	"solohunter/backend/utils"
)

type StreakController struct {
	Store *store.Adapter
}

func NewStreakController(st *store.Adapter) *StreakController {
	return &StreakController{Store: st}
}

// GetStreak godoc
// @Summary Get the caller's streak state
// @Tags streak
// @Produce json
// @Success 200 {object} models.StreakRecord
// @Security ApiKeyAuth
// @Router /streak [get]
func (sc *StreakController) GetStreak(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var record models.StreakRecord
	err := sc.Store.DB().Where("user_id = ?", user.ID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Streak record not found")
		}
		return utils.FromError(c, err)
	}

	return c.JSON(record)
}

// GetAchievements godoc
// @Summary List achievement definitions with the caller's unlock state
// @Tags streak
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /streak/achievements [get]
func (sc *StreakController) GetAchievements(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	unlocks, err := store.List[models.AchievementUnlock](sc.Store, user.ID)
	if err != nil {
		return utils.FromError(c, err)
	}
	unlockedAt := map[string]models.AchievementUnlock{}
	for _, u := range unlocks {
		unlockedAt[u.AchievementID] = u
	}

	out := make([]fiber.Map, 0, len(streak.Achievements))
	for _, a := range streak.Achievements {
		entry := fiber.Map{
			"id":             a.ID,
			"title":          a.Title,
			"requiredStreak": a.RequiredStreak,
			"unlocked":       false,
		}
		if u, ok := unlockedAt[a.ID]; ok {
			entry["unlocked"] = true
			entry["unlockedAt"] = u.UnlockedAt
		}
		out = append(out, entry)
	}

	return c.JSON(fiber.Map{"achievements": out})
}
