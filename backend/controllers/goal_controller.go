package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"solohunter/backend/config"
	"solohunter/backend/events"
	"solohunter/backend/middleware"
	"solohunter/backend/models"
	"solohunter/backend/progression"
	"solohunter/backend/store"
	"solohunter/backend/streak"
	"solohunter/backend/utils"
)

type GoalController struct {
	Store *store.Adapter
	Hub   *store.Hub
	Bus   *events.Bus
	Cfg   *config.Config
}

func NewGoalController(st *store.Adapter, hub *store.Hub, bus *events.Bus, cfg *config.Config) *GoalController {
	return &GoalController{Store: st, Hub: hub, Bus: bus, Cfg: cfg}
}

type goalInput struct {
	CategoryID  uint              `json:"categoryId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.GoalStatus `json:"status"`
	Priority    models.Priority   `json:"priority"`
	XPReward    int               `json:"xpReward"`
	DueDate     *time.Time        `json:"dueDate"`
}

func validateGoalInput(in goalInput, partial bool) map[string]string {
	errs := map[string]string{}
	if !partial && in.Title == "" {
		errs["title"] = "title is required"
	}
	if in.Status != "" && !in.Status.Valid() {
		errs["status"] = "unknown status"
	}
	if in.Priority != "" && !in.Priority.Valid() {
		errs["priority"] = "unknown priority"
	}
	if in.XPReward != 0 && (in.XPReward < models.MinXPReward || in.XPReward > models.MaxXPReward) {
		errs["xpReward"] = "xpReward must be between 1 and 100"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GetGoals godoc
// @Summary List the user's goals, newest first
// @Tags goals
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /goals [get]
func (gc *GoalController) GetGoals(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	goals, err := store.List[models.Goal](gc.Store, user.ID)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.JSON(fiber.Map{"goals": goals})
}

// GetGoal godoc
// @Summary Get one goal
// @Tags goals
// @Produce json
// @Success 200 {object} models.Goal
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /goals/{id} [get]
func (gc *GoalController) GetGoal(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid goal id")
	}

	goal, err := store.Get[models.Goal](gc.Store, user.ID, uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.JSON(goal)
}

// CreateGoal godoc
// @Summary Create a goal
// @Tags goals
// @Accept json
// @Produce json
// @Success 201 {object} models.Goal
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /goals [post]
func (gc *GoalController) CreateGoal(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input goalInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := validateGoalInput(input, false); errs != nil {
		return utils.ValidationError(c, errs)
	}

	goal := models.Goal{
		UserID:      user.ID,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		Status:      models.GoalPending,
		Priority:    models.PriorityMedium,
		XPReward:    25,
		DueDate:     input.DueDate,
	}
	if input.Status != "" {
		goal.Status = input.Status
	}
	if input.Priority != "" {
		goal.Priority = input.Priority
	}
	if input.XPReward != 0 {
		goal.XPReward = input.XPReward
	}
	// Goals are never born completed; the completion endpoint owns that
	// transition and the XP it grants.
	if goal.Status == models.GoalCompleted {
		return utils.ValidationError(c, map[string]string{"status": "use the complete endpoint"})
	}

	if err := store.Create(gc.Store, &goal); err != nil {
		return utils.FromError(c, err)
	}

	gc.Hub.Broadcast(user.ID, "goals")
	return utils.Created(c, goal)
}

// UpdateGoal godoc
// @Summary Update goal fields
// @Tags goals
// @Accept json
// @Produce json
// @Success 200 {object} models.Goal
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /goals/{id} [put]
func (gc *GoalController) UpdateGoal(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid goal id")
	}

	var input goalInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := validateGoalInput(input, true); errs != nil {
		return utils.ValidationError(c, errs)
	}
	if input.Status == models.GoalCompleted {
		return utils.ValidationError(c, map[string]string{"status": "use the complete endpoint"})
	}

	stored, err := store.Get[models.Goal](gc.Store, user.ID, uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	// Completed is terminal: completedAt stays in lockstep with the
	// status, so a finished goal never moves back to an open state.
	if stored.Status == models.GoalCompleted && input.Status != "" {
		return utils.ValidationError(c, map[string]string{"status": "goal is already completed"})
	}

	fields := map[string]interface{}{}
	if input.Title != "" {
		fields["title"] = input.Title
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if input.CategoryID != 0 {
		fields["category_id"] = input.CategoryID
	}
	if input.Status != "" {
		fields["status"] = input.Status
	}
	if input.Priority != "" {
		fields["priority"] = input.Priority
	}
	if input.XPReward != 0 {
		fields["xp_reward"] = input.XPReward
	}
	if input.DueDate != nil {
		fields["due_date"] = input.DueDate
	}
	if len(fields) == 0 {
		return utils.BadRequest(c, "Nothing to update")
	}

	if err := store.Update[models.Goal](gc.Store, user.ID, uint(id), fields); err != nil {
		return utils.FromError(c, err)
	}

	goal, err := store.Get[models.Goal](gc.Store, user.ID, uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}

	gc.Hub.Broadcast(user.ID, "goals")
	return c.JSON(goal)
}

// DeleteGoal godoc
// @Summary Delete a goal
// @Description Idempotent: deleting an already-deleted id succeeds
// @Tags goals
// @Success 204
// @Security ApiKeyAuth
// @Router /goals/{id} [delete]
func (gc *GoalController) DeleteGoal(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid goal id")
	}

	if err := store.Delete[models.Goal](gc.Store, user.ID, uint(id)); err != nil {
		return utils.FromError(c, err)
	}

	gc.Hub.Broadcast(user.ID, "goals")
	return utils.NoContent(c)
}

// CompleteGoal godoc
// @Summary Mark a goal completed and grant its XP
// @Description Goal flip, XP grant, streak update and achievement unlocks happen in one transaction. Re-completing is a no-op that grants nothing.
// @Tags goals
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /goals/{id}/complete [post]
func (gc *GoalController) CompleteGoal(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid goal id")
	}

	now := time.Now()
	var (
		goal           models.Goal
		alreadyDone    bool
		profile        progression.Profile
		leveledUp      bool
		streakRow      models.StreakRecord
		streakAdvanced bool
		unlocks        []streak.Unlock
	)

	err = gc.Store.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND id = ?", user.ID, id).First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrNotFound
			}
			return err
		}

		// The goal's own status is the idempotency guard: a second
		// complete call changes nothing and grants no XP.
		if goal.Status == models.GoalCompleted {
			alreadyDone = true
			return nil
		}
		if goal.Status == models.GoalFailed {
			return utils.ErrValidation
		}

		goal.Status = models.GoalCompleted
		goal.CompletedAt = &now
		if err := tx.Save(&goal).Error; err != nil {
			return err
		}

		// Re-read the profile inside the transaction; the middleware
		// copy may be stale.
		var owner models.User
		if err := tx.First(&owner, user.ID).Error; err != nil {
			return err
		}

		before := progression.Profile{
			Level:     owner.Level,
			CurrentXP: owner.CurrentXP,
			TotalXP:   owner.TotalXP,
			Rank:      progression.Rank(owner.Rank),
		}
		applied, aerr := progression.ApplyXP(before, goal.XPReward)
		if aerr != nil {
			return aerr
		}
		profile = applied
		leveledUp = profile.Level > before.Level

		if err := tx.Where("user_id = ?", user.ID).Attrs(models.StreakRecord{UserID: user.ID, WeeklyProgress: "0000000"}).FirstOrCreate(&streakRow).Error; err != nil {
			return err
		}

		// Streak is a one-way ratchet per calendar day: only the first
		// completion of the day touches it.
		newStreak := streakRow.CurrentStreak
		if streakRow.LastCompletionDate != now.Format("2006-01-02") {
			data, derr := streakDataFromRecord(tx, user.ID, streakRow)
			if derr != nil {
				return derr
			}
			next, fresh, serr := streak.RecordCompletion(data, now)
			if serr != nil {
				return serr
			}
			unlocks = fresh
			applyStreakData(&streakRow, next)
			if err := tx.Save(&streakRow).Error; err != nil {
				return err
			}
			for _, u := range unlocks {
				row := models.AchievementUnlock{UserID: user.ID, AchievementID: u.AchievementID, UnlockedAt: u.UnlockedAt}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
			newStreak = next.CurrentStreak
			streakAdvanced = true
		}

		return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"level":      profile.Level,
			"current_xp": profile.CurrentXP,
			"total_xp":   profile.TotalXP,
			"rank":       string(profile.Rank),
			"streak":     newStreak,
		}).Error
	})
	if err != nil {
		return utils.FromError(c, err)
	}

	if alreadyDone {
		return c.JSON(fiber.Map{"goal": goal, "message": "Already completed"})
	}

	// Notifications fire only after the commit, exactly once per
	// completion transition.
	gc.Bus.Publish(events.Event{Kind: events.KindXPGained, UserID: user.ID, Amount: goal.XPReward})
	if leveledUp {
		gc.Bus.Publish(events.Event{Kind: events.KindLevelUp, UserID: user.ID, Level: profile.Level})
	}
	if streakAdvanced {
		gc.Bus.Publish(events.Event{Kind: events.KindStreakExtended, UserID: user.ID, Streak: streakRow.CurrentStreak})
	}
	for _, u := range unlocks {
		gc.Bus.Publish(events.Event{Kind: events.KindAchievementUnlocked, UserID: user.ID, AchievementID: u.AchievementID})
	}
	gc.Hub.Broadcast(user.ID, "goals")
	gc.Hub.Broadcast(user.ID, "profile")

	return c.JSON(fiber.Map{
		"goal": goal,
		"profile": fiber.Map{
			"level":     profile.Level,
			"currentXP": profile.CurrentXP,
			"totalXP":   profile.TotalXP,
			"rank":      profile.Rank,
		},
		"streak":          streakRow.CurrentStreak,
		"newAchievements": unlocks,
	})
}

// streakDataFromRecord assembles the pure streak state from the record
// row plus the user's unlock rows.
func streakDataFromRecord(tx *gorm.DB, userID uint, row models.StreakRecord) (streak.Data, error) {
	data := streak.Data{
		CurrentStreak:      row.CurrentStreak,
		LongestStreak:      row.LongestStreak,
		LastCompletionDate: row.LastCompletionDate,
		TotalCompletions:   row.TotalCompletions,
		Unlocked:           map[string]time.Time{},
	}
	for i, r := range row.WeeklyProgress {
		if i < 7 && r == '1' {
			data.WeeklyProgress[i] = true
		}
	}

	var unlocked []models.AchievementUnlock
	if err := tx.Where("user_id = ?", userID).Find(&unlocked).Error; err != nil {
		return streak.Data{}, err
	}
	for _, u := range unlocked {
		data.Unlocked[u.AchievementID] = u.UnlockedAt
	}
	return data, nil
}

func applyStreakData(row *models.StreakRecord, data streak.Data) {
	row.CurrentStreak = data.CurrentStreak
	row.LongestStreak = data.LongestStreak
	row.LastCompletionDate = data.LastCompletionDate
	row.TotalCompletions = data.TotalCompletions
	mask := make([]byte, 7)
	for i, set := range data.WeeklyProgress {
		if set {
			mask[i] = '1'
		} else {
			mask[i] = '0'
		}
	}
	row.WeeklyProgress = string(mask)
}
