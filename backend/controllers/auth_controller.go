package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"solohunter/backend/config"
	"solohunter/backend/models"
	"solohunter/backend/store"
	"solohunter/backend/utils"
)

type AuthController struct {
	Store *store.Adapter
	Cfg   *config.Config
}

func NewAuthController(st *store.Adapter, cfg *config.Config) *AuthController {
	return &AuthController{Store: st, Cfg: cfg}
}

// UpsertUser godoc
// @Summary Upsert a user by external uid
// @Description Returns the existing user for the firebaseUid, or creates one with profile defaults plus the default categories, streak record and settings
// @Tags auth
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "firebaseUid, email, displayName"
// @Success 200 {object} models.User
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/user [post]
func (ac *AuthController) UpsertUser(c *fiber.Ctx) error {
	type UpsertInput struct {
		FirebaseUID string `json:"firebaseUid"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	}

	var input UpsertInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if strings.TrimSpace(input.FirebaseUID) == "" {
		return utils.BadRequest(c, "firebaseUid is required")
	}

	var user models.User
	err := ac.Store.DB().Where("firebase_uid = ?", input.FirebaseUID).First(&user).Error
	if err == nil {
		return c.JSON(user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.FromError(c, err)
	}

	// First sign-in: create the user and seed the per-user defaults in
	// one transaction.
	err = ac.Store.Transaction(func(tx *gorm.DB) error {
		user = models.User{
			FirebaseUID: input.FirebaseUID,
			Email:       input.Email,
			DisplayName: input.DisplayName,
			Level:       1,
			Rank:        "E-Rank",
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.StreakRecord{UserID: user.ID, WeeklyProgress: "0000000"}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.UserSettings{UserID: user.ID, NotificationsEnabled: true, ReminderTime: "09:00", Theme: "dark", DailyGoalTarget: 3}).Error; err != nil {
			return err
		}
		categories := models.DefaultCategories(user.ID)
		return tx.Create(&categories).Error
	})
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser godoc
// @Summary Get a user by external uid
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorResponse
// @Router /auth/user/{firebaseUid} [get]
func (ac *AuthController) GetUser(c *fiber.Ctx) error {
	uid := c.Params("firebaseUid")

	var user models.User
	if err := ac.Store.DB().Where("firebase_uid = ?", uid).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Unknown user")
		}
		return utils.FromError(c, err)
	}

	return c.JSON(user)
}

// IssueToken godoc
// @Summary Mint a session JWT for a known uid
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /auth/token [post]
func (ac *AuthController) IssueToken(c *fiber.Ctx) error {
	type TokenInput struct {
		FirebaseUID string `json:"firebaseUid"`
	}

	var input TokenInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := ac.Store.DB().Where("firebase_uid = ?", input.FirebaseUID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Unknown user")
		}
		return utils.FromError(c, err)
	}

	token, err := utils.GenerateJWTToken(user.FirebaseUID, ac.Cfg)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":          user.ID,
			"firebaseUid": user.FirebaseUID,
			"email":       user.Email,
		},
	})
}
