package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"solohunter/backend/middleware"
	"solohunter/backend/models"
	"solohunter/backend/store"
	"solohunter/backend/utils"
)

type CategoryController struct {
	Store *store.Adapter
	Hub   *store.Hub
}

func NewCategoryController(st *store.Adapter, hub *store.Hub) *CategoryController {
	return &CategoryController{Store: st, Hub: hub}
}

// GetCategories godoc
// @Summary List the user's goal categories
// @Tags categories
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /categories [get]
func (cc *CategoryController) GetCategories(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	categories, err := store.List[models.Category](cc.Store, user.ID)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.JSON(fiber.Map{"categories": categories})
}

// UpdateCategory godoc
// @Summary Rename or restyle a category
// @Description Categories cannot be deleted, only edited or reset to the defaults
// @Tags categories
// @Accept json
// @Produce json
// @Success 200 {object} models.Category
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /categories/{id} [put]
func (cc *CategoryController) UpdateCategory(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid category id")
	}

	type CategoryInput struct {
		Name  string `json:"name"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
	}
	var input CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	fields := map[string]interface{}{}
	if input.Name != "" {
		fields["name"] = input.Name
	}
	if input.Icon != "" {
		fields["icon"] = input.Icon
	}
	if input.Color != "" {
		fields["color"] = input.Color
	}
	if len(fields) == 0 {
		return utils.BadRequest(c, "Nothing to update")
	}

	if err := store.Update[models.Category](cc.Store, user.ID, uint(id), fields); err != nil {
		return utils.FromError(c, err)
	}

	category, err := store.Get[models.Category](cc.Store, user.ID, uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}

	cc.Hub.Broadcast(user.ID, "categories")
	return c.JSON(category)
}

// ResetCategories godoc
// @Summary Restore the default category trio
// @Tags categories
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /categories/reset [post]
func (cc *CategoryController) ResetCategories(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var categories []models.Category
	err := cc.Store.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		categories = models.DefaultCategories(user.ID)
		return tx.Create(&categories).Error
	})
	if err != nil {
		return utils.FromError(c, err)
	}

	cc.Hub.Broadcast(user.ID, "categories")
	return c.JSON(fiber.Map{"categories": categories})
}
