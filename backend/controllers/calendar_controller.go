package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"solohunter/backend/middleware"
	"solohunter/backend/models"
	"solohunter/backend/store"
	"solohunter/backend/utils"
)

type CalendarController struct {
	Store *store.Adapter
	Hub   *store.Hub
}

func NewCalendarController(st *store.Adapter, hub *store.Hub) *CalendarController {
	return &CalendarController{Store: st, Hub: hub}
}

type eventInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	AllDay      *bool      `json:"allDay"`
}

// GetEvents godoc
// @Summary List calendar events, newest first
// @Tags calendar
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /calendar-events [get]
func (cc *CalendarController) GetEvents(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	items, err := store.List[models.CalendarEvent](cc.Store, user.ID)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.JSON(fiber.Map{"events": items})
}

// CreateEvent godoc
// @Summary Create a calendar event
// @Tags calendar
// @Accept json
// @Produce json
// @Success 201 {object} models.CalendarEvent
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /calendar-events [post]
func (cc *CalendarController) CreateEvent(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input eventInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	errs := map[string]string{}
	if input.Title == "" {
		errs["title"] = "title is required"
	}
	if input.StartTime == nil {
		errs["startTime"] = "startTime is required"
	}
	if input.StartTime != nil && input.EndTime != nil && input.EndTime.Before(*input.StartTime) {
		errs["endTime"] = "endTime precedes startTime"
	}
	if len(errs) > 0 {
		return utils.ValidationError(c, errs)
	}

	event := models.CalendarEvent{
		UserID:      user.ID,
		ExternalID:  uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		StartTime:   *input.StartTime,
	}
	if input.EndTime != nil {
		event.EndTime = *input.EndTime
	} else {
		event.EndTime = input.StartTime.Add(time.Hour)
	}
	if input.AllDay != nil {
		event.AllDay = *input.AllDay
	}

	if err := store.Create(cc.Store, &event); err != nil {
		return utils.FromError(c, err)
	}

	cc.Hub.Broadcast(user.ID, "calendar-events")
	return utils.Created(c, event)
}

// UpdateEvent godoc
// @Summary Update a calendar event
// @Tags calendar
// @Accept json
// @Produce json
// @Success 200 {object} models.CalendarEvent
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /calendar-events/{id} [put]
func (cc *CalendarController) UpdateEvent(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid event id")
	}

	var input eventInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	fields := map[string]interface{}{}
	if input.Title != "" {
		fields["title"] = input.Title
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if input.StartTime != nil {
		fields["start_time"] = input.StartTime
	}
	if input.EndTime != nil {
		fields["end_time"] = input.EndTime
	}
	if input.AllDay != nil {
		fields["all_day"] = *input.AllDay
	}
	if len(fields) == 0 {
		return utils.BadRequest(c, "Nothing to update")
	}

	if err := store.Update[models.CalendarEvent](cc.Store, user.ID, uint(id), fields); err != nil {
		return utils.FromError(c, err)
	}

	event, err := store.Get[models.CalendarEvent](cc.Store, user.ID, uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}

	cc.Hub.Broadcast(user.ID, "calendar-events")
	return c.JSON(event)
}

// DeleteEvent godoc
// @Summary Delete a calendar event
// @Tags calendar
// @Success 204
// @Security ApiKeyAuth
// @Router /calendar-events/{id} [delete]
func (cc *CalendarController) DeleteEvent(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid event id")
	}

	if err := store.Delete[models.CalendarEvent](cc.Store, user.ID, uint(id)); err != nil {
		return utils.FromError(c, err)
	}

	cc.Hub.Broadcast(user.ID, "calendar-events")
	return utils.NoContent(c)
}
