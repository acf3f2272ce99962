package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"solohunter/backend/middleware"
	"solohunter/backend/models"
	"solohunter/backend/store"
	"solohunter/backend/utils"
)

type NoteController struct {
	Store *store.Adapter
	Hub   *store.Hub
}

func NewNoteController(st *store.Adapter, hub *store.Hub) *NoteController {
	return &NoteController{Store: st, Hub: hub}
}

type noteInput struct {
	Title    string              `json:"title"`
	Content  string              `json:"content"`
	Tags     []string            `json:"tags"`
	Category models.NoteCategory `json:"category"`
	Starred  *bool               `json:"starred"`
}

func validateNoteInput(in noteInput, partial bool) map[string]string {
	errs := map[string]string{}
	if !partial && in.Title == "" {
		errs["title"] = "title is required"
	}
	if in.Category != "" && !in.Category.Valid() {
		errs["category"] = "unknown category"
	}
	if len(in.Tags) > models.MaxNoteTags {
		errs["tags"] = "too many tags"
	}
	for _, tag := range in.Tags {
		if tag == "" || len(tag) > models.MaxTagLength || strings.Contains(tag, ",") {
			errs["tags"] = "invalid tag"
			break
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func noteJSON(n models.Note) fiber.Map {
	return fiber.Map{
		"id":        n.ID,
		"title":     n.Title,
		"content":   n.Content,
		"tags":      n.TagList(),
		"category":  n.Category,
		"starred":   n.Starred,
		"createdAt": n.CreatedAt,
		"updatedAt": n.UpdatedAt,
	}
}

// GetNotes godoc
// @Summary List archive entries, newest first
// @Tags notes
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /notes [get]
func (nc *NoteController) GetNotes(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	notes, err := store.List[models.Note](nc.Store, user.ID)
	if err != nil {
		return utils.FromError(c, err)
	}

	out := make([]fiber.Map, 0, len(notes))
	for _, n := range notes {
		out = append(out, noteJSON(n))
	}
	return c.JSON(fiber.Map{"notes": out})
}

// CreateNote godoc
// @Summary Create an archive entry
// @Tags notes
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /notes [post]
func (nc *NoteController) CreateNote(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input noteInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := validateNoteInput(input, false); errs != nil {
		return utils.ValidationError(c, errs)
	}

	note := models.Note{
		UserID:   user.ID,
		Title:    input.Title,
		Content:  input.Content,
		Category: models.NoteReflection,
	}
	if input.Category != "" {
		note.Category = input.Category
	}
	if input.Starred != nil {
		note.Starred = *input.Starred
	}
	note.SetTags(input.Tags)

	if err := store.Create(nc.Store, &note); err != nil {
		return utils.FromError(c, err)
	}

	nc.Hub.Broadcast(user.ID, "notes")
	return utils.Created(c, noteJSON(note))
}

// UpdateNote godoc
// @Summary Update an archive entry
// @Tags notes
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /notes/{id} [put]
func (nc *NoteController) UpdateNote(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid note id")
	}

	var input noteInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := validateNoteInput(input, true); errs != nil {
		return utils.ValidationError(c, errs)
	}

	fields := map[string]interface{}{}
	if input.Title != "" {
		fields["title"] = input.Title
	}
	if input.Content != "" {
		fields["content"] = input.Content
	}
	if input.Category != "" {
		fields["category"] = input.Category
	}
	if input.Starred != nil {
		fields["starred"] = *input.Starred
	}
	if input.Tags != nil {
		fields["tags"] = strings.Join(input.Tags, ",")
	}
	if len(fields) == 0 {
		return utils.BadRequest(c, "Nothing to update")
	}

	if err := store.Update[models.Note](nc.Store, user.ID, uint(id), fields); err != nil {
		return utils.FromError(c, err)
	}

	note, err := store.Get[models.Note](nc.Store, user.ID, uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}

	nc.Hub.Broadcast(user.ID, "notes")
	return c.JSON(noteJSON(*note))
}

// DeleteNote godoc
// @Summary Delete an archive entry
// @Tags notes
// @Success 204
// @Security ApiKeyAuth
// @Router /notes/{id} [delete]
func (nc *NoteController) DeleteNote(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid note id")
	}

	if err := store.Delete[models.Note](nc.Store, user.ID, uint(id)); err != nil {
		return utils.FromError(c, err)
	}

	nc.Hub.Broadcast(user.ID, "notes")
	return utils.NoContent(c)
}
