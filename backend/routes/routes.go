package routes

import (
	"github.com/gofiber/fiber/v2"

	"solohunter/backend/config"
	"solohunter/backend/controllers"
	"solohunter/backend/events"
	"solohunter/backend/middleware"
	"solohunter/backend/ratelimit"
	"solohunter/backend/store"
)

// Deps carries everything the route table wires together.
type Deps struct {
	Store   *store.Adapter
	Hub     *store.Hub
	Bus     *events.Bus
	Limiter *ratelimit.Limiter
	Cfg     *config.Config
}

func SetupRoutes(app *fiber.App, deps Deps) {
	// Auth routes (no identity required; this is where identity starts)
	authController := controllers.NewAuthController(deps.Store, deps.Cfg)
	app.Post("/api/auth/user", authController.UpsertUser)
	app.Get("/api/auth/user/:firebaseUid", authController.GetUser)
	app.Post("/api/auth/token", authController.IssueToken)

	// Middleware
	identity := middleware.Identity(deps.Store.DB(), deps.Cfg)
	goalCreateLimit := middleware.RateLimit(deps.Limiter, ratelimit.ActionGoalCreate)
	goalUpdateLimit := middleware.RateLimit(deps.Limiter, ratelimit.ActionGoalUpdate)
	noteCreateLimit := middleware.RateLimit(deps.Limiter, ratelimit.ActionNoteCreate)

	// User routes
	userController := controllers.NewUserController(deps.Store, deps.Hub)
	app.Get("/api/user/profile", identity, userController.GetProfile)
	app.Put("/api/user/profile", identity, userController.UpdateProfile)
	app.Post("/api/user/reset", identity, userController.ResetData)

	// Goal routes
	goalController := controllers.NewGoalController(deps.Store, deps.Hub, deps.Bus, deps.Cfg)
	goals := app.Group("/api/goals", identity)
	goals.Get("/", goalController.GetGoals)
	goals.Post("/", goalCreateLimit, goalController.CreateGoal)
	goals.Get("/:id", goalController.GetGoal)
	goals.Put("/:id", goalUpdateLimit, goalController.UpdateGoal)
	goals.Delete("/:id", goalController.DeleteGoal)
	goals.Post("/:id/complete", goalUpdateLimit, goalController.CompleteGoal)

	// Category routes
	categoryController := controllers.NewCategoryController(deps.Store, deps.Hub)
	categories := app.Group("/api/categories", identity)
	categories.Get("/", categoryController.GetCategories)
	categories.Post("/reset", categoryController.ResetCategories)
	categories.Put("/:id", categoryController.UpdateCategory)

	// Note routes
	noteController := controllers.NewNoteController(deps.Store, deps.Hub)
	notes := app.Group("/api/notes", identity)
	notes.Get("/", noteController.GetNotes)
	notes.Post("/", noteCreateLimit, noteController.CreateNote)
	notes.Put("/:id", noteController.UpdateNote)
	notes.Delete("/:id", noteController.DeleteNote)

	// Calendar routes
	calendarController := controllers.NewCalendarController(deps.Store, deps.Hub)
	calendar := app.Group("/api/calendar-events", identity)
	calendar.Get("/", calendarController.GetEvents)
	calendar.Post("/", calendarController.CreateEvent)
	calendar.Put("/:id", calendarController.UpdateEvent)
	calendar.Delete("/:id", calendarController.DeleteEvent)

	// Settings routes
	settingsController := controllers.NewSettingsController(deps.Store, deps.Hub)
	app.Get("/api/settings", identity, settingsController.GetSettings)
	app.Put("/api/settings", identity, settingsController.UpdateSettings)

	// Streak routes
	streakController := controllers.NewStreakController(deps.Store)
	app.Get("/api/streak", identity, streakController.GetStreak)
	app.Get("/api/streak/achievements", identity, streakController.GetAchievements)
}
