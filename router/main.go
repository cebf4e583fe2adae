package router

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/config"
	"github.com/sahilchouksey/studyflow/database"
	"github.com/sahilchouksey/studyflow/handlers"
	admin_handlers "github.com/sahilchouksey/studyflow/handlers/admin"
	analytics_handlers "github.com/sahilchouksey/studyflow/handlers/analytics"
	event_handlers "github.com/sahilchouksey/studyflow/handlers/event"
	reminder_handlers "github.com/sahilchouksey/studyflow/handlers/reminder"
	settings_handlers "github.com/sahilchouksey/studyflow/handlers/settings"
	subject_handlers "github.com/sahilchouksey/studyflow/handlers/subject"
	task_handlers "github.com/sahilchouksey/studyflow/handlers/task"
	timetable_handlers "github.com/sahilchouksey/studyflow/handlers/timetable"
	"github.com/sahilchouksey/studyflow/services"
	"github.com/sahilchouksey/studyflow/utils"
	"github.com/sahilchouksey/studyflow/utils/auth"
	"github.com/sahilchouksey/studyflow/utils/cache"
	"github.com/sahilchouksey/studyflow/utils/middleware"
)

// Options carries the collaborators the routes need beyond the store
type Options struct {
	// Reminders is shared with the in-process cron runner
	Reminders *services.ReminderService
	// Cache backs brute force protection on the internal secret; may be nil
	Cache *cache.RedisCache
	// DisableRequestLog silences the access log, used by tests
	DisableRequestLog bool
}

func SetupRoutes(app *fiber.App, store database.Storage, cfg *config.EnvironmentVariable, opts Options) error {
	if cfg.JWT_SECRET == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}
	if opts.Reminders == nil {
		return errors.New("reminder service is required")
	}

	// Initialize JWT manager with config
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: cfg.JWT_SECRET,
		Expiry: 24 * time.Hour, // Access token expires in 24 hours
		Issuer: cfg.JWT_ISSUER,
	})

	repos := store.Repositories()

	// Brute force protection for the internal secret (disabled without Redis)
	var attempts middleware.AttemptStore
	if opts.Cache != nil {
		attempts = opts.Cache
	}
	secretGuard := middleware.NewBruteForceProtection(attempts, "internal_secret")

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, repos.Users)

	// Services
	taskService := services.NewTaskService(repos.Tasks, cfg.Location)
	eventService := services.NewEventService(repos.Events, cfg.Location)
	subjectService := services.NewSubjectService(repos.Subjects, repos.Modules)
	moduleService := services.NewModuleService(repos.Modules, repos.Subjects, cfg.Location)
	timetableService := services.NewTimetableService(repos.Slots)
	settingsService := services.NewSettingsService(repos.Users)
	analyticsService := services.NewAnalyticsService(repos, cfg.Location)
	adminService := services.NewAdminService(repos)

	// Handlers
	taskHandler := task_handlers.NewTaskHandler(taskService)
	reminderHandler := reminder_handlers.NewReminderHandler(opts.Reminders)
	eventHandler := event_handlers.NewEventHandler(eventService)
	subjectHandler := subject_handlers.NewSubjectHandler(subjectService, moduleService)
	timetableHandler := timetable_handlers.NewTimetableHandler(timetableService)
	settingsHandler := settings_handlers.NewSettingsHandler(settingsService)
	analyticsHandler := analytics_handlers.NewAnalyticsHandler(analyticsService)

	// Apply security middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    cfg.ALLOWED_ORIGINS,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
		DisableRequestLog: opts.DisableRequestLog,
	})

	// Health check endpoints (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// API v1 group
	api := app.Group("/api/v1")
	api.Get("/health/db", utils.MakeHTTPHandleFunc(handlers.HandleDatabaseHealth, store))

	// Reminders accept either a user token or the internal secret.
	// Registered before /tasks/:id so the literal path wins.
	api.Get("/tasks/reminders", authMiddleware.RequiredOrInternal(cfg.REMINDER_SECRET, secretGuard), reminderHandler.SendReminders)

	// Tasks routes
	tasks := api.Group("/tasks", authMiddleware.Required())
	tasks.Get("/", taskHandler.ListTasks)
	tasks.Post("/", taskHandler.CreateTask)
	tasks.Get("/:id", taskHandler.GetTask)
	tasks.Put("/:id", taskHandler.UpdateTask)
	tasks.Delete("/:id", taskHandler.DeleteTask)

	// Events routes
	events := api.Group("/events", authMiddleware.Required())
	events.Get("/", eventHandler.ListEvents)
	events.Post("/", eventHandler.CreateEvent)
	events.Get("/:id", eventHandler.GetEvent)
	events.Put("/:id", eventHandler.UpdateEvent)
	events.Delete("/:id", eventHandler.DeleteEvent)

	// ==================== Study Schedule ====================

	schedule := api.Group("/schedule", authMiddleware.Required())

	// Subjects (counters computed from modules)
	schedule.Get("/subjects", subjectHandler.ListSubjects)
	schedule.Post("/subjects", subjectHandler.CreateSubject)
	schedule.Get("/subjects/:id", subjectHandler.GetSubject)
	schedule.Put("/subjects/:id", subjectHandler.UpdateSubject)
	schedule.Delete("/subjects/:id", subjectHandler.DeleteSubject) // Cascades modules

	// Modules
	schedule.Get("/modules", subjectHandler.ListModules)
	schedule.Post("/modules", subjectHandler.CreateModule)
	schedule.Get("/modules/:id", subjectHandler.GetModule)
	schedule.Put("/modules/:id", subjectHandler.UpdateModule)
	schedule.Delete("/modules/:id", subjectHandler.DeleteModule)

	// Topics (addressed by id inside their module)
	schedule.Post("/modules/:id/topics", subjectHandler.AddTopic)
	schedule.Put("/modules/:id/topics/:topicId", subjectHandler.UpdateTopic)
	schedule.Delete("/modules/:id/topics/:topicId", subjectHandler.DeleteTopic)

	// ========================================================

	// Timetable routes
	timetable := api.Group("/timetable", authMiddleware.Required())
	timetable.Get("/", timetableHandler.ListSlots)
	timetable.Post("/", timetableHandler.CreateSlot)
	timetable.Put("/:id", timetableHandler.UpdateSlot)
	timetable.Delete("/:id", timetableHandler.DeleteSlot)

	// Profile and settings
	api.Get("/me", authMiddleware.Required(), settingsHandler.GetProfile)
	api.Get("/settings", authMiddleware.Required(), settingsHandler.GetSettings)
	api.Put("/settings", authMiddleware.Required(), settingsHandler.UpdateSettings)

	// Dashboard and analytics
	api.Get("/dashboard", authMiddleware.Required(), analyticsHandler.GetDashboard)
	api.Get("/analytics", authMiddleware.Required(), analyticsHandler.GetAnalytics)

	// ==================== Admin Panel Endpoints ====================

	admin := api.Group("/admin", authMiddleware.RequireAdmin())
	admin.Get("/stats", func(c *fiber.Ctx) error { return admin_handlers.GetStats(c, adminService) })

	// Admin User Management
	admin.Get("/users", func(c *fiber.Ctx) error { return admin_handlers.ListUsers(c, adminService) })
	admin.Get("/users/:id", func(c *fiber.Ctx) error { return admin_handlers.GetUser(c, adminService) })
	admin.Post("/users", middleware.AdminAuditLog(repos.AuditLogs, repos.Users, "user_create", "users"), func(c *fiber.Ctx) error { return admin_handlers.CreateUser(c, adminService) })
	admin.Put("/users/:id", middleware.AdminAuditLog(repos.AuditLogs, repos.Users, "user_update", "users"), func(c *fiber.Ctx) error { return admin_handlers.UpdateUser(c, adminService) })
	admin.Delete("/users/:id", middleware.AdminAuditLog(repos.AuditLogs, repos.Users, "user_delete", "users"), func(c *fiber.Ctx) error { return admin_handlers.DeleteUser(c, adminService) })

	// Admin Audit Logs and background jobs
	admin.Get("/audit-logs", func(c *fiber.Ctx) error { return admin_handlers.ListAuditLogs(c, adminService) })
	admin.Get("/jobs", func(c *fiber.Ctx) error { return admin_handlers.ListJobLogs(c, adminService) })

	// ===============================================================

	return nil
}
