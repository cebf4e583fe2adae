package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sahilchouksey/studyflow/api"
	"github.com/sahilchouksey/studyflow/config"
	"github.com/sahilchouksey/studyflow/database"
	"github.com/sahilchouksey/studyflow/router"
	"github.com/sahilchouksey/studyflow/services"
	"github.com/sahilchouksey/studyflow/services/cron"
	"github.com/sahilchouksey/studyflow/services/mailer"
	"github.com/sahilchouksey/studyflow/utils"
	"github.com/sahilchouksey/studyflow/utils/cache"
	"github.com/sahilchouksey/studyflow/utils/response"
)

const shutdownTimeout = 10 * time.Second

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Error reporting
	if utils.SetupErrorReporting(getEnv.ROLLBAR_TOKEN, getEnv.GO_ENV) {
		log.Println("Rollbar error reporting enabled")
	}
	defer utils.FlushErrorReporting()
	response.SetErrorReporter(utils.NewLogger("[HTTP] "))

	// Initialize database connection
	store, err := database.Open(getEnv)
	if err != nil {
		switch getEnv.DB_DRIVER {
		case config.DriverMongo:
			print("Check whether MongoDB is reachable at MONGODB_URI\n")
		case config.DriverPostgres:
			print("Check whether the Postgres is running or not\n")
			print("For local development you can set DB_DRIVER=sqlite\n")
		}
		return err
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	_, err = database.NewSeeder(store.Repositories().Users).SeedAdminUser(seedCtx, getEnv.ADMIN_EMAIL, getEnv.ADMIN_NAME)
	cancelSeed()
	if err != nil {
		return err
	}

	appLogger := utils.NewLogger("[APP] ")

	// Redis is optional: it backs secret lockouts and the cron lock
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			appLogger.Warn("Failed to connect to Redis, brute force protection and the cron lock are disabled", err)
			redisCache = nil
		} else {
			defer redisCache.Close()
		}
	}

	// Reminder delivery
	m, err := mailer.New(getEnv)
	if err != nil {
		return err
	}
	reminders := services.NewReminderService(store.Repositories(), m, getEnv.REMINDER_WINDOW, getEnv.Location)

	// Initialize Cron Manager (only if enabled)
	var cronManager *cron.CronManager
	if getEnv.CRON_ENABLED {
		var locker cron.Locker
		if redisCache != nil {
			locker = redisCache
		}
		cronManager = cron.NewCronManager(store.Repositories().JobLogs, reminders, locker, getEnv.REMINDER_SCHEDULE)
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, the external scheduler can still trigger reminders
			appLogger.Warn("Failed to start cron jobs", err)
			cronManager = nil
		}
	}
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes
	if err := router.SetupRoutes(app, store, getEnv, router.Options{
		Reminders: reminders,
		Cache:     redisCache,
	}); err != nil {
		return err
	}

	// Shut down cleanly on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		log.Println("Shutting down API Server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
