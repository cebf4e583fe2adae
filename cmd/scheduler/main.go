// Command scheduler periodically triggers the reminder scan of a running
// API server using the internal secret.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"

	"github.com/sahilchouksey/studyflow/config"
	"github.com/sahilchouksey/studyflow/utils/middleware"
)

const requestTimeout = 30 * time.Second

func main() {
	if err := config.LoadENV(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg, err := config.Get()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.REMINDER_SECRET == "" {
		log.Fatal("REMINDER_SECRET must be set")
	}

	log.Printf("⏰ Reminder scheduler started (%s -> %s)", cfg.SCHEDULER_CRON, cfg.SCHEDULER_URL)

	// Run once immediately on start
	trigger(cfg.SCHEDULER_URL, cfg.REMINDER_SECRET)

	c := cron.New()
	if _, err := c.AddFunc(cfg.SCHEDULER_CRON, func() {
		trigger(cfg.SCHEDULER_URL, cfg.REMINDER_SECRET)
	}); err != nil {
		log.Fatalf("Invalid SCHEDULER_CRON %q: %v", cfg.SCHEDULER_CRON, err)
	}
	c.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Stopping reminder scheduler...")
	<-c.Stop().Done()
}

// trigger calls the reminder endpoint once and logs the JSON response
func trigger(url, secret string) {
	agent := fiber.Get(url)
	agent.Set(middleware.InternalSecretHeader, secret)
	agent.Timeout(requestTimeout)
	if err := agent.Parse(); err != nil {
		log.Printf("❌ Invalid SCHEDULER_URL %q: %v", url, err)
		return
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		log.Printf("❌ Reminder trigger failed: %v", errs[0])
		return
	}
	if status >= fiber.StatusBadRequest {
		log.Printf("❌ Reminder trigger returned %d: %s", status, body)
		return
	}
	log.Printf("✅ Reminder check: %s", body)
}
