package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/sahilchouksey/studyflow/config"
	"github.com/sahilchouksey/studyflow/database"
	"github.com/sahilchouksey/studyflow/model"
)

func main() {
	jobName := flag.String("job", "", "only show runs of this job")
	limit := flag.Int("limit", 20, "number of runs to show")
	flag.Parse()

	// Load .env
	if err := config.LoadENV(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg, err := config.Get()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Connect to database
	store, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("========================================")
	fmt.Println("BACKGROUND JOBS STATUS CHECK")
	fmt.Println("========================================")

	logs, err := store.Repositories().JobLogs.Recent(ctx, *jobName, *limit)
	if err != nil {
		log.Fatalf("Failed to fetch job logs: %v", err)
	}

	if len(logs) == 0 {
		fmt.Println("\n❌ No job runs found in database")
		return
	}
	fmt.Printf("\n📋 Found %d job runs:\n\n", len(logs))

	running := 0
	for _, entry := range logs {
		statusIcon := "⏳"
		switch entry.Status {
		case model.JobStatusCompleted:
			statusIcon = "✅"
		case model.JobStatusFailed:
			statusIcon = "❌"
		case model.JobStatusSkipped:
			statusIcon = "⏭️"
		case model.JobStatusRunning:
			statusIcon = "🔄"
			running++
		}

		fmt.Printf("─────────────────────────────────────\n")
		fmt.Printf("%s %s (%s)\n", statusIcon, entry.JobName, entry.ID)
		fmt.Printf("   Status: %s\n", entry.Status)
		fmt.Printf("   Started: %s\n", entry.StartedAt.In(cfg.Location).Format("2006-01-02 15:04:05"))
		if entry.CompletedAt != nil {
			fmt.Printf("   Completed: %s (%dms)\n", entry.CompletedAt.In(cfg.Location).Format("2006-01-02 15:04:05"), entry.Duration)
		}
		if entry.Message != "" {
			fmt.Printf("   Message: %s\n", entry.Message)
		}
		if len(entry.Metadata) > 0 {
			fmt.Printf("   Metadata: %s\n", string(entry.Metadata))
		}
		if entry.ErrorMsg != "" {
			fmt.Printf("   Error: %s\n", entry.ErrorMsg)
		}
	}

	fmt.Println("\n========================================")
	fmt.Printf("RUNNING JOBS: %d\n", running)
	fmt.Println("========================================")
}
