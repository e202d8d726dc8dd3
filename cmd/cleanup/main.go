package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/GiveHope-Foundation/donation-service/internal/db"
	"github.com/GiveHope-Foundation/donation-service/internal/donation"
)

func main() {
	log.Println("Donation Cleanup Job - Starting")
	log.Println("Retention Policy: rejected donations kept 3 years")

	// Connect to database
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Create cleanup service
	cleanupService := donation.NewCleanupService(database)

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Check how many donations are eligible for cleanup
	count, err := cleanupService.GetExpiredDonationsCount(ctx)
	if err != nil {
		log.Fatalf("Failed to get expired donations count: %v", err)
	}

	log.Printf("Found %d rejected donations eligible for permanent deletion", count)

	if count == 0 {
		log.Println("No cleanup needed. Exiting.")
		os.Exit(0)
	}

	// Perform cleanup
	deletedCount, err := cleanupService.CleanupExpiredDonations(ctx)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}

	log.Printf("✓ Cleanup completed successfully: %d donations permanently deleted", deletedCount)
	log.Println("Cleanup Job - Finished")
}
