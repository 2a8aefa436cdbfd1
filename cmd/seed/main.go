// Command main runs the database seeder for dinely.
package main

import (
	"flag"
	"log"

	"dinely/internal/config"
	"dinely/internal/database"
	"dinely/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numRestaurants := flag.Int("restaurants", 25, "Number of restaurants to create")
	maxReviews := flag.Int("max-reviews", 5, "Maximum reviews per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:          *numUsers,
		NumRestaurants:    *numRestaurants,
		MaxReviewsPerUser: *maxReviews,
		ShouldClean:       *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("All done. Every seeded account uses the password %q.", seed.DefaultPassword)
}
