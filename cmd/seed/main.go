// Command seed populates the database with realistic development data.
package main

import (
	"flag"
	"log"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	clean := flag.Bool("clean", true, "Truncate existing data before seeding")
	preset := flag.String("preset", "", "Named preset to apply instead of -users/-posts")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	seeder := seed.NewSeeder(db)

	if *clean {
		log.Println("Clearing existing data...")
		if err := seeder.ClearAll(); err != nil {
			log.Fatalf("failed to clear data: %v", err)
		}
	}

	if *preset != "" {
		log.Printf("Applying preset %q...", *preset)
		if err := seeder.ApplyPreset(*preset); err != nil {
			log.Fatalf("failed to apply preset: %v", err)
		}
		log.Println("✅ Seeding complete")
		return
	}

	log.Printf("Seeding %d users with follow graph...", *numUsers)
	users, err := seeder.SeedSocialMesh(*numUsers)
	if err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}

	log.Printf("Seeding %d posts with likes, comments and notifications...", *numPosts)
	posts, err := seeder.SeedEngagement(users, *numPosts)
	if err != nil {
		log.Fatalf("failed to seed engagement: %v", err)
	}

	log.Printf("✅ Seeding complete: %d users, %d posts", len(users), len(posts))
}
