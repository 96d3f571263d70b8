// Command main runs the database seeder for Glimpse.
package main

import (
	"flag"
	"log"

	"glimpse/internal/bootstrap"
	"glimpse/internal/config"
	"glimpse/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of profiles to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numConversations := flag.Int("conversations", 30, "Number of DM conversations to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d profiles, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{ApplySchema: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	// Run seeder
	s := seed.NewSeeder(db, seed.Options{})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	if err := seed.Accounts(db); err != nil {
		log.Fatalf("❌ Built-in account seeding failed: %v", err)
	}

	profiles, err := s.SeedSocialMesh(*numUsers)
	if err != nil {
		log.Fatalf("❌ Profile seeding failed: %v", err)
	}
	if _, err := s.SeedEngagement(profiles, *numPosts); err != nil {
		log.Fatalf("❌ Engagement seeding failed: %v", err)
	}
	if err := s.SeedConversations(profiles, *numConversations); err != nil {
		log.Fatalf("❌ Conversation seeding failed: %v", err)
	}
	if err := s.SeedStories(profiles); err != nil {
		log.Fatalf("❌ Story seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test profiles have the password: password123")
}
