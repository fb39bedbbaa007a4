// Command main runs the user seeder for Ganboo.
package main

import (
	"context"
	"flag"
	"log"

	"ganboo/internal/bootstrap"
	"ganboo/internal/config"
	"ganboo/internal/seed"
	"ganboo/internal/service"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of random users to create")
	requestRate := flag.Float64("request-rate", 0.1, "Probability that a pair of users gets a friend request")
	acceptRate := flag.Float64("accept-rate", 0.5, "Probability that a request is accepted")
	randSeed := flag.Int64("seed", 0, "Random seed (0 picks one)")
	flag.Parse()

	log.Println("🌱 User Seeder")
	log.Println("==============")
	log.Printf("Target: %d users, request rate %.2f, accept rate %.2f\n", *numUsers, *requestRate, *acceptRate)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.StoreBackend == config.StoreBackendMemory {
		log.Fatalf("❌ STORE_BACKEND=memory does not persist; seed a database instead")
	}

	ctx := context.Background()
	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{SeedDemo: true, SkipRedis: true})
	if err != nil {
		log.Fatalf("❌ Runtime initialization failed: %v", err)
	}
	defer func() { _ = rt.Close() }()

	f := seed.NewFactory(*randSeed)
	users, err := f.Users(ctx, rt.Store, *numUsers)
	if err != nil {
		log.Fatalf("❌ User seeding failed: %v", err)
	}

	friends := service.NewFriendService(rt.Store, service.WithMaxAttempts(cfg.RelationshipMaxAttempts))
	stats, err := f.SocialMesh(ctx, friends, users, *requestRate, *acceptRate)
	if err != nil {
		log.Fatalf("❌ Social mesh seeding failed: %v", err)
	}

	log.Printf("✨ All done! %d users, %d pending requests, %d friendships.\n", len(users), stats.Requests, stats.Friendships)
	log.Println("🔑 Mint a token for any user with: ganbooctl token <user-id>")
}
