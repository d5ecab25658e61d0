// Command seed populates the database with the community catalog and,
// optionally, demo users, posts, and chat traffic for development.
package main

import (
	"context"
	"flag"
	"log"

	"homiee/internal/config"
	"homiee/internal/database"
	"homiee/internal/repository"
	"homiee/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of demo users to create")
	postsPerUser := flag.Int("posts", 3, "Posts per demo user")
	messagesPerChat := flag.Int("messages", 5, "Chat messages per community thread")
	demo := flag.Bool("demo", false, "Also generate demo users, posts, and chat messages")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	communityRepo := repository.NewCommunityRepository(db)
	if err := seed.EnsureCommunities(ctx, communityRepo); err != nil {
		log.Fatalf("Community seeding failed: %v", err)
	}
	log.Println("Community catalog seeded")

	if !*demo {
		return
	}

	catalog, err := communityRepo.ListAll(ctx)
	if err != nil {
		log.Fatalf("Catalog load failed: %v", err)
	}

	chatRepo := repository.NewChatRepository(db)
	factory := seed.NewFactory(db, seed.Options{
		NumUsers:        *numUsers,
		PostsPerUser:    *postsPerUser,
		MessagesPerChat: *messagesPerChat,
	})

	for i := 0; i < *numUsers; i++ {
		user, err := factory.CreateUser(catalog)
		if err != nil {
			log.Fatalf("User seeding failed: %v", err)
		}
		for j := 0; j < *postsPerUser; j++ {
			post, err := factory.CreatePost(user)
			if err != nil {
				log.Fatalf("Post seeding failed: %v", err)
			}
			if err := factory.CreateComment(post, user); err != nil {
				log.Fatalf("Comment seeding failed: %v", err)
			}
		}
		for _, name := range user.Communities {
			thread, err := chatRepo.EnsureThread(ctx, name)
			if err != nil {
				log.Fatalf("Thread seeding failed: %v", err)
			}
			for k := 0; k < *messagesPerChat; k++ {
				if err := factory.CreateChatMessage(thread, user); err != nil {
					log.Fatalf("Chat seeding failed: %v", err)
				}
			}
		}
	}

	log.Printf("Demo data seeded: %d users. All demo users share the password %q", *numUsers, "password123")
}
