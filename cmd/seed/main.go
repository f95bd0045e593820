package main

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/labrinth/backend/config"
	"github.com/labrinth/backend/internal/models"
	"github.com/labrinth/backend/internal/store"
)

func strPtr(s string) *string { return &s }

// Seeds the data directory with starter documents: a default admin account
// and the base category set. Safe to run repeatedly; existing records are
// left alone.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	st, err := store.Open(cfg.Store.Dir)
	if err != nil {
		log.Fatalf("Failed to open data store: %v", err)
	}

	err = st.Update(func(tx *store.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return err
		}
		if len(users) == 0 {
			users = append(users, models.User{
				ID:          uuid.NewString(),
				Username:    "admin",
				Email:       "admin@labrinth.local",
				DisplayName: "Admin",
				Password:    "admin123",
				CreatedAt:   time.Now(),
				Role:        models.RoleAdmin,
			})
			tx.SaveUsers(users)
			log.Println("Seeded admin account (username: admin)")
		}

		categories, err := tx.Categories()
		if err != nil {
			return err
		}
		if len(categories) == 0 {
			categories = append(categories,
				models.Category{
					ID:          uuid.NewString(),
					Name:        "General Discussion",
					Slug:        "general",
					Description: strPtr("Talk about anything and everything"),
					IconName:    strPtr("message-circle"),
				},
				models.Category{
					ID:          uuid.NewString(),
					Name:        "Help & Support",
					Slug:        "help",
					Description: strPtr("Ask questions and get help from the community"),
					IconName:    strPtr("life-buoy"),
				},
				models.Category{
					ID:          uuid.NewString(),
					Name:        "Announcements",
					Slug:        "announcements",
					Description: strPtr("Official news from the moderation team"),
					IconName:    strPtr("megaphone"),
					IsModerated: true,
				},
			)
			tx.SaveCategories(categories)
			log.Printf("Seeded %d categories", len(categories))
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to seed data: %v", err)
	}

	log.Println("Seeding completed successfully")
}
