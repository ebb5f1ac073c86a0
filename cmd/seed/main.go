package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"raone/internal/config"
	"raone/internal/db"
	"raone/internal/model"
	"raone/internal/repository"
)

var baseCategories = map[string][]string{
	"Electronics": {"Mobiles", "Laptops", "Audio"},
	"Fashion":     {"Men", "Women", "Kids"},
	"Home":        {"Furniture", "Kitchen", "Decor"},
}

func main() {
	log.Println("Starting seed script...")

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment directly")
	}
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}, &model.SubCategory{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	if err := seedAdmin(ctx, repository.NewUserRepository(gormDB)); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if err := seedCatalog(ctx, repository.NewCategoryRepository(gormDB), repository.NewSubCategoryRepository(gormDB)); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Println("Seed completed successfully")
}

// seedAdmin creates the initial ADMIN account if it doesn't exist yet.
// Credentials come from ADMIN_EMAIL and ADMIN_PASSWORD.
func seedAdmin(ctx context.Context, users repository.UserRepository) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	if _, err := users.FindByEmail(ctx, email); err == nil {
		log.Printf("Admin %s already exists, skipping", email)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.User{
		FullName:     "RA.one Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Admin %s created", email)
	return nil
}

// seedCatalog inserts the base category tree, skipping names that already
// exist.
func seedCatalog(ctx context.Context, categories repository.CategoryRepository, subCategories repository.SubCategoryRepository) error {
	existing, err := categories.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("Found %d categories, skipping catalog seed", len(existing))
		return nil
	}

	for name, subNames := range baseCategories {
		created, err := categories.CreateBatch(ctx, []model.Category{{Name: name}})
		if err != nil {
			return err
		}

		subs := make([]model.SubCategory, 0, len(subNames))
		for _, sub := range subNames {
			subs = append(subs, model.SubCategory{Name: sub, CategoryID: created[0].ID})
		}
		if _, err := subCategories.CreateBatch(ctx, subs); err != nil {
			return err
		}
		log.Printf("Seeded category %s with %d sub-categories", name, len(subs))
	}
	return nil
}
