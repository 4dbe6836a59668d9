package main

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"userboard/internal/config"
	"userboard/internal/database"
	"userboard/internal/domain"
	"userboard/internal/pkg/password"
)

// Seeds the schema plus a default admin and a default user so a fresh
// checkout is usable immediately.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	seedUser(db, "admin", "admin@example.com", "admin123", domain.RoleAdmin)
	seedUser(db, "user", "user@example.com", "user123", domain.RoleUser)

	log.Println("Seed completed")
}

func seedUser(db *gorm.DB, username, email, plain string, role domain.Role) {
	var existing domain.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		log.Printf("%s already exists, skipping", username)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal(err)
	}

	hash, err := password.Hash(plain)
	if err != nil {
		log.Fatal(err)
	}

	u := domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := db.Create(&u).Error; err != nil {
		log.Fatal(err)
	}

	log.Printf("Created %s: %s / %s", role, email, plain)
}
