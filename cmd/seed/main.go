package main

import (
	"log"
	"os"

	"github.com/22DP3HEisu/JustFitness-Mobile/internal/database"
	"github.com/22DP3HEisu/JustFitness-Mobile/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a local database with demo accounts for manual testing from the
// mobile client. Never point this at a real deployment, it wipes the users
// table first.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "justfitness.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	demoUsers := []struct {
		email    string
		name     string
		phone    string
		password string
	}{
		{"anna@example.lv", "Anna Bērziņa", "+37120000001", "parole123"},
		{"janis@example.lv", "Jānis Ozols", "+37120000002", "parole123"},
		{"liga@example.lv", "Līga Kalniņa", "", "parole123"},
	}

	for _, u := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("hash failed:", err)
		}
		user := domain.User{
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.name,
			Phone:        u.phone,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatal("create failed:", err)
		}
		log.Printf("created user id=%d email=%s", user.ID, user.Email)
	}

	log.Println("Seed completed!")
	log.Println("Test accounts: anna@example.lv / janis@example.lv / liga@example.lv, password: parole123")
}
