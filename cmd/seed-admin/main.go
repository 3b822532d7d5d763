// Bootstrap script to create the first HR admin account
// cmd/seed-admin/main.go
package main

import (
	"applicant-tracking-api/config"
	"applicant-tracking-api/models"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	fname := flag.String("fname", "Admin", "first name")
	lname := flag.String("lname", "User", "last name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Usage: seed-admin -email <email> -password <password>")
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	var existing models.User
	if err := config.DB.Where("email = ?", *email).First(&existing).Error; err == nil {
		log.Fatalf("User %s already exists (id=%d)", *email, existing.UserID)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		UserFname: *fname,
		UserLname: *lname,
		Email:     *email,
		Password:  string(hashed),
		RoleID:    models.RoleHRAdmin,
		IsActive:  true,
	}

	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	log.Printf("Successfully created HR admin %s (id=%d)", admin.Email, admin.UserID)
}
