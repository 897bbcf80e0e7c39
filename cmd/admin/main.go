package main

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"talentd/internal/auth"
	"talentd/internal/config"
	"talentd/internal/database"
)

// Creates the initial admin account. The generated password is printed once
// and never stored in the clear.
func main() {
	var (
		username = flag.String("username", "", "admin username (required)")
		email    = flag.String("email", "", "admin email (required)")
	)
	flag.Parse()

	u := strings.TrimSpace(*username)
	e := strings.TrimSpace(*email)
	if u == "" {
		log.Fatal("missing required flag: --username")
	}
	if e == "" {
		log.Fatal("missing required flag: --email")
	}

	cfg := config.MustLoad()

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	var existing database.User
	switch err := db.Where("username = ? OR email = ?", u, e).First(&existing).Error; {
	case err == nil:
		log.Fatalf("user %q already exists", u)
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		log.Fatalf("query user: %v", err)
	}

	password, err := generateRandomPassword(24)
	if err != nil {
		log.Fatalf("generate password: %v", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user := database.User{
		Username:     u,
		Email:        e,
		PasswordHash: hashed,
		IsAdmin:      true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("create user: %v", err)
	}

	fmt.Printf("created admin account:\n")
	fmt.Printf("username: %s\n", u)
	fmt.Printf("password: %s\n", password)
	fmt.Printf("note: this password is shown only once, change it after first login.\n")
}

func generateRandomPassword(bytesLen int) (string, error) {
	if bytesLen <= 0 {
		bytesLen = 24
	}
	buf := make([]byte, bytesLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
