// seed-user creates or updates a dashboard login, for bootstrapping a fresh
// environment without going through /auth/register.
//
// Usage:
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//     SEED_EMAIL=owner@example.com SEED_PASSWORD=changeme go run ./cmd/seed-user
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mmdatafocus/dashboard_backend/config"
	"github.com/mmdatafocus/dashboard_backend/models"
	"github.com/mmdatafocus/dashboard_backend/utils"
	"gorm.io/gorm"
)

func main() {
	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "SEED_EMAIL and SEED_PASSWORD must be set")
		os.Exit(1)
	}

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	hashedBytes, err := utils.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}
	hashed := string(hashedBytes)

	var existing models.User
	err = db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
			os.Exit(1)
		}
		u := models.User{Email: email, HashedPassword: hashed}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created user %q (id=%d)\n", email, u.ID)
		return
	}

	if err := db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Update("hashed_password", hashed).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to update user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Updated password for %q (id=%d)\n", email, existing.ID)
}
