// File: cmd/promote-admin/main.go
// Command promote-admin grants the admin role to an existing profile.
//
// Usage:
//
//	go run ./cmd/promote-admin -email someone@example.com
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aqkal/Rentixe/internal/config"
	"github.com/aqkal/Rentixe/internal/platform/database"
	"github.com/aqkal/Rentixe/internal/platform/logger"
	"github.com/aqkal/Rentixe/internal/profile"
)

func main() {
	email := flag.String("email", "", "email of the profile to promote")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: promote-admin -email <email>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: could not load config: %v", err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: could not initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewGORM(cfg)
	if err != nil {
		log.Fatalf("FATAL: could not connect to database: %v", err)
	}
	defer database.CloseGORMDB(db)

	profileService := profile.NewService(profile.NewGORMRepository(db), zapLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	p, err := profileService.PromoteToAdmin(ctx, *email)
	if err != nil {
		log.Fatalf("FATAL: could not promote %s: %v", *email, err)
	}

	promotedEmail := *email
	if p.Email != nil {
		promotedEmail = *p.Email
	}
	fmt.Printf("profile %s (%s) now has role %q\n", p.ID, promotedEmail, p.Role)
}
