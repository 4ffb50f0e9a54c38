// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"github.com/aqkal/Rentixe/internal/admin"
	"github.com/aqkal/Rentixe/internal/app"
	"github.com/aqkal/Rentixe/internal/auth"
	"github.com/aqkal/Rentixe/internal/config"
	"github.com/aqkal/Rentixe/internal/favorite"
	"github.com/aqkal/Rentixe/internal/filestorage"
	"github.com/aqkal/Rentixe/internal/jobs"
	"github.com/aqkal/Rentixe/internal/listing"
	"github.com/aqkal/Rentixe/internal/platform/database"
	"github.com/aqkal/Rentixe/internal/platform/logger"
	"github.com/aqkal/Rentixe/internal/profile"
	"github.com/aqkal/Rentixe/internal/shared"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideCleanup,

		// Auth
		auth.NewJWTTokenService,
		wire.Bind(new(shared.TokenService), new(*auth.JWTTokenService)),

		// Profiles
		profile.NewGORMRepository,
		profile.NewService,
		profile.NewHandler,

		// Listings
		listing.NewGORMRepository,
		listing.NewService,
		listing.NewHandler,

		// Favorites
		favorite.NewGORMRepository,
		favorite.NewService,
		favorite.NewHandler,
		wire.Bind(new(listing.FavoriteChecker), new(favorite.Service)),

		// File storage
		filestorage.NewService,
		filestorage.NewHandler,
		wire.Bind(new(listing.FileRemover), new(*filestorage.Service)),

		// Admin
		admin.NewService,
		admin.NewHandler,

		// Jobs
		jobs.NewFavoriteSweepJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

