// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aqkal/Rentixe/internal/admin"
	"github.com/aqkal/Rentixe/internal/config"
	"github.com/aqkal/Rentixe/internal/favorite"
	"github.com/aqkal/Rentixe/internal/filestorage"
	"github.com/aqkal/Rentixe/internal/jobs"
	"github.com/aqkal/Rentixe/internal/listing"
	"github.com/aqkal/Rentixe/internal/middleware"
	"github.com/aqkal/Rentixe/internal/profile"
	"github.com/aqkal/Rentixe/internal/shared"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	favoriteSweepJob *jobs.FavoriteSweepJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tokenService shared.TokenService,
	listingHandler *listing.Handler,
	favoriteHandler *favorite.Handler,
	profileHandler *profile.Handler,
	uploadHandler *filestorage.Handler,
	adminHandler *admin.Handler,
	favoriteSweepJob *jobs.FavoriteSweepJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(tokenService, logger.Named("AuthMiddleware"))
	optionalAuthMW := middleware.OptionalAuthMiddleware(tokenService, logger.Named("AuthMiddleware"))
	adminRoleMW := middleware.RoleAuthMiddleware(shared.RoleAdmin)

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	// Uploaded images are served straight off disk.
	router.Static("/storage/listing-images", cfg.StoragePath)

	v1 := router.Group("/api/v1")
	listingHandler.RegisterRoutes(v1, authMW, optionalAuthMW)
	favoriteHandler.RegisterRoutes(v1, authMW)
	profileHandler.RegisterRoutes(v1, authMW)
	uploadHandler.RegisterRoutes(v1, authMW)
	adminHandler.RegisterRoutes(v1, authMW, adminRoleMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:       httpServer,
		router:           router,
		cfg:              cfg,
		logger:           logger,
		favoriteSweepJob: favoriteSweepJob,
	}, nil
}

func (s *Server) Start() error {
	if s.favoriteSweepJob != nil {
		if err := s.favoriteSweepJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start favorite sweep job", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.favoriteSweepJob != nil {
		s.favoriteSweepJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
