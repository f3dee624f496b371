package router

import (
	"database/sql"
	"fmt"
	"net/http"

	"poker_club_backend/internal/config"
	"poker_club_backend/internal/handlers"
	"poker_club_backend/internal/metrics"
	"poker_club_backend/internal/middleware"
	"poker_club_backend/internal/repositories"
	"poker_club_backend/internal/services"
	"poker_club_backend/internal/storage"
	"poker_club_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the API exposes.
type Handlers struct {
	Club         *handlers.ClubHandler
	Auth         *handlers.AuthHandler
	LiveStatus   *handlers.LiveStatusHandler
	Offer        *handlers.OfferHandler
	Registration *handlers.RegistrationHandler
}

// Options carries the cross-cutting pieces routes are mounted with.
type Options struct {
	LoginLimiter  *middleware.LoginLimiter
	Metrics       *metrics.Metrics
	UploadsDir    string
	UploadsPrefix string
}

// NewEngine creates the gin engine with logging, recovery, CORS and request metrics.
func NewEngine(cfg *config.Config, m *metrics.Metrics) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())
	engine.Use(m.Middleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.MaxMultipartMemory = int64(cfg.Uploads.MaxImageMB) << 20
	return engine
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, cfg *config.Config, m *metrics.Metrics) error {
	// Initialize Repositories
	clubRepo := repositories.NewClubRepository(db)
	liveRepo := repositories.NewLiveUpdateRepository(db)
	offerRepo := repositories.NewOfferRepository(db)
	regRepo := repositories.NewRegistrationRepository(db)

	images, err := storage.NewDiskImageStore(cfg.Uploads.Dir, cfg.Uploads.URLPrefix, int64(cfg.Uploads.MaxImageMB)<<20)
	if err != nil {
		return fmt.Errorf("failed to prepare image storage: %w", err)
	}

	// Initialize Services
	clubService := services.NewClubService(clubRepo, liveRepo, db, m)
	authService := services.NewAuthService(clubRepo, db, m)
	liveService := services.NewLiveStatusService(liveRepo, clubRepo, db, m)
	offerService := services.NewOfferService(offerRepo, clubRepo, images, db)
	regService := services.NewRegistrationService(regRepo, db)

	// Initialize Handlers
	h := Handlers{
		Club:         handlers.NewClubHandler(clubService),
		Auth:         handlers.NewAuthHandler(authService),
		LiveStatus:   handlers.NewLiveStatusHandler(liveService),
		Offer:        handlers.NewOfferHandler(offerService),
		Registration: handlers.NewRegistrationHandler(regService),
	}

	Register(engine, h, Options{
		LoginLimiter:  middleware.NewLoginLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst),
		Metrics:       m,
		UploadsDir:    cfg.Uploads.Dir,
		UploadsPrefix: cfg.Uploads.URLPrefix,
	})
	return nil
}

// Register mounts all routes on engine.
func Register(engine *gin.Engine, h Handlers, opts Options) {
	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if opts.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if opts.UploadsDir != "" && opts.UploadsPrefix != "" {
		engine.Static(opts.UploadsPrefix, opts.UploadsDir)
	}

	apiV1 := engine.Group("/api/v1")

	SetupClubRoutes(apiV1, h.Club, h.LiveStatus, h.Offer)
	SetupLiveUpdateRoutes(apiV1, h.LiveStatus)
	SetupRegistrationRoutes(apiV1, h.Registration)
	SetupAuthRoutes(apiV1, h.Auth, opts.LoginLimiter)

	// Setup authenticated routes
	clubAdmin := apiV1.Group("/club-admin")
	clubAdmin.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(utils.RoleClub))
	SetupClubAdminRoutes(clubAdmin, h.Auth, h.LiveStatus, h.Offer)
}
