package router

import (
	"poker_club_backend/internal/handlers"
	"poker_club_backend/internal/middleware"
	"poker_club_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SetupClubRoutes sets up the public directory routes.
func SetupClubRoutes(apiGroup *gin.RouterGroup, clubHandler *handlers.ClubHandler, liveHandler *handlers.LiveStatusHandler, offerHandler *handlers.OfferHandler) {
	clubRoutes := apiGroup.Group("/clubs")
	{
		clubRoutes.GET("", clubHandler.ListClubs)
		clubRoutes.POST("", clubHandler.SubmitClub)
		clubRoutes.GET("/areas", clubHandler.ListAreas)
		clubRoutes.GET("/:id", clubHandler.GetClubByID)
		clubRoutes.GET("/:id/live-status", liveHandler.GetClubLiveStatus)
		clubRoutes.GET("/:id/offer", offerHandler.GetOffer)
	}
}

// SetupLiveUpdateRoutes sets up the live updates feed.
func SetupLiveUpdateRoutes(apiGroup *gin.RouterGroup, liveHandler *handlers.LiveStatusHandler) {
	apiGroup.GET("/live-updates", liveHandler.GetLiveUpdates)
}

// SetupRegistrationRoutes sets up player sign-up.
func SetupRegistrationRoutes(apiGroup *gin.RouterGroup, regHandler *handlers.RegistrationHandler) {
	apiGroup.POST("/registrations", regHandler.RegisterPlayer)
}

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler, limiter *middleware.LoginLimiter) {
	authRoutes := apiGroup.Group("/auth")
	{
		if limiter != nil {
			authRoutes.POST("/login", middleware.RateLimitMiddleware(limiter), authHandler.Login)
		} else {
			authRoutes.POST("/login", authHandler.Login)
		}

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(utils.RoleClub))
		{
			authRequiredRoutes.POST("/logout", authHandler.Logout)
		}
	}
}

// SetupClubAdminRoutes sets up the routes a logged-in club uses to manage its listing.
func SetupClubAdminRoutes(clubAdmin *gin.RouterGroup, authHandler *handlers.AuthHandler, liveHandler *handlers.LiveStatusHandler, offerHandler *handlers.OfferHandler) {
	clubAdmin.GET("/me", authHandler.GetCurrentClub)
	clubAdmin.PUT("/live-status", liveHandler.UpdateLiveStatus)
	clubAdmin.PUT("/offer", offerHandler.UpdateOffer)
}
