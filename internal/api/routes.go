package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"giftlist-backend-go/internal/core"
	"giftlist-backend-go/internal/db"
	"giftlist-backend-go/internal/middleware"
	"giftlist-backend-go/internal/storage"
)

// SetupRoutes configures all application routes with their handlers and
// middleware. Global middleware (logging, recovery, CORS) is expected to be
// applied to the router before this is called, typically in main.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	draftService core.DraftService,
	audienceService core.AudienceService,
	accessService core.AccessService,
	covers *storage.CoverPhotoStore,
) {
	// The Firebase Auth client must be available after db.InitFirebase().
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("Firebase Auth client is not initialized; routes cannot be secured")
		panic("Firebase Auth client is nil during route setup")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient)

	draftHandler := NewDraftHandler(draftService)
	audienceHandler := NewAudienceHandler(audienceService)
	accessHandler := NewAccessHandler(accessService)
	mediaHandler := NewMediaHandler(covers)

	apiV1 := router.Group("/api/v1")
	{
		// Owner-side wizard endpoints; all authenticated.
		listsGroup := apiV1.Group("/lists", authMW.VerifyToken())
		{
			listsGroup.POST("/draft/details", draftHandler.ContinueDetails)
			listsGroup.GET("/:listId/draft", draftHandler.GetDraft)
			listsGroup.POST("/:listId/draft/privacy", draftHandler.ContinuePrivacy)
		}

		apiV1.GET("/audience", authMW.VerifyToken(), audienceHandler.GetCandidates)
		apiV1.POST("/media/cover-photo", authMW.VerifyToken(), mediaHandler.UploadCoverPhoto)

		// Viewer-side gate endpoints; deliberately public. The gate is a
		// presentation gate, not an authorization boundary.
		gateGroup := apiV1.Group("/gate")
		{
			gateGroup.POST("/open/:listId", accessHandler.Open)
			gateGroup.POST("/sessions/:token/unlock", accessHandler.Unlock)
			gateGroup.POST("/sessions/:token/request-access", accessHandler.RequestAccess)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Giftlist backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
