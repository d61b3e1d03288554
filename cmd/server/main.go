package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"giftlist-backend-go/internal/api"
	"giftlist-backend-go/internal/config"
	"giftlist-backend-go/internal/core"
	"giftlist-backend-go/internal/db"
	"giftlist-backend-go/internal/middleware"
	"giftlist-backend-go/internal/storage"
	"giftlist-backend-go/pkg/cache"
	"giftlist-backend-go/pkg/messagequeue"
)

func main() {
	// --- 1. Initialize Logger (Zap) ---
	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Zap logger initialized successfully.")

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 3. Initialize Firebase Admin SDK (Firestore, Auth, Storage) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirebase(initCtx, appConfig); err != nil {
		zapLogger.Fatal("Failed to initialize Firebase Admin SDK", zap.Error(err))
	}

	firestoreClient := db.GetFirestoreClient()
	firebaseAuthClient := db.GetFirebaseAuthClient()
	firebaseStorageClient := db.GetFirebaseStorageClient()
	if firestoreClient == nil || firebaseAuthClient == nil || firebaseStorageClient == nil {
		zapLogger.Fatal("Firebase clients are nil after initialization. Application cannot start.")
	}
	zapLogger.Info("Firebase clients retrieved successfully.")

	// --- 4. Initialize Repositories ---
	listRepo := db.NewFirestoreListRepository(firestoreClient)
	shareRepo := db.NewFirestoreShareRepository(firestoreClient)
	audienceRepo := db.NewFirestoreAudienceRepository(firestoreClient)
	activityRepo := db.NewFirestoreActivityRepository(firestoreClient)
	zapLogger.Info("Repositories initialized successfully.")

	// --- 5. Gate session store: Redis when configured, in-process otherwise ---
	var sessionStore cache.Cache
	if appConfig.RedisAddr != "" {
		sessionStore, err = cache.NewRedisCache(cache.NewRedisCacheConfig{
			Address:  appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis for gate sessions", zap.Error(err))
		}
		zapLogger.Info("Gate sessions backed by Redis", zap.String("addr", appConfig.RedisAddr))
	} else {
		sessionStore = cache.NewMemoryCache()
		zapLogger.Warn("REDIS_ADDR not set; gate sessions are in-process and will not survive a restart.")
	}

	// --- 6. Access-request delivery: RabbitMQ when configured, SMTP fallback ---
	var queue messagequeue.MessageQueue
	if appConfig.RabbitMQURL != "" {
		queue, err = messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{URL: appConfig.RabbitMQURL})
		if err != nil {
			zapLogger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer queue.Close()
		zapLogger.Info("Access requests published to RabbitMQ", zap.String("queue", appConfig.RabbitMQQueue))
	} else if appConfig.SMTPUser != "" {
		zapLogger.Info("Access requests delivered by email", zap.String("sender", appConfig.MailSender))
	} else {
		zapLogger.Warn("Neither RABBITMQ_URL nor SMTP_USER configured; access requests cannot be delivered.")
	}

	// --- 7. Initialize Services ---
	activityService := core.NewActivityService(activityRepo, zapLogger)
	audienceService := core.NewAudienceService(audienceRepo, shareRepo, zapLogger)
	draftService := core.NewDraftService(listRepo, shareRepo, audienceService, activityService, zapLogger)
	notifier := core.NewNotifyService(queue, appConfig.RabbitMQQueue, firebaseAuthClient,
		appConfig.SMTPUser, appConfig.SMTPPass, appConfig.MailSender, zapLogger)
	accessService := core.NewAccessService(listRepo, sessionStore, notifier, activityService, zapLogger,
		time.Duration(appConfig.GateSessionTTLMinutes)*time.Minute)
	zapLogger.Info("Core services initialized successfully.")

	covers, err := storage.NewCoverPhotoStore(firebaseStorageClient, appConfig.StorageBucket)
	if err != nil {
		zapLogger.Fatal("Failed to initialize cover photo store", zap.Error(err))
	}

	// --- 8. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// Order matters: log first, recover after the logger, CORS before routes.
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured.")
	}

	// --- 9. Setup API Routes ---
	api.SetupRoutes(router, zapLogger, draftService, audienceService, accessService, covers)

	// --- 10. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 11. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
