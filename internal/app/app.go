package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adinlo/colrag/internal/config"
	"github.com/Adinlo/colrag/internal/domain/services"
	"github.com/Adinlo/colrag/internal/infrastructure/cache"
	"github.com/Adinlo/colrag/internal/infrastructure/database"
	"github.com/Adinlo/colrag/internal/infrastructure/database/repositories"
	"github.com/Adinlo/colrag/internal/infrastructure/storage"
	"github.com/Adinlo/colrag/internal/interfaces/handlers"
	"github.com/Adinlo/colrag/internal/pipeline"
	"github.com/Adinlo/colrag/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Run(cfg config.Config) error {
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	blobStore, err := storage.NewMinioStorage(cfg.Storage)
	if err != nil {
		return err
	}

	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	workspaceRepo := repositories.NewWorkspaceRepository(db)
	docRepo := repositories.NewDocumentRepository(db)
	chunkRepo := repositories.NewChunkRepository(db)

	llmClient := pipeline.NewOpenAIClient(cfg.LLM)
	indexing := pipeline.NewIndexing(chunkRepo, llmClient, cfg.Index)
	query := pipeline.NewQuery(chunkRepo, llmClient, llmClient, cfg.Index)

	cacheSvc := services.NewRedisCacheService(redisClient, cfg.Auth.CacheDuration)
	authSvc := services.NewAuthService(userRepo, sessionRepo, cfg.Auth.AdminToken, cfg.Auth.TokenDuration)
	workspaceSvc := services.NewWorkspaceService(workspaceRepo)
	docSvc := services.NewDocumentService(docRepo, cacheSvc, blobStore, chunkRepo)
	uploadSvc := services.NewUploadService(docRepo, workspaceSvc, blobStore, indexing, cacheSvc)
	chatSvc := services.NewChatService(userRepo, workspaceSvc, query)

	authHandler := handlers.NewAuthHandler(authSvc)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceSvc)
	docHandler := handlers.NewDocumentHandler(docSvc, uploadSvc, cfg.Storage.MaxSize)
	chatHandler := handlers.NewChatHandler(chatSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/auth", authHandler.Authenticate)
		api.DELETE("/auth/:token", authHandler.Logout)

		authed := api.Group("")
		authed.Use(handlers.AuthMiddleware(authSvc))
		{
			authed.POST("/workspaces", workspaceHandler.Create)
			authed.GET("/workspaces", workspaceHandler.List)

			authed.POST("/documents", docHandler.Upload)
			authed.GET("/documents", docHandler.GetList)
			authed.GET("/documents/:id", docHandler.GetByID)
			authed.POST("/documents/search", docHandler.Search)
			authed.DELETE("/documents/:id", docHandler.Delete)

			authed.GET("/chat/history", chatHandler.GetHistory)
			authed.POST("/chat/message", chatHandler.SendMessage)
		}
	}

	reconcilerCtx, stopReconciler := context.WithCancel(context.Background())
	defer stopReconciler()
	reconciler := services.NewReconciler(docRepo, blobStore, chunkRepo, cfg.Reconciler.Interval, cfg.Reconciler.PendingTTL)
	go reconciler.Run(reconcilerCtx)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	stopReconciler()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
