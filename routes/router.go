package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/draftbox/draftbox/config"
	"github.com/draftbox/draftbox/controllers"
	"github.com/draftbox/draftbox/middleware"
	"github.com/draftbox/draftbox/service"
	"github.com/draftbox/draftbox/store"
	"github.com/draftbox/draftbox/utils"
)

// SetupRouter wires routes, middlewares, and controllers over a store.
func SetupRouter(st store.Store) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	// Replace the default console logger with a file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(st)
	postController := controllers.NewPostController(service.NewPostService(st))
	commentController := controllers.NewCommentController(service.NewCommentService(st))

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Reads resolve an identity when one is offered so owners see their
	// drafts; everything stays reachable anonymously.
	reads := api.Group("")
	reads.Use(middleware.AuthOptional())
	reads.GET("/posts", postController.ListPosts)
	reads.GET("/posts/:id", postController.GetPost)
	reads.GET("/posts/:id/comments", commentController.ListComments)

	writes := api.Group("")
	writes.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	writes.POST("/posts", postController.CreatePost)
	writes.PUT("/posts/:id", postController.UpdatePost)
	writes.DELETE("/posts/:id", postController.DeletePost)
	writes.POST("/posts/:id/comments", commentController.CreateComment)
	writes.PUT("/comments/:commentId", commentController.UpdateComment)
	writes.DELETE("/comments/:commentId", commentController.DeleteComment)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
