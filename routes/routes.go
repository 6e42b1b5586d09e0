package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"communityconnect/config"
	"communityconnect/database"
	"communityconnect/handlers"
	"communityconnect/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/mongo/mongodriver"
	"github.com/gin-gonic/gin"
)

const sessionCookieName = "cc_session"
const sessionMaxAge = 24 * 60 * 60 // 24 hours

// spaRoot is where the built frontend shell lives; unmatched non-API
// routes fall back to its index.html for client-side routing.
const spaRoot = "build"

func SetupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
			"time":   time.Now().Unix(),
		})
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Server-side sessions in Mongo, opaque signed cookie.
	store := mongodriver.NewStore(database.Sessions, sessionMaxAge, true, []byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   !cfg.IsDevelopment(),
	})
	router.Use(sessions.Sessions(sessionCookieName, store))

	// Public routes. The auth endpoints carry a per-IP budget to slow down
	// credential guessing.
	authLimit := middleware.RateLimit(20, time.Minute)
	router.POST("/api/register", authLimit, handlers.Register)
	router.POST("/api/login", authLimit, handlers.Login)
	// Logout is idempotent: clearing an absent session still returns 200,
	// so it must not sit behind the auth gate.
	router.POST("/api/logout", handlers.Logout)
	router.GET("/api/posts", handlers.ListPosts)

	// Protected routes group
	protected := router.Group("/api")
	protected.Use(middleware.RequireAuth())

	// Profile
	protected.GET("/user", handlers.GetCurrentUser)
	protected.POST("/user/update", handlers.UpdateProfile)
	protected.POST("/user/upload-avatar", handlers.UploadAvatar)

	// Media
	protected.POST("/upload/media", handlers.UploadMedia)

	// Posts
	protected.POST("/posts", handlers.CreatePost)
	protected.PUT("/posts/:id", handlers.EditPost)
	protected.POST("/posts/:id/like", handlers.ToggleLike)
	protected.GET("/posts/:id/like-status", handlers.LikeStatus)
	protected.GET("/posts/:id/comments", handlers.ListComments)
	protected.POST("/posts/:id/comments", handlers.AddComment)
	protected.GET("/posts/:id/user-comment-status", handlers.UserCommentStatus)

	// Network
	protected.GET("/network/connections", handlers.GetConnections)
	protected.POST("/network/connect", handlers.Connect)

	// Conversations
	protected.GET("/conversations", handlers.ListConversations)
	protected.POST("/conversations/start/:userId", handlers.StartConversation)
	protected.GET("/conversations/:id/messages", handlers.ListMessages)
	protected.POST("/conversations/:id/messages", handlers.SendMessage)

	// Events
	protected.GET("/events", handlers.ListEvents)
	protected.POST("/events", handlers.CreateEvent)

	// Admin
	protected.GET("/admin/stats", handlers.GetAdminStats)

	// Unmatched API routes get a JSON 404; everything else serves the SPA
	// shell so the client router can take over.
	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Endpoint not found",
				"path":  path,
			})
			return
		}

		file := filepath.Join(spaRoot, filepath.Clean("/"+path))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(spaRoot, "index.html"))
	})

	return router
}
