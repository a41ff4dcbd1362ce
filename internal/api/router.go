// Package api assembles the HTTP surface of the CRM.
package api

import (
	"time"

	"github.com/Marga-Ghale/creativa-crm/internal/api/handlers"
	"github.com/Marga-Ghale/creativa-crm/internal/api/middleware"
	"github.com/Marga-Ghale/creativa-crm/internal/service"
	"github.com/Marga-Ghale/creativa-crm/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterDeps are the pieces the router wires together.
type RouterDeps struct {
	Handlers       *handlers.Handlers
	AuthService    service.AuthService
	AllowedOrigins []string
	// WebSocket serves GET /ws; nil disables the route.
	WebSocket gin.HandlerFunc
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(deps.AllowedOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	h := deps.Handlers
	auth := middleware.AuthMiddleware(deps.AuthService)
	adminOnly := middleware.RequireRole(types.RoleAdmin)

	r.GET("/health", h.Health.Check)
	if deps.WebSocket != nil {
		r.GET("/ws", deps.WebSocket)
	}

	// ============================================
	// Public routes (no auth required)
	// ============================================
	r.POST("/auth/login", h.Auth.Login)
	r.POST("/public/leads", h.Public.CreateLead)
	r.POST("/surveys", h.Survey.Create)

	// ============================================
	// Protected routes
	// ============================================
	r.GET("/auth/me", auth, h.Auth.Me)

	users := r.Group("/users", auth, adminOnly)
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.PATCH("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}

	clients := r.Group("/clients", auth)
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PATCH("/:id", h.Client.Update)
		clients.DELETE("/:id", adminOnly, h.Client.Delete)
	}

	projects := r.Group("/projects", auth)
	{
		projects.GET("", h.Project.List)
		projects.POST("", h.Project.Create)
		projects.GET("/:id", h.Project.Get)
		projects.PATCH("/:id", h.Project.Update)
		projects.DELETE("/:id", adminOnly, h.Project.Delete)
		projects.POST("/:id/tasks", h.Project.AddTask)
		projects.POST("/:id/links", h.Project.AddLink)
		projects.POST("/:id/notify", h.Project.Notify)
	}

	tasks := r.Group("/tasks", auth)
	{
		tasks.PATCH("/:id", h.Task.Update)
		tasks.DELETE("/:id", h.Task.Delete)
	}

	r.DELETE("/links/:id", auth, h.Link.Delete)

	surveys := r.Group("/surveys", auth, adminOnly)
	{
		surveys.GET("", h.Survey.List)
		surveys.GET("/stats", h.Survey.Stats)
	}

	return r
}
