package main

import (
	"github.com/gin-gonic/gin"

	"github.com/SeniduRavihara/usj-event-calendar/auth"
	"github.com/SeniduRavihara/usj-event-calendar/config"
	"github.com/SeniduRavihara/usj-event-calendar/handlers"
	"github.com/SeniduRavihara/usj-event-calendar/middleware"
)

// protectedPages are the page prefixes the server-side guard redirects to
// /login when the request carries no valid session cookie.
var protectedPages = []string{"/dashboard", "/admin"}

func SetupRoutes(r *gin.Engine, cfg *config.Config, tokens *auth.Service) {
	r.Use(middleware.PageGuard(tokens, protectedPages))

	authHandler := handlers.NewAuthHandler(tokens, cfg)

	// Auth
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
		authRoutes.GET("/me", middleware.RequireAuth(tokens), authHandler.Me)
		authRoutes.PUT("/me", middleware.RequireAuth(tokens), authHandler.UpdateMe)
	}

	// Events: reads for any session, mutations admin-only
	events := r.Group("/events")
	events.Use(middleware.RequireAuth(tokens))
	{
		events.GET("", handlers.ListEvents)
		events.GET("/:id", handlers.GetEvent)

		admin := events.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("", handlers.CreateEvent)
			admin.PUT("/:id", handlers.UpdateEvent)
			admin.DELETE("/:id", handlers.DeleteEvent)
		}
	}

	// Analytics: admin-only
	analytics := r.Group("/analytics")
	analytics.Use(middleware.RequireAuth(tokens), middleware.RequireAdmin())
	{
		analytics.GET("/users", handlers.UserAnalytics)
	}
}
