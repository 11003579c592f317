// Package routes binds the core services to Gin handlers. Every handler
// here is a thin adapter — parse request, call a core service, map the
// result or error to JSON.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rentalmarket/core/internal/auth"
	"github.com/rentalmarket/core/internal/availability"
	"github.com/rentalmarket/core/internal/booking"
	"github.com/rentalmarket/core/internal/clock"
	"github.com/rentalmarket/core/internal/messaging"
	"github.com/rentalmarket/core/internal/review"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/middleware"
)

// Server holds every dependency the route handlers need. Explicit
// injection, rather than a package-level DB singleton, is what makes
// internal/clock.Clock actually swappable in tests.
type Server struct {
	Store     *store.Store
	Clock     clock.Clock
	Issuer    *auth.TokenIssuer
	Bookings  *booking.Service
	Reviews   *review.Service
	Messaging *messaging.Service
	Projector *availability.Projector
}

func NewServer(s *store.Store, c clock.Clock, issuer *auth.TokenIssuer) *Server {
	return &Server{
		Store:     s,
		Clock:     c,
		Issuer:    issuer,
		Bookings:  booking.NewService(s, c),
		Reviews:   review.NewService(s),
		Messaging: messaging.NewService(s, c),
		Projector: availability.NewProjector(s),
	}
}

// Register wires every route onto the given Gin engine.
func (srv *Server) Register(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := router.Group("/auth")
	{
		auth.POST("/register", srv.Register_())
		auth.POST("/login", srv.Login())
		auth.POST("/refresh", srv.RefreshToken())
	}

	users := router.Group("/users")
	users.Use(middleware.AuthMiddleware(srv.Issuer))
	{
		users.GET("/me", srv.GetSelf())
		users.PATCH("/me", srv.UpdateSelf())
	}

	categories := router.Group("/categories")
	{
		categories.GET("", srv.ListCategories())
		categories.GET("/:id", srv.GetCategory())
	}

	items := router.Group("/items")
	{
		items.GET("", srv.ListItems())
		items.GET("/:id", srv.GetItem())
		items.GET("/:id/availability", srv.GetAvailability())
		items.GET("/:id/price-preview", srv.PreviewPrice())
	}
	itemsAuthed := router.Group("/items")
	itemsAuthed.Use(middleware.AuthMiddleware(srv.Issuer))
	{
		itemsAuthed.POST("", srv.CreateItem())
		itemsAuthed.PATCH("/:id", srv.UpdateItem())
		itemsAuthed.DELETE("/:id", srv.DeleteItem())
	}

	bookings := router.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware(srv.Issuer))
	{
		bookings.POST("", srv.CreateBooking())
		bookings.GET("", srv.ListMyBookings())
		bookings.POST("/:id/transitions", srv.TransitionBooking())
	}

	reviews := router.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware(srv.Issuer))
	{
		reviews.POST("", srv.CreateReview())
	}

	conversations := router.Group("/conversations")
	conversations.Use(middleware.AuthMiddleware(srv.Issuer))
	{
		conversations.POST("", srv.OpenConversation())
		conversations.POST("/:id/messages", srv.SendMessage())
		conversations.GET("/:id/messages", srv.ListMessages())
		conversations.POST("/:id/read", srv.MarkRead())
	}
}
