package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/middleware"
	"github.com/rentalmarket/core/models"
)

type createBookingRequest struct {
	ItemID    string `json:"item_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

func (srv *Server) CreateBooking() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			middleware.RespondError(c, apperr.ErrUnauthenticated)
			return
		}
		var req createBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		itemID, err := uuid.Parse(req.ItemID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item_id"})
			return
		}
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
			return
		}
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
			return
		}

		b, err := srv.Bookings.Create(c.Request.Context(), userID, itemID, start, end)
		if err != nil {
			middleware.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"booking": b})
	}
}

type transitionRequest struct {
	Status string `json:"status" binding:"required"`
}

func (srv *Server) TransitionBooking() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			middleware.RespondError(c, apperr.ErrUnauthenticated)
			return
		}
		bookingID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
			return
		}
		var req transitionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		b, err := srv.Bookings.Transition(c.Request.Context(), userID, bookingID, models.BookingStatus(req.Status))
		if err != nil {
			middleware.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"booking": b})
	}
}

func (srv *Server) ListMyBookings() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			middleware.RespondError(c, apperr.ErrUnauthenticated)
			return
		}
		role := store.BookingRole(c.DefaultQuery("role", string(store.RoleBoth)))
		bookings, err := srv.Bookings.ListForUser(c.Request.Context(), userID, role)
		if err != nil {
			middleware.RespondError(c, apperr.Internal("listing bookings", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings})
	}
}
