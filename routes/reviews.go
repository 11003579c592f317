package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/middleware"
)

type createReviewRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment" binding:"required"`
}

func (srv *Server) CreateReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			middleware.RespondError(c, apperr.ErrUnauthenticated)
			return
		}
		var req createReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		bookingID, err := uuid.Parse(req.BookingID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking_id"})
			return
		}

		r, err := srv.Reviews.Create(c.Request.Context(), userID, bookingID, req.Rating, req.Comment)
		if err != nil {
			middleware.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"review": r})
	}
}
