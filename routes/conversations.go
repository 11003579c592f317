package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/middleware"
)

type openConversationRequest struct {
	CounterpartyID string  `json:"counterparty_id" binding:"required"`
	BookingID      *string `json:"booking_id"`
}

func (srv *Server) OpenConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			middleware.RespondError(c, apperr.ErrUnauthenticated)
			return
		}
		var req openConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		counterparty, err := uuid.Parse(req.CounterpartyID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid counterparty_id"})
			return
		}
		var bookingID *uuid.UUID
		if req.BookingID != nil {
			id, err := uuid.Parse(*req.BookingID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking_id"})
				return
			}
			bookingID = &id
		}

		conv, err := srv.Messaging.OpenOrCreateConversation(c.Request.Context(), userID, counterparty, bookingID)
		if err != nil {
			middleware.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"conversation": conv})
	}
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (srv *Server) SendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			middleware.RespondError(c, apperr.ErrUnauthenticated)
			return
		}
		conversationID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
			return
		}
		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		m, err := srv.Messaging.SendMessage(c.Request.Context(), userID, conversationID, req.Content)
		if err != nil {
			middleware.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": m})
	}
}

func (srv *Server) ListMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			middleware.RespondError(c, apperr.ErrUnauthenticated)
			return
		}
		conversationID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
			return
		}
		page, _ := strconv.Atoi(c.Query("page"))
		pageSize, _ := strconv.Atoi(c.Query("page_size"))

		msgs, total, err := srv.Messaging.ListMessages(c.Request.Context(), userID, conversationID, page, pageSize)
		if err != nil {
			middleware.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": msgs, "total": total})
	}
}

func (srv *Server) MarkRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			middleware.RespondError(c, apperr.ErrUnauthenticated)
			return
		}
		conversationID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
			return
		}
		if err := srv.Messaging.MarkRead(c.Request.Context(), userID, conversationID); err != nil {
			middleware.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
