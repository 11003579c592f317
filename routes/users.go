package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/middleware"
	"github.com/rentalmarket/core/models"
)

func (srv *Server) GetSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			middleware.RespondError(c, apperr.ErrUnauthenticated)
			return
		}
		u, err := srv.Store.GetUser(c.Request.Context(), userID)
		if err != nil {
			middleware.RespondError(c, apperr.Internal("loading user", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u})
	}
}

// UpdateSelf applies a sparse, field-by-field profile update: every key
// in the request body must be a recognized key in
// models.UpdatableUserFields, or the whole request is rejected.
func (srv *Server) UpdateSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			middleware.RespondError(c, apperr.ErrUnauthenticated)
			return
		}

		var patch map[string]string
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		for key := range patch {
			if _, ok := models.UpdatableUserFields[key]; !ok {
				middleware.RespondError(c, apperr.ErrUnknownUpdateField)
				return
			}
		}

		u, err := srv.Store.GetUser(c.Request.Context(), userID)
		if err != nil {
			middleware.RespondError(c, apperr.Internal("loading user", err))
			return
		}

		for key, value := range patch {
			switch key {
			case "firstName":
				u.FirstName = value
			case "lastName":
				u.LastName = value
			case "phone":
				u.Phone = value
			case "bio":
				u.Bio = value
			case "location":
				u.Location = value
			case "avatar":
				u.Avatar = value
			}
		}

		if err := srv.Store.SaveUser(c.Request.Context(), u); err != nil {
			middleware.RespondError(c, apperr.Internal("saving user", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u})
	}
}
