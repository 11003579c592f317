package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/middleware"
)

func (srv *Server) ListCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := srv.Store.ListCategories(c.Request.Context())
		if err != nil {
			middleware.RespondError(c, apperr.Internal("listing categories", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": cats})
	}
}

func (srv *Server) GetCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}
		cat, err := srv.Store.GetCategory(c.Request.Context(), id)
		if err == store.ErrNotFound {
			middleware.RespondError(c, apperr.ErrCategoryNotFound)
			return
		}
		if err != nil {
			middleware.RespondError(c, apperr.Internal("loading category", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": cat})
	}
}
