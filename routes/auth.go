package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/internal/auth"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/middleware"
	"github.com/rentalmarket/core/models"
)

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register_ creates a new user and issues a token pair, the trailing
// underscore avoiding a clash with the stdlib-flavored name Register used
// for Gin route registration elsewhere in this package.
func (srv *Server) Register_() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			middleware.RespondError(c, apperr.Internal("hashing password", err))
			return
		}

		u := &models.User{
			Email:        req.Email,
			PasswordHash: hash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
		}
		if err := srv.Store.CreateUser(c.Request.Context(), u); err != nil {
			if err == store.ErrDuplicateEmail {
				middleware.RespondError(c, apperr.ErrDuplicateEmail)
				return
			}
			middleware.RespondError(c, apperr.Internal("creating user", err))
			return
		}

		access, refresh, err := srv.Issuer.IssueTokens(u.ID)
		if err != nil {
			middleware.RespondError(c, apperr.Internal("issuing tokens", err))
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": u, "access_token": access, "refresh_token": refresh})
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (srv *Server) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		u, err := srv.Store.GetUserByEmail(c.Request.Context(), req.Email)
		if err == store.ErrNotFound {
			middleware.RespondError(c, apperr.ErrBadCredentials)
			return
		}
		if err != nil {
			middleware.RespondError(c, apperr.Internal("loading user", err))
			return
		}
		if !auth.CheckPassword(u.PasswordHash, req.Password) {
			middleware.RespondError(c, apperr.ErrBadCredentials)
			return
		}

		access, refresh, err := srv.Issuer.IssueTokens(u.ID)
		if err != nil {
			middleware.RespondError(c, apperr.Internal("issuing tokens", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"access_token": access, "refresh_token": refresh})
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (srv *Server) RefreshToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		userID, err := srv.Issuer.Parse(req.RefreshToken, "refresh")
		if err != nil {
			middleware.RespondError(c, apperr.ErrUnauthenticated)
			return
		}

		access, refresh, err := srv.Issuer.IssueTokens(userID)
		if err != nil {
			middleware.RespondError(c, apperr.Internal("issuing tokens", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"access_token": access, "refresh_token": refresh})
	}
}
