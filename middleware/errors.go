package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentalmarket/core/internal/apperr"
)

// RespondError maps a typed error to its HTTP status code and writes
// the JSON response. Internal errors are logged server-side and never
// leak backend detail to the client.
func RespondError(c *gin.Context, err error) {
	if ae, ok := apperr.As(err); ok {
		if ae.Code == apperr.CodeInternal {
			log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, ae)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(ae.Code.HTTPStatus(), gin.H{"error": ae.Message})
		return
	}
	log.Printf("unmapped error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
