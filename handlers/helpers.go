package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func jsonError(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"error": msg})
}

// serverError logs the underlying fault and reports a uniform envelope.
// Persistence faults never leak driver details to the client.
func serverError(c *gin.Context, err error) {
	log.Printf("server error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	jsonError(c, http.StatusInternalServerError, "Internal server error")
}

// parseDate accepts RFC3339 or plain "YYYY-MM-DD".
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
	}
	return t, err
}
