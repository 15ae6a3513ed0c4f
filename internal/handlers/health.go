package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{
		"message":   "Habte Job Portal API is running!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
