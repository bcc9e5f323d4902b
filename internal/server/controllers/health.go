package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GETReady reports whether the trips API answers its health check.
func GETReady(c *gin.Context) {
	client, ok := apiClient(c)
	if !ok {
		return
	}
	if err := client.Health(requestContext(c)); err != nil {
		logger(c).Warn("Trips API not ready", "error", err)
		c.String(http.StatusServiceUnavailable, "API unavailable")
		return
	}
	c.String(http.StatusOK, "OK")
}
