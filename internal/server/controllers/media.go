package controllers

import (
	"net/http"

	"github.com/USA-RedDragon/gory/internal/api"
	"github.com/gin-gonic/gin"
	"github.com/go-errors/errors"
)

const mediaCacheControl = "public, max-age=3600"

// GETMedia proxies a photo file from the API so the browser only ever talks
// to this server.
func GETMedia(c *gin.Context) {
	client, ok := apiClient(c)
	if !ok {
		return
	}

	media, err := client.OpenMedia(requestContext(c), c.Param("filepath"))
	if err != nil {
		switch {
		case errors.Is(err, api.ErrInvalidMedia):
			c.String(http.StatusBadRequest, "Bad Request")
		case errors.Is(err, api.ErrNotFound):
			c.String(http.StatusNotFound, "Not Found")
		default:
			logger(c).Error("GETMedia", "path", c.Param("filepath"), "error", err)
			c.String(http.StatusBadGateway, "Bad Gateway")
		}
		return
	}
	defer media.Body.Close()

	contentType := media.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, media.ContentLength, contentType, media.Body, map[string]string{
		"Cache-Control": mediaCacheControl,
	})
}
