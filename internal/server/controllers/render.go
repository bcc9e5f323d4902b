package controllers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/USA-RedDragon/gory/internal/api"
	"github.com/USA-RedDragon/gory/internal/logging"
	"github.com/USA-RedDragon/gory/internal/metrics"
	"github.com/USA-RedDragon/gory/internal/web"
	"github.com/gin-gonic/gin"
)

const unavailableMessage = "The trips service is unavailable. Try again later."

func apiClient(c *gin.Context) (*api.Client, bool) {
	client, ok := c.MustGet("api").(*api.Client)
	if !ok {
		slog.Error("Failed to get API client from context")
		renderError(c, http.StatusInternalServerError, "Try again later")
		return nil, false
	}
	return client, true
}

func formRejected(c *gin.Context, form string) {
	if m, ok := c.Get("metrics"); ok {
		if m, ok := m.(*metrics.Metrics); ok && m != nil {
			m.IncrementFormRejections(form)
		}
	}
}

func renderPage(c *gin.Context, status int, page string, data any) {
	if m, ok := c.Get("metrics"); ok {
		if m, ok := m.(*metrics.Metrics); ok && m != nil {
			m.IncrementPageRenders(page, status)
		}
	}
	c.HTML(status, page, data)
}

func renderError(c *gin.Context, status int, message string) {
	renderPage(c, status, web.PageError, web.ErrorPage{Status: status, Message: message})
}

func renderNotFound(c *gin.Context, what string) {
	renderPage(c, http.StatusNotFound, web.PageNotFound, web.NotFoundPage{What: what})
}

// renderAPIFailure answers a failed API call that is not a form rejection.
func renderAPIFailure(c *gin.Context, op string, err error) {
	logger(c).Error("Trips API request failed", "operation", op, "error", err)
	renderError(c, http.StatusBadGateway, unavailableMessage)
}

// rejectionMessage is the API's own explanation of a rejected write.
func rejectionMessage(statusErr *api.StatusError) string {
	if statusErr.Detail != "" {
		return statusErr.Detail
	}
	return fmt.Sprintf("The trips service rejected the request (%d).", statusErr.StatusCode)
}

func logger(c *gin.Context) *slog.Logger {
	return logging.FromContext(c.Request.Context())
}

func requestContext(c *gin.Context) context.Context {
	return c.Request.Context()
}

func NotFound(c *gin.Context) {
	logger(c).Warn("Not Found", "path", c.Request.URL.Path)
	renderNotFound(c, "Page")
}
