package controllers

import (
	"net/http"

	"github.com/USA-RedDragon/gory/internal/api"
	"github.com/USA-RedDragon/gory/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/go-errors/errors"
)

func POSTPhoto(c *gin.Context) {
	client, ok := apiClient(c)
	if !ok {
		return
	}
	id := c.Param("id")

	header, err := c.FormFile("file")
	if err != nil || header.Filename == "" {
		formRejected(c, "photo")
		renderTrip(c, client, http.StatusBadRequest, func(page *web.TripPage) {
			page.PhotoError = formMessage(ErrPhotoRequired)
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		logger(c).Error("Failed to open uploaded photo", "filename", header.Filename, "error", err)
		renderError(c, http.StatusInternalServerError, "Try again later")
		return
	}
	defer file.Close()

	photo, err := client.UploadPhoto(requestContext(c), id, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			renderNotFound(c, "Trip")
			return
		}
		if statusErr, ok := api.AsClientError(err); ok {
			renderTrip(c, client, statusErr.StatusCode, func(page *web.TripPage) {
				page.PhotoError = rejectionMessage(statusErr)
			})
			return
		}
		renderAPIFailure(c, "upload_photo", err)
		return
	}

	logger(c).Info("Photo uploaded", "trip_id", id, "photo_id", photo.ID, "filename", photo.Filename, "size", header.Size)
	c.Redirect(http.StatusSeeOther, tripURL(id, "photos"))
}

func POSTPhotoDelete(c *gin.Context) {
	client, ok := apiClient(c)
	if !ok {
		return
	}
	id := c.Param("id")

	photoID, err := parseID(c.Param("photoID"))
	if err != nil {
		renderError(c, http.StatusBadRequest, formMessage(err))
		return
	}

	err = client.DeletePhoto(requestContext(c), photoID)
	if err != nil && !errors.Is(err, api.ErrNotFound) {
		renderAPIFailure(c, "delete_photo", err)
		return
	}
	c.Redirect(http.StatusSeeOther, tripURL(id, "photos"))
}
