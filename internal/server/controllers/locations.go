package controllers

import (
	"net/http"

	"github.com/USA-RedDragon/gory/internal/api"
	"github.com/USA-RedDragon/gory/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/go-errors/errors"
)

func POSTLocation(c *gin.Context) {
	client, ok := apiClient(c)
	if !ok {
		return
	}
	id := c.Param("id")

	form := locationFormFromRequest(c)
	location, err := locationFromForm(form)
	if err != nil {
		formRejected(c, "location")
		renderTrip(c, client, http.StatusBadRequest, func(page *web.TripPage) {
			page.LocationForm = form
			page.LocationError = formMessage(err)
		})
		return
	}

	_, err = client.CreateLocation(requestContext(c), id, location)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			renderNotFound(c, "Trip")
			return
		}
		if statusErr, ok := api.AsClientError(err); ok {
			renderTrip(c, client, statusErr.StatusCode, func(page *web.TripPage) {
				page.LocationForm = form
				page.LocationError = rejectionMessage(statusErr)
			})
			return
		}
		renderAPIFailure(c, "create_location", err)
		return
	}

	c.Redirect(http.StatusSeeOther, tripURL(id, "locations"))
}

func POSTLocationDelete(c *gin.Context) {
	client, ok := apiClient(c)
	if !ok {
		return
	}
	id := c.Param("id")

	locationID, err := parseID(c.Param("locationID"))
	if err != nil {
		renderError(c, http.StatusBadRequest, formMessage(err))
		return
	}

	err = client.DeleteLocation(requestContext(c), locationID)
	if err != nil && !errors.Is(err, api.ErrNotFound) {
		renderAPIFailure(c, "delete_location", err)
		return
	}
	c.Redirect(http.StatusSeeOther, tripURL(id, "locations"))
}
