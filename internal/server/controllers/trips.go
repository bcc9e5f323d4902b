package controllers

import (
	"net/http"

	"github.com/USA-RedDragon/gory/internal/api"
	"github.com/USA-RedDragon/gory/internal/web"
	"github.com/gin-gonic/gin"
)

func GETTrips(c *gin.Context) {
	client, ok := apiClient(c)
	if !ok {
		return
	}
	renderTrips(c, client, http.StatusOK, web.TripsPage{})
}

func POSTTrip(c *gin.Context) {
	client, ok := apiClient(c)
	if !ok {
		return
	}

	form := tripFormFromRequest(c)
	if form.ID == "" || form.Name == "" {
		formRejected(c, "trip")
		renderTrips(c, client, http.StatusBadRequest, web.TripsPage{Form: form, Error: formMessage(ErrTripFieldsRequired)})
		return
	}

	_, err := client.CreateTrip(requestContext(c), tripFromForm(form))
	if err != nil {
		if statusErr, ok := api.AsClientError(err); ok {
			logger(c).Warn("Trip rejected by API", "trip_id", form.ID, "status", statusErr.StatusCode, "detail", statusErr.Detail)
			renderTrips(c, client, statusErr.StatusCode, web.TripsPage{Form: form, Error: rejectionMessage(statusErr)})
			return
		}
		renderAPIFailure(c, "create_trip", err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// renderTrips loads the trip list and renders it around page's form state.
func renderTrips(c *gin.Context, client *api.Client, status int, page web.TripsPage) {
	trips, err := client.ListTrips(requestContext(c))
	if err != nil {
		renderAPIFailure(c, "list_trips", err)
		return
	}
	page.Trips = trips
	renderPage(c, status, web.PageTrips, page)
}
