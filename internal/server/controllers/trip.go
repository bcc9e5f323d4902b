package controllers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/USA-RedDragon/gory/internal/api"
	"github.com/USA-RedDragon/gory/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/go-errors/errors"
	"golang.org/x/sync/errgroup"
)

func GETTrip(c *gin.Context) {
	client, ok := apiClient(c)
	if !ok {
		return
	}
	renderTrip(c, client, http.StatusOK, func(*web.TripPage) {})
}

func POSTTripEdit(c *gin.Context) {
	client, ok := apiClient(c)
	if !ok {
		return
	}
	id := c.Param("id")

	form := tripFormFromRequest(c)
	form.ID = id
	if form.Name == "" {
		formRejected(c, "trip_edit")
		renderTrip(c, client, http.StatusBadRequest, func(page *web.TripPage) {
			page.EditForm = form
			page.EditError = formMessage(ErrNameRequired)
		})
		return
	}

	_, err := client.UpdateTrip(requestContext(c), id, tripFromForm(form))
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			renderNotFound(c, "Trip")
			return
		}
		if statusErr, ok := api.AsClientError(err); ok {
			renderTrip(c, client, statusErr.StatusCode, func(page *web.TripPage) {
				page.EditForm = form
				page.EditError = rejectionMessage(statusErr)
			})
			return
		}
		renderAPIFailure(c, "update_trip", err)
		return
	}

	c.Redirect(http.StatusSeeOther, tripURL(id, ""))
}

func POSTTripDelete(c *gin.Context) {
	client, ok := apiClient(c)
	if !ok {
		return
	}
	id := c.Param("id")

	err := client.DeleteTrip(requestContext(c), id)
	if err != nil && !errors.Is(err, api.ErrNotFound) {
		renderAPIFailure(c, "delete_trip", err)
		return
	}
	logger(c).Info("Trip deleted", "trip_id", id)
	c.Redirect(http.StatusSeeOther, "/")
}

// loadTripPage fetches the trip first and only then, in parallel, its
// locations and photos.
func loadTripPage(ctx context.Context, client *api.Client, id string) (web.TripPage, error) {
	trip, err := client.GetTrip(ctx, id)
	if err != nil {
		return web.TripPage{}, err
	}

	var locations []api.Location
	var photos []api.Photo
	errGrp, groupCtx := errgroup.WithContext(ctx)
	errGrp.Go(func() error {
		var err error
		locations, err = client.ListLocations(groupCtx, id)
		return err
	})
	errGrp.Go(func() error {
		var err error
		photos, err = client.ListPhotos(groupCtx, id)
		return err
	})
	if err := errGrp.Wait(); err != nil {
		return web.TripPage{}, err
	}

	return web.NewTripPage(trip, locations, photos), nil
}

// renderTrip loads the detail page, lets decorate attach form state and
// renders it with status.
func renderTrip(c *gin.Context, client *api.Client, status int, decorate func(*web.TripPage)) {
	page, err := loadTripPage(requestContext(c), client, c.Param("id"))
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			renderNotFound(c, "Trip")
			return
		}
		renderAPIFailure(c, "get_trip", err)
		return
	}
	decorate(&page)
	renderPage(c, status, web.PageTrip, page)
}

func tripURL(id, fragment string) string {
	u := "/trip/" + url.PathEscape(id)
	if fragment != "" {
		u += "#" + fragment
	}
	return u
}
