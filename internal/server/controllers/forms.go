package controllers

import (
	"math"
	"strconv"
	"strings"

	"github.com/USA-RedDragon/gory/internal/api"
	"github.com/USA-RedDragon/gory/internal/utils"
	"github.com/USA-RedDragon/gory/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/go-errors/errors"
	"github.com/mattn/go-nulltype"
)

var (
	ErrTripFieldsRequired = errors.New("trip id and name are required")
	ErrNameRequired       = errors.New("name is required")
	ErrLatitudeInvalid    = errors.New("latitude is not a number in [-90, 90]")
	ErrLongitudeInvalid   = errors.New("longitude is not a number in [-180, 180]")
	ErrPhotoRequired      = errors.New("no photo selected")
	ErrInvalidIdentifier  = errors.New("invalid identifier")
)

//nolint:golint,gochecknoglobals
var formMessages = map[error]string{
	ErrTripFieldsRequired: "Both ID and name are required.",
	ErrNameRequired:       "Name is required.",
	ErrLatitudeInvalid:    "Latitude must be a number between -90 and 90.",
	ErrLongitudeInvalid:   "Longitude must be a number between -180 and 180.",
	ErrPhotoRequired:      "Choose a photo to upload.",
	ErrInvalidIdentifier:  "Invalid identifier.",
}

// formMessage is the text shown next to a rejected form.
func formMessage(err error) string {
	if msg, ok := formMessages[err]; ok {
		return msg
	}
	return err.Error()
}

func tripFormFromRequest(c *gin.Context) web.TripForm {
	return web.TripForm{
		ID:       strings.TrimSpace(c.PostForm("id")),
		Name:     strings.TrimSpace(c.PostForm("name")),
		DateFrom: strings.TrimSpace(c.PostForm("date_from")),
		DateTo:   strings.TrimSpace(c.PostForm("date_to")),
		Notes:    strings.TrimSpace(c.PostForm("notes")),
	}
}

func locationFormFromRequest(c *gin.Context) web.LocationForm {
	return web.LocationForm{
		Name:     strings.TrimSpace(c.PostForm("name")),
		Lat:      strings.TrimSpace(c.PostForm("lat")),
		Lng:      strings.TrimSpace(c.PostForm("lng")),
		DateFrom: strings.TrimSpace(c.PostForm("date_from")),
		DateTo:   strings.TrimSpace(c.PostForm("date_to")),
		Notes:    strings.TrimSpace(c.PostForm("notes")),
	}
}

func tripFromForm(form web.TripForm) api.Trip {
	return api.Trip{
		ID:       form.ID,
		Name:     form.Name,
		DateFrom: nullString(form.DateFrom),
		DateTo:   nullString(form.DateTo),
		Notes:    nullString(form.Notes),
	}
}

// locationFromForm validates the add location form. Blank optional fields are
// sent as null.
func locationFromForm(form web.LocationForm) (api.NewLocation, error) {
	if form.Name == "" {
		return api.NewLocation{}, ErrNameRequired
	}
	lat, err := parseNumber(form.Lat)
	if err != nil || (lat.Valid() && !utils.ValidCoordinate(lat.Float64Value(), 0)) {
		return api.NewLocation{}, ErrLatitudeInvalid
	}
	lng, err := parseNumber(form.Lng)
	if err != nil || (lng.Valid() && !utils.ValidCoordinate(0, lng.Float64Value())) {
		return api.NewLocation{}, ErrLongitudeInvalid
	}
	return api.NewLocation{
		Name:     form.Name,
		Lat:      lat,
		Lng:      lng,
		DateFrom: nullString(form.DateFrom),
		DateTo:   nullString(form.DateTo),
		Notes:    nullString(form.Notes),
	}, nil
}

// parseNumber maps "" to null and rejects text that is not a finite number.
func parseNumber(s string) (nulltype.NullFloat64, error) {
	if s == "" {
		return nulltype.NullFloat64{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nulltype.NullFloat64{}, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nulltype.NullFloat64{}, strconv.ErrRange
	}
	return nulltype.NullFloat64Of(v), nil
}

func nullString(s string) nulltype.NullString {
	if s == "" {
		return nulltype.NullString{}
	}
	return nulltype.NullStringOf(s)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, ErrInvalidIdentifier
	}
	return id, nil
}
