package web

import (
	"github.com/USA-RedDragon/gory/internal/api"
	"github.com/USA-RedDragon/gory/internal/utils"
)

// TripForm holds the raw text of the add and edit trip forms so that a
// rejected submission can be shown again.
type TripForm struct {
	ID       string
	Name     string
	DateFrom string
	DateTo   string
	Notes    string
}

type LocationForm struct {
	Name     string
	Lat      string
	Lng      string
	DateFrom string
	DateTo   string
	Notes    string
}

type TripsPage struct {
	Trips []api.Trip
	Form  TripForm
	Error string
}

// LocationRow is a location plus the distance from the previous location
// that had coordinates.
type LocationRow struct {
	api.Location
	Leg    float64
	HasLeg bool
}

type TripPage struct {
	Trip          api.Trip
	Locations     []LocationRow
	Photos        []api.Photo
	RouteLength   float64
	HasRoute      bool
	EditForm      TripForm
	EditError     string
	LocationForm  LocationForm
	LocationError string
	PhotoError    string
}

type ErrorPage struct {
	Status  int
	Message string
}

type NotFoundPage struct {
	What string
}

// NewTripPage builds the detail view, computing per leg and total route
// distances over the located entries in list order.
func NewTripPage(trip api.Trip, locations []api.Location, photos []api.Photo) TripPage {
	page := TripPage{
		Trip:   trip,
		Photos: photos,
		EditForm: TripForm{
			ID:       trip.ID,
			Name:     trip.Name,
			DateFrom: optional(trip.DateFrom),
			DateTo:   optional(trip.DateTo),
			Notes:    optional(trip.Notes),
		},
	}

	var points []utils.Point
	for _, location := range locations {
		row := LocationRow{Location: location}
		if location.HasCoordinates() {
			point := utils.Point{Lat: location.Lat.Float64Value(), Lng: location.Lng.Float64Value()}
			if len(points) > 0 {
				row.Leg = utils.Haversine(points[len(points)-1], point)
				row.HasLeg = true
			}
			points = append(points, point)
		}
		page.Locations = append(page.Locations, row)
	}
	if len(points) > 1 {
		page.RouteLength = utils.PathLength(points)
		page.HasRoute = true
	}
	return page
}
