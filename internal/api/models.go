package api

import "github.com/mattn/go-nulltype"

type Trip struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	DateFrom nulltype.NullString `json:"date_from"`
	DateTo   nulltype.NullString `json:"date_to"`
	Notes    nulltype.NullString `json:"notes"`
}

type Location struct {
	ID       int64                `json:"id"`
	TripID   string               `json:"trip_id"`
	Name     string               `json:"name"`
	Lat      nulltype.NullFloat64 `json:"lat"`
	Lng      nulltype.NullFloat64 `json:"lng"`
	DateFrom nulltype.NullString  `json:"date_from"`
	DateTo   nulltype.NullString  `json:"date_to"`
	Notes    nulltype.NullString  `json:"notes"`
}

// HasCoordinates reports whether both lat and lng are set.
func (l Location) HasCoordinates() bool {
	return l.Lat.Valid() && l.Lng.Valid()
}

// NewLocation is the body of a location create request. The owning trip is
// taken from the URL.
type NewLocation struct {
	Name     string               `json:"name"`
	Lat      nulltype.NullFloat64 `json:"lat"`
	Lng      nulltype.NullFloat64 `json:"lng"`
	DateFrom nulltype.NullString  `json:"date_from"`
	DateTo   nulltype.NullString  `json:"date_to"`
	Notes    nulltype.NullString  `json:"notes"`
}

type Photo struct {
	ID        int64                `json:"id"`
	TripID    string               `json:"trip_id"`
	Filename  string               `json:"filename"`
	Filepath  string               `json:"filepath"`
	Lat       nulltype.NullFloat64 `json:"lat"`
	Lng       nulltype.NullFloat64 `json:"lng"`
	Timestamp nulltype.NullString  `json:"timestamp"`
	Notes     nulltype.NullString  `json:"notes"`
}

func (p Photo) HasCoordinates() bool {
	return p.Lat.Valid() && p.Lng.Valid()
}

type errorResponse struct {
	Detail any `json:"detail"`
}
