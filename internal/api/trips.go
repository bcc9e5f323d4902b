package api

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) ListTrips(ctx context.Context) ([]Trip, error) {
	var trips []Trip
	if err := c.do(ctx, "list_trips", http.MethodGet, c.endpoint("api", "trips"), nil, "", &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// GetTrip returns ErrNotFound (through errors.Is) when the trip does not exist.
func (c *Client) GetTrip(ctx context.Context, id string) (Trip, error) {
	var trip Trip
	err := c.do(ctx, "get_trip", http.MethodGet, c.endpoint("api", "trips", url.PathEscape(id)), nil, "", &trip)
	return trip, err
}

func (c *Client) CreateTrip(ctx context.Context, trip Trip) (Trip, error) {
	var created Trip
	err := c.doJSON(ctx, "create_trip", http.MethodPost, c.endpoint("api", "trips"), trip, &created)
	return created, err
}

// UpdateTrip replaces the mutable fields of a trip. The id in the body is
// forced to the path id so a trip can never be renamed.
func (c *Client) UpdateTrip(ctx context.Context, id string, trip Trip) (Trip, error) {
	trip.ID = id
	var updated Trip
	err := c.doJSON(ctx, "update_trip", http.MethodPut, c.endpoint("api", "trips", url.PathEscape(id)), trip, &updated)
	return updated, err
}

func (c *Client) DeleteTrip(ctx context.Context, id string) error {
	return c.do(ctx, "delete_trip", http.MethodDelete, c.endpoint("api", "trips", url.PathEscape(id)), nil, "", nil)
}
