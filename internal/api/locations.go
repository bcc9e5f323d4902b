package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) ListLocations(ctx context.Context, tripID string) ([]Location, error) {
	var locations []Location
	err := c.do(ctx, "list_locations", http.MethodGet, c.endpoint("api", "trips", url.PathEscape(tripID), "locations"), nil, "", &locations)
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (c *Client) CreateLocation(ctx context.Context, tripID string, location NewLocation) (Location, error) {
	var created Location
	err := c.doJSON(ctx, "create_location", http.MethodPost, c.endpoint("api", "trips", url.PathEscape(tripID), "locations"), location, &created)
	return created, err
}

func (c *Client) DeleteLocation(ctx context.Context, id int64) error {
	return c.do(ctx, "delete_location", http.MethodDelete, c.endpoint("api", "locations", strconv.FormatInt(id, 10)), nil, "", nil)
}
