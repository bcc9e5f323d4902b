package web_test

import (
	"net/http/httptest"
	"testing"

	"github.com/USA-RedDragon/gory/internal/api"
	"github.com/USA-RedDragon/gory/internal/web"
	"github.com/mattn/go-nulltype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPage(t *testing.T, page string, data any) string {
	t.Helper()
	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	w := httptest.NewRecorder()
	require.NoError(t, renderer.Instance(page, data).Render(w))
	return w.Body.String()
}

func TestRenderTrips(t *testing.T) {
	t.Parallel()
	body := renderPage(t, web.PageTrips, web.TripsPage{
		Trips: []api.Trip{
			{ID: "2025-alps", Name: "Alps", DateFrom: nulltype.NullStringOf("2025-07-01")},
			{ID: "a b", Name: "Spaced"},
		},
		Form:  web.TripForm{ID: "kept"},
		Error: "Name is required",
	})

	assert.Contains(t, body, `<a class="brand" href="/">gory.app</a>`)
	assert.Contains(t, body, "Alps")
	assert.Contains(t, body, "2025-alps")
	assert.Contains(t, body, "2025-07-01")
	assert.Contains(t, body, `href="/trip/2025-alps"`)
	assert.Contains(t, body, `href="/trip/a%20b"`)
	assert.Contains(t, body, `value="kept"`)
	assert.Contains(t, body, "Name is required")
	assert.NotContains(t, body, "nil")
}

func TestRenderTrip(t *testing.T) {
	t.Parallel()
	page := web.NewTripPage(
		api.Trip{ID: "rome", Name: "Rome", Notes: nulltype.NullStringOf("Pack light")},
		[]api.Location{
			{ID: 1, Name: "Colosseum", Lat: nulltype.NullFloat64Of(41.890210), Lng: nulltype.NullFloat64Of(12.492231)},
			{ID: 2, Name: "Hotel"},
			{ID: 3, Name: "Vatican", Lat: nulltype.NullFloat64Of(41.902916), Lng: nulltype.NullFloat64Of(12.453389)},
		},
		[]api.Photo{
			{ID: 9, Filename: "IMG_1.jpg", Filepath: "photos/rome/IMG_1.jpg"},
		},
	)
	body := renderPage(t, web.PageTrip, page)

	assert.Contains(t, body, "<h1>Rome</h1>")
	assert.Contains(t, body, "Pack light")
	assert.Contains(t, body, "41.89021, 12.49223")
	assert.Contains(t, body, "no coordinates")
	assert.Contains(t, body, "date unknown")
	assert.Contains(t, body, `src="/media/photos/rome/IMG_1.jpg"`)
	assert.Contains(t, body, `accept="image/*"`)
	assert.Contains(t, body, `action="/trip/rome/locations/2/delete"`)
	assert.Contains(t, body, "Route length:")
	assert.NotContains(t, body, "nil")
}

func TestRenderErrorPages(t *testing.T) {
	t.Parallel()
	body := renderPage(t, web.PageError, web.ErrorPage{Status: 502, Message: "The trips service is unavailable"})
	assert.Contains(t, body, "The trips service is unavailable")

	body = renderPage(t, web.PageNotFound, web.NotFoundPage{What: "Trip"})
	assert.Contains(t, body, "Trip not found")

	body = renderPage(t, "missing.html", nil)
	assert.Contains(t, body, "Unknown page missing.html")
}

func TestNewTripPageDistances(t *testing.T) {
	t.Parallel()
	page := web.NewTripPage(api.Trip{ID: "t"}, []api.Location{
		{Name: "A", Lat: nulltype.NullFloat64Of(0), Lng: nulltype.NullFloat64Of(0)},
		{Name: "B"},
		{Name: "C", Lat: nulltype.NullFloat64Of(0), Lng: nulltype.NullFloat64Of(1)},
		{Name: "D", Lat: nulltype.NullFloat64Of(1), Lng: nulltype.NullFloat64Of(1)},
	}, nil)

	require.Len(t, page.Locations, 4)
	assert.False(t, page.Locations[0].HasLeg)
	assert.False(t, page.Locations[1].HasLeg)
	assert.True(t, page.Locations[2].HasLeg)
	assert.InDelta(t, 111195, page.Locations[2].Leg, 10)
	assert.True(t, page.Locations[3].HasLeg)
	assert.True(t, page.HasRoute)
	assert.InDelta(t, page.Locations[2].Leg+page.Locations[3].Leg, page.RouteLength, 1e-6)

	single := web.NewTripPage(api.Trip{ID: "t"}, []api.Location{
		{Name: "A", Lat: nulltype.NullFloat64Of(0), Lng: nulltype.NullFloat64Of(0)},
	}, nil)
	assert.False(t, single.HasRoute)
}

func TestMediaURL(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "/media/photos/t1/my%20photo.jpg", web.MediaURL("photos/t1/my photo.jpg"))
	assert.Equal(t, "", web.MediaURL("../secret"))
	assert.Equal(t, "", web.MediaURL(""))
}

func TestStaticFS(t *testing.T) {
	t.Parallel()
	f, err := web.StaticFS().Open("style.css")
	require.NoError(t, err)
	defer f.Close()
	stat, err := f.Stat()
	require.NoError(t, err)
	assert.True(t, stat.Size() > 0)
	assert.Equal(t, "style.css", stat.Name())
}
