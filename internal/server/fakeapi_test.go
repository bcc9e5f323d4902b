package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"
)

type fakeTrip struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	DateFrom *string `json:"date_from"`
	DateTo   *string `json:"date_to"`
	Notes    *string `json:"notes"`
}

type fakeUpload struct {
	FormName    string
	Filename    string
	ContentType string
	Data        string
}

// fakeAPI is an in-memory trips API that records every request it serves.
type fakeAPI struct {
	mu           sync.Mutex
	trips        []fakeTrip
	locations    map[string][]map[string]any
	photos       map[string][]map[string]any
	media        map[string]string
	requests     []string
	requestIDs   []string
	locationBody map[string]any
	tripBodies   []map[string]any
	uploads      []fakeUpload
	nextID       int64
	mux          *http.ServeMux
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{
		locations: make(map[string][]map[string]any),
		photos:    make(map[string][]map[string]any),
		media:     make(map[string]string),
		nextID:    1,
		mux:       http.NewServeMux(),
	}
	f.mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	f.mux.HandleFunc("GET /api/trips", f.listTrips)
	f.mux.HandleFunc("POST /api/trips", f.createTrip)
	f.mux.HandleFunc("GET /api/trips/{id}", f.getTrip)
	f.mux.HandleFunc("PUT /api/trips/{id}", f.updateTrip)
	f.mux.HandleFunc("DELETE /api/trips/{id}", f.deleteTrip)
	f.mux.HandleFunc("GET /api/trips/{id}/locations", f.listLocations)
	f.mux.HandleFunc("POST /api/trips/{id}/locations", f.createLocation)
	f.mux.HandleFunc("DELETE /api/locations/{id}", f.deleted)
	f.mux.HandleFunc("GET /api/trips/{id}/photos", f.listPhotos)
	f.mux.HandleFunc("POST /api/trips/{id}/photos", f.uploadPhoto)
	f.mux.HandleFunc("DELETE /api/photos/{id}", f.deleted)
	f.mux.HandleFunc("GET /photos/", f.serveMedia)
	return f
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.requestIDs = append(f.requestIDs, r.Header.Get("X-Request-ID"))
	f.mu.Unlock()
	f.mux.ServeHTTP(w, r)
}

func (f *fakeAPI) addTrip(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trips = append(f.trips, fakeTrip{ID: id, Name: name})
}

func (f *fakeAPI) addLocation(tripID string, location map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	location["id"] = f.nextID
	location["trip_id"] = tripID
	f.nextID++
	f.locations[tripID] = append(f.locations[tripID], location)
}

func (f *fakeAPI) addPhoto(tripID, filename, data string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	filepath := "photos/" + tripID + "/" + filename
	f.photos[tripID] = append(f.photos[tripID], map[string]any{
		"id":       f.nextID,
		"trip_id":  tripID,
		"filename": filename,
		"filepath": filepath,
	})
	f.nextID++
	f.media["/"+filepath] = data
}

func (f *fakeAPI) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeAPI) recordedRequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requestIDs...)
}

func (f *fakeAPI) createdTrips() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.tripBodies...)
}

func (f *fakeAPI) lastLocationBody() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locationBody
}

func (f *fakeAPI) receivedUploads() []fakeUpload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fakeUpload(nil), f.uploads...)
}

func (f *fakeAPI) count(request string) int {
	n := 0
	for _, r := range f.recorded() {
		if r == request {
			n++
		}
	}
	return n
}

func (f *fakeAPI) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = nil
	f.requestIDs = nil
}

func (f *fakeAPI) findTrip(id string) (int, bool) {
	for i, trip := range f.trips {
		if trip.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (f *fakeAPI) listTrips(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	trips := append([]fakeTrip{}, f.trips...)
	writeJSON(w, http.StatusOK, trips)
}

func (f *fakeAPI) getTrip(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.findTrip(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Trip not found"})
		return
	}
	writeJSON(w, http.StatusOK, f.trips[i])
}

func (f *fakeAPI) createTrip(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(data, &body)
	var trip fakeTrip
	_ = json.Unmarshal(data, &trip)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.tripBodies = append(f.tripBodies, body)
	if _, exists := f.findTrip(trip.ID); exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Trip ID already exists"})
		return
	}
	f.trips = append(f.trips, trip)
	writeJSON(w, http.StatusOK, trip)
}

func (f *fakeAPI) updateTrip(w http.ResponseWriter, r *http.Request) {
	var trip fakeTrip
	_ = json.NewDecoder(r.Body).Decode(&trip)

	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.findTrip(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Trip not found"})
		return
	}
	f.trips[i] = trip
	writeJSON(w, http.StatusOK, trip)
}

func (f *fakeAPI) deleteTrip(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i, ok := f.findTrip(r.PathValue("id")); ok {
		f.trips = append(f.trips[:i], f.trips[i+1:]...)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (f *fakeAPI) deleted(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (f *fakeAPI) listLocations(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	locations := append([]map[string]any{}, f.locations[r.PathValue("id")]...)
	writeJSON(w, http.StatusOK, locations)
}

func (f *fakeAPI) createLocation(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	tripID := r.PathValue("id")

	f.mu.Lock()
	f.locationBody = body
	_, ok := f.findTrip(tripID)
	f.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Trip not found"})
		return
	}

	location := make(map[string]any, len(body))
	for k, v := range body {
		location[k] = v
	}
	f.addLocation(tripID, location)
	writeJSON(w, http.StatusOK, location)
}

func (f *fakeAPI) listPhotos(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	photos := append([]map[string]any{}, f.photos[r.PathValue("id")]...)
	writeJSON(w, http.StatusOK, photos)
}

func (f *fakeAPI) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	reader, err := r.MultipartReader()
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	var uploads []fakeUpload
	for {
		part, err := reader.NextPart()
		if err != nil {
			break
		}
		data, _ := io.ReadAll(part)
		uploads = append(uploads, fakeUpload{
			FormName:    part.FormName(),
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Data:        string(data),
		})
	}

	f.mu.Lock()
	f.uploads = append(f.uploads, uploads...)
	f.mu.Unlock()
	if len(uploads) != 1 || uploads[0].FormName != "file" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "field required"})
		return
	}

	tripID := r.PathValue("id")
	f.addPhoto(tripID, uploads[0].Filename, uploads[0].Data)
	f.mu.Lock()
	photo := f.photos[tripID][len(f.photos[tripID])-1]
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, photo)
}

func (f *fakeAPI) serveMedia(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	data, ok := f.media[r.URL.Path]
	f.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = io.WriteString(w, data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
