package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
	"github.com/njprem/thirdplace_finder_web/internal/repository/memory"
	"github.com/njprem/thirdplace_finder_web/internal/repository/ports"
	"github.com/njprem/thirdplace_finder_web/internal/repository/restapi"
	"github.com/njprem/thirdplace_finder_web/internal/service"
	"github.com/njprem/thirdplace_finder_web/internal/util"
)

// fakeBackend is an in-memory stand-in for the places REST API.
type fakeBackend struct {
	mu         sync.Mutex
	places     []domain.Place
	categories []domain.Category
	regions    []domain.Region
	events     []domain.Event
	failPlaces bool
	failWrites bool
	created    []domain.Place
	updated    []string
	deleted    []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		places: []domain.Place{
			{ID: 1, PlaceID: 1, PlaceName: "Blue Bottle", PlaceAddress: "1 Main St", CategoryID: 1, Latitude: 34.07, Longitude: -118.27, Atmosphere: domain.AtmosphereCasual},
			{ID: 2, PlaceID: 2, PlaceName: "Central Library", PlaceAddress: "630 W 5th St", CategoryID: 2, Latitude: 34.05, Longitude: -118.25, Atmosphere: domain.AtmosphereAcademic},
			{ID: 3, PlaceID: 3, PlaceName: "Arts Cafe", PlaceAddress: "9 Art Ave", CategoryID: 1, Latitude: 34.1, Longitude: -118.3, Atmosphere: domain.AtmosphereArtistic},
		},
		categories: []domain.Category{{CategoryID: 1, Category: "Cafe"}, {CategoryID: 2, Category: "Library"}},
		regions:    []domain.Region{{RegionID: 1, Region: "Downtown"}},
		events: []domain.Event{
			{ID: 10, PlaceID: 1, EventName: "Latte Art Night", EventDate: "2024-05-01", EventTime: "19:00", EventDescription: "Pour and compare."},
		},
	}
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case r.Method == http.MethodGet && parts[0] == "places":
		if b.failPlaces {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, b.places)
	case r.Method == http.MethodGet && parts[0] == "categories":
		writeJSON(w, http.StatusOK, b.categories)
	case r.Method == http.MethodGet && parts[0] == "regions":
		writeJSON(w, http.StatusOK, b.regions)
	case r.Method == http.MethodGet && parts[0] == "events":
		writeJSON(w, http.StatusOK, b.events)
	case b.failWrites:
		http.Error(w, "write failed", http.StatusInternalServerError)
	case r.Method == http.MethodPost && parts[0] == "places":
		var place domain.Place
		if err := json.NewDecoder(r.Body).Decode(&place); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b.created = append(b.created, place)
		place.ID = int64(100 + len(b.created))
		place.PlaceID = place.ID
		b.places = append(b.places, place)
		writeJSON(w, http.StatusCreated, place)
	case r.Method == http.MethodPut && len(parts) == 2:
		b.updated = append(b.updated, r.URL.Path)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, body)
	case r.Method == http.MethodDelete && len(parts) == 2:
		b.deleted = append(b.deleted, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (b *fakeBackend) snapshot() (created []domain.Place, updated, deleted []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Place(nil), b.created...), append([]string(nil), b.updated...), append([]string(nil), b.deleted...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type testApp struct {
	e       *echo.Echo
	backend *fakeBackend
	hub     *service.FavoriteHub
}

type appOption func(*appConfig)

type appConfig struct {
	features     PlaceFeatures
	cookieSigner *util.JWTManager
	storage      ports.FavoriteStorage
}

func withFeatures(f PlaceFeatures) appOption {
	return func(c *appConfig) { c.features = f }
}

func withFavoriteStorage(storage ports.FavoriteStorage) appOption {
	return func(c *appConfig) { c.storage = storage }
}

// brokenStorage fails every read and write.
type brokenStorage struct{}

func (brokenStorage) Get(context.Context, string) ([]int64, error) {
	return nil, errors.New("favorites store down")
}

func (brokenStorage) Put(context.Context, string, []int64) error {
	return errors.New("favorites store down")
}

func withCookieFavorites(signer *util.JWTManager) appOption {
	return func(c *appConfig) { c.cookieSigner = signer }
}

func newTestApp(t *testing.T, backend *fakeBackend, opts ...appOption) *testApp {
	t.Helper()
	cfg := appConfig{
		features: PlaceFeatures{Create: true, Update: true, Delete: true},
		storage:  memory.NewFavoriteStorage(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	client, err := restapi.NewClient(srv.URL, restapi.WithTimeout(5*time.Second))
	require.NoError(t, err)
	catalog := service.Catalog{
		Places:     client.Places(),
		Categories: client.Categories(),
		Regions:    client.Regions(),
		Events:     client.Events(),
	}

	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)

	hub := service.NewFavoriteHub()
	resolver := SharedFavorites(service.NewFavoriteService(cfg.storage, hub, ""))
	if cfg.cookieSigner != nil {
		resolver = CookieFavorites(cfg.cookieSigner, hub, false)
	}

	e := NewRouter(zap.NewNop(), []string{"*"}, renderer)
	e.Use(BrowserIdentity(false))
	e.Use(WithFavorites(resolver))

	places := service.NewPlacesService(catalog)
	flash := NewFlashStore(util.NewJWTManager([]byte("flash-secret"), "test-flash", time.Minute), false)
	RegisterPages(e, PageServices{
		Home:        service.NewHomeService(catalog),
		Places:      places,
		PlaceDetail: service.NewPlaceDetailService(catalog),
		EventDetail: service.NewEventDetailService(catalog),
		AddPlace:    service.NewAddPlaceService(catalog),
		Favorites:   service.NewFavoritesViewService(catalog),
	}, flash, cfg.features, MapSettings{Lat: 34.0738, Lng: -118.2737, Zoom: 12})
	RegisterFavorites(e, hub)
	RegisterPlaceAPI(e, places)

	return &testApp{e: e, backend: backend, hub: hub}
}

func (a *testApp) request(method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := newFormRequest(method, target, form)
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	return serve(a, req)
}

func newFormRequest(method, target string, form url.Values) *http.Request {
	if form == nil {
		return httptest.NewRequest(method, target, nil)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func serve(a *testApp, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name && c.MaxAge >= 0 {
			return c
		}
	}
	return nil
}

func parseDoc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

func cardTitles(doc *goquery.Document, container string) []string {
	var titles []string
	doc.Find(container + " .card h2").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, strings.TrimSpace(s.Text()))
	})
	return titles
}

func validPlaceForm() url.Values {
	return url.Values{
		"place_name":         {"New Cafe"},
		"place_description":  {"Quiet corner with good coffee"},
		"place_email":        {"hi@newcafe.test"},
		"place_phone_number": {"555-0100"},
		"place_website":      {"https://newcafe.test"},
		"place_instagram":    {"@newcafe"},
		"place_address":      {"12 Side St"},
		"place_city":         {"Los Angeles"},
		"category_ID":        {"1"},
		"region_ID":          {"1"},
		"latitude":           {"34.08"},
		"longitude":          {"-118.28"},
		"atmosphere":         {"Casual"},
		"requires_payment":   {"on"},
	}
}
