package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/njprem/thirdplace_finder_web/internal/logging"
	"github.com/njprem/thirdplace_finder_web/internal/service"
)

// PlaceFeatures toggles the write routes. Disabled routes are not registered
// and their buttons are hidden.
type PlaceFeatures struct {
	Create bool
	Update bool
	Delete bool
}

// MapSettings is the initial view of the home page map.
type MapSettings struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Zoom int     `json:"zoom"`
}

type PageServices struct {
	Home        *service.HomeService
	Places      *service.PlacesService
	PlaceDetail *service.PlaceDetailService
	EventDetail *service.EventDetailService
	AddPlace    *service.AddPlaceService
	Favorites   *service.FavoritesViewService
}

type PageHandler struct {
	services PageServices
	flash    *FlashStore
	features PlaceFeatures
	mapView  MapSettings
}

type CardView struct {
	ID            int64
	Title         string
	Subtitle      string
	Description   string
	Link          string
	IsFavorite    bool
	ShowToggle    bool
	FavoritesOnly bool
	ReturnTo      string
}

type homePage struct {
	Markers []service.MapMarker
	Map     MapSettings
}

type placesPage struct {
	Filter        service.PlaceFilter
	Cards         []CardView
	ToggleSortURL string
}

type favoritesPage struct {
	Cards        []CardView
	EmptyMessage string
}

type placePage struct {
	View    service.PlaceDetailView
	Slug    string
	Editing bool
}

type eventPage struct {
	View      service.EventDetailView
	PlaceSlug string
	EventSlug string
	Editing   bool
}

type confirmPage struct {
	Heading   string
	Question  string
	Action    string
	CancelURL string
}

type formField struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
}

type addPlacePage struct {
	service.AddPlaceView
	Fields []formField
}

func (p addPlacePage) Error(field string) string {
	return p.Errors[field]
}

type errorPage struct {
	Status  int
	Message string
}

func RegisterPages(e *echo.Echo, services PageServices, flash *FlashStore, features PlaceFeatures, mapView MapSettings) {
	h := &PageHandler{
		services: services,
		flash:    flash,
		features: features,
		mapView:  mapView,
	}

	e.GET("/", h.home)
	e.GET("/places", h.listPlaces)
	e.GET("/favorites", h.listFavorites)
	e.GET("/places/:placeSlug", h.showPlace)
	e.GET("/places/:placeSlug/events/:eventSlug", h.showEvent)

	create := []route{
		{http.MethodGet, "/add-place", h.newPlace},
		{http.MethodPost, "/add-place", h.createPlace},
	}
	update := []route{
		{http.MethodGet, "/places/:placeSlug/edit", h.editPlace},
		{http.MethodPost, "/places/:placeSlug/edit", h.updatePlace},
		{http.MethodGet, "/places/:placeSlug/events/:eventSlug/edit", h.editEvent},
		{http.MethodPost, "/places/:placeSlug/events/:eventSlug/edit", h.updateEvent},
	}
	remove := []route{
		{http.MethodGet, "/places/:placeSlug/delete", h.confirmDeletePlace},
		{http.MethodPost, "/places/:placeSlug/delete", h.deletePlace},
		{http.MethodGet, "/places/:placeSlug/events/:eventSlug/delete", h.confirmDeleteEvent},
		{http.MethodPost, "/places/:placeSlug/events/:eventSlug/delete", h.deleteEvent},
	}
	registerGated(e, features.Create, "adding places", create)
	registerGated(e, features.Update, "editing", update)
	registerGated(e, features.Delete, "deleting", remove)
}

type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
}

// registerGated mounts routes when enabled and answers 403 on the same paths
// otherwise.
func registerGated(e *echo.Echo, enabled bool, what string, routes []route) {
	for _, r := range routes {
		handler := r.handler
		if !enabled {
			handler = featureDisabled(what)
		}
		e.Add(r.method, r.path, handler)
	}
}

func featureDisabled(what string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusForbidden, what+" is disabled").SetInternal(service.ErrFeatureDisabled)
	}
}

func (h *PageHandler) render(c echo.Context, status int, name string, page Page) error {
	// A page's own notice wins. A pending flash then waits for the next render.
	if page.Flash == nil {
		page.Flash = h.flash.Pop(c)
	}
	page.Features = h.features
	return c.Render(status, name, page)
}

func (h *PageHandler) redirect(c echo.Context, to, kind, message string) error {
	h.flash.Set(c, kind, message)
	return c.Redirect(http.StatusSeeOther, to)
}

func noticeFlash(notice string) *Flash {
	if notice == "" {
		return nil
	}
	return &Flash{Kind: FlashError, Message: notice}
}

func logFailure(c echo.Context, action string, err error) {
	if err == nil {
		return
	}
	logging.FromContext(c.Request().Context()).Error(action, zap.Error(err))
}

func (h *PageHandler) home(c echo.Context) error {
	out := h.services.Home.Load(c.Request().Context())
	page := Page{Title: pageTitle("Home Page"), Nav: "home"}
	if !out.OK() {
		logFailure(c, "load home", out.Err)
		page.Flash = noticeFlash(out.Notice)
	}
	page.Data = homePage{Markers: out.Data.Markers, Map: h.mapView}
	return h.render(c, http.StatusOK, "home", page)
}

func (h *PageHandler) listPlaces(c echo.Context) error {
	filter := service.ParsePlaceFilter(
		strings.TrimSpace(c.QueryParam("query")),
		c.QueryParam("by"),
		c.QueryParam("order"),
	)
	favorites, _ := CurrentFavorites(c)

	var reader service.FavoriteReader
	if favorites != nil {
		reader = favorites
	}
	out := h.services.Places.List(c.Request().Context(), filter, reader)

	page := Page{Title: pageTitle("Explore Places Page"), Nav: "places"}
	if !out.OK() {
		logFailure(c, "list places", out.Err)
	}
	page.Flash = noticeFlash(out.Notice)
	returnTo := c.Request().URL.RequestURI()
	page.Data = placesPage{
		Filter:        out.Data.Filter,
		Cards:         placeCards(out.Data.Places, returnTo, reader != nil, false),
		ToggleSortURL: toggleSortURL(out.Data.Filter),
	}
	return h.render(c, http.StatusOK, "places", page)
}

func (h *PageHandler) listFavorites(c echo.Context) error {
	favorites, ok := CurrentFavorites(c)
	page := Page{Title: pageTitle("Your Favorites"), Nav: "favorites"}
	data := favoritesPage{Cards: []CardView{}, EmptyMessage: service.NoFavoritesMessage}
	if !ok {
		page.Flash = noticeFlash(service.FavoritesUnavailable)
		page.Data = data
		return h.render(c, http.StatusOK, "favorites", page)
	}

	out := h.services.Favorites.Load(c.Request().Context(), favorites)
	if !out.OK() {
		logFailure(c, "list favorites", out.Err)
		page.Flash = noticeFlash(out.Notice)
	}
	data.Cards = placeCards(out.Data.Places, "/favorites", true, true)
	page.Data = data
	return h.render(c, http.StatusOK, "favorites", page)
}

func placeCards(items []service.PlaceSummary, returnTo string, toggle, favoritesOnly bool) []CardView {
	cards := make([]CardView, 0, len(items))
	for _, item := range items {
		cards = append(cards, CardView{
			ID:            item.PlaceID,
			Title:         item.Name,
			Subtitle:      item.Category,
			Description:   item.Address,
			Link:          "/places/" + item.Slug,
			IsFavorite:    item.IsFavorite,
			ShowToggle:    toggle,
			FavoritesOnly: favoritesOnly,
			ReturnTo:      returnTo,
		})
	}
	return cards
}

func toggleSortURL(filter service.PlaceFilter) string {
	next := service.SortDesc
	if filter.Order == service.SortDesc {
		next = service.SortAsc
	}
	q := url.Values{}
	if filter.Term != "" {
		q.Set("query", filter.Term)
	}
	q.Set("by", string(filter.By))
	q.Set("order", string(next))
	return "/places?" + q.Encode()
}

func (h *PageHandler) showPlace(c echo.Context) error {
	return h.placePage(c, false)
}

func (h *PageHandler) editPlace(c echo.Context) error {
	return h.placePage(c, true)
}

func (h *PageHandler) placePage(c echo.Context, editing bool) error {
	placeSlug := c.Param("placeSlug")
	out := h.services.PlaceDetail.Load(c.Request().Context(), placeSlug)
	if !out.OK() {
		logFailure(c, "load place", out.Err)
		return h.redirect(c, "/places", FlashError, out.Notice)
	}
	return h.render(c, http.StatusOK, "place", Page{
		Title: pageTitle(out.Data.Place.PlaceName),
		Nav:   "places",
		Data:  placePage{View: out.Data, Slug: placeSlug, Editing: editing},
	})
}

func (h *PageHandler) updatePlace(c echo.Context) error {
	placeSlug := c.Param("placeSlug")
	var form service.PlaceEditForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	out := h.services.PlaceDetail.Save(c.Request().Context(), placeSlug, form)
	if out.OK() {
		return h.afterSave(c, "/places/"+out.Data.Slug, out.Notice, func(page Page) error {
			page.Title = pageTitle(out.Data.Place.PlaceName)
			page.Nav = "places"
			page.Data = placePage{View: out.Data, Slug: out.Data.Slug}
			return h.render(c, http.StatusOK, "place", page)
		})
	}

	logFailure(c, "update place", out.Err)
	if out.Data.Place.PlaceID == 0 || isLookupFailure(out.Err) {
		return h.redirect(c, "/places", FlashError, out.Notice)
	}
	status := http.StatusBadGateway
	if errors.Is(out.Err, service.ErrValidation) {
		status = http.StatusUnprocessableEntity
	}
	return h.render(c, status, "place", Page{
		Title: pageTitle(out.Data.Place.PlaceName),
		Nav:   "places",
		Flash: noticeFlash(out.Notice),
		Data:  placePage{View: out.Data, Slug: placeSlug, Editing: true},
	})
}

// afterSave answers a successful edit. Plain form posts are redirected to the
// canonical address. Script driven posts get the page back with the new
// address to put in the location bar.
func (h *PageHandler) afterSave(c echo.Context, canonical, notice string, renderInline func(Page) error) error {
	c.Response().Header().Set("HX-Replace-Url", canonical)
	if c.Request().Header.Get("HX-Request") == "true" {
		return renderInline(Page{
			ReplaceURL: canonical,
			Flash:      &Flash{Kind: FlashSuccess, Message: notice},
		})
	}
	return h.redirect(c, canonical, FlashSuccess, notice)
}

func isLookupFailure(err error) bool {
	return errors.Is(err, service.ErrPlaceNotFound) ||
		errors.Is(err, service.ErrEventNotFound) ||
		errors.Is(err, service.ErrAmbiguousSlug)
}

func (h *PageHandler) confirmDeletePlace(c echo.Context) error {
	placeSlug := c.Param("placeSlug")
	out := h.services.PlaceDetail.Load(c.Request().Context(), placeSlug)
	if !out.OK() {
		logFailure(c, "load place", out.Err)
		return h.redirect(c, "/places", FlashError, out.Notice)
	}
	return h.render(c, http.StatusOK, "confirm_delete", Page{
		Title: pageTitle("Delete " + out.Data.Place.PlaceName),
		Nav:   "places",
		Data: confirmPage{
			Heading:   "Delete " + out.Data.Place.PlaceName,
			Question:  "Are you sure you want to delete this place?",
			Action:    "/places/" + placeSlug + "/delete",
			CancelURL: "/places/" + placeSlug,
		},
	})
}

func (h *PageHandler) deletePlace(c echo.Context) error {
	placeSlug := c.Param("placeSlug")
	if c.FormValue("confirm") != "yes" {
		return h.redirect(c, "/places/"+placeSlug, FlashInfo, "Delete cancelled")
	}
	out := h.services.PlaceDetail.Delete(c.Request().Context(), placeSlug)
	if !out.OK() {
		logFailure(c, "delete place", out.Err)
		if isLookupFailure(out.Err) || out.Data.PlaceID == 0 {
			return h.redirect(c, "/places", FlashError, out.Notice)
		}
		return h.redirect(c, "/places/"+placeSlug, FlashError, out.Notice)
	}
	return h.redirect(c, "/places", FlashSuccess, out.Notice)
}

func (h *PageHandler) showEvent(c echo.Context) error {
	return h.eventPage(c, false)
}

func (h *PageHandler) editEvent(c echo.Context) error {
	return h.eventPage(c, true)
}

func (h *PageHandler) eventPage(c echo.Context, editing bool) error {
	placeSlug, eventSlug := c.Param("placeSlug"), c.Param("eventSlug")
	out := h.services.EventDetail.Load(c.Request().Context(), placeSlug, eventSlug)
	if !out.OK() {
		logFailure(c, "load event", out.Err)
		return h.redirect(c, "/places", FlashError, out.Notice)
	}
	return h.render(c, http.StatusOK, "event", Page{
		Title: pageTitle(out.Data.Place.PlaceName + " - " + out.Data.Event.EventName),
		Nav:   "places",
		Data:  eventPage{View: out.Data, PlaceSlug: placeSlug, EventSlug: eventSlug, Editing: editing},
	})
}

func (h *PageHandler) updateEvent(c echo.Context) error {
	placeSlug, eventSlug := c.Param("placeSlug"), c.Param("eventSlug")
	var form service.EventEditForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	out := h.services.EventDetail.Save(c.Request().Context(), placeSlug, eventSlug, form)
	if out.OK() {
		return h.afterSave(c, out.Data.Path(), out.Notice, func(page Page) error {
			page.Title = pageTitle(out.Data.Place.PlaceName + " - " + out.Data.Event.EventName)
			page.Nav = "places"
			page.Data = eventPage{View: out.Data, PlaceSlug: out.Data.PlaceSlug, EventSlug: out.Data.EventSlug}
			return h.render(c, http.StatusOK, "event", page)
		})
	}

	logFailure(c, "update event", out.Err)
	if out.Data.Event.ID == 0 || isLookupFailure(out.Err) {
		return h.redirect(c, "/places", FlashError, out.Notice)
	}
	status := http.StatusBadGateway
	if errors.Is(out.Err, service.ErrValidation) {
		status = http.StatusUnprocessableEntity
	}
	return h.render(c, status, "event", Page{
		Title: pageTitle(out.Data.Place.PlaceName + " - " + out.Data.Event.EventName),
		Nav:   "places",
		Flash: noticeFlash(out.Notice),
		Data:  eventPage{View: out.Data, PlaceSlug: placeSlug, EventSlug: eventSlug, Editing: true},
	})
}

func (h *PageHandler) confirmDeleteEvent(c echo.Context) error {
	placeSlug, eventSlug := c.Param("placeSlug"), c.Param("eventSlug")
	out := h.services.EventDetail.Load(c.Request().Context(), placeSlug, eventSlug)
	if !out.OK() {
		logFailure(c, "load event", out.Err)
		return h.redirect(c, "/places", FlashError, out.Notice)
	}
	path := "/places/" + placeSlug + "/events/" + eventSlug
	return h.render(c, http.StatusOK, "confirm_delete", Page{
		Title: pageTitle("Delete " + out.Data.Event.EventName),
		Nav:   "places",
		Data: confirmPage{
			Heading:   "Delete " + out.Data.Event.EventName,
			Question:  "Are you sure you want to delete this event?",
			Action:    path + "/delete",
			CancelURL: path,
		},
	})
}

func (h *PageHandler) deleteEvent(c echo.Context) error {
	placeSlug, eventSlug := c.Param("placeSlug"), c.Param("eventSlug")
	path := "/places/" + placeSlug + "/events/" + eventSlug
	if c.FormValue("confirm") != "yes" {
		return h.redirect(c, path, FlashInfo, "Delete cancelled")
	}
	out := h.services.EventDetail.Delete(c.Request().Context(), placeSlug, eventSlug)
	if !out.OK() {
		logFailure(c, "delete event", out.Err)
		if isLookupFailure(out.Err) {
			return h.redirect(c, "/places", FlashError, out.Notice)
		}
		return h.redirect(c, path, FlashError, out.Notice)
	}
	return h.redirect(c, "/places/"+placeSlug, FlashSuccess, out.Notice)
}

func (h *PageHandler) newPlace(c echo.Context) error {
	out := h.services.AddPlace.Load(c.Request().Context())
	page := Page{Title: pageTitle("New Place Form"), Nav: "add-place"}
	if !out.OK() {
		logFailure(c, "load add place options", out.Err)
		page.Flash = noticeFlash(out.Notice)
	}
	page.Data = newAddPlacePage(out.Data)
	return h.render(c, http.StatusOK, "add_place", page)
}

func (h *PageHandler) createPlace(c echo.Context) error {
	var form service.PlaceForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	ctx := c.Request().Context()

	out := h.services.AddPlace.Submit(ctx, form)
	if out.OK() {
		target := "/places"
		if out.Data.Slug != "" {
			target = "/places/" + out.Data.Slug
		}
		return h.redirect(c, target, FlashSuccess, out.Notice)
	}

	logFailure(c, "add place", out.Err)
	status := http.StatusBadGateway
	if errors.Is(out.Err, service.ErrValidation) {
		status = http.StatusUnprocessableEntity
	}
	options := h.services.AddPlace.Load(ctx)
	if !options.OK() {
		logFailure(c, "load add place options", options.Err)
	}
	view := options.Data
	view.Form = form
	var fields service.ValidationErrors
	if errors.As(out.Err, &fields) {
		view.Errors = fields
	}
	return h.render(c, status, "add_place", Page{
		Title: pageTitle("New Place Form"),
		Nav:   "add-place",
		Flash: noticeFlash(out.Notice),
		Data:  newAddPlacePage(view),
	})
}

func newAddPlacePage(view service.AddPlaceView) addPlacePage {
	f := view.Form
	field := func(name, label, kind, value string) formField {
		return formField{Name: name, Label: label, Type: kind, Value: value, Error: view.Errors[name]}
	}
	return addPlacePage{
		AddPlaceView: view,
		Fields: []formField{
			field("place_name", "Place Name", "text", f.PlaceName),
			field("place_description", "Place Description", "textarea", f.PlaceDescription),
			field("place_email", "Place Email", "email", f.PlaceEmail),
			field("place_phone_number", "Place Phone Number", "tel", f.PlacePhoneNumber),
			field("place_website", "Place Website", "url", f.PlaceWebsite),
			field("place_instagram", "Place Instagram", "text", f.PlaceInstagram),
			field("place_address", "Place Address", "text", f.PlaceAddress),
			field("place_city", "Place City", "text", f.PlaceCity),
			field("latitude", "Latitude", "number", f.Latitude),
			field("longitude", "Longitude", "number", f.Longitude),
		},
	}
}

// safeReturnPath only accepts local absolute paths.
func safeReturnPath(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return fallback
	}
	return raw
}

func parsePlaceID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrInvalidPlaceID
	}
	return id, nil
}
