package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
	"github.com/njprem/thirdplace_finder_web/internal/logging"
	"github.com/njprem/thirdplace_finder_web/internal/service"
	"github.com/njprem/thirdplace_finder_web/internal/util"
)

const (
	favoriteEventsPath = "/api/v1/favorites/events"
	heartbeatInterval  = 25 * time.Second
)

type FavoriteHandler struct {
	hub       *service.FavoriteHub
	heartbeat time.Duration
}

type FavoritesResponse struct {
	Favorites domain.FavoriteSet `json:"favorites"`
}

type ToggleFavoriteResponse struct {
	Favorites domain.FavoriteSet `json:"favorites"`
	Favorite  bool               `json:"favorite"`
}

func RegisterFavorites(e *echo.Echo, hub *service.FavoriteHub) {
	handler := &FavoriteHandler{hub: hub, heartbeat: heartbeatInterval}

	e.POST("/favorites/toggle", handler.toggleForm)

	api := e.Group("/api/v1/favorites")
	api.GET("", handler.listFavorites)
	api.POST("/:place_id/toggle", handler.toggleFavorite)
	api.GET("/events", handler.streamFavorites)
}

// toggleForm serves the no-script favorite button and returns to the page
// the button was on.
func (h *FavoriteHandler) toggleForm(c echo.Context) error {
	favorites, ok := CurrentFavorites(c)
	if !ok {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "favorites are unavailable")
	}
	placeID, err := parsePlaceID(c.FormValue("place_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "place_id must be a positive integer")
	}
	if _, _, err := favorites.Toggle(c.Request().Context(), placeID); err != nil {
		return fmt.Errorf("toggle favorite %d: %w", placeID, err)
	}
	return c.Redirect(http.StatusSeeOther, safeReturnPath(c.FormValue("return_to"), "/places"))
}

func (h *FavoriteHandler) listFavorites(c echo.Context) error {
	favorites, ok := CurrentFavorites(c)
	if !ok {
		return c.JSON(http.StatusServiceUnavailable, util.Error("favorites are unavailable"))
	}
	set, err := favorites.Load(c.Request().Context())
	if err != nil {
		logFailure(c, "load favorites", err)
		return c.JSON(http.StatusInternalServerError, util.Error("could not load favorites"))
	}
	return c.JSON(http.StatusOK, FavoritesResponse{Favorites: nonNil(set)})
}

func (h *FavoriteHandler) toggleFavorite(c echo.Context) error {
	favorites, ok := CurrentFavorites(c)
	if !ok {
		return c.JSON(http.StatusServiceUnavailable, util.Error("favorites are unavailable"))
	}
	placeID, err := parsePlaceID(c.Param("place_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("place_id must be a positive integer"))
	}
	set, added, err := favorites.Toggle(c.Request().Context(), placeID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlaceID) {
			return c.JSON(http.StatusBadRequest, util.Error("place_id must be a positive integer"))
		}
		logFailure(c, "toggle favorite", err)
		return c.JSON(http.StatusInternalServerError, util.Error("could not update favorites"))
	}
	return c.JSON(http.StatusOK, ToggleFavoriteResponse{Favorites: nonNil(set), Favorite: added})
}

// streamFavorites pushes the current list once and then every change made in
// the same scope, so other open tabs can refresh their toggles.
func (h *FavoriteHandler) streamFavorites(c echo.Context) error {
	favorites, ok := CurrentFavorites(c)
	if !ok {
		return c.JSON(http.StatusServiceUnavailable, util.Error("favorites are unavailable"))
	}
	ctx := c.Request().Context()

	updates, cancel := h.hub.Subscribe(favorites.Scope())
	defer cancel()
	logging.FromContext(ctx).Debug("favorites stream opened",
		zap.String("scope", favorites.Scope()),
		zap.Int("subscribers", h.hub.Subscribers(favorites.Scope())))

	current, err := favorites.Load(ctx)
	if err != nil {
		logFailure(c, "load favorites", err)
		return c.JSON(http.StatusInternalServerError, util.Error("could not load favorites"))
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)

	if err := writeFavoritesEvent(res, current); err != nil {
		return nil
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case set, open := <-updates:
			if !open {
				return nil
			}
			if err := writeFavoritesEvent(res, set); err != nil {
				return nil
			}
		}
	}
}

func writeFavoritesEvent(res *echo.Response, set domain.FavoriteSet) error {
	payload, err := sonic.Marshal(FavoritesResponse{Favorites: nonNil(set)})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: favorites\ndata: %s\n\n", payload); err != nil {
		return err
	}
	res.Flush()
	return nil
}

func nonNil(set domain.FavoriteSet) domain.FavoriteSet {
	if set == nil {
		return domain.FavoriteSet{}
	}
	return set
}
