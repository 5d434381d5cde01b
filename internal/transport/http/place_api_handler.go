package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/thirdplace_finder_web/internal/service"
	"github.com/njprem/thirdplace_finder_web/internal/util"
)

type PlaceAPIHandler struct {
	places *service.PlacesService
}

type PlaceFilterResponse struct {
	Query string `json:"query"`
	By    string `json:"by"`
	Order string `json:"order"`
}

type PlaceListResponse struct {
	Places []service.PlaceSummary `json:"places"`
	Filter PlaceFilterResponse    `json:"filter"`
	Notice string                 `json:"notice,omitempty"`
}

func RegisterPlaceAPI(e *echo.Echo, places *service.PlacesService) {
	handler := &PlaceAPIHandler{places: places}
	e.GET("/api/v1/places", handler.listPlaces)
}

func (h *PlaceAPIHandler) listPlaces(c echo.Context) error {
	filter := service.ParsePlaceFilter(
		strings.TrimSpace(c.QueryParam("query")),
		c.QueryParam("by"),
		c.QueryParam("order"),
	)

	var reader service.FavoriteReader
	if favorites, ok := CurrentFavorites(c); ok {
		reader = favorites
	}

	out := h.places.List(c.Request().Context(), filter, reader)
	if !out.OK() {
		logFailure(c, "list places", out.Err)
		return c.JSON(http.StatusBadGateway, util.Error(out.Notice))
	}
	return c.JSON(http.StatusOK, PlaceListResponse{
		Places: out.Data.Places,
		Filter: PlaceFilterResponse{
			Query: filter.Term,
			By:    string(filter.By),
			Order: string(filter.Order),
		},
		Notice: out.Notice,
	})
}
