package geo

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler exposes the zone list and the nearest-zone lookup the registration
// form uses.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/puroks", h.Puroks)
	g.GET("/puroks/nearest", h.Nearest)
}

func (h *Handler) Puroks(c echo.Context) error {
	return c.JSON(http.StatusOK, Puroks())
}

func (h *Handler) Nearest(c echo.Context) error {
	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if latErr != nil || lngErr != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"success": false,
			"error":   "location_unavailable",
			"message": "Usable lat and lng coordinates are required",
		})
	}
	return c.JSON(http.StatusOK, Nearest(lat, lng))
}
