package analytics

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/insights"
)

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/analytics/summary", h.Summary)
	g.GET("/analytics/purok-distribution", h.PurokDistribution)
	g.GET("/analytics/top-illnesses", h.TopIllnesses)
	g.GET("/analytics/monthly-visits", h.MonthlyVisits)
	g.POST("/analytics/insights", h.Insights)
}

func (h *Handler) Summary(c echo.Context) error {
	summary, err := h.svc.Summary(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) PurokDistribution(c echo.Context) error {
	data, err := h.svc.PurokDistribution(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	if data == nil {
		data = []PurokCount{}
	}
	return c.JSON(http.StatusOK, data)
}

func (h *Handler) TopIllnesses(c echo.Context) error {
	data, err := h.svc.TopIllnesses(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	if data == nil {
		data = []IllnessCount{}
	}
	return c.JSON(http.StatusOK, data)
}

func (h *Handler) MonthlyVisits(c echo.Context) error {
	data, err := h.svc.MonthlyVisits(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	if data == nil {
		data = []MonthlyVisits{}
	}
	return c.JSON(http.StatusOK, data)
}

func (h *Handler) Insights(c echo.Context) error {
	text, err := h.svc.Insights(c.Request().Context())
	if errors.Is(err, insights.ErrDisabled) {
		return fail(c, http.StatusServiceUnavailable, "Insights service is not configured")
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("insights generation failed")
		return fail(c, http.StatusBadGateway, "Unable to generate insights at this time")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"insights": text,
	})
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
