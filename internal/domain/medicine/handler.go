package medicine

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/validation"
	"github.com/MrNonaRv/jamindan-e-clonic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/medicines", h.List)
	g.POST("/medicines", h.Create)
	g.GET("/medicines/low-stock", h.LowStock)
	g.GET("/medicines/expiring", h.Expiring)
	g.GET("/medicines/:id", h.Get)
	g.PUT("/medicines/:id", h.Update)
	g.DELETE("/medicines/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	p := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), c.QueryParam("q"), p.Limit, p.Offset)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	if items == nil {
		items = []*Medicine{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

func (h *Handler) Create(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	m, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		if validation.IsError(err) {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":  true,
		"medicine": m,
	})
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid medicine id")
	}

	m, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return fail(c, http.StatusNotFound, "Medicine not found")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid medicine id")
	}

	var in Input
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	m, err := h.svc.Update(c.Request().Context(), id, in)
	if errors.Is(err, ErrNotFound) {
		return fail(c, http.StatusNotFound, "Medicine not found")
	}
	if err != nil {
		if validation.IsError(err) {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"medicine": m,
	})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid medicine id")
	}

	err = h.svc.Delete(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return fail(c, http.StatusNotFound, "Medicine not found")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Medicine deleted",
	})
}

func (h *Handler) LowStock(c echo.Context) error {
	items, err := h.svc.LowStock(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	if items == nil {
		items = []*Medicine{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"medicines": items,
	})
}

func (h *Handler) Expiring(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("days"))
	items, err := h.svc.Expiring(c.Request().Context(), days)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	if items == nil {
		items = []*Medicine{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"medicines": items,
	})
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
