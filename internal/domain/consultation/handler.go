package consultation

import (
	"errors"
	"net/http"

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
	g.GET("/consultations", h.List)
	g.POST("/consultations", h.Create)
	g.GET("/consultations/:id", h.Get)
	g.DELETE("/consultations/:id", h.Delete)
	g.GET("/patients/:id/consultations", h.ListByPatient)
}

func (h *Handler) List(c echo.Context) error {
	p := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	if items == nil {
		items = []*Consultation{}
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

	cons, err := h.svc.Create(c.Request().Context(), in)
	if errors.Is(err, ErrPatientNotFound) {
		return fail(c, http.StatusNotFound, "Patient not found")
	}
	if err != nil {
		if validation.IsError(err) {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":      true,
		"consultation": cons,
	})
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid consultation id")
	}

	cons, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return fail(c, http.StatusNotFound, "Consultation not found")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, cons)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid consultation id")
	}

	err = h.svc.Delete(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return fail(c, http.StatusNotFound, "Consultation not found")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Consultation deleted",
	})
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid patient id")
	}

	items, err := h.svc.ListByPatient(c.Request().Context(), patientID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	if items == nil {
		items = []*Consultation{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":       true,
		"consultations": items,
	})
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
