package patient

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

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
	g.GET("/patients", h.List)
	g.POST("/patients", h.Create)
	g.GET("/patients/export.csv", h.ExportCSV)
	g.GET("/patients/:id", h.Get)
	g.PUT("/patients/:id", h.Update)
	g.DELETE("/patients/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	p := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), c.QueryParam("q"), p.Limit, p.Offset)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	if items == nil {
		items = []*Patient{}
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

	created, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		if validation.IsError(err) {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"patient": created,
	})
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid patient id")
	}

	p, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return fail(c, http.StatusNotFound, "Patient not found")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid patient id")
	}

	var in Input
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	updated, err := h.svc.Update(c.Request().Context(), id, in)
	if errors.Is(err, ErrNotFound) {
		return fail(c, http.StatusNotFound, "Patient not found")
	}
	if err != nil {
		if validation.IsError(err) {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"patient": updated,
	})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid patient id")
	}

	err = h.svc.Delete(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return fail(c, http.StatusNotFound, "Patient not found")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Patient deleted",
	})
}

// ExportCSV streams the full registry as a CSV attachment, mirroring the
// column order of the dashboard export button.
func (h *Handler) ExportCSV(c echo.Context) error {
	patients, err := h.svc.All(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	filename := fmt.Sprintf("patients_export_%s.csv", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"ID", "First Name", "Last Name", "Age", "Sex", "Purok", "Contact", "Last Visit"}); err != nil {
		return err
	}
	for _, p := range patients {
		lastVisit := ""
		if p.LastVisit != nil {
			lastVisit = p.LastVisit.Format("2006-01-02")
		}
		row := []string{
			p.ID.String(), p.FirstName, p.LastName, strconv.Itoa(p.Age),
			p.Sex, p.Purok, p.Contact, lastVisit,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
