package medicine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/validation"
)

func newTestHandler() (*Handler, *Service) {
	svc := NewService(newMockRepo(), testThreshold)
	return NewHandler(svc), svc
}

func doJSON(h echo.HandlerFunc, method, target, body string, setup func(echo.Context)) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	e.Validator = validation.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	return rec, h(c)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestHandler_Create(t *testing.T) {
	h, _ := newTestHandler()

	rec, err := doJSON(h.Create, http.MethodPost, "/api/medicines",
		`{"name":"Losartan","category":"Antihypertensive","stock":300,"unit":"Tablets","expiryDate":"2027-01-10"}`, nil)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	m := body["medicine"].(map[string]interface{})
	if m["stock"] != float64(300) {
		t.Errorf("stock = %v", m["stock"])
	}
}

func TestHandler_Create_BadExpiry(t *testing.T) {
	h, _ := newTestHandler()

	rec, err := doJSON(h.Create, http.MethodPost, "/api/medicines",
		`{"name":"Losartan","stock":300,"expiryDate":"soon"}`, nil)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, _ := newTestHandler()

	id := uuid.NewString()
	rec, err := doJSON(h.Get, http.MethodGet, "/api/medicines/"+id, "", func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues(id)
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_List_Search(t *testing.T) {
	h, svc := newTestHandler()
	seedInventory(t, svc)

	rec, err := doJSON(h.List, http.MethodGet, "/api/medicines?q=tablets", "", nil)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	body := decodeBody(t, rec)
	if body["total"] != float64(0) {
		t.Errorf("unit is not searched: total = %v", body["total"])
	}

	rec, err = doJSON(h.List, http.MethodGet, "/api/medicines?q=anti", "", nil)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	body = decodeBody(t, rec)
	if body["total"] != float64(2) {
		t.Errorf("expected 2 matches for anti*, got %v", body["total"])
	}
}

func TestHandler_LowStock(t *testing.T) {
	h, svc := newTestHandler()
	seedInventory(t, svc)

	rec, err := doJSON(h.LowStock, http.MethodGet, "/api/medicines/low-stock", "", nil)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	items := body["medicines"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 low-stock item, got %d", len(items))
	}
	if items[0].(map[string]interface{})["name"] != "Amoxicillin" {
		t.Errorf("unexpected low-stock item: %v", items[0])
	}
}

func TestHandler_Delete(t *testing.T) {
	h, svc := newTestHandler()
	m, err := svc.Create(context.Background(), Input{
		Name: "Paracetamol", Stock: 500, ExpiryDate: "2027-12-31",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec, err := doJSON(h.Delete, http.MethodDelete, "/api/medicines/"+m.ID.String(), "", func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues(m.ID.String())
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, err := svc.Get(context.Background(), m.ID); err == nil {
		t.Error("medicine still present after delete")
	}
}

type failingRepo struct{ err error }

func (f *failingRepo) Create(context.Context, *Medicine) error  { return f.err }
func (f *failingRepo) Update(context.Context, *Medicine) error  { return f.err }
func (f *failingRepo) Delete(context.Context, uuid.UUID) error  { return f.err }
func (f *failingRepo) GetByID(context.Context, uuid.UUID) (*Medicine, error) {
	return nil, f.err
}
func (f *failingRepo) List(context.Context, string, int, int) ([]*Medicine, int, error) {
	return nil, 0, f.err
}
func (f *failingRepo) LowStock(context.Context, int) ([]*Medicine, error) {
	return nil, f.err
}
func (f *failingRepo) Expiring(context.Context, time.Time) ([]*Medicine, error) {
	return nil, f.err
}

func TestHandler_Create_RepoFailure(t *testing.T) {
	dbErr := errors.New("failed to connect to host=db.internal user=clinic database=eclinic: dial error")
	h := NewHandler(NewService(&failingRepo{err: dbErr}, testThreshold))

	rec, err := doJSON(h.Create, http.MethodPost, "/api/medicines",
		`{"name":"Paracetamol 500mg","category":"Analgesic","stock":300,"unit":"tablets","expiryDate":"2027-06-30"}`, nil)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["message"] != "Internal server error" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	if strings.Contains(rec.Body.String(), "db.internal") {
		t.Error("response leaks internal error detail")
	}
}
