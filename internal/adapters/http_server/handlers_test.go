package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	server "github.com/jatinm79/Real-Estate-App/internal/adapters/http_server"
	"github.com/jatinm79/Real-Estate-App/internal/app"
	"github.com/jatinm79/Real-Estate-App/internal/domain"
)

// ---- fakes ----

type memRepo struct {
	byID   map[int64]domain.Property
	nextID int64
}

func newMemRepo() *memRepo { return &memRepo{byID: map[int64]domain.Property{}, nextID: 1} }

func (m *memRepo) FindAll(ctx context.Context, _ domain.PropertyFilters) ([]domain.Property, error) {
	out := []domain.Property{}
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}

func (m *memRepo) FindByID(ctx context.Context, id int64) (domain.Property, error) {
	p, ok := m.byID[id]
	if !ok {
		return domain.Property{}, domain.ErrNotFound
	}
	return p, nil
}

func (m *memRepo) Create(ctx context.Context, np domain.NewProperty) (domain.Property, error) {
	p := domain.Property{
		ID:            m.nextID,
		ProjectName:   np.ProjectName,
		BuilderName:   np.BuilderName,
		Location:      np.Location,
		Price:         np.Price,
		GalleryImages: append([]string{}, np.GalleryImages...),
	}
	m.byID[p.ID] = p
	m.nextID++
	return p, nil
}

func (m *memRepo) Update(ctx context.Context, id int64, patch domain.PropertyPatch) (domain.Property, error) {
	p, ok := m.byID[id]
	if !ok {
		return domain.Property{}, domain.ErrNotFound
	}
	if patch.Empty() {
		return domain.Property{}, domain.ErrNoFields
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	m.byID[id] = p
	return p, nil
}

func (m *memRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memBlob struct{}

func (memBlob) Store(ctx context.Context, data []byte, category string) (string, error) {
	return "/uploads/" + category + "/test.jpg", nil
}
func (memBlob) Remove(ctx context.Context, ref string) error { return nil }

type memLedger struct {
	repo *memRepo
	favs map[string]map[int64]bool
}

func newMemLedger(repo *memRepo) *memLedger {
	return &memLedger{repo: repo, favs: map[string]map[int64]bool{}}
}

func (l *memLedger) Add(ctx context.Context, session string, propertyID int64) error {
	if _, ok := l.repo.byID[propertyID]; !ok {
		return domain.ErrNotFound
	}
	if l.favs[session] == nil {
		l.favs[session] = map[int64]bool{}
	}
	l.favs[session][propertyID] = true
	return nil
}

func (l *memLedger) Remove(ctx context.Context, session string, propertyID int64) error {
	delete(l.favs[session], propertyID)
	return nil
}

func (l *memLedger) IsFavorited(ctx context.Context, session string, propertyID int64) (bool, error) {
	return l.favs[session][propertyID], nil
}

func (l *memLedger) ListForSession(ctx context.Context, session string) ([]domain.Property, error) {
	out := []domain.Property{}
	for id := range l.favs[session] {
		out = append(out, l.repo.byID[id])
	}
	return out, nil
}

type memInquiries struct{ submitted []domain.NewInquiry }

func (m *memInquiries) Submit(ctx context.Context, ni domain.NewInquiry) (domain.Inquiry, error) {
	if ni.PropertyID != nil && *ni.PropertyID == 999999 {
		return domain.Inquiry{}, domain.ErrNotFound
	}
	m.submitted = append(m.submitted, ni)
	return domain.Inquiry{
		ID: int64(len(m.submitted)), PropertyID: ni.PropertyID,
		Name: ni.Name, Email: ni.Email, Phone: ni.Phone, Message: ni.Message,
		Status: domain.InquiryStatusNew, CreatedAt: time.Now(),
	}, nil
}

func newTestServer(t *testing.T) (http.Handler, *memRepo, *memInquiries) {
	t.Helper()
	repo := newMemRepo()
	svc := app.NewPropertyService(repo, memBlob{}, nil, time.Minute)
	inquiries := &memInquiries{}

	srv := server.New([]string{"http://localhost:3000"}, t.TempDir())
	srv.MountHandlers(server.NewHandlers(svc, newMemLedger(repo), inquiries, "dev"))
	return srv.Mux(), repo, inquiries
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response %q: %v", rr.Body.String(), err)
	}
	return out
}

func validCreateBody() map[string]any {
	return map[string]any{
		"project_name": "Skyline Residency",
		"builder_name": "Horizon Developers",
		"location":     "Sector 62, Noida",
		"price":        8500000,
	}
}

// ---- tests ----

func TestHealth(t *testing.T) {
	h, _, _ := newTestServer(t)
	rr := doJSON(t, h, "GET", "/api/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	if out := decode(t, rr); out["status"] != "success" {
		t.Fatalf("unexpected body: %v", out)
	}
}

func TestCreateProperty_JSON(t *testing.T) {
	h, repo, _ := newTestServer(t)
	rr := doJSON(t, h, "POST", "/api/properties/", validCreateBody())
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: %d body: %s", rr.Code, rr.Body.String())
	}
	out := decode(t, rr)
	if out["status"] != "success" || out["message"] != "Property created successfully" {
		t.Fatalf("unexpected envelope: %v", out)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("property not stored: %v", repo.byID)
	}
}

func TestCreateProperty_ValidationErrors(t *testing.T) {
	h, repo, _ := newTestServer(t)

	rr := doJSON(t, h, "POST", "/api/properties/", map[string]any{
		"project_name": "X", // too short
		"location":     "abc",
		"price":        -5,
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rr.Code)
	}
	out := decode(t, rr)
	if out["status"] != "error" || out["message"] != "Validation failed" {
		t.Fatalf("unexpected envelope: %v", out)
	}
	errs, _ := out["errors"].([]any)
	if len(errs) < 4 {
		t.Fatalf("expected field errors for name/builder/location/price, got %v", errs)
	}
	if len(repo.byID) != 0 {
		t.Fatal("invalid property was stored")
	}
}

func TestGetProperty(t *testing.T) {
	h, repo, _ := newTestServer(t)
	p, _ := repo.Create(context.Background(), domain.NewProperty{
		ProjectName: "Seed", BuilderName: "Seed", Location: "Seed Town", Price: 1,
	})

	rr := doJSON(t, h, "GET", "/api/properties/1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	out := decode(t, rr)
	data := out["data"].(map[string]any)
	got := data["property"].(map[string]any)
	if int64(got["id"].(float64)) != p.ID {
		t.Fatalf("unexpected property: %v", got)
	}

	rr = doJSON(t, h, "GET", "/api/properties/999", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: %d", rr.Code)
	}
	if out := decode(t, rr); out["message"] != "Property not found" {
		t.Fatalf("unexpected 404 body: %v", out)
	}

	rr = doJSON(t, h, "GET", "/api/properties/abc", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status for non-numeric id: %d", rr.Code)
	}
}

func TestListProperties_FilterValidation(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := doJSON(t, h, "GET", "/api/properties/?minPrice=abc", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rr.Code)
	}
	if out := decode(t, rr); out["message"] != "Invalid filter parameters" {
		t.Fatalf("unexpected body: %v", out)
	}

	rr = doJSON(t, h, "GET", "/api/properties/?minPrice=100&bedrooms=2", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	out := decode(t, rr)
	if out["results"] != float64(0) {
		t.Fatalf("unexpected results: %v", out)
	}
}

func TestUpdateProperty(t *testing.T) {
	h, repo, _ := newTestServer(t)
	repo.Create(context.Background(), domain.NewProperty{
		ProjectName: "Seed", BuilderName: "Seed", Location: "Seed Town", Price: 1,
	})

	rr := doJSON(t, h, "PUT", "/api/properties/1", map[string]any{"price": 250})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rr.Code, rr.Body.String())
	}
	if repo.byID[1].Price != 250 {
		t.Fatalf("price not updated: %+v", repo.byID[1])
	}

	// Nothing supplied at all.
	rr = doJSON(t, h, "PUT", "/api/properties/1", map[string]any{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("empty patch status: %d", rr.Code)
	}
	if out := decode(t, rr); out["message"] != "No fields to update" {
		t.Fatalf("unexpected body: %v", out)
	}
}

func TestDeleteProperty(t *testing.T) {
	h, repo, _ := newTestServer(t)
	repo.Create(context.Background(), domain.NewProperty{
		ProjectName: "Seed", BuilderName: "Seed", Location: "Seed Town", Price: 1,
	})

	rr := doJSON(t, h, "DELETE", "/api/properties/1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	if len(repo.byID) != 0 {
		t.Fatal("property not deleted")
	}

	rr = doJSON(t, h, "DELETE", "/api/properties/1", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second delete status: %d", rr.Code)
	}
}

func TestFavoritesFlow(t *testing.T) {
	h, repo, _ := newTestServer(t)
	repo.Create(context.Background(), domain.NewProperty{
		ProjectName: "Seed", BuilderName: "Seed", Location: "Seed Town", Price: 1,
	})

	rr := doJSON(t, h, "POST", "/api/favorites/", map[string]any{
		"property_id": 1, "user_session_id": "sess-1",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("add status: %d body: %s", rr.Code, rr.Body.String())
	}
	out := decode(t, rr)
	if out["success"] != true || out["data"].(map[string]any)["is_favorited"] != true {
		t.Fatalf("unexpected add envelope: %v", out)
	}

	rr = doJSON(t, h, "GET", "/api/favorites/check/1?user_session_id=sess-1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("check status: %d", rr.Code)
	}
	out = decode(t, rr)
	if out["data"].(map[string]any)["is_favorited"] != true {
		t.Fatalf("expected favorited, got %v", out)
	}

	rr = doJSON(t, h, "GET", "/api/favorites/?user_session_id=sess-1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list status: %d", rr.Code)
	}
	if out = decode(t, rr); out["results"] != float64(1) {
		t.Fatalf("expected 1 favorite, got %v", out)
	}

	rr = doJSON(t, h, "DELETE", "/api/favorites/1?user_session_id=sess-1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("remove status: %d", rr.Code)
	}

	rr = doJSON(t, h, "GET", "/api/favorites/check/1?user_session_id=sess-1", nil)
	out = decode(t, rr)
	if out["data"].(map[string]any)["is_favorited"] != false {
		t.Fatalf("expected not favorited, got %v", out)
	}
}

func TestFavorites_RequiresSessionAndProperty(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := doJSON(t, h, "POST", "/api/favorites/", map[string]any{"property_id": 1})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing session status: %d", rr.Code)
	}

	rr = doJSON(t, h, "GET", "/api/favorites/", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing session status: %d", rr.Code)
	}

	rr = doJSON(t, h, "POST", "/api/favorites/", map[string]any{
		"property_id": 42, "user_session_id": "sess-1",
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown property status: %d", rr.Code)
	}
}

func TestContactInquiry(t *testing.T) {
	h, _, inquiries := newTestServer(t)

	rr := doJSON(t, h, "POST", "/api/contact", map[string]any{
		"name": "Asha", "email": "asha@example.com", "message": "Still available?",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: %d body: %s", rr.Code, rr.Body.String())
	}
	out := decode(t, rr)
	if out["success"] != true {
		t.Fatalf("unexpected envelope: %v", out)
	}
	if len(inquiries.submitted) != 1 || inquiries.submitted[0].Name != "Asha" {
		t.Fatalf("inquiry not recorded: %+v", inquiries.submitted)
	}
}

func TestContactInquiry_Validation(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := doJSON(t, h, "POST", "/api/contact", map[string]any{
		"name": "  ", "email": "asha@example.com",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rr.Code)
	}
	out := decode(t, rr)
	errs, _ := out["errors"].([]any)
	if len(errs) != 2 { // name and message
		t.Fatalf("expected 2 field errors, got %v", errs)
	}
}

func TestContactInquiry_RateLimited(t *testing.T) {
	h, _, _ := newTestServer(t)
	body := map[string]any{
		"name": "Asha", "email": "asha@example.com", "message": "hello",
	}

	var last int
	for i := 0; i < 8; i++ {
		last = doJSON(t, h, "POST", "/api/contact", body).Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", last)
	}
}

func TestUnknownRoute(t *testing.T) {
	h, _, _ := newTestServer(t)
	rr := doJSON(t, h, "GET", "/api/nope", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: %d", rr.Code)
	}
	out := decode(t, rr)
	if msg, _ := out["message"].(string); !strings.Contains(msg, "/api/nope") {
		t.Fatalf("unexpected body: %v", out)
	}
}
