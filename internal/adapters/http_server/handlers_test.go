package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	httpserver "staybook/internal/adapters/http_server"
	"staybook/internal/app"
	"staybook/internal/domain"
)

const testSecret = "test-secret"

// ---- in-memory fakes ----

type memRepo struct {
	mu     sync.Mutex
	hotels map[int64]domain.Hotel
	rooms  map[int64]domain.Room
	nextID int64
}

func newMemRepo() *memRepo {
	return &memRepo{hotels: map[int64]domain.Hotel{}, rooms: map[int64]domain.Room{}}
}

func (m *memRepo) CreateHotel(_ context.Context, h domain.Hotel) (domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	h.ID = m.nextID
	m.hotels[h.ID] = h
	return h, nil
}

func (m *memRepo) UpdateHotel(_ context.Context, id int64, p domain.HotelPatch) (domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	p.Apply(&h)
	m.hotels[id] = h
	return h, nil
}

func (m *memRepo) DeleteHotel(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hotels[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.hotels, id)
	return nil
}

func (m *memRepo) CreateRoom(_ context.Context, r domain.Room) (domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hotels[r.HotelID]; !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	m.nextID++
	r.ID = m.nextID
	m.rooms[r.ID] = r
	return r, nil
}

func (m *memRepo) UpdateRoom(_ context.Context, id int64, p domain.RoomPatch) (domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	p.Apply(&r)
	m.rooms[id] = r
	return r, nil
}

func (m *memRepo) DeleteRoom(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rooms, id)
	return nil
}

func (m *memRepo) GetHotel(_ context.Context, id int64) (domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (m *memRepo) GetRoom(_ context.Context, id int64) (domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	return r, nil
}

func (m *memRepo) ListRooms(_ context.Context, hotelID int64) ([]domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Room
	for _, r := range m.rooms {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) ListHotelsByOwner(_ context.Context, ownerID string) ([]domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Hotel
	for _, h := range m.hotels {
		if h.OwnerID == ownerID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *memRepo) ListImageRefs(context.Context) ([]domain.ImageRef, error) { return nil, nil }

type memStore struct {
	mu     sync.Mutex
	assets map[string]bool
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.assets[key] {
		return domain.ErrNotFound
	}
	delete(s.assets, key)
	return nil
}

func (s *memStore) Stat(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.assets[key] {
		return domain.ErrNotFound
	}
	return nil
}

type memCache struct {
	mu sync.Mutex
	m  map[string][]byte
}

func (c *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) Set(_ context.Context, key string, v any, _ int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = b
	return nil
}

func (c *memCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
	return nil
}

// ---- harness ----

type harness struct {
	mux   http.Handler
	repo  *memRepo
	store *memStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	repo := newMemRepo()
	store := &memStore{assets: map[string]bool{
		"abc123":     true,
		"room-img-1": true,
		"new-img":    true,
	}}
	cache := &memCache{m: map[string][]byte{}}

	assets := app.NewAssetService(store)
	hotels := app.NewHotelService(repo, assets, cache)
	rooms := app.NewRoomService(repo, assets, cache)
	q := app.NewQueryService(repo, cache, time.Minute)

	srv := httpserver.New(testSecret)
	srv.MountHandlers(&httpserver.Handlers{Hotels: hotels, Rooms: rooms, Assets: assets, Q: q})
	return &harness{mux: srv.Mux(), repo: repo, store: store}
}

func token(t *testing.T, sub string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func (h *harness) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rr := httptest.NewRecorder()
	h.mux.ServeHTTP(rr, req)
	return rr
}

func hotelBody() map[string]any {
	return map[string]any{
		"title":       "Seaside Palace",
		"description": "A quiet hotel overlooking the bay.",
		"image":       "https://store.example.com/f/abc123",
		"country":     "PT",
		"state":       "Lisboa",
		"city":        "Cascais",

		"locationDescription": "Five minutes on foot from the marina.",
	}
}

func roomBody() map[string]any {
	return map[string]any{
		"title":         "Deluxe Double",
		"description":   "Corner room with a balcony.",
		"image":         "https://store.example.com/f/room-img-1",
		"bedCount":      2,
		"guestCount":    4,
		"bathroomCount": 1,
		"roomPrice":     120,
	}
}

func (h *harness) createHotel(t *testing.T, bearer string) int64 {
	t.Helper()
	rr := h.do(t, "POST", "/v1/hotels", bearer, hotelBody())
	if rr.Code != http.StatusCreated {
		t.Fatalf("create hotel: status %d body %s", rr.Code, rr.Body.String())
	}
	var hotel domain.Hotel
	if err := json.Unmarshal(rr.Body.Bytes(), &hotel); err != nil {
		t.Fatalf("decode hotel: %v", err)
	}
	return hotel.ID
}

// ---- tests ----

func TestCreateHotel_RequiresAuth(t *testing.T) {
	h := newHarness(t)
	rr := h.do(t, "POST", "/v1/hotels", "", hotelBody())
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content-type = %q", ct)
	}
}

func TestCreateHotel_InvalidToken(t *testing.T) {
	h := newHarness(t)
	rr := h.do(t, "POST", "/v1/hotels", "not-a-jwt", hotelBody())
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestCreateHotel_OK(t *testing.T) {
	h := newHarness(t)
	rr := h.do(t, "POST", "/v1/hotels", token(t, "user-1"), hotelBody())
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d body %s", rr.Code, rr.Body.String())
	}
	var hotel domain.Hotel
	if err := json.Unmarshal(rr.Body.Bytes(), &hotel); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if hotel.OwnerID != "user-1" {
		t.Fatalf("owner = %q, want user-1", hotel.OwnerID)
	}
}

func TestCreateHotel_ValidationFailure(t *testing.T) {
	h := newHarness(t)
	body := hotelBody()
	body["title"] = "ab" // below the minimum length
	rr := h.do(t, "POST", "/v1/hotels", token(t, "user-1"), body)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rr.Code, rr.Body.String())
	}
}

func TestCreateHotel_MalformedJSON(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest("POST", "/v1/hotels", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Authorization", "Bearer "+token(t, "user-1"))
	rr := httptest.NewRecorder()
	h.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestUpdateHotel_ForbiddenForNonOwner(t *testing.T) {
	h := newHarness(t)
	id := h.createHotel(t, token(t, "user-1"))

	rr := h.do(t, "PATCH", fmt.Sprintf("/v1/hotels/%d", id), token(t, "user-2"),
		map[string]any{"title": "Hijacked"})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403: %s", rr.Code, rr.Body.String())
	}
}

func TestUpdateHotel_MergePatch(t *testing.T) {
	h := newHarness(t)
	bearer := token(t, "user-1")
	id := h.createHotel(t, bearer)

	rr := h.do(t, "PATCH", fmt.Sprintf("/v1/hotels/%d", id), bearer,
		map[string]any{"title": "Renamed Palace"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var hotel domain.Hotel
	if err := json.Unmarshal(rr.Body.Bytes(), &hotel); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if hotel.Title != "Renamed Palace" {
		t.Fatalf("title = %q", hotel.Title)
	}
	if hotel.Description != hotelBody()["description"] {
		t.Fatalf("description changed by partial patch: %q", hotel.Description)
	}
}

func TestGetHotel_NotFound(t *testing.T) {
	h := newHarness(t)
	rr := h.do(t, "GET", "/v1/hotels/999", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestGetHotel_ETagRoundTrip(t *testing.T) {
	h := newHarness(t)
	id := h.createHotel(t, token(t, "user-1"))
	path := fmt.Sprintf("/v1/hotels/%d", id)

	first := h.do(t, "GET", path, "", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("first GET: %d", first.Code)
	}
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag header")
	}

	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set("If-None-Match", etag)
	rr := httptest.NewRecorder()
	h.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotModified {
		t.Fatalf("conditional GET: %d, want 304", rr.Code)
	}
}

func TestCreateRoom_ParentFromPath(t *testing.T) {
	h := newHarness(t)
	bearer := token(t, "user-1")
	id := h.createHotel(t, bearer)

	body := roomBody()
	body["hotelId"] = id + 100 // payload value must be ignored
	rr := h.do(t, "POST", fmt.Sprintf("/v1/hotels/%d/rooms", id), bearer, body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var room domain.Room
	if err := json.Unmarshal(rr.Body.Bytes(), &room); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if room.HotelID != id {
		t.Fatalf("hotelID = %d, want %d", room.HotelID, id)
	}
}

func TestCreateRoom_MissingParent(t *testing.T) {
	h := newHarness(t)
	rr := h.do(t, "POST", "/v1/hotels/424242/rooms", token(t, "user-1"), roomBody())
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rr.Code, rr.Body.String())
	}
}

func TestDeleteHotel_CascadesAndReleasesAssets(t *testing.T) {
	h := newHarness(t)
	bearer := token(t, "user-1")
	id := h.createHotel(t, bearer)
	rr := h.do(t, "POST", fmt.Sprintf("/v1/hotels/%d/rooms", id), bearer, roomBody())
	if rr.Code != http.StatusCreated {
		t.Fatalf("create room: %d", rr.Code)
	}

	rr = h.do(t, "DELETE", fmt.Sprintf("/v1/hotels/%d", id), bearer, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: %d: %s", rr.Code, rr.Body.String())
	}
	if h.store.assets["abc123"] || h.store.assets["room-img-1"] {
		t.Fatalf("assets not released: %v", h.store.assets)
	}
	if rr = h.do(t, "GET", fmt.Sprintf("/v1/hotels/%d", id), "", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("hotel still readable after delete: %d", rr.Code)
	}
}

func TestDeleteAsset_Idempotent(t *testing.T) {
	h := newHarness(t)
	bearer := token(t, "user-1")
	for i := 0; i < 2; i++ {
		rr := h.do(t, "POST", "/v1/assets/delete", bearer, map[string]any{"imageKey": "abc123"})
		if rr.Code != http.StatusOK {
			t.Fatalf("attempt %d: status = %d: %s", i, rr.Code, rr.Body.String())
		}
	}
}

func TestDeleteAsset_RequiresAuth(t *testing.T) {
	h := newHarness(t)
	rr := h.do(t, "POST", "/v1/assets/delete", "", map[string]any{"imageKey": "abc123"})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestMyHotels(t *testing.T) {
	h := newHarness(t)
	bearer := token(t, "user-1")
	h.createHotel(t, bearer)

	rr := h.do(t, "GET", "/v1/my/hotels", bearer, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Items []domain.Hotel `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(resp.Items))
	}

	if rr = h.do(t, "GET", "/v1/my/hotels", "", nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous list: %d, want 401", rr.Code)
	}
}

func TestLocations_Cascade(t *testing.T) {
	h := newHarness(t)

	rr := h.do(t, "GET", "/v1/locations?country=PT&state=Lisboa", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp struct {
		Countries []struct{ Code, Name string } `json:"countries"`
		States    []string                      `json:"states"`
		Cities    []string                      `json:"cities"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Countries) == 0 || len(resp.States) == 0 || len(resp.Cities) == 0 {
		t.Fatalf("expected full cascade, got %+v", resp)
	}

	// Unknown country clears everything below it.
	rr = h.do(t, "GET", "/v1/locations?country=XX&state=Lisboa", "", nil)
	var cleared struct {
		States []string `json:"states"`
		Cities []string `json:"cities"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &cleared); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cleared.States) != 0 || len(cleared.Cities) != 0 {
		t.Fatalf("expected empty cascade, got %+v", cleared)
	}
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	rr := h.do(t, "GET", "/healthz", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}
