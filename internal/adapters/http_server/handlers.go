// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"staybook/internal/app"
	"staybook/internal/domain"
	"staybook/internal/location"
)

type Handlers struct {
	Hotels *app.HotelService
	Rooms  *app.RoomService
	Assets *app.AssetService
	Q      *app.QueryService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Post("/v1/hotels", h.createHotel)
	s.mux.Get("/v1/hotels/{hotelID}", h.getHotel)
	s.mux.Patch("/v1/hotels/{hotelID}", h.updateHotel)
	s.mux.Delete("/v1/hotels/{hotelID}", h.deleteHotel)

	s.mux.Post("/v1/hotels/{hotelID}/rooms", h.createRoom)
	s.mux.Patch("/v1/rooms/{roomID}", h.updateRoom)
	s.mux.Delete("/v1/rooms/{roomID}", h.deleteRoom)

	s.mux.Post("/v1/assets/delete", h.deleteAsset)

	s.mux.Get("/v1/my/hotels", h.myHotels)
	s.mux.Get("/v1/locations", h.locations)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the failure taxonomy onto distinct statuses; no partial
// success is ever reported as success.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeProblem(w, http.StatusServiceUnavailable, "Store Unavailable", "try again later")
	default:
		log.Error().Err(err).Msg("unmapped handler error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// ---- hotels ----

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var f domain.HotelFields
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	hotel, err := h.Hotels.Create(r.Context(), Subject(r.Context()), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, hotel)
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "hotelID")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "hotel id must be a positive number")
		return
	}
	var p domain.HotelPatch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	hotel, err := h.Hotels.Update(r.Context(), Subject(r.Context()), id, p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "hotelID")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "hotel id must be a positive number")
		return
	}
	hotel, err := h.Hotels.Delete(r.Context(), Subject(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "hotelID")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "hotel id must be a positive number")
		return
	}
	resp, err := h.Q.GetHotel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	etag, body := calcETagAndBody(resp)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getHotel body")
	}
}

func (h *Handlers) myHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Q.ListMyHotels(r.Context(), Subject(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": hotels})
}

// ---- rooms ----

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := pathID(r, "hotelID")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "hotel id must be a positive number")
		return
	}
	var f domain.RoomFields
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	room, err := h.Rooms.Create(r.Context(), Subject(r.Context()), hotelID, f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "roomID")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "room id must be a positive number")
		return
	}
	var p domain.RoomPatch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	room, err := h.Rooms.Update(r.Context(), Subject(r.Context()), id, p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "roomID")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "room id must be a positive number")
		return
	}
	room, err := h.Rooms.Delete(r.Context(), Subject(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// ---- assets ----

// deleteAsset serves the explicit pre-submit image release: the form calls it
// when the user removes or replaces an image before saving the entity.
func (h *Handlers) deleteAsset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ImageKey string `json:"imageKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	if err := h.Assets.ReleaseByKey(r.Context(), Subject(r.Context()), body.ImageKey); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ---- locations ----

func (h *Handlers) locations(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	state := r.URL.Query().Get("state")
	resp := struct {
		Countries []location.Country `json:"countries"`
		location.Selectable
	}{
		Countries:  location.Countries(),
		Selectable: location.DeriveSelectable(country, state),
	}
	writeJSON(w, http.StatusOK, resp)
}
