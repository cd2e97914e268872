package app_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"staybook/internal/domain"
)

// ---- fakes ----

// oplog records every store touch so tests can assert ordering and absence.
type oplog struct {
	mu  sync.Mutex
	ops []string
}

func (l *oplog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, fmt.Sprintf(format, args...))
}

func (l *oplog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.ops...)
}

type fakeRepo struct {
	log    *oplog
	hotels map[int64]domain.Hotel
	rooms  map[int64]domain.Room
	nextID int64
}

func newFakeRepo(log *oplog) *fakeRepo {
	return &fakeRepo{
		log:    log,
		hotels: map[int64]domain.Hotel{},
		rooms:  map[int64]domain.Room{},
	}
}

func (f *fakeRepo) CreateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	f.nextID++
	h.ID = f.nextID
	f.hotels[h.ID] = h
	f.log.add("create_hotel_row:%d", h.ID)
	return h, nil
}

func (f *fakeRepo) UpdateHotel(ctx context.Context, id int64, p domain.HotelPatch) (domain.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	p.Apply(&h)
	f.hotels[id] = h
	f.log.add("update_hotel_row:%d", id)
	return h, nil
}

func (f *fakeRepo) DeleteHotel(ctx context.Context, id int64) error {
	if _, ok := f.hotels[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.hotels, id)
	f.log.add("delete_hotel_row:%d", id)
	return nil
}

func (f *fakeRepo) CreateRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	f.nextID++
	r.ID = f.nextID
	f.rooms[r.ID] = r
	f.log.add("create_room_row:%d", r.ID)
	return r, nil
}

func (f *fakeRepo) UpdateRoom(ctx context.Context, id int64, p domain.RoomPatch) (domain.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	p.Apply(&r)
	f.rooms[id] = r
	f.log.add("update_room_row:%d", id)
	return r, nil
}

func (f *fakeRepo) DeleteRoom(ctx context.Context, id int64) error {
	if _, ok := f.rooms[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rooms, id)
	f.log.add("delete_room_row:%d", id)
	return nil
}

func (f *fakeRepo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (f *fakeRepo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeRepo) ListRooms(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	var out []domain.Room
	for _, r := range f.rooms {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) ListHotelsByOwner(ctx context.Context, ownerID string) ([]domain.Hotel, error) {
	var out []domain.Hotel
	for _, h := range f.hotels {
		if h.OwnerID == ownerID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) ListImageRefs(ctx context.Context) ([]domain.ImageRef, error) {
	var out []domain.ImageRef
	for _, h := range f.hotels {
		out = append(out, domain.ImageRef{Kind: "hotel", ID: h.ID, Image: h.Image})
	}
	for _, r := range f.rooms {
		out = append(out, domain.ImageRef{Kind: "room", ID: r.ID, Image: r.Image})
	}
	return out, nil
}

type fakeStore struct {
	log    *oplog
	assets map[string]bool
}

func newFakeStore(log *oplog, keys ...string) *fakeStore {
	s := &fakeStore{log: log, assets: map[string]bool{}}
	for _, k := range keys {
		s.assets[k] = true
	}
	return s
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	if !f.assets[key] {
		f.log.add("release_asset_absent:%s", key)
		return domain.ErrNotFound
	}
	delete(f.assets, key)
	f.log.add("release_asset:%s", key)
	return nil
}

func (f *fakeStore) Stat(ctx context.Context, key string) error {
	if !f.assets[key] {
		return domain.ErrNotFound
	}
	return nil
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.HotelWithRooms:
		*d = v.(domain.HotelWithRooms)
	case *[]domain.Hotel:
		*d = v.([]domain.Hotel)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

// ---- helpers ----

func ptr[T any](v T) *T { return &v }

func validHotelFields() domain.HotelFields {
	return domain.HotelFields{
		Title:               "Beach Hotel",
		Description:         "A pleasant hotel right on the beach",
		Image:               "https://store/abc123",
		Country:             "PT",
		State:               "Lisboa",
		City:                "Lisbon",
		LocationDescription: "Five minutes from the waterfront",
	}
}

func validRoomFields() domain.RoomFields {
	return domain.RoomFields{
		Title:         "Double Room",
		Description:   "Spacious double with a balcony",
		Image:         "https://store/room-img-1",
		BedCount:      2,
		GuestCount:    4,
		BathroomCount: 1,
		RoomPrice:     100,
	}
}
