package app

import (
	"context"
	"time"

	"staybook/internal/domain"
)

// QueryService serves the read side (hotel page, "my hotels" list) behind a
// cache; mutations invalidate the same keys.
type QueryService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetHotel(ctx context.Context, id int64) (domain.HotelWithRooms, error) {
	key := hotelKey(id)
	var hv domain.HotelWithRooms
	if ok, _ := s.cache.Get(ctx, key, &hv); ok {
		return hv, nil
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.HotelWithRooms{}, storeErr("fetch hotel", err)
	}
	rooms, err := s.repo.ListRooms(ctx, id)
	if err != nil {
		return domain.HotelWithRooms{}, storeErr("list rooms", err)
	}
	hv = domain.HotelWithRooms{Hotel: h, Rooms: rooms}
	_ = s.cache.Set(ctx, key, deepCopyHotel(hv), int(s.cacheTTL.Seconds()))
	return hv, nil
}

func (s *QueryService) ListMyHotels(ctx context.Context, subjectID string) ([]domain.Hotel, error) {
	if subjectID == "" {
		return nil, domain.ErrUnauthenticated
	}
	key := ownerKey(subjectID)
	var out []domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	hs, err := s.repo.ListHotelsByOwner(ctx, subjectID)
	if err != nil {
		return nil, storeErr("list hotels", err)
	}
	_ = s.cache.Set(ctx, key, hs, int(s.cacheTTL.Seconds()))
	return hs, nil
}

// copy the rooms slice to avoid aliasing the repo's backing array
func deepCopyHotel(in domain.HotelWithRooms) domain.HotelWithRooms {
	out := domain.HotelWithRooms{Hotel: in.Hotel}
	if n := len(in.Rooms); n > 0 {
		out.Rooms = make([]domain.Room, n)
		copy(out.Rooms, in.Rooms)
	}
	return out
}
