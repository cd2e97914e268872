package app

import (
	"context"

	"staybook/internal/domain"
)

// RoomService orchestrates room mutations. A room has no owner of its own:
// every operation resolves the parent hotel and authorizes against it.
type RoomService struct {
	repo   domain.HotelRepository
	assets *AssetService
	cache  domain.Cache
}

func NewRoomService(r domain.HotelRepository, a *AssetService, c domain.Cache) *RoomService {
	return &RoomService{repo: r, assets: a, cache: c}
}

// Create inserts a room under hotelID. The parent comes from the trusted
// path parameter; any hotel reference in the payload is ignored.
func (s *RoomService) Create(ctx context.Context, subjectID string, hotelID int64, f domain.RoomFields) (domain.Room, error) {
	if subjectID == "" {
		return domain.Room{}, domain.ErrUnauthenticated
	}
	if err := f.Validate(); err != nil {
		return domain.Room{}, err
	}
	h, err := s.repo.GetHotel(ctx, hotelID)
	if err != nil {
		return domain.Room{}, storeErr("fetch hotel", err)
	}
	if err := authorize(subjectID, h); err != nil {
		return domain.Room{}, err
	}
	if err := s.assets.VerifyImage(ctx, f.Image); err != nil {
		return domain.Room{}, err
	}

	r := domain.Room{
		HotelID:        hotelID,
		Title:          f.Title,
		Description:    f.Description,
		Image:          f.Image,
		BedCount:       f.BedCount,
		GuestCount:     f.GuestCount,
		BathroomCount:  f.BathroomCount,
		KingBed:        f.KingBed,
		QueenBed:       f.QueenBed,
		RoomPrice:      f.RoomPrice,
		BreakfastPrice: f.BreakfastPrice,
		RoomService:    f.RoomService,
		TV:             f.TV,
		Balcony:        f.Balcony,
		FreeWifi:       f.FreeWifi,
		CityView:       f.CityView,
		OceanView:      f.OceanView,
		ForestView:     f.ForestView,
		MountainView:   f.MountainView,
		AirCondition:   f.AirCondition,
		SoundProofed:   f.SoundProofed,
	}
	created, err := s.repo.CreateRoom(ctx, r)
	if err != nil {
		return domain.Room{}, storeErr("create room", err)
	}
	s.invalidate(ctx, h)
	return created, nil
}

func (s *RoomService) Update(ctx context.Context, subjectID string, roomID int64, p domain.RoomPatch) (domain.Room, error) {
	if subjectID == "" {
		return domain.Room{}, domain.ErrUnauthenticated
	}
	if err := p.Validate(); err != nil {
		return domain.Room{}, err
	}
	r, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return domain.Room{}, storeErr("fetch room", err)
	}
	h, err := s.repo.GetHotel(ctx, r.HotelID)
	if err != nil {
		return domain.Room{}, storeErr("fetch parent hotel", err)
	}
	if err := authorize(subjectID, h); err != nil {
		return domain.Room{}, err
	}
	if p.Image != nil && *p.Image != "" && *p.Image != r.Image {
		if err := s.assets.VerifyImage(ctx, *p.Image); err != nil {
			return domain.Room{}, err
		}
	}
	updated, err := s.repo.UpdateRoom(ctx, roomID, p)
	if err != nil {
		return domain.Room{}, storeErr("update room", err)
	}
	s.invalidate(ctx, h)
	return updated, nil
}

// Delete releases the room's image asset before removing the row, so a
// partial failure can leave a dangling reference but never a leaked blob.
func (s *RoomService) Delete(ctx context.Context, subjectID string, roomID int64) (domain.Room, error) {
	if subjectID == "" {
		return domain.Room{}, domain.ErrUnauthenticated
	}
	r, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return domain.Room{}, storeErr("fetch room", err)
	}
	h, err := s.repo.GetHotel(ctx, r.HotelID)
	if err != nil {
		return domain.Room{}, storeErr("fetch parent hotel", err)
	}
	if err := authorize(subjectID, h); err != nil {
		return domain.Room{}, err
	}
	if err := s.assets.ReleaseImage(ctx, r.Image); err != nil {
		return domain.Room{}, err
	}
	if err := s.repo.DeleteRoom(ctx, roomID); err != nil {
		return domain.Room{}, storeErr("delete room", err)
	}
	s.invalidate(ctx, h)
	return r, nil
}

func (s *RoomService) invalidate(ctx context.Context, h domain.Hotel) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, hotelKey(h.ID))
	_ = s.cache.Del(ctx, ownerKey(h.OwnerID))
}
