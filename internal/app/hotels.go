package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"staybook/internal/domain"
)

// HotelService orchestrates hotel mutations: authentication and ownership
// checks first, field validation next, then store writes, with asset cleanup
// ordered before the row deletes it belongs to.
type HotelService struct {
	repo   domain.HotelRepository
	assets *AssetService
	cache  domain.Cache
}

func NewHotelService(r domain.HotelRepository, a *AssetService, c domain.Cache) *HotelService {
	return &HotelService{repo: r, assets: a, cache: c}
}

func (s *HotelService) Create(ctx context.Context, subjectID string, f domain.HotelFields) (domain.Hotel, error) {
	if subjectID == "" {
		return domain.Hotel{}, domain.ErrUnauthenticated
	}
	if err := f.Validate(); err != nil {
		return domain.Hotel{}, err
	}
	// The reference must point at an asset the store holds at the time it is set.
	if err := s.assets.VerifyImage(ctx, f.Image); err != nil {
		return domain.Hotel{}, err
	}

	h := domain.Hotel{
		OwnerID:             subjectID,
		Title:               f.Title,
		Description:         f.Description,
		Image:               f.Image,
		Country:             f.Country,
		State:               f.State,
		City:                f.City,
		LocationDescription: f.LocationDescription,
		Gym:                 f.Gym,
		Spa:                 f.Spa,
		Bar:                 f.Bar,
		Laundry:             f.Laundry,
		Restaurant:          f.Restaurant,
		Shopping:            f.Shopping,
		FreeParking:         f.FreeParking,
		BikeRental:          f.BikeRental,
		FreeWifi:            f.FreeWifi,
		MovieNights:         f.MovieNights,
		SwimmingPool:        f.SwimmingPool,
		CoffeeShop:          f.CoffeeShop,
	}
	created, err := s.repo.CreateHotel(ctx, h)
	if err != nil {
		return domain.Hotel{}, storeErr("create hotel", err)
	}
	s.invalidate(ctx, created.ID, created.OwnerID)
	return created, nil
}

func (s *HotelService) Update(ctx context.Context, subjectID string, hotelID int64, p domain.HotelPatch) (domain.Hotel, error) {
	if subjectID == "" {
		return domain.Hotel{}, domain.ErrUnauthenticated
	}
	if err := p.Validate(); err != nil {
		return domain.Hotel{}, err
	}
	h, err := s.repo.GetHotel(ctx, hotelID)
	if err != nil {
		return domain.Hotel{}, storeErr("fetch hotel", err)
	}
	if err := authorize(subjectID, h); err != nil {
		return domain.Hotel{}, err
	}
	if p.Image != nil && *p.Image != "" && *p.Image != h.Image {
		if err := s.assets.VerifyImage(ctx, *p.Image); err != nil {
			return domain.Hotel{}, err
		}
	}
	updated, err := s.repo.UpdateHotel(ctx, hotelID, p)
	if err != nil {
		return domain.Hotel{}, storeErr("update hotel", err)
	}
	s.invalidate(ctx, hotelID, h.OwnerID)
	return updated, nil
}

// Delete removes a hotel and everything hanging off it. Assets are released
// strictly before their rows: a crash between the two leaves a row whose
// image reference 404s, which the reconciler reports, rather than a leaked
// blob nothing references anymore.
func (s *HotelService) Delete(ctx context.Context, subjectID string, hotelID int64) (domain.Hotel, error) {
	if subjectID == "" {
		return domain.Hotel{}, domain.ErrUnauthenticated
	}
	h, err := s.repo.GetHotel(ctx, hotelID)
	if err != nil {
		return domain.Hotel{}, storeErr("fetch hotel", err)
	}
	if err := authorize(subjectID, h); err != nil {
		return domain.Hotel{}, err
	}

	rooms, err := s.repo.ListRooms(ctx, hotelID)
	if err != nil {
		return domain.Hotel{}, storeErr("list rooms", err)
	}
	for _, r := range rooms {
		if err := s.assets.ReleaseImage(ctx, r.Image); err != nil {
			return domain.Hotel{}, err
		}
		if err := s.repo.DeleteRoom(ctx, r.ID); err != nil {
			return domain.Hotel{}, storeErr("delete room", err)
		}
	}
	if err := s.assets.ReleaseImage(ctx, h.Image); err != nil {
		return domain.Hotel{}, err
	}
	if err := s.repo.DeleteHotel(ctx, hotelID); err != nil {
		return domain.Hotel{}, storeErr("delete hotel", err)
	}

	log.Info().Int64("hotel_id", hotelID).Int("rooms", len(rooms)).Msg("hotel deleted")
	s.invalidate(ctx, hotelID, h.OwnerID)
	return h, nil
}

func (s *HotelService) invalidate(ctx context.Context, hotelID int64, ownerID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, hotelKey(hotelID))
	_ = s.cache.Del(ctx, ownerKey(ownerID))
}

func hotelKey(id int64) string     { return fmt.Sprintf("hotel:%d", id) }
func ownerKey(owner string) string { return fmt.Sprintf("hotels:owner:%s", owner) }

// storeErr passes the taxonomy sentinels through and folds everything else
// into ErrStoreUnavailable so callers see one retryable failure class.
func storeErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}
