package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"staybook/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) CreateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	res, err := r.db.ExecContext(ctx, insertHotelSQL,
		h.OwnerID, h.Title, h.Description, h.Image,
		h.Country, h.State, h.City, h.LocationDescription,
		h.Gym, h.Spa, h.Bar, h.Laundry, h.Restaurant, h.Shopping,
		h.FreeParking, h.BikeRental, h.FreeWifi, h.MovieNights,
		h.SwimmingPool, h.CoffeeShop,
	)
	if err != nil {
		return domain.Hotel{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Hotel{}, err
	}
	return r.GetHotel(ctx, id)
}

// UpdateHotel applies a merge-patch. The SET clause is built from the
// explicit field list below; nothing outside it can reach the row.
func (r *Repo) UpdateHotel(ctx context.Context, id int64, p domain.HotelPatch) (domain.Hotel, error) {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.Image != nil {
		set("image", *p.Image)
	}
	if p.Country != nil {
		set("country", *p.Country)
	}
	if p.State != nil {
		set("state", *p.State)
	}
	if p.City != nil {
		set("city", *p.City)
	}
	if p.LocationDescription != nil {
		set("location_description", *p.LocationDescription)
	}
	if p.Gym != nil {
		set("gym", *p.Gym)
	}
	if p.Spa != nil {
		set("spa", *p.Spa)
	}
	if p.Bar != nil {
		set("bar", *p.Bar)
	}
	if p.Laundry != nil {
		set("laundry", *p.Laundry)
	}
	if p.Restaurant != nil {
		set("restaurant", *p.Restaurant)
	}
	if p.Shopping != nil {
		set("shopping", *p.Shopping)
	}
	if p.FreeParking != nil {
		set("free_parking", *p.FreeParking)
	}
	if p.BikeRental != nil {
		set("bike_rental", *p.BikeRental)
	}
	if p.FreeWifi != nil {
		set("free_wifi", *p.FreeWifi)
	}
	if p.MovieNights != nil {
		set("movie_nights", *p.MovieNights)
	}
	if p.SwimmingPool != nil {
		set("swimming_pool", *p.SwimmingPool)
	}
	if p.CoffeeShop != nil {
		set("coffee_shop", *p.CoffeeShop)
	}
	if len(sets) == 0 {
		return r.GetHotel(ctx, id)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)
	q := fmt.Sprintf("UPDATE hotels SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return domain.Hotel{}, err
	}
	// RowsAffected is 0 both for an absent row and a no-op write; the
	// re-read disambiguates.
	return r.GetHotel(ctx, id)
}

func (r *Repo) DeleteHotel(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteHotelSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	row := r.db.QueryRowContext(ctx, selectHotelSQL, id)
	h, err := scanHotel(row)
	if err == sql.ErrNoRows {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, err
}

func (r *Repo) ListHotelsByOwner(ctx context.Context, ownerID string) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, selectHotelsByOwnerSQL, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) CreateRoom(ctx context.Context, rm domain.Room) (domain.Room, error) {
	res, err := r.db.ExecContext(ctx, insertRoomSQL,
		rm.HotelID, rm.Title, rm.Description, rm.Image,
		rm.BedCount, rm.GuestCount, rm.BathroomCount, rm.KingBed, rm.QueenBed,
		rm.RoomPrice, rm.BreakfastPrice,
		rm.RoomService, rm.TV, rm.Balcony, rm.FreeWifi, rm.CityView,
		rm.OceanView, rm.ForestView, rm.MountainView, rm.AirCondition, rm.SoundProofed,
	)
	if err != nil {
		// FK violation means the parent hotel is gone.
		if strings.Contains(err.Error(), "1452") {
			return domain.Room{}, domain.ErrNotFound
		}
		return domain.Room{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Room{}, err
	}
	return r.GetRoom(ctx, id)
}

func (r *Repo) UpdateRoom(ctx context.Context, id int64, p domain.RoomPatch) (domain.Room, error) {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.Image != nil {
		set("image", *p.Image)
	}
	if p.BedCount != nil {
		set("bed_count", *p.BedCount)
	}
	if p.GuestCount != nil {
		set("guest_count", *p.GuestCount)
	}
	if p.BathroomCount != nil {
		set("bathroom_count", *p.BathroomCount)
	}
	if p.KingBed != nil {
		set("king_bed", *p.KingBed)
	}
	if p.QueenBed != nil {
		set("queen_bed", *p.QueenBed)
	}
	if p.RoomPrice != nil {
		set("room_price", *p.RoomPrice)
	}
	if p.BreakfastPrice != nil {
		set("breakfast_price", *p.BreakfastPrice)
	}
	if p.RoomService != nil {
		set("room_service", *p.RoomService)
	}
	if p.TV != nil {
		set("tv", *p.TV)
	}
	if p.Balcony != nil {
		set("balcony", *p.Balcony)
	}
	if p.FreeWifi != nil {
		set("free_wifi", *p.FreeWifi)
	}
	if p.CityView != nil {
		set("city_view", *p.CityView)
	}
	if p.OceanView != nil {
		set("ocean_view", *p.OceanView)
	}
	if p.ForestView != nil {
		set("forest_view", *p.ForestView)
	}
	if p.MountainView != nil {
		set("mountain_view", *p.MountainView)
	}
	if p.AirCondition != nil {
		set("air_condition", *p.AirCondition)
	}
	if p.SoundProofed != nil {
		set("sound_proofed", *p.SoundProofed)
	}
	if len(sets) == 0 {
		return r.GetRoom(ctx, id)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)
	q := fmt.Sprintf("UPDATE rooms SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return domain.Room{}, err
	}
	return r.GetRoom(ctx, id)
}

func (r *Repo) DeleteRoom(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteRoomSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	row := r.db.QueryRowContext(ctx, selectRoomSQL, id)
	rm, err := scanRoom(row)
	if err == sql.ErrNoRows {
		return domain.Room{}, domain.ErrNotFound
	}
	return rm, err
}

func (r *Repo) ListRooms(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, selectRoomsByHotelSQL, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *Repo) ListImageRefs(ctx context.Context) ([]domain.ImageRef, error) {
	rows, err := r.db.QueryContext(ctx, selectImageRefsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ImageRef
	for rows.Next() {
		var ref domain.ImageRef
		if err := rows.Scan(&ref.Kind, &ref.ID, &ref.Image); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

type scanner interface{ Scan(dest ...any) error }

func scanHotel(s scanner) (domain.Hotel, error) {
	var h domain.Hotel
	err := s.Scan(
		&h.ID, &h.OwnerID, &h.Title, &h.Description, &h.Image,
		&h.Country, &h.State, &h.City, &h.LocationDescription,
		&h.Gym, &h.Spa, &h.Bar, &h.Laundry, &h.Restaurant, &h.Shopping,
		&h.FreeParking, &h.BikeRental, &h.FreeWifi, &h.MovieNights,
		&h.SwimmingPool, &h.CoffeeShop,
		&h.AddedAt, &h.UpdatedAt,
	)
	return h, err
}

func scanRoom(s scanner) (domain.Room, error) {
	var rm domain.Room
	err := s.Scan(
		&rm.ID, &rm.HotelID, &rm.Title, &rm.Description, &rm.Image,
		&rm.BedCount, &rm.GuestCount, &rm.BathroomCount, &rm.KingBed, &rm.QueenBed,
		&rm.RoomPrice, &rm.BreakfastPrice,
		&rm.RoomService, &rm.TV, &rm.Balcony, &rm.FreeWifi, &rm.CityView,
		&rm.OceanView, &rm.ForestView, &rm.MountainView, &rm.AirCondition, &rm.SoundProofed,
		&rm.AddedAt, &rm.UpdatedAt,
	)
	return rm, err
}
