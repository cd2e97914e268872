package domain

import "time"

type Room struct {
	ID          int64
	HotelID     int64 // immutable foreign key; cascade-deleted with the hotel
	Title       string
	Description string
	Image       string

	BedCount      int
	GuestCount    int
	BathroomCount int
	KingBed       int
	QueenBed      int

	RoomPrice      int
	BreakfastPrice int

	RoomService  bool
	TV           bool
	Balcony      bool
	FreeWifi     bool
	CityView     bool
	OceanView    bool
	ForestView   bool
	MountainView bool
	AirCondition bool
	SoundProofed bool

	AddedAt   time.Time
	UpdatedAt time.Time
}

// RoomFields is the create payload. The parent hotel comes from the request
// path, never from the body, so a client cannot rebind a room.
type RoomFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`

	BedCount      int `json:"bedCount"`
	GuestCount    int `json:"guestCount"`
	BathroomCount int `json:"bathroomCount"`
	KingBed       int `json:"kingBed"`
	QueenBed      int `json:"queenBed"`

	RoomPrice      int `json:"roomPrice"`
	BreakfastPrice int `json:"breakfastPrice"`

	RoomService  bool `json:"roomService"`
	TV           bool `json:"TV"`
	Balcony      bool `json:"balcony"`
	FreeWifi     bool `json:"freeWifi"`
	CityView     bool `json:"cityView"`
	OceanView    bool `json:"oceanView"`
	ForestView   bool `json:"forestView"`
	MountainView bool `json:"mountainView"`
	AirCondition bool `json:"airCondition"`
	SoundProofed bool `json:"soundProofed"`
}

// RoomPatch is a merge-patch over a room. HotelID is not patchable.
type RoomPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`

	BedCount      *int `json:"bedCount"`
	GuestCount    *int `json:"guestCount"`
	BathroomCount *int `json:"bathroomCount"`
	KingBed       *int `json:"kingBed"`
	QueenBed      *int `json:"queenBed"`

	RoomPrice      *int `json:"roomPrice"`
	BreakfastPrice *int `json:"breakfastPrice"`

	RoomService  *bool `json:"roomService"`
	TV           *bool `json:"TV"`
	Balcony      *bool `json:"balcony"`
	FreeWifi     *bool `json:"freeWifi"`
	CityView     *bool `json:"cityView"`
	OceanView    *bool `json:"oceanView"`
	ForestView   *bool `json:"forestView"`
	MountainView *bool `json:"mountainView"`
	AirCondition *bool `json:"airCondition"`
	SoundProofed *bool `json:"soundProofed"`
}

// Apply merges the patch into r, leaving omitted fields untouched.
func (p RoomPatch) Apply(r *Room) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Image != nil {
		r.Image = *p.Image
	}
	if p.BedCount != nil {
		r.BedCount = *p.BedCount
	}
	if p.GuestCount != nil {
		r.GuestCount = *p.GuestCount
	}
	if p.BathroomCount != nil {
		r.BathroomCount = *p.BathroomCount
	}
	if p.KingBed != nil {
		r.KingBed = *p.KingBed
	}
	if p.QueenBed != nil {
		r.QueenBed = *p.QueenBed
	}
	if p.RoomPrice != nil {
		r.RoomPrice = *p.RoomPrice
	}
	if p.BreakfastPrice != nil {
		r.BreakfastPrice = *p.BreakfastPrice
	}
	if p.RoomService != nil {
		r.RoomService = *p.RoomService
	}
	if p.TV != nil {
		r.TV = *p.TV
	}
	if p.Balcony != nil {
		r.Balcony = *p.Balcony
	}
	if p.FreeWifi != nil {
		r.FreeWifi = *p.FreeWifi
	}
	if p.CityView != nil {
		r.CityView = *p.CityView
	}
	if p.OceanView != nil {
		r.OceanView = *p.OceanView
	}
	if p.ForestView != nil {
		r.ForestView = *p.ForestView
	}
	if p.MountainView != nil {
		r.MountainView = *p.MountainView
	}
	if p.AirCondition != nil {
		r.AirCondition = *p.AirCondition
	}
	if p.SoundProofed != nil {
		r.SoundProofed = *p.SoundProofed
	}
}
