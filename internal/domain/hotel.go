package domain

import "time"

type Hotel struct {
	ID                  int64
	OwnerID             string // subject that created the hotel; immutable
	Title               string
	Description         string
	Image               string // URL; trailing path segment is the asset key
	Country             string
	State               string
	City                string
	LocationDescription string

	Gym          bool
	Spa          bool
	Bar          bool
	Laundry      bool
	Restaurant   bool
	Shopping     bool
	FreeParking  bool
	BikeRental   bool
	FreeWifi     bool
	MovieNights  bool
	SwimmingPool bool
	CoffeeShop   bool

	AddedAt   time.Time
	UpdatedAt time.Time
}

// HotelFields is the create payload. It carries no owner; the creating
// subject becomes the owner.
type HotelFields struct {
	Title               string `json:"title"`
	Description         string `json:"description"`
	Image               string `json:"image"`
	Country             string `json:"country"`
	State               string `json:"state"`
	City                string `json:"city"`
	LocationDescription string `json:"locationDescription"`

	Gym          bool `json:"gym"`
	Spa          bool `json:"spa"`
	Bar          bool `json:"bar"`
	Laundry      bool `json:"laundry"`
	Restaurant   bool `json:"restaurant"`
	Shopping     bool `json:"shopping"`
	FreeParking  bool `json:"freeParking"`
	BikeRental   bool `json:"bikeRental"`
	FreeWifi     bool `json:"freeWifi"`
	MovieNights  bool `json:"movieNights"`
	SwimmingPool bool `json:"swimmingPool"`
	CoffeeShop   bool `json:"coffeeShop"`
}

// HotelPatch is a merge-patch: only non-nil fields are applied. The patchable
// set is exactly this struct; OwnerID is deliberately absent.
type HotelPatch struct {
	Title               *string `json:"title"`
	Description         *string `json:"description"`
	Image               *string `json:"image"`
	Country             *string `json:"country"`
	State               *string `json:"state"`
	City                *string `json:"city"`
	LocationDescription *string `json:"locationDescription"`

	Gym          *bool `json:"gym"`
	Spa          *bool `json:"spa"`
	Bar          *bool `json:"bar"`
	Laundry      *bool `json:"laundry"`
	Restaurant   *bool `json:"restaurant"`
	Shopping     *bool `json:"shopping"`
	FreeParking  *bool `json:"freeParking"`
	BikeRental   *bool `json:"bikeRental"`
	FreeWifi     *bool `json:"freeWifi"`
	MovieNights  *bool `json:"movieNights"`
	SwimmingPool *bool `json:"swimmingPool"`
	CoffeeShop   *bool `json:"coffeeShop"`
}

// Apply merges the patch into h, leaving omitted fields untouched.
func (p HotelPatch) Apply(h *Hotel) {
	if p.Title != nil {
		h.Title = *p.Title
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Image != nil {
		h.Image = *p.Image
	}
	if p.Country != nil {
		h.Country = *p.Country
	}
	if p.State != nil {
		h.State = *p.State
	}
	if p.City != nil {
		h.City = *p.City
	}
	if p.LocationDescription != nil {
		h.LocationDescription = *p.LocationDescription
	}
	if p.Gym != nil {
		h.Gym = *p.Gym
	}
	if p.Spa != nil {
		h.Spa = *p.Spa
	}
	if p.Bar != nil {
		h.Bar = *p.Bar
	}
	if p.Laundry != nil {
		h.Laundry = *p.Laundry
	}
	if p.Restaurant != nil {
		h.Restaurant = *p.Restaurant
	}
	if p.Shopping != nil {
		h.Shopping = *p.Shopping
	}
	if p.FreeParking != nil {
		h.FreeParking = *p.FreeParking
	}
	if p.BikeRental != nil {
		h.BikeRental = *p.BikeRental
	}
	if p.FreeWifi != nil {
		h.FreeWifi = *p.FreeWifi
	}
	if p.MovieNights != nil {
		h.MovieNights = *p.MovieNights
	}
	if p.SwimmingPool != nil {
		h.SwimmingPool = *p.SwimmingPool
	}
	if p.CoffeeShop != nil {
		h.CoffeeShop = *p.CoffeeShop
	}
}

// HotelWithRooms is the read model served to the edit page.
type HotelWithRooms struct {
	Hotel
	Rooms []Room
}
