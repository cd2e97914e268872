package domain

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Field constraints mirror the owner-facing forms: they run before any store
// access, so an invalid payload never touches a row or an asset.

func (f HotelFields) Validate() error {
	var errs []string
	if utf8.RuneCountInString(f.Title) < 3 {
		errs = append(errs, "title must be at least 3 characters long")
	}
	if utf8.RuneCountInString(f.Description) < 10 {
		errs = append(errs, "description must be at least 10 characters long")
	}
	if err := checkImageRef(f.Image); err != nil {
		errs = append(errs, err.Error())
	}
	if f.Country == "" {
		errs = append(errs, "country is required")
	}
	if utf8.RuneCountInString(f.LocationDescription) < 10 {
		errs = append(errs, "location description must be at least 10 characters long")
	}
	return joinValidation(errs)
}

func (p HotelPatch) Validate() error {
	var errs []string
	if p.Title != nil && utf8.RuneCountInString(*p.Title) < 3 {
		errs = append(errs, "title must be at least 3 characters long")
	}
	if p.Description != nil && utf8.RuneCountInString(*p.Description) < 10 {
		errs = append(errs, "description must be at least 10 characters long")
	}
	if p.Image != nil && *p.Image != "" {
		if err := checkImageRef(*p.Image); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if p.Country != nil && *p.Country == "" {
		errs = append(errs, "country is required")
	}
	if p.LocationDescription != nil && utf8.RuneCountInString(*p.LocationDescription) < 10 {
		errs = append(errs, "location description must be at least 10 characters long")
	}
	return joinValidation(errs)
}

func (f RoomFields) Validate() error {
	var errs []string
	if utf8.RuneCountInString(f.Title) < 3 {
		errs = append(errs, "title must be at least 3 characters long")
	}
	if utf8.RuneCountInString(f.Description) < 10 {
		errs = append(errs, "description must be at least 10 characters long")
	}
	if err := checkImageRef(f.Image); err != nil {
		errs = append(errs, err.Error())
	}
	if f.BedCount < 1 {
		errs = append(errs, "bed count must be at least 1")
	}
	if f.GuestCount < 1 {
		errs = append(errs, "guest count must be at least 1")
	}
	if f.BathroomCount < 1 {
		errs = append(errs, "bathroom count must be at least 1")
	}
	if f.KingBed < 0 {
		errs = append(errs, "king bed count cannot be negative")
	}
	if f.QueenBed < 0 {
		errs = append(errs, "queen bed count cannot be negative")
	}
	if f.RoomPrice < 1 {
		errs = append(errs, "room price must be at least 1")
	}
	if f.BreakfastPrice < 0 {
		errs = append(errs, "breakfast price cannot be negative")
	}
	return joinValidation(errs)
}

func (p RoomPatch) Validate() error {
	var errs []string
	if p.Title != nil && utf8.RuneCountInString(*p.Title) < 3 {
		errs = append(errs, "title must be at least 3 characters long")
	}
	if p.Description != nil && utf8.RuneCountInString(*p.Description) < 10 {
		errs = append(errs, "description must be at least 10 characters long")
	}
	if p.Image != nil && *p.Image != "" {
		if err := checkImageRef(*p.Image); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if p.BedCount != nil && *p.BedCount < 1 {
		errs = append(errs, "bed count must be at least 1")
	}
	if p.GuestCount != nil && *p.GuestCount < 1 {
		errs = append(errs, "guest count must be at least 1")
	}
	if p.BathroomCount != nil && *p.BathroomCount < 1 {
		errs = append(errs, "bathroom count must be at least 1")
	}
	if p.KingBed != nil && *p.KingBed < 0 {
		errs = append(errs, "king bed count cannot be negative")
	}
	if p.QueenBed != nil && *p.QueenBed < 0 {
		errs = append(errs, "queen bed count cannot be negative")
	}
	if p.RoomPrice != nil && *p.RoomPrice < 1 {
		errs = append(errs, "room price must be at least 1")
	}
	if p.BreakfastPrice != nil && *p.BreakfastPrice < 0 {
		errs = append(errs, "breakfast price cannot be negative")
	}
	return joinValidation(errs)
}

// ImageKey extracts the asset key from an image reference URL: the trailing
// path segment. Returns "" for an empty or key-less reference.
func ImageKey(ref string) string {
	if ref == "" {
		return ""
	}
	key := ref
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		key = key[i+1:]
	}
	return key
}

func checkImageRef(ref string) error {
	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("image must be a valid URL")
	}
	if ImageKey(ref) == "" {
		return fmt.Errorf("image URL has no asset key")
	}
	return nil
}

func joinValidation(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, "; "))
}
