package domain

import "context"

type HotelRepository interface {
	// Write paths
	CreateHotel(ctx context.Context, h Hotel) (Hotel, error)
	UpdateHotel(ctx context.Context, id int64, p HotelPatch) (Hotel, error)
	DeleteHotel(ctx context.Context, id int64) error
	CreateRoom(ctx context.Context, r Room) (Room, error)
	UpdateRoom(ctx context.Context, id int64, p RoomPatch) (Room, error)
	DeleteRoom(ctx context.Context, id int64) error

	// Read paths
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	ListRooms(ctx context.Context, hotelID int64) ([]Room, error)
	ListHotelsByOwner(ctx context.Context, ownerID string) ([]Hotel, error)
	ListImageRefs(ctx context.Context) ([]ImageRef, error)
}

// AssetStore is the blob-storage provider boundary. Keys are opaque; Delete
// of an absent key returns ErrNotFound, which callers treat as success.
type AssetStore interface {
	Delete(ctx context.Context, key string) error
	Stat(ctx context.Context, key string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// ImageRef ties a persisted row to the asset its image field references.
// Used only by the reconciliation pass.
type ImageRef struct {
	Kind  string // "hotel" | "room"
	ID    int64
	Image string
}
