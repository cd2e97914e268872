package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"staybook/internal/domain"
)

// AssetService keeps uploaded images consistent with the rows that reference
// them. Releases are idempotent: a key the store no longer has counts as
// released.
type AssetService struct {
	store domain.AssetStore
}

func NewAssetService(s domain.AssetStore) *AssetService {
	return &AssetService{store: s}
}

// ReleaseImage deletes the asset behind an image reference URL. A reference
// that is empty, carries no key, or is already absent from the store is a
// no-op. Once it returns nil the caller must clear the reference field in
// the same logical operation.
func (s *AssetService) ReleaseImage(ctx context.Context, imageRef string) error {
	key := domain.ImageKey(imageRef)
	if key == "" {
		return nil
	}
	return s.releaseKey(ctx, key)
}

// ReleaseByKey releases an asset by its raw store key. Used by the explicit
// pre-submit delete endpoint, so it gates on authentication itself.
func (s *AssetService) ReleaseByKey(ctx context.Context, subjectID, key string) error {
	if subjectID == "" {
		return domain.ErrUnauthenticated
	}
	if key == "" {
		return nil
	}
	return s.releaseKey(ctx, key)
}

func (s *AssetService) releaseKey(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Debug().Str("key", key).Msg("asset already absent")
			return nil
		}
		return fmt.Errorf("release asset %s: %w: %v", key, domain.ErrStoreUnavailable, err)
	}
	return nil
}

// VerifyImage checks that a non-empty image reference points at an asset the
// store actually holds. A missing asset is a validation failure, not a store
// failure.
func (s *AssetService) VerifyImage(ctx context.Context, imageRef string) error {
	key := domain.ImageKey(imageRef)
	if key == "" {
		return nil
	}
	if err := s.store.Stat(ctx, key); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: image asset %s does not exist", domain.ErrValidation, key)
		}
		return fmt.Errorf("stat asset %s: %w: %v", key, domain.ErrStoreUnavailable, err)
	}
	return nil
}
