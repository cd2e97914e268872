package app

import (
	"fmt"

	"staybook/internal/domain"
)

// authorize decides whether subjectID may mutate h. It is a pure decision
// over an already-fetched hotel; rooms never carry their own owner, so room
// mutations authorize against the parent hotel.
func authorize(subjectID string, h domain.Hotel) error {
	if subjectID == "" {
		return domain.ErrUnauthenticated
	}
	if h.OwnerID != subjectID {
		return fmt.Errorf("%w: hotel %d", domain.ErrForbidden, h.ID)
	}
	return nil
}
