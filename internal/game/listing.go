package game

import (
	"context"

	"github.com/hectorjsiilva/impostor-game/internal/domain"
)

// Listing mirrors public-room rows and round-result facts into the
// persistence collaborator. Every call is fire-and-forget: the engine
// invokes them best effort and never depends on them for correctness.
type Listing interface {
	RoomCreated(ctx context.Context, room domain.Room) error
	UpdatePlayerCount(ctx context.Context, id domain.RoomID, count int) error
	UpdateStatus(ctx context.Context, id domain.RoomID, status string) error
	RoomDeleted(ctx context.Context, id domain.RoomID) error

	// SaveHistory records one player's round outcome. The engine itself does
	// not resolve win/loss; the hook exists for the collaborator that does.
	SaveHistory(ctx context.Context, userID string, roomID domain.RoomID, role domain.Role, won bool) error
}

// NopListing is used when no database is configured and in tests.
type NopListing struct{}

func (NopListing) RoomCreated(context.Context, domain.Room) error                { return nil }
func (NopListing) UpdatePlayerCount(context.Context, domain.RoomID, int) error   { return nil }
func (NopListing) UpdateStatus(context.Context, domain.RoomID, string) error     { return nil }
func (NopListing) RoomDeleted(context.Context, domain.RoomID) error              { return nil }
func (NopListing) SaveHistory(context.Context, string, domain.RoomID, domain.Role, bool) error {
	return nil
}
