package game

import "github.com/hectorjsiilva/impostor-game/internal/domain"

// Broadcaster abstracts the transport fan-out. Delivery is fire-and-forget,
// at-most-once per connected recipient; implementations must never block the
// engine. Owned by the adapter; the adapter closes its connections.
type Broadcaster interface {
	// ToRoom delivers to every connection subscribed to the room.
	ToRoom(roomID domain.RoomID, event string, payload any)
	// ToPlayer delivers to one connection.
	ToPlayer(playerID string, event string, payload any)
	// ToAll delivers process-wide. Used only for public-list changes.
	ToAll(event string, payload any)

	// Subscribe and Unsubscribe manage a connection's room group membership.
	Subscribe(roomID domain.RoomID, playerID string)
	Unsubscribe(roomID domain.RoomID, playerID string)
}
