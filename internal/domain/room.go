package domain

type RoomID string

// Short returns the display form of the identifier. The full id stays the
// lookup key; the prefix is only what players see on invite links.
func (id RoomID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

// Phase is a room's top-level lifecycle state.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseInProgress
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseInProgress:
		return "playing"
	}
	return "unknown"
}

// Room holds one game's static configuration. Runtime state (players, turn,
// chat) lives in the engine; entities here carry no logic.
type Room struct {
	ID           RoomID
	Name         string
	CreatorID    string
	TotalPlayers int
	Impostors    int
	Private      bool
	JoinCode     string
}
