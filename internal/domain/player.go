// Package domain contains entities without logic, just meta-data.
package domain

import "errors"

const MaxPlayerNameLen = 36

var (
	ErrNameEmpty   = errors.New("player name empty")
	ErrNameTooLong = errors.New("player name too long")
)

// Role is a player's secret allegiance for one round.
type Role int

const (
	RoleUnassigned Role = iota
	RoleImpostor
	RoleInnocent
)

func (r Role) String() string {
	switch r {
	case RoleImpostor:
		return "impostor"
	case RoleInnocent:
		return "innocent"
	}
	return "unassigned"
}

// Player ties a live connection id to a display name inside one room.
// A player never outlives its room.
type Player struct {
	ID     string // transport connection identifier
	Name   string
	Avatar string

	Role Role
	Word string // secret word, innocents only

	PeerID string // voice-peer identifier, empty until registered
	Muted  bool
}

// NewPlayer avoids raw literals in adapters and keeps construction obvious.
func NewPlayer(id, name, avatar string) (*Player, error) {
	if len(name) == 0 {
		return nil, ErrNameEmpty
	}
	if len(name) > MaxPlayerNameLen {
		return nil, ErrNameTooLong
	}
	return &Player{ID: id, Name: name, Avatar: avatar}, nil
}
