package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayer(t *testing.T) {
	p, err := NewPlayer("conn-1", "Ana", "gato")
	require.NoError(t, err)
	assert.Equal(t, "conn-1", p.ID)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "gato", p.Avatar)
	assert.Equal(t, RoleUnassigned, p.Role)
	assert.Empty(t, p.Word)
}

func TestNewPlayerRejectsBadNames(t *testing.T) {
	_, err := NewPlayer("conn-1", "", "")
	assert.ErrorIs(t, err, ErrNameEmpty)

	_, err = NewPlayer("conn-1", strings.Repeat("x", MaxPlayerNameLen+1), "")
	assert.ErrorIs(t, err, ErrNameTooLong)

	_, err = NewPlayer("conn-1", strings.Repeat("x", MaxPlayerNameLen), "")
	assert.NoError(t, err)
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "impostor", RoleImpostor.String())
	assert.Equal(t, "innocent", RoleInnocent.String())
	assert.Equal(t, "unassigned", RoleUnassigned.String())
}

func TestRoomIDShort(t *testing.T) {
	assert.Equal(t, "12345678", RoomID("1234567890abcdef").Short())
	assert.Equal(t, "abc", RoomID("abc").Short())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "waiting", PhaseWaiting.String())
	assert.Equal(t, "playing", PhaseInProgress.String())
}
