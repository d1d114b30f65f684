package game

import (
	"math/rand"

	"github.com/hectorjsiilva/impostor-game/internal/domain"
)

// AssignRoles partitions n players into exactly k impostors, uniformly at
// random and independent of player order. It takes the first k indices of an
// unbiased permutation (Fisher–Yates via rand.Perm). Pure: no side effects
// beyond the returned slice.
func AssignRoles(n, k int, rng *rand.Rand) []domain.Role {
	roles := make([]domain.Role, n)
	for i := range roles {
		roles[i] = domain.RoleInnocent
	}
	for _, idx := range rng.Perm(n)[:k] {
		roles[idx] = domain.RoleImpostor
	}
	return roles
}

// PickWord chooses the innocents' shared clue uniformly from the word list.
func PickWord(rng *rand.Rand) string {
	return wordList[rng.Intn(len(wordList))]
}
