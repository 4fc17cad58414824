// Package teams implements the random roster split into two equally sized
// teams with a randomly chosen captain each.
package teams

import (
	"errors"
	"math/rand"
)

// ErrNotEnoughPlayers is returned when the roster holds fewer than two names.
var ErrNotEnoughPlayers = errors.New("at least two players are required to split")

// Split is the outcome of one random team assignment.
type Split struct {
	Team1    []string
	Team2    []string
	Captain1 string
	Captain2 string
	// Substitute is set when the roster size is odd: the last shuffled
	// player sits out of both teams.
	Substitute string
}

// SplitPlayers partitions players into two teams of floor(n/2) each via a
// uniformly random permutation, and picks one random captain per team. For
// an odd roster exactly one player ends up on neither team. The input slice
// is not modified.
func SplitPlayers(players []string, rng *rand.Rand) (Split, error) {
	if len(players) < 2 {
		return Split{}, ErrNotEnoughPlayers
	}

	shuffled := append([]string{}, players...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	mid := len(shuffled) / 2
	out := Split{
		Team1: shuffled[:mid:mid],
		Team2: shuffled[mid : 2*mid : 2*mid],
	}
	if len(shuffled)%2 == 1 {
		out.Substitute = shuffled[len(shuffled)-1]
	}
	out.Captain1 = out.Team1[rng.Intn(len(out.Team1))]
	out.Captain2 = out.Team2[rng.Intn(len(out.Team2))]
	return out, nil
}
