package state

import "errors"

var (
	// ErrUnknownTeam is returned for a team number other than 1 or 2.
	ErrUnknownTeam = errors.New("unknown team number")
	// ErrNotOnTeam is returned when a captain candidate is not a member of
	// the named team.
	ErrNotOnTeam = errors.New("player is not on that team")
)

// Store defines the interface for reading and mutating the persistent
// application state. Every mutation persists the whole aggregate
// synchronously before returning.
type Store interface {
	Snapshot() AppState

	AddPlayer(name string) bool
	AddPlayers(names []string) (added, duplicates []string)
	RemovePlayer(name string) bool
	ClearPlayers()

	SetTeams(team1, team2 []string, captain1, captain2 *string)
	SetCaptain(team int, name string) error

	SetMatchDate(iso string)
	AppendMatch(rec MatchRecord)
	ClearMatches()

	SetRemindTimes(times []string)
	SetGroupChatID(id *string)
}
