package state

import (
	"database/sql"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// store handles all database operations for the application state.
type store struct {
	db *sql.DB
	mu sync.RWMutex
	st AppState
}

// New creates a new Store backed by the given database. The last persisted
// document is loaded eagerly; an unreadable or corrupt document is logged and
// replaced with a default-initialized state, never treated as fatal.
func New(db *sql.DB) Store {
	s := &store{db: db}
	s.st = s.load()
	return s
}

func (s *store) load() AppState {
	var doc string
	err := s.db.QueryRow("SELECT doc FROM app_state WHERE id = 1").Scan(&doc)
	if err == sql.ErrNoRows {
		log.Info("No persisted state found, starting fresh")
		return defaultState()
	}
	if err != nil {
		log.Error("Failed to load state document, starting fresh", "error", err)
		return defaultState()
	}

	var st AppState
	if err := json.Unmarshal([]byte(doc), &st); err != nil {
		log.Error("Failed to parse state document, starting fresh", "error", err)
		return defaultState()
	}
	// Backfill fields older documents may lack.
	if st.Players == nil {
		st.Players = []string{}
	}
	if st.Team1 == nil {
		st.Team1 = []string{}
	}
	if st.Team2 == nil {
		st.Team2 = []string{}
	}
	if st.MatchesHistory == nil {
		st.MatchesHistory = []MatchRecord{}
	}
	if len(st.RemindTimes) == 0 {
		st.RemindTimes = append([]string{}, DefaultRemindTimes...)
	}
	return st
}

// persist rewrites the whole document. A write failure is logged and
// swallowed: the in-memory state stays authoritative until the next
// successful save or a restart.
func (s *store) persist() {
	doc, err := json.Marshal(s.st)
	if err != nil {
		log.Error("Failed to marshal state document", "error", err)
		return
	}
	_, err = s.db.Exec(`
		INSERT INTO app_state (id, doc, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			doc = excluded.doc,
			updated_at = excluded.updated_at;
	`, string(doc), time.Now().Unix())
	if err != nil {
		log.Error("Failed to persist state document", "error", err)
		return
	}
	log.Debug("State persisted")
}

func (s *store) Snapshot() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.Clone()
}

// AddPlayer appends a player to the roster. Returns false if the name is
// already present.
func (s *store) AddPlayer(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.st.Players, name) {
		return false
	}
	s.st.Players = append(s.st.Players, name)
	s.persist()
	return true
}

// AddPlayers adds a batch of players, preserving input order. Names already
// on the roster are reported as duplicates; a name repeated within the batch
// is added once and subsequent occurrences are reported as duplicates too.
func (s *store) AddPlayers(names []string) (added, duplicates []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range names {
		if slices.Contains(s.st.Players, name) {
			duplicates = append(duplicates, name)
			continue
		}
		s.st.Players = append(s.st.Players, name)
		added = append(added, name)
	}
	if len(added) > 0 {
		s.persist()
	}
	return added, duplicates
}

// RemovePlayer removes a player from the roster, from whichever team holds
// them, and clears their captaincy if applicable. Returns false if the
// player is unknown.
func (s *store) RemovePlayer(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.Index(s.st.Players, name)
	if idx < 0 {
		return false
	}
	s.st.Players = slices.Delete(s.st.Players, idx, idx+1)
	if i := slices.Index(s.st.Team1, name); i >= 0 {
		s.st.Team1 = slices.Delete(s.st.Team1, i, i+1)
	}
	if i := slices.Index(s.st.Team2, name); i >= 0 {
		s.st.Team2 = slices.Delete(s.st.Team2, i, i+1)
	}
	if s.st.Captain1 != nil && *s.st.Captain1 == name {
		s.st.Captain1 = nil
	}
	if s.st.Captain2 != nil && *s.st.Captain2 == name {
		s.st.Captain2 = nil
	}
	s.persist()
	return true
}

// ClearPlayers empties the roster along with both teams and captains.
func (s *store) ClearPlayers() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.Players = []string{}
	s.st.Team1 = []string{}
	s.st.Team2 = []string{}
	s.st.Captain1 = nil
	s.st.Captain2 = nil
	s.persist()
}

// SetTeams overwrites both teams and captains in one step, as produced by a
// split.
func (s *store) SetTeams(team1, team2 []string, captain1, captain2 *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.Team1 = append([]string{}, team1...)
	s.st.Team2 = append([]string{}, team2...)
	s.st.Captain1 = cloneString(captain1)
	s.st.Captain2 = cloneString(captain2)
	s.persist()
}

// SetCaptain assigns the captain of team 1 or 2. The name must be a member
// of that team.
func (s *store) SetCaptain(team int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch team {
	case 1:
		if !slices.Contains(s.st.Team1, name) {
			return ErrNotOnTeam
		}
		s.st.Captain1 = &name
	case 2:
		if !slices.Contains(s.st.Team2, name) {
			return ErrNotOnTeam
		}
		s.st.Captain2 = &name
	default:
		return ErrUnknownTeam
	}
	s.persist()
	return nil
}

// SetMatchDate stores the next match date as a naive ISO-8601 string.
// Validation happens at the command boundary.
func (s *store) SetMatchDate(iso string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.MatchDate = &iso
	s.persist()
}

// AppendMatch appends an immutable record to the match history.
func (s *store) AppendMatch(rec MatchRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.MatchesHistory = append(s.st.MatchesHistory, rec.Clone())
	s.persist()
}

// ClearMatches drops the whole match history.
func (s *store) ClearMatches() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.MatchesHistory = []MatchRecord{}
	s.persist()
}

// SetRemindTimes replaces the reminder trigger times. Tokens are validated
// at the command boundary.
func (s *store) SetRemindTimes(times []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.RemindTimes = append([]string{}, times...)
	s.persist()
}

// SetGroupChatID records (or clears, with nil) the conversation that
// receives announcements and reminders.
func (s *store) SetGroupChatID(id *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.GroupChatID = cloneString(id)
	s.persist()
}
