package state

import (
	"slices"
	"sync"
)

// Mock is an in-memory implementation of the Store interface for testing.
// It applies the same invariants as the real store but never touches a
// database, and records which mutations were called.
type Mock struct {
	mu sync.Mutex
	st AppState

	AddPlayerCalls      []string
	RemovePlayerCalls   []string
	SetTeamsCalls       int
	AppendMatchCalls    []MatchRecord
	SetRemindTimesCalls [][]string
	SetGroupChatIDCalls []*string
}

// NewMock creates a new mock instance with a default-initialized state.
func NewMock() *Mock {
	return &Mock{st: defaultState()}
}

// Seed replaces the mock's state wholesale. Useful for arranging a scenario.
func (m *Mock) Seed(st AppState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st = st.Clone()
}

func (m *Mock) Snapshot() AppState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.Clone()
}

func (m *Mock) AddPlayer(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, name)
	if slices.Contains(m.st.Players, name) {
		return false
	}
	m.st.Players = append(m.st.Players, name)
	return true
}

func (m *Mock) AddPlayers(names []string) (added, duplicates []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, name := range names {
		if slices.Contains(m.st.Players, name) {
			duplicates = append(duplicates, name)
			continue
		}
		m.st.Players = append(m.st.Players, name)
		added = append(added, name)
	}
	return added, duplicates
}

func (m *Mock) RemovePlayer(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemovePlayerCalls = append(m.RemovePlayerCalls, name)
	idx := slices.Index(m.st.Players, name)
	if idx < 0 {
		return false
	}
	m.st.Players = slices.Delete(m.st.Players, idx, idx+1)
	if i := slices.Index(m.st.Team1, name); i >= 0 {
		m.st.Team1 = slices.Delete(m.st.Team1, i, i+1)
	}
	if i := slices.Index(m.st.Team2, name); i >= 0 {
		m.st.Team2 = slices.Delete(m.st.Team2, i, i+1)
	}
	if m.st.Captain1 != nil && *m.st.Captain1 == name {
		m.st.Captain1 = nil
	}
	if m.st.Captain2 != nil && *m.st.Captain2 == name {
		m.st.Captain2 = nil
	}
	return true
}

func (m *Mock) ClearPlayers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.Players = []string{}
	m.st.Team1 = []string{}
	m.st.Team2 = []string{}
	m.st.Captain1 = nil
	m.st.Captain2 = nil
}

func (m *Mock) SetTeams(team1, team2 []string, captain1, captain2 *string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetTeamsCalls++
	m.st.Team1 = append([]string{}, team1...)
	m.st.Team2 = append([]string{}, team2...)
	m.st.Captain1 = cloneString(captain1)
	m.st.Captain2 = cloneString(captain2)
}

func (m *Mock) SetCaptain(team int, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch team {
	case 1:
		if !slices.Contains(m.st.Team1, name) {
			return ErrNotOnTeam
		}
		m.st.Captain1 = &name
	case 2:
		if !slices.Contains(m.st.Team2, name) {
			return ErrNotOnTeam
		}
		m.st.Captain2 = &name
	default:
		return ErrUnknownTeam
	}
	return nil
}

func (m *Mock) SetMatchDate(iso string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.MatchDate = &iso
}

func (m *Mock) AppendMatch(rec MatchRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendMatchCalls = append(m.AppendMatchCalls, rec.Clone())
	m.st.MatchesHistory = append(m.st.MatchesHistory, rec.Clone())
}

func (m *Mock) ClearMatches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.MatchesHistory = []MatchRecord{}
}

func (m *Mock) SetRemindTimes(times []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetRemindTimesCalls = append(m.SetRemindTimesCalls, append([]string{}, times...))
	m.st.RemindTimes = append([]string{}, times...)
}

func (m *Mock) SetGroupChatID(id *string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetGroupChatIDCalls = append(m.SetGroupChatIDCalls, cloneString(id))
	m.st.GroupChatID = cloneString(id)
}
