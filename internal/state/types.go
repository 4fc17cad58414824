package state

// AppState is the whole persisted aggregate: roster, current teams and
// captains, the next match date, match history and reminder settings. It is
// serialized as a single JSON document and rewritten wholesale on every
// mutation.
type AppState struct {
	Players        []string      `json:"players"`
	Team1          []string      `json:"team1"`
	Team2          []string      `json:"team2"`
	Captain1       *string       `json:"captain1"`
	Captain2       *string       `json:"captain2"`
	MatchDate      *string       `json:"match_date"`
	MatchesHistory []MatchRecord `json:"matches_history"`
	RemindTimes    []string      `json:"remind_times"`
	GroupChatID    *string       `json:"group_chat_id"`
}

// MatchRecord is an immutable snapshot of the teams, captains and date at the
// moment a score was recorded. Records are append-only and can only be
// removed in bulk.
type MatchRecord struct {
	Date     *string  `json:"date"`
	Team1    []string `json:"team1"`
	Team2    []string `json:"team2"`
	Captain1 *string  `json:"captain1"`
	Captain2 *string  `json:"captain2"`
	Score1   int      `json:"score1"`
	Score2   int      `json:"score2"`
}

// DefaultRemindTimes are the reminder trigger times a fresh installation
// starts with.
var DefaultRemindTimes = []string{"10:00", "18:00"}

func defaultState() AppState {
	return AppState{
		Players:        []string{},
		Team1:          []string{},
		Team2:          []string{},
		MatchesHistory: []MatchRecord{},
		RemindTimes:    append([]string{}, DefaultRemindTimes...),
	}
}

// Clone returns a deep copy so callers can never alias the store's internal
// slices.
func (s AppState) Clone() AppState {
	out := s
	out.Players = append([]string{}, s.Players...)
	out.Team1 = append([]string{}, s.Team1...)
	out.Team2 = append([]string{}, s.Team2...)
	out.RemindTimes = append([]string{}, s.RemindTimes...)
	out.Captain1 = cloneString(s.Captain1)
	out.Captain2 = cloneString(s.Captain2)
	out.MatchDate = cloneString(s.MatchDate)
	out.GroupChatID = cloneString(s.GroupChatID)
	out.MatchesHistory = make([]MatchRecord, len(s.MatchesHistory))
	for i, m := range s.MatchesHistory {
		out.MatchesHistory[i] = m.Clone()
	}
	return out
}

// Clone returns a deep copy of the record.
func (m MatchRecord) Clone() MatchRecord {
	out := m
	out.Team1 = append([]string{}, m.Team1...)
	out.Team2 = append([]string{}, m.Team2...)
	out.Captain1 = cloneString(m.Captain1)
	out.Captain2 = cloneString(m.Captain2)
	out.Date = cloneString(m.Date)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
