package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/davronov/matchday/internal/matchdate"
	"github.com/davronov/matchday/internal/reminder"
	"github.com/davronov/matchday/internal/state"
	"github.com/davronov/matchday/internal/teams"
)

const dateInputLayout = "2006-01-02 15:04"

func (r *Router) login(req Request) Response {
	args := strings.Fields(req.Args)
	if len(args) != 2 {
		return Response{Text: msgLoginUsage}
	}
	if args[0] != r.creds.Username || args[1] != r.creds.Password {
		return Response{Text: msgLoginRejected}
	}

	r.mu.Lock()
	replaced := r.adminID != "" && r.adminID != req.UserID
	r.adminID = req.UserID
	r.mu.Unlock()
	if replaced {
		log.Info("Administrator session replaced", "user", req.UserID)
	}

	// A group conversation always becomes the announcement target; a direct
	// message does only when no target is known yet.
	snap := r.store.Snapshot()
	if req.Multiuser || snap.GroupChatID == nil {
		conv := req.ConversationID
		r.store.SetGroupChatID(&conv)
		snap.GroupChatID = &conv
	}

	if err := r.sched.Arm(snap.RemindTimes); err != nil {
		log.Error("Failed to arm reminder triggers on login", "error", err)
	}

	return Response{Text: fmt.Sprintf(msgLoginOK, *snap.GroupChatID)}
}

func (r *Router) logout() Response {
	r.mu.Lock()
	r.adminID = ""
	r.mu.Unlock()

	r.store.SetGroupChatID(nil)
	r.sched.Disarm()
	return Response{Text: msgLogout}
}

func (r *Router) addPlayer(req Request) Response {
	name := strings.TrimSpace(req.Args)
	if name == "" {
		return Response{Text: msgAddPlayerUsage}
	}
	if !r.store.AddPlayer(name) {
		return Response{Text: fmt.Sprintf(msgPlayerDuplicate, name, len(r.store.Snapshot().Players))}
	}

	total := len(r.store.Snapshot().Players)
	log.Info("Player added", "name", name, "total", total)
	return Response{Text: fmt.Sprintf(msgPlayerAdded, name, total)}
}

func (r *Router) addPlayers(req Request) Response {
	var names []string
	for _, part := range strings.Split(req.Args, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return Response{Text: msgAddPlayersUsage}
	}

	added, duplicates := r.store.AddPlayers(names)
	total := len(r.store.Snapshot().Players)
	return Response{Text: formatAddPlayers(added, duplicates, total)}
}

func (r *Router) removePlayer(req Request) Response {
	name := strings.TrimSpace(req.Args)
	if name == "" {
		return Response{Text: msgRemovePlayerUsage}
	}
	if !r.store.RemovePlayer(name) {
		return Response{Text: fmt.Sprintf(msgPlayerNotFound, name)}
	}

	left := len(r.store.Snapshot().Players)
	log.Info("Player removed", "name", name, "left", left)
	return Response{Text: fmt.Sprintf(msgPlayerRemoved, name, left)}
}

func (r *Router) listPlayers() Response {
	players := r.store.Snapshot().Players
	if len(players) == 0 {
		return Response{Text: msgNoPlayers}
	}
	return Response{Text: formatPlayerList(players)}
}

func (r *Router) clearPlayers() Response {
	r.store.ClearPlayers()
	return Response{Text: msgPlayersCleared}
}

func (r *Router) split() Response {
	snap := r.store.Snapshot()

	r.mu.Lock()
	split, err := teams.SplitPlayers(snap.Players, r.rng)
	r.mu.Unlock()
	if err != nil {
		return Response{Text: msgNotEnoughPlayers}
	}

	r.store.SetTeams(split.Team1, split.Team2, &split.Captain1, &split.Captain2)
	return Response{Text: formatSplit(split), InChannel: true}
}

func (r *Router) setCaptain(req Request) Response {
	args := strings.Fields(req.Args)
	if len(args) < 2 {
		return Response{Text: msgSetCaptainUsage}
	}

	team, err := strconv.Atoi(args[0])
	if err != nil {
		return Response{Text: msgBadTeamNumber}
	}
	name := strings.TrimSpace(strings.Join(args[1:], " "))

	switch err := r.store.SetCaptain(team, name); err {
	case nil:
	case state.ErrUnknownTeam:
		return Response{Text: msgBadTeamNumber}
	case state.ErrNotOnTeam:
		return Response{Text: fmt.Sprintf(msgNotOnTeam, team)}
	default:
		return Response{Text: msgSetCaptainUsage}
	}

	snap := r.store.Snapshot()
	return Response{Text: fmt.Sprintf(msgCaptainsUpdated, captainName(snap.Captain1), captainName(snap.Captain2))}
}

func (r *Router) setDate(req Request) Response {
	args := strings.Fields(req.Args)
	if len(args) != 2 {
		return Response{Text: msgSetDateUsage}
	}

	parsed, err := time.ParseInLocation(dateInputLayout, args[0]+" "+args[1], matchdate.Location())
	if err != nil {
		return Response{Text: msgBadDate}
	}

	iso := parsed.Format(matchdate.ISOLayout)
	r.store.SetMatchDate(iso)

	snap := r.store.Snapshot()
	if snap.GroupChatID != nil {
		if err := r.sched.Arm(snap.RemindTimes); err != nil {
			log.Error("Failed to re-arm reminder triggers after date change", "error", err)
		}
	}

	resp := Response{Text: fmt.Sprintf(msgDateSet, matchdate.Format(parsed))}
	if len(snap.Players) >= 2 {
		resp.Text += "\n\n" + msgOfferSplit
		resp.OfferSplit = true
		resp.SplitLabel = "⚽ Распределить команды"
		if len(snap.Team1) > 0 {
			resp.SplitLabel = "🔄 Перераспределить команды"
		}
	} else {
		resp.Text += "\n\n" + msgNeedPlayersHint
	}
	return resp
}

func (r *Router) announce() Response {
	snap := r.store.Snapshot()
	if snap.MatchDate == nil {
		return Response{Text: msgAnnounceNoDate}
	}
	if len(snap.Team1) == 0 || len(snap.Team2) == 0 {
		return Response{Text: msgAnnounceNoTeams}
	}
	return Response{Text: formatAnnounce(snap), InChannel: true}
}

func (r *Router) score(req Request) Response {
	input := strings.TrimSpace(req.Args)
	if input == "" {
		return Response{Text: msgScoreUsage}
	}

	score1, score2, ok := parseScore(input)
	if !ok {
		return Response{Text: msgBadScore}
	}

	snap := r.store.Snapshot()
	r.store.AppendMatch(state.MatchRecord{
		Date:     snap.MatchDate,
		Team1:    snap.Team1,
		Team2:    snap.Team2,
		Captain1: snap.Captain1,
		Captain2: snap.Captain2,
		Score1:   score1,
		Score2:   score2,
	})

	verdict := msgDraw
	if score1 > score2 {
		verdict = msgTeam1Wins
	} else if score2 > score1 {
		verdict = msgTeam2Wins
	}
	return Response{Text: fmt.Sprintf(msgScoreRecorded, score1, score2, verdict)}
}

// parseScore accepts "X-Y" with two non-negative integers.
func parseScore(input string) (int, int, bool) {
	parts := strings.Split(input, "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	score1, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	score2, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || score1 < 0 || score2 < 0 {
		return 0, 0, false
	}
	return score1, score2, true
}

func (r *Router) history() Response {
	matches := r.store.Snapshot().MatchesHistory
	if len(matches) == 0 {
		return Response{Text: msgNoHistory}
	}
	return Response{Text: formatHistory(matches)}
}

func (r *Router) matchDetails(req Request) Response {
	num, err := strconv.Atoi(strings.TrimSpace(req.Args))
	if err != nil {
		return Response{Text: msgMatchUsage}
	}

	matches := r.store.Snapshot().MatchesHistory
	if num < 1 || num > len(matches) {
		return Response{Text: msgMatchNotFound}
	}
	return Response{Text: formatMatchDetails(num, matches[num-1])}
}

func (r *Router) clearMatches() Response {
	r.store.ClearMatches()
	return Response{Text: msgMatchesCleared}
}

func (r *Router) setRemindTimes(req Request) Response {
	input := strings.TrimSpace(req.Args)
	if input == "" {
		current := strings.Join(r.store.Snapshot().RemindTimes, ", ")
		return Response{Text: fmt.Sprintf(msgRemindTimesUsage, current)}
	}

	var times []string
	for _, part := range strings.Split(input, ",") {
		if tok := strings.TrimSpace(part); tok != "" {
			times = append(times, tok)
		}
	}

	// One malformed token aborts the whole batch, leaving prior times
	// unchanged.
	for _, tok := range times {
		if _, _, err := reminder.ParseTimeOfDay(tok); err != nil {
			return Response{Text: fmt.Sprintf(msgBadRemindTime, tok)}
		}
	}

	r.store.SetRemindTimes(times)

	snap := r.store.Snapshot()
	if snap.GroupChatID != nil {
		if err := r.sched.Arm(times); err != nil {
			log.Error("Failed to re-arm reminder triggers", "error", err)
		}
	}

	chatID := "—"
	if snap.GroupChatID != nil {
		chatID = *snap.GroupChatID
	}
	return Response{Text: fmt.Sprintf(msgRemindTimesSet, strings.Join(times, ", "), chatID)}
}
