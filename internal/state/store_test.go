package state_test

import (
	"database/sql"
	"testing"

	"github.com/davronov/matchday/internal/database"
	"github.com/davronov/matchday/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (state.Store, *sql.DB, func()) {
	t.Helper()

	db, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	store := state.New(db)
	teardown := func() {
		db.Close()
	}

	return store, db, teardown
}

func strPtr(s string) *string { return &s }

func TestDefaults(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	snap := store.Snapshot()
	assert.Empty(t, snap.Players)
	assert.Empty(t, snap.Team1)
	assert.Empty(t, snap.Team2)
	assert.Nil(t, snap.Captain1)
	assert.Nil(t, snap.MatchDate)
	assert.Nil(t, snap.GroupChatID)
	assert.Equal(t, []string{"10:00", "18:00"}, snap.RemindTimes)
}

func TestAddPlayer(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	assert.True(t, store.AddPlayer("Саша"))
	assert.False(t, store.AddPlayer("Саша"), "duplicate insert must be rejected")
	assert.True(t, store.AddPlayer("Вова"))

	snap := store.Snapshot()
	assert.Equal(t, []string{"Саша", "Вова"}, snap.Players)
}

func TestAddPlayersBatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	store.AddPlayer("Вова")

	added, duplicates := store.AddPlayers([]string{"Саша", "Вова", "Дима"})
	assert.Equal(t, []string{"Саша", "Дима"}, added)
	assert.Equal(t, []string{"Вова"}, duplicates)

	t.Run("name repeated within one batch is added once", func(t *testing.T) {
		added, duplicates := store.AddPlayers([]string{"Лёша", "Лёша"})
		assert.Equal(t, []string{"Лёша"}, added)
		assert.Equal(t, []string{"Лёша"}, duplicates)

		count := 0
		for _, p := range store.Snapshot().Players {
			if p == "Лёша" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestRemovePlayerCascades(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	store.AddPlayers([]string{"Саша", "Вова", "Дима", "Лёша"})
	store.SetTeams([]string{"Саша", "Вова"}, []string{"Дима", "Лёша"}, strPtr("Саша"), strPtr("Дима"))

	assert.True(t, store.RemovePlayer("Саша"))
	snap := store.Snapshot()
	assert.NotContains(t, snap.Players, "Саша")
	assert.NotContains(t, snap.Team1, "Саша")
	assert.Nil(t, snap.Captain1, "captaincy must be cleared with the player")
	assert.Equal(t, strPtr("Дима"), snap.Captain2, "the other captain is untouched")

	assert.False(t, store.RemovePlayer("Никита"), "unknown player")
}

func TestSetCaptain(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	store.SetTeams([]string{"Саша"}, []string{"Вова"}, nil, nil)

	require.NoError(t, store.SetCaptain(1, "Саша"))
	assert.ErrorIs(t, store.SetCaptain(1, "Вова"), state.ErrNotOnTeam)
	assert.ErrorIs(t, store.SetCaptain(3, "Саша"), state.ErrUnknownTeam)

	snap := store.Snapshot()
	assert.Equal(t, strPtr("Саша"), snap.Captain1)
	assert.Nil(t, snap.Captain2)
}

func TestClearPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	store.AddPlayers([]string{"Саша", "Вова"})
	store.SetTeams([]string{"Саша"}, []string{"Вова"}, strPtr("Саша"), strPtr("Вова"))
	store.ClearPlayers()

	snap := store.Snapshot()
	assert.Empty(t, snap.Players)
	assert.Empty(t, snap.Team1)
	assert.Empty(t, snap.Team2)
	assert.Nil(t, snap.Captain1)
	assert.Nil(t, snap.Captain2)
}

func TestMatchHistory(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	rec := state.MatchRecord{
		Date:     strPtr("2025-10-20T18:30:00"),
		Team1:    []string{"Саша"},
		Team2:    []string{"Вова"},
		Captain1: strPtr("Саша"),
		Captain2: strPtr("Вова"),
		Score1:   3,
		Score2:   2,
	}
	store.AppendMatch(rec)

	// Mutating the original record must not leak into the stored snapshot.
	rec.Team1[0] = "Дима"
	rec.Score1 = 99

	snap := store.Snapshot()
	require.Len(t, snap.MatchesHistory, 1)
	assert.Equal(t, []string{"Саша"}, snap.MatchesHistory[0].Team1)
	assert.Equal(t, 3, snap.MatchesHistory[0].Score1)

	store.ClearMatches()
	assert.Empty(t, store.Snapshot().MatchesHistory)
}

func TestPersistenceRoundTrip(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	store.AddPlayers([]string{"Саша", "Вова"})
	store.SetMatchDate("2025-10-20T18:30:00")
	store.SetRemindTimes([]string{"09:30", "21:00"})
	store.SetGroupChatID(strPtr("C0123456789"))

	// A second store over the same database must see the saved document.
	reloaded := state.New(db)
	snap := reloaded.Snapshot()
	assert.Equal(t, []string{"Саша", "Вова"}, snap.Players)
	assert.Equal(t, strPtr("2025-10-20T18:30:00"), snap.MatchDate)
	assert.Equal(t, []string{"09:30", "21:00"}, snap.RemindTimes)
	assert.Equal(t, strPtr("C0123456789"), snap.GroupChatID)
}

func TestCorruptDocumentStartsFresh(t *testing.T) {
	_, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := db.Exec(`INSERT INTO app_state (id, doc, updated_at) VALUES (1, 'not json', 0)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`)
	require.NoError(t, err)

	store := state.New(db)
	snap := store.Snapshot()
	assert.Empty(t, snap.Players)
	assert.Equal(t, []string{"10:00", "18:00"}, snap.RemindTimes)
}

func TestSnapshotIsACopy(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	store.AddPlayer("Саша")
	snap := store.Snapshot()
	snap.Players[0] = "Вова"

	assert.Equal(t, []string{"Саша"}, store.Snapshot().Players)
}
