package gaming

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

func TestNewMatchCreatorJoinsAutomatically(t *testing.T) {
	m, err := NewMatch("Friday CS", GameFPS, "Counter-Strike 2", []shared.UserID{"user_a"}, "user_creator")

	assert.NoError(t, err)
	assert.Equal(t, MatchPending, m.Status)
	assert.True(t, m.HasParticipant("user_a"))
	assert.True(t, m.HasParticipant("user_creator"))
	assert.Len(t, m.Participants, 2)
	assert.NotEmpty(t, m.MatchID)
}

func TestNewMatchCreatorAlreadyListed(t *testing.T) {
	m, err := NewMatch("Duel", GameFighting, "", []shared.UserID{"user_creator"}, "user_creator")

	assert.NoError(t, err)
	assert.Len(t, m.Participants, 1)
}

func TestNewMatchValidation(t *testing.T) {
	_, err := NewMatch("", GameFPS, "", nil, "user_creator")
	assert.True(t, shared.IsValidation(err))

	_, err = NewMatch("Tourney", GameType("chess"), "", nil, "user_creator")
	assert.True(t, shared.IsValidation(err))
}

func TestGameTypeIsValid(t *testing.T) {
	for _, g := range []GameType{GameFPS, GameFighting, GameRacing, GameSports, GameStrategy, GameBattleRoyale} {
		assert.True(t, g.IsValid(), "game type %s", g)
	}
	assert.False(t, GameType("mmo").IsValid())
}

func TestCanManage(t *testing.T) {
	m, _ := NewMatch("Tourney", GameStrategy, "", nil, "user_creator")

	assert.True(t, m.CanManage("user_creator", false))
	assert.False(t, m.CanManage("user_other", false))
	assert.True(t, m.CanManage("user_other", true))
}

func TestMatchStart(t *testing.T) {
	m, _ := NewMatch("Tourney", GameRacing, "", nil, "user_creator")
	now := time.Now().UTC()

	err := m.Start(now)
	assert.NoError(t, err)
	assert.Equal(t, MatchInProgress, m.Status)
	assert.Equal(t, now, *m.StartedAt)

	err = m.Start(now)
	assert.ErrorIs(t, err, shared.ErrMatchNotPending)
}

func TestMatchComplete(t *testing.T) {
	m, _ := NewMatch("Tourney", GameSports, "", nil, "user_creator")
	now := time.Now().UTC()
	winner := shared.UserID("user_winner")

	err := m.Complete(now, &winner)
	assert.NoError(t, err)
	assert.Equal(t, MatchCompleted, m.Status)
	assert.Equal(t, winner, *m.WinnerID)
	assert.Equal(t, now, *m.EndedAt)

	err = m.Complete(now, &winner)
	assert.ErrorIs(t, err, shared.ErrStateTransition)
}

func TestMatchCompleteWithoutScores(t *testing.T) {
	m, _ := NewMatch("Tourney", GameSports, "", nil, "user_creator")

	err := m.Complete(time.Now().UTC(), nil)
	assert.NoError(t, err)
	assert.Nil(t, m.WinnerID)
}

func TestNewScore(t *testing.T) {
	s, err := NewScore("match_1", "user_a", 2500, 3, 1, 2, 1)

	assert.NoError(t, err)
	assert.Equal(t, "match_1", s.MatchID)
	assert.Equal(t, 2500, s.Score)
	// 2500/100 + 3*5 + 100 for first place
	assert.Equal(t, 140, s.XPEarned)
}

func TestNewScoreRejectsOutOfRange(t *testing.T) {
	_, err := NewScore("match_1", "user_a", -1, 0, 0, 0, 0)
	assert.ErrorIs(t, err, shared.ErrInvalidScore)

	_, err = NewScore("match_1", "user_a", 1000000, 0, 0, 0, 0)
	assert.ErrorIs(t, err, shared.ErrInvalidScore)
}

func TestWinner(t *testing.T) {
	scores := []*Score{
		{UserID: "user_a", Score: 100},
		{UserID: "user_b", Score: 300},
		{UserID: "user_c", Score: 200},
	}

	winner := Winner(scores)
	assert.NotNil(t, winner)
	assert.Equal(t, shared.UserID("user_b"), *winner)
}

func TestWinnerTieKeepsEarlierSubmission(t *testing.T) {
	scores := []*Score{
		{UserID: "user_first", Score: 500},
		{UserID: "user_later", Score: 500},
	}

	winner := Winner(scores)
	assert.Equal(t, shared.UserID("user_first"), *winner)
}

func TestWinnerEmpty(t *testing.T) {
	assert.Nil(t, Winner(nil))
	assert.Nil(t, Winner([]*Score{}))
}
