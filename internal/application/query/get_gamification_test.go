package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

type statsMemberRepo struct {
	users map[shared.UserID]*member.User
}

func (r *statsMemberRepo) Create(ctx context.Context, user *member.User) error { return nil }

func (r *statsMemberRepo) FindByID(ctx context.Context, id shared.UserID) (*member.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrMemberNotFound
	}
	return u, nil
}

func (r *statsMemberRepo) FindByEmail(ctx context.Context, email string) (*member.User, error) {
	return nil, shared.ErrMemberNotFound
}

func (r *statsMemberRepo) FindByIDs(ctx context.Context, ids []shared.UserID) (map[shared.UserID]*member.User, error) {
	return nil, nil
}

func (r *statsMemberRepo) UpdateProgress(ctx context.Context, user *member.User) error { return nil }
func (r *statsMemberRepo) UpdateProfile(ctx context.Context, user *member.User) error  { return nil }

func (r *statsMemberRepo) List(ctx context.Context, p shared.Pagination) ([]*member.User, error) {
	return nil, nil
}

func (r *statsMemberRepo) Count(ctx context.Context) (int, error) { return len(r.users), nil }

type statsLedger struct {
	events []*gamification.XPEvent
	totals []gamification.CategoryTotal

	listCalls int
}

func (l *statsLedger) Append(ctx context.Context, event *gamification.XPEvent) error { return nil }

func (l *statsLedger) ListByUser(ctx context.Context, userID shared.UserID, p shared.Pagination) ([]*gamification.XPEvent, error) {
	l.listCalls++
	var out []*gamification.XPEvent
	for _, e := range l.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (l *statsLedger) TotalsByCategory(ctx context.Context, userID shared.UserID) ([]gamification.CategoryTotal, error) {
	return l.totals, nil
}

func (l *statsLedger) FindByID(ctx context.Context, eventID string) (*gamification.XPEvent, error) {
	return nil, shared.NewDomainError("gamification", "FindByID", shared.ErrNotFound, "xp event not found")
}

func (l *statsLedger) UpdateFlag(ctx context.Context, event *gamification.XPEvent) error { return nil }

func TestGetStatsReturnsProgressAndCategoryTotals(t *testing.T) {
	user, err := member.NewUser("stats@example.com", "Stats", "")
	require.NoError(t, err)
	user.Level = 3
	user.XP = 500
	user.StreakDays = 4

	event, err := gamification.NewXPEvent(user.ID, 45, gamification.CategoryAttendance, "Studio session (45 mins)", user.Level)
	require.NoError(t, err)

	ledger := &statsLedger{
		events: []*gamification.XPEvent{event},
		totals: []gamification.CategoryTotal{
			{Category: gamification.CategoryAttendance, Total: 320, Events: 8},
			{Category: gamification.CategoryBadge, Total: 100, Events: 1},
		},
	}

	q := NewGamificationQuery(&statsMemberRepo{users: map[shared.UserID]*member.User{user.ID: user}}, ledger, nil)

	stats, err := q.GetStats(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Level)
	assert.Equal(t, 500, stats.XP)
	assert.Equal(t, 3000, stats.XPForNextLevel)
	assert.InDelta(t, 100.0/6, stats.ProgressPercent, 0.01)
	assert.Equal(t, 4, stats.StreakDays)
	require.Len(t, stats.RecentEvents, 1)
	assert.Equal(t, event.ID, stats.RecentEvents[0].ID)

	require.Len(t, stats.CategoryTotals, 2)
	assert.Equal(t, gamification.CategoryAttendance, stats.CategoryTotals[0].Category)
	assert.Equal(t, 320, stats.CategoryTotals[0].Total)
	assert.Equal(t, 8, stats.CategoryTotals[0].Events)
	assert.Equal(t, gamification.CategoryBadge, stats.CategoryTotals[1].Category)
	assert.Equal(t, 1, ledger.listCalls)
}

func TestGetStatsUnknownMember(t *testing.T) {
	q := NewGamificationQuery(&statsMemberRepo{users: map[shared.UserID]*member.User{}}, &statsLedger{}, nil)

	_, err := q.GetStats(context.Background(), "user_missing")
	assert.ErrorIs(t, err, shared.ErrMemberNotFound)
}
