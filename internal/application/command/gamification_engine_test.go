package command

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// IN-MEMORY FAKES
// ══════════════════════════════════════════════════════════════════════════════

type memberRepoStub struct {
	users map[shared.UserID]*member.User

	// conflicts makes the next N UpdateProgress calls fail with an
	// optimistic lock error.
	conflicts int
}

func newMemberRepoStub(users ...*member.User) *memberRepoStub {
	repo := &memberRepoStub{users: make(map[shared.UserID]*member.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *memberRepoStub) Create(ctx context.Context, user *member.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memberRepoStub) FindByID(ctx context.Context, id shared.UserID) (*member.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrMemberNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memberRepoStub) FindByEmail(ctx context.Context, email string) (*member.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, shared.ErrMemberNotFound
}

func (r *memberRepoStub) FindByIDs(ctx context.Context, ids []shared.UserID) (map[shared.UserID]*member.User, error) {
	out := make(map[shared.UserID]*member.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			copied := *u
			out[id] = &copied
		}
	}
	return out, nil
}

func (r *memberRepoStub) UpdateProgress(ctx context.Context, user *member.User) error {
	if r.conflicts > 0 {
		r.conflicts--
		return shared.NewDomainError("member", "UpdateProgress", shared.ErrOptimisticLock, "concurrent update")
	}
	stored, ok := r.users[user.ID]
	if !ok {
		return shared.ErrMemberNotFound
	}
	if stored.Version != user.Version {
		return shared.NewDomainError("member", "UpdateProgress", shared.ErrOptimisticLock, "stale version")
	}
	user.Version++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memberRepoStub) UpdateProfile(ctx context.Context, user *member.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memberRepoStub) List(ctx context.Context, p shared.Pagination) ([]*member.User, error) {
	return nil, nil
}

func (r *memberRepoStub) Count(ctx context.Context) (int, error) {
	return len(r.users), nil
}

type ledgerStub struct {
	entries []*gamification.XPEvent
}

func (l *ledgerStub) Append(ctx context.Context, event *gamification.XPEvent) error {
	l.entries = append(l.entries, event)
	return nil
}

func (l *ledgerStub) ListByUser(ctx context.Context, userID shared.UserID, p shared.Pagination) ([]*gamification.XPEvent, error) {
	return l.entries, nil
}

func (l *ledgerStub) TotalsByCategory(ctx context.Context, userID shared.UserID) ([]gamification.CategoryTotal, error) {
	return nil, nil
}

func (l *ledgerStub) FindByID(ctx context.Context, eventID string) (*gamification.XPEvent, error) {
	for _, e := range l.entries {
		if e.ID == eventID {
			return e, nil
		}
	}
	return nil, shared.NewDomainError("gamification", "FindByID", shared.ErrNotFound, "event not found")
}

func (l *ledgerStub) UpdateFlag(ctx context.Context, event *gamification.XPEvent) error {
	return nil
}

type badgeRepoStub struct {
	catalog map[string]gamification.Badge
	awarded map[shared.UserID]map[string]bool
}

func newBadgeRepoStub() *badgeRepoStub {
	repo := &badgeRepoStub{
		catalog: make(map[string]gamification.Badge),
		awarded: make(map[shared.UserID]map[string]bool),
	}
	for _, b := range gamification.Catalog() {
		repo.catalog[b.BadgeID] = b
	}
	return repo
}

func (r *badgeRepoStub) SeedCatalog(ctx context.Context, badges []gamification.Badge) error {
	for _, b := range badges {
		r.catalog[b.BadgeID] = b
	}
	return nil
}

func (r *badgeRepoStub) ListBadges(ctx context.Context) ([]gamification.Badge, error) {
	return gamification.Catalog(), nil
}

func (r *badgeRepoStub) FindBadge(ctx context.Context, badgeID string) (*gamification.Badge, error) {
	b, ok := r.catalog[badgeID]
	if !ok {
		return nil, shared.ErrBadgeNotFound
	}
	return &b, nil
}

func (r *badgeRepoStub) ListUserBadges(ctx context.Context, userID shared.UserID) ([]*gamification.UserBadge, error) {
	return nil, nil
}

func (r *badgeRepoStub) HasBadge(ctx context.Context, userID shared.UserID, badgeID string) (bool, error) {
	return r.awarded[userID][badgeID], nil
}

func (r *badgeRepoStub) Award(ctx context.Context, award *gamification.UserBadge) (bool, error) {
	if r.awarded[award.UserID][award.BadgeID] {
		return false, nil
	}
	if r.awarded[award.UserID] == nil {
		r.awarded[award.UserID] = make(map[string]bool)
	}
	r.awarded[award.UserID][award.BadgeID] = true
	return true, nil
}

type publisherStub struct {
	events []shared.Event
}

func (p *publisherStub) Publish(event shared.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (p *publisherStub) types() []shared.EventType {
	out := make([]shared.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

// ══════════════════════════════════════════════════════════════════════════════
// TESTS
// ══════════════════════════════════════════════════════════════════════════════

type engineFixture struct {
	engine    *GamificationEngine
	members   *memberRepoStub
	ledger    *ledgerStub
	badges    *badgeRepoStub
	publisher *publisherStub
}

func newEngineFixture(users ...*member.User) *engineFixture {
	f := &engineFixture{
		members:   newMemberRepoStub(users...),
		ledger:    &ledgerStub{},
		badges:    newBadgeRepoStub(),
		publisher: &publisherStub{},
	}
	log := logger.New(logger.Options{Output: io.Discard})
	f.engine = NewGamificationEngine(f.members, f.ledger, f.badges, f.publisher, log)
	return f
}

func testUser(t *testing.T) *member.User {
	t.Helper()
	u, err := member.NewUser("member@studio.dev", "Member", "")
	assert.NoError(t, err)
	return u
}

func TestGrantXPSimple(t *testing.T) {
	user := testUser(t)
	f := newEngineFixture(user)

	result, err := f.engine.GrantXP(context.Background(), user.ID, 200, gamification.CategoryMusic, "Created track")

	assert.NoError(t, err)
	assert.Zero(t, result.LevelsGained)
	assert.Equal(t, shared.Level(1), result.NewLevel)
	assert.Empty(t, result.BadgesAwarded)

	stored := f.members.users[user.ID]
	assert.Equal(t, shared.XP(200), stored.XP)
	assert.Len(t, f.ledger.entries, 1)
	assert.Equal(t, []shared.EventType{shared.EventXPGranted}, f.publisher.types())
}

func TestGrantXPRejectsNonPositive(t *testing.T) {
	user := testUser(t)
	f := newEngineFixture(user)

	_, err := f.engine.GrantXP(context.Background(), user.ID, 0, gamification.CategoryMusic, "nothing")
	assert.ErrorIs(t, err, shared.ErrInvalidXPAmount)

	_, err = f.engine.GrantXP(context.Background(), user.ID, -50, gamification.CategoryMusic, "nothing")
	assert.ErrorIs(t, err, shared.ErrInvalidXPAmount)
}

func TestGrantXPUnknownMemberIsNoOp(t *testing.T) {
	f := newEngineFixture()

	result, err := f.engine.GrantXP(context.Background(), "user_ghost", 100, gamification.CategoryMusic, "ghost grant")

	assert.NoError(t, err)
	assert.Empty(t, result.BadgesAwarded)
	assert.Empty(t, f.ledger.entries)
}

func TestGrantXPLevelUpAwardsLevelBadge(t *testing.T) {
	user := testUser(t)
	user.Level = 4
	user.XP = 3900
	f := newEngineFixture(user)

	// 3900 + 200 crosses the 4000 cost of level 4, reaching level 5,
	// which awards rising_star whose 100 XP reward is chained on.
	result, err := f.engine.GrantXP(context.Background(), user.ID, 200, gamification.CategoryAttendance, "Studio session")

	assert.NoError(t, err)
	assert.Equal(t, 1, result.LevelsGained)
	assert.Equal(t, shared.Level(5), result.NewLevel)
	assert.Equal(t, []string{"rising_star"}, result.BadgesAwarded)

	stored := f.members.users[user.ID]
	assert.Equal(t, shared.Level(5), stored.Level)
	assert.Equal(t, shared.XP(200), stored.XP) // 100 carried over + 100 badge reward

	assert.Len(t, f.ledger.entries, 2)
	assert.Equal(t, gamification.CategoryBadge, f.ledger.entries[1].Category)

	assert.Equal(t, []shared.EventType{
		shared.EventXPGranted,
		shared.EventLevelUp,
		shared.EventBadgeAwarded,
		shared.EventXPGranted,
	}, f.publisher.types())
}

func TestAwardBadgeGrantsReward(t *testing.T) {
	user := testUser(t)
	f := newEngineFixture(user)

	result, err := f.engine.AwardBadge(context.Background(), user.ID, gamification.BadgeFirstSteps)

	assert.NoError(t, err)
	assert.Equal(t, []string{gamification.BadgeFirstSteps}, result.BadgesAwarded)

	stored := f.members.users[user.ID]
	assert.Equal(t, shared.XP(100), stored.XP)
	assert.Len(t, f.ledger.entries, 1)
	assert.Equal(t, "Earned badge: First Steps", f.ledger.entries[0].Description)
}

func TestAwardBadgeIsIdempotent(t *testing.T) {
	user := testUser(t)
	f := newEngineFixture(user)

	_, err := f.engine.AwardBadge(context.Background(), user.ID, gamification.BadgeFirstSteps)
	assert.NoError(t, err)

	result, err := f.engine.AwardBadge(context.Background(), user.ID, gamification.BadgeFirstSteps)
	assert.NoError(t, err)
	assert.Empty(t, result.BadgesAwarded)

	// No second reward grant.
	stored := f.members.users[user.ID]
	assert.Equal(t, shared.XP(100), stored.XP)
	assert.Len(t, f.ledger.entries, 1)
}

func TestAwardBadgeUnknownIDIsNoOp(t *testing.T) {
	user := testUser(t)
	f := newEngineFixture(user)

	result, err := f.engine.AwardBadge(context.Background(), user.ID, "no_such_badge")

	assert.NoError(t, err)
	assert.Empty(t, result.BadgesAwarded)
	assert.Empty(t, f.ledger.entries)
}

func TestGrantXPRetriesOptimisticLock(t *testing.T) {
	user := testUser(t)
	f := newEngineFixture(user)
	f.members.conflicts = 1

	_, err := f.engine.GrantXP(context.Background(), user.ID, 100, gamification.CategoryMusic, "Created track")

	assert.NoError(t, err)
	assert.Equal(t, shared.XP(100), f.members.users[user.ID].XP)
	assert.Len(t, f.ledger.entries, 1)
}

func TestRecordStreakFirstActivity(t *testing.T) {
	user := testUser(t)
	f := newEngineFixture(user)

	days, err := f.engine.RecordStreak(context.Background(), user.ID, time.Now().UTC())

	assert.NoError(t, err)
	assert.Equal(t, 1, days)
	assert.Equal(t, 1, f.members.users[user.ID].StreakDays)
	assert.Equal(t, []shared.EventType{shared.EventStreakUpdated}, f.publisher.types())
}

func TestRecordStreakCrossingWeekAwardsBadge(t *testing.T) {
	user := testUser(t)
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	user.StreakDays = 6
	user.LastActiveDate = &yesterday
	f := newEngineFixture(user)

	days, err := f.engine.RecordStreak(context.Background(), user.ID, time.Now().UTC())

	assert.NoError(t, err)
	assert.Equal(t, 7, days)
	assert.True(t, f.badges.awarded[user.ID]["week_warrior"])

	// The badge's 200 XP reward lands on the member.
	assert.Equal(t, shared.XP(200), f.members.users[user.ID].XP)
}

func TestRecordStreakUnknownMemberIsNoOp(t *testing.T) {
	f := newEngineFixture()

	days, err := f.engine.RecordStreak(context.Background(), "user_ghost", time.Now().UTC())

	assert.NoError(t, err)
	assert.Zero(t, days)
	assert.Empty(t, f.publisher.events)
}
