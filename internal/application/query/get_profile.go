package query

import (
	"context"
	"fmt"

	"github.com/studio-hub/studio-hub-elite/internal/domain/attendance"
	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/gaming"
	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/music"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE QUERY
// The member profile with activity stats and earned badges.
// ══════════════════════════════════════════════════════════════════════════════

// ProfileStats counts a member's activity across the three pillars.
type ProfileStats struct {
	AttendanceCount   int `json:"attendance_count"`
	TrackCount        int `json:"track_count"`
	ContributionCount int `json:"contribution_count"`
	MatchCount        int `json:"match_count"`
	BadgeCount        int `json:"badge_count"`
}

// Profile is the full profile view.
type Profile struct {
	User   *member.User         `json:"user"`
	Stats  ProfileStats         `json:"stats"`
	Badges []gamification.Badge `json:"badges"`
}

// ProfileQuery serves member profiles.
type ProfileQuery struct {
	members    member.Repository
	attendance attendance.Repository
	music      music.Repository
	gaming     gaming.Repository
	badges     gamification.BadgeRepository
}

// NewProfileQuery creates the query service.
func NewProfileQuery(
	members member.Repository,
	attendanceRepo attendance.Repository,
	musicRepo music.Repository,
	gamingRepo gaming.Repository,
	badges gamification.BadgeRepository,
) *ProfileQuery {
	return &ProfileQuery{
		members:    members,
		attendance: attendanceRepo,
		music:      musicRepo,
		gaming:     gamingRepo,
		badges:     badges,
	}
}

// Get returns the profile with stats and badge details.
func (q *ProfileQuery) Get(ctx context.Context, userID shared.UserID) (*Profile, error) {
	user, err := q.members.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	attendanceCount, err := q.attendance.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile: attendance count: %w", err)
	}
	trackCount, err := q.music.CountTracksByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile: track count: %w", err)
	}
	contributions, err := q.music.CountContributionsByUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile: contribution count: %w", err)
	}

	matchCount, err := q.gaming.CountScoresByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile: match count: %w", err)
	}

	awards, err := q.badges.ListUserBadges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile: badges: %w", err)
	}
	catalog, err := q.badges.ListBadges(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile: catalog: %w", err)
	}

	owned := make(map[string]bool, len(awards))
	for _, a := range awards {
		owned[a.BadgeID] = true
	}
	details := make([]gamification.Badge, 0, len(awards))
	for _, b := range catalog {
		if owned[b.BadgeID] {
			details = append(details, b)
		}
	}

	return &Profile{
		User: user,
		Stats: ProfileStats{
			AttendanceCount:   attendanceCount,
			TrackCount:        trackCount,
			ContributionCount: contributions[userID],
			MatchCount:        matchCount,
			BadgeCount:        len(awards),
		},
		Badges: details,
	}, nil
}
