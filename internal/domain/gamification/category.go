// Package gamification holds the XP ledger, the badge catalog and evaluator,
// and the pure reward formulas that turn studio activity into XP.
package gamification

// Category classifies the source of an XP grant.
type Category string

const (
	CategoryAttendance Category = "attendance"
	CategoryMusic      Category = "music"
	CategoryGaming     Category = "gaming"
	CategoryBadge      Category = "badge"
)

// IsValid checks that the category is one of the known sources.
func (c Category) IsValid() bool {
	switch c {
	case CategoryAttendance, CategoryMusic, CategoryGaming, CategoryBadge:
		return true
	}
	return false
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// Reward constants for the fixed-value activities.
const (
	// TrackCreationXP is granted for publishing a new track.
	TrackCreationXP = 50
	// ContributionXP is granted for contributing to someone's track.
	ContributionXP = 30
	// MatchVictoryXP is granted to the winner when a match completes.
	MatchVictoryXP = 50

	// AttendanceXPCap bounds how much a single session can earn.
	AttendanceXPCap = 120
	// ScoreXPCap bounds the score-derived part of a gaming reward.
	ScoreXPCap = 50

	// MaxScore is the largest accepted raw match score.
	MaxScore = 999999
)

// AttendanceXP converts a session duration in minutes into XP.
// One XP per minute, capped at AttendanceXPCap.
func AttendanceXP(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	if durationMinutes > AttendanceXPCap {
		return AttendanceXPCap
	}
	return durationMinutes
}

// ScoreXP converts a submitted match score into XP.
// The score part is score/100 capped at ScoreXPCap, plus 5 per kill,
// plus a podium bonus: 100 for first place, 50 for second or third.
func ScoreXP(score, kills, rankPosition int) int {
	scorePart := score / 100
	if scorePart > ScoreXPCap {
		scorePart = ScoreXPCap
	}
	xp := scorePart + kills*5
	switch {
	case rankPosition == 1:
		xp += 100
	case rankPosition > 1 && rankPosition <= 3:
		xp += 50
	}
	return xp
}

// IsValidScore checks a raw score against the accepted range.
func IsValidScore(score int) bool {
	return score >= 0 && score <= MaxScore
}
