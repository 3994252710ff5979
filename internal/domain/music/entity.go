// Package music holds the collaboration domain: tracks, contributions,
// and the engagement counters that feed the music leaderboard.
package music

import (
	"time"

	"github.com/google/uuid"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/timeutil"
)

// ContributionType classifies what a contributor added to a track.
type ContributionType string

const (
	ContributionVocals     ContributionType = "vocals"
	ContributionBeat       ContributionType = "beat"
	ContributionMix        ContributionType = "mix"
	ContributionMaster     ContributionType = "master"
	ContributionInstrument ContributionType = "instrument"
	ContributionWriting    ContributionType = "writing"
	ContributionProduction ContributionType = "production"
)

// IsValid checks that the contribution type is known.
func (c ContributionType) IsValid() bool {
	switch c {
	case ContributionVocals, ContributionBeat, ContributionMix, ContributionMaster,
		ContributionInstrument, ContributionWriting, ContributionProduction:
		return true
	}
	return false
}

// String returns the string representation.
func (c ContributionType) String() string {
	return string(c)
}

// Track is a published piece of music. The creator is always the first
// contributor; further contributors are added as they contribute.
type Track struct {
	TrackID         string          `json:"track_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	Genre           string          `json:"genre,omitempty"`
	DurationSeconds int             `json:"duration_seconds"`
	CoverImage      string          `json:"cover_image,omitempty"`
	AudioURL        string          `json:"audio_url,omitempty"`
	CreatedBy       shared.UserID   `json:"created_by"`
	Contributors    []shared.UserID `json:"contributors"`
	Listens         int             `json:"listens"`
	Likes           int             `json:"likes"`
	Shares          int             `json:"shares"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewTrack publishes a track with the creator as sole contributor.
func NewTrack(title, description, genre string, durationSeconds int, coverImage string, createdBy shared.UserID) (*Track, error) {
	if title == "" {
		return nil, shared.NewDomainError("music", "NewTrack", shared.ErrEmptyValue, "title cannot be empty")
	}
	if durationSeconds < 0 {
		return nil, shared.NewDomainError("music", "NewTrack", shared.ErrNegativeValue, "duration cannot be negative")
	}
	return &Track{
		TrackID:         "track_" + uuid.NewString()[:12],
		Title:           title,
		Description:     description,
		Genre:           genre,
		DurationSeconds: durationSeconds,
		CoverImage:      coverImage,
		CreatedBy:       createdBy,
		Contributors:    []shared.UserID{createdBy},
		CreatedAt:       timeutil.Now(),
	}, nil
}

// HasContributor reports whether the member is already listed.
func (t *Track) HasContributor(userID shared.UserID) bool {
	for _, c := range t.Contributors {
		if c == userID {
			return true
		}
	}
	return false
}

// AddContributor appends the member to the contributor list once.
func (t *Track) AddContributor(userID shared.UserID) {
	if !t.HasContributor(userID) {
		t.Contributors = append(t.Contributors, userID)
	}
}

// Contribution records one member's work on a track.
type Contribution struct {
	ContributionID string           `json:"contribution_id"`
	TrackID        string           `json:"track_id"`
	UserID         shared.UserID    `json:"user_id"`
	Type           ContributionType `json:"contribution_type"`
	Notes          string           `json:"notes,omitempty"`
	XPEarned       int              `json:"xp_earned"`
	CreatedAt      time.Time        `json:"created_at"`
}

// NewContribution records work on a track. The XP reward is fixed.
func NewContribution(trackID string, userID shared.UserID, typ ContributionType, notes string, xpEarned int) (*Contribution, error) {
	if !typ.IsValid() {
		return nil, shared.NewDomainError("music", "NewContribution", shared.ErrInvalidInput, "unknown contribution type: "+typ.String())
	}
	return &Contribution{
		ContributionID: "contrib_" + uuid.NewString()[:12],
		TrackID:        trackID,
		UserID:         userID,
		Type:           typ,
		Notes:          notes,
		XPEarned:       xpEarned,
		CreatedAt:      timeutil.Now(),
	}, nil
}
