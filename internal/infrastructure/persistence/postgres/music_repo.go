package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/studio-hub/studio-hub-elite/internal/domain/music"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MUSIC REPOSITORY
// Tracks keep a denormalized contributor array alongside the contribution
// rows so listings avoid a join.
// ══════════════════════════════════════════════════════════════════════════════

const trackColumns = `
	id, title, description, genre, duration_seconds, cover_image, audio_url,
	created_by, contributors, listens, likes, shares, created_at`

// MusicRepository implements music.Repository on PostgreSQL.
type MusicRepository struct {
	conn *Connection
}

// NewMusicRepository creates the repository.
func NewMusicRepository(conn *Connection) *MusicRepository {
	return &MusicRepository{conn: conn}
}

// CreateTrack inserts a track.
func (r *MusicRepository) CreateTrack(ctx context.Context, track *music.Track) error {
	query := `
		INSERT INTO tracks (
			id, title, description, genre, duration_seconds, cover_image, audio_url,
			created_by, contributors, listens, likes, shares, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.conn.Exec(ctx, query,
		track.TrackID,
		track.Title,
		track.Description,
		track.Genre,
		track.DurationSeconds,
		track.CoverImage,
		track.AudioURL,
		string(track.CreatedBy),
		userIDsToStrings(track.Contributors),
		track.Listens,
		track.Likes,
		track.Shares,
		track.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create track: %w", err)
	}
	return nil
}

// FindTrack returns a track by id.
func (r *MusicRepository) FindTrack(ctx context.Context, trackID string) (*music.Track, error) {
	query := `SELECT` + trackColumns + ` FROM tracks WHERE id = $1`
	return r.scanTrack(r.conn.QueryRow(ctx, query, trackID))
}

// ListTracks returns tracks, newest first.
func (r *MusicRepository) ListTracks(ctx context.Context, p shared.Pagination) ([]*music.Track, error) {
	query := `SELECT` + trackColumns + ` FROM tracks ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.conn.Query(ctx, query, p.Limit(), p.Offset())
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*music.Track
	for rows.Next() {
		track, err := r.scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, rows.Err()
}

// AddContributor appends the member to the track's contributor set.
func (r *MusicRepository) AddContributor(ctx context.Context, trackID string, userID shared.UserID) error {
	query := `
		UPDATE tracks
		SET contributors = array_append(contributors, $1)
		WHERE id = $2 AND NOT ($1 = ANY(contributors))`

	if _, err := r.conn.Exec(ctx, query, string(userID), trackID); err != nil {
		return fmt.Errorf("add contributor: %w", err)
	}
	return nil
}

// IncrementListens bumps the listen counter.
func (r *MusicRepository) IncrementListens(ctx context.Context, trackID string) error {
	return r.increment(ctx, trackID, "listens")
}

// IncrementLikes bumps the like counter.
func (r *MusicRepository) IncrementLikes(ctx context.Context, trackID string) error {
	return r.increment(ctx, trackID, "likes")
}

func (r *MusicRepository) increment(ctx context.Context, trackID, column string) error {
	query := fmt.Sprintf(`UPDATE tracks SET %s = %s + 1 WHERE id = $1`, column, column)

	tag, err := r.conn.Exec(ctx, query, trackID)
	if err != nil {
		return fmt.Errorf("increment %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrTrackNotFound
	}
	return nil
}

// CreateContribution inserts a contribution record.
func (r *MusicRepository) CreateContribution(ctx context.Context, contribution *music.Contribution) error {
	query := `
		INSERT INTO track_contributions (
			id, track_id, user_id, contribution_type, notes, xp_earned, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.conn.Exec(ctx, query,
		contribution.ContributionID,
		contribution.TrackID,
		string(contribution.UserID),
		contribution.Type.String(),
		contribution.Notes,
		contribution.XPEarned,
		contribution.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrTrackNotFound
		}
		return fmt.Errorf("create contribution: %w", err)
	}
	return nil
}

// ListContributions returns a track's contributions, oldest first.
func (r *MusicRepository) ListContributions(ctx context.Context, trackID string) ([]*music.Contribution, error) {
	query := `
		SELECT id, track_id, user_id, contribution_type, notes, xp_earned, created_at
		FROM track_contributions WHERE track_id = $1 ORDER BY created_at`

	rows, err := r.conn.Query(ctx, query, trackID)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var contributions []*music.Contribution
	for rows.Next() {
		var (
			c      music.Contribution
			userID string
			cType  string
		)
		err := rows.Scan(&c.ContributionID, &c.TrackID, &userID, &cType, &c.Notes, &c.XPEarned, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		c.UserID = shared.UserID(userID)
		c.Type = music.ContributionType(cType)
		contributions = append(contributions, &c)
	}
	return contributions, rows.Err()
}

// CountTracksByUser returns how many tracks the member created.
func (r *MusicRepository) CountTracksByUser(ctx context.Context, userID shared.UserID) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM tracks WHERE created_by = $1`,
		string(userID),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tracks: %w", err)
	}
	return count, nil
}

// AggregateTracksByCreator folds every track into per-creator lifetime totals.
func (r *MusicRepository) AggregateTracksByCreator(ctx context.Context) (map[shared.UserID]music.TrackTotals, error) {
	query := `
		SELECT created_by, COUNT(*), COALESCE(SUM(listens), 0), COALESCE(SUM(likes), 0)
		FROM tracks GROUP BY created_by`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("aggregate tracks: %w", err)
	}
	defer rows.Close()

	result := make(map[shared.UserID]music.TrackTotals)
	for rows.Next() {
		var (
			creator string
			totals  music.TrackTotals
		)
		if err := rows.Scan(&creator, &totals.Tracks, &totals.Listens, &totals.Likes); err != nil {
			return nil, fmt.Errorf("scan track totals: %w", err)
		}
		result[shared.UserID(creator)] = totals
	}
	return result, rows.Err()
}

// CountContributionsByUser folds contributions into per-member counts.
func (r *MusicRepository) CountContributionsByUser(ctx context.Context) (map[shared.UserID]int, error) {
	query := `SELECT user_id, COUNT(*) FROM track_contributions GROUP BY user_id`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count contributions: %w", err)
	}
	defer rows.Close()

	result := make(map[shared.UserID]int)
	for rows.Next() {
		var (
			userID string
			count  int
		)
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, fmt.Errorf("scan contribution count: %w", err)
		}
		result[shared.UserID(userID)] = count
	}
	return result, rows.Err()
}

func (r *MusicRepository) scanTrack(row pgx.Row) (*music.Track, error) {
	var (
		t            music.Track
		createdBy    string
		contributors []string
	)

	err := row.Scan(
		&t.TrackID,
		&t.Title,
		&t.Description,
		&t.Genre,
		&t.DurationSeconds,
		&t.CoverImage,
		&t.AudioURL,
		&createdBy,
		&contributors,
		&t.Listens,
		&t.Likes,
		&t.Shares,
		&t.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrTrackNotFound
		}
		return nil, fmt.Errorf("scan track: %w", err)
	}

	t.CreatedBy = shared.UserID(createdBy)
	t.Contributors = stringsToUserIDs(contributors)
	return &t, nil
}

func userIDsToStrings(ids []shared.UserID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func stringsToUserIDs(raw []string) []shared.UserID {
	out := make([]shared.UserID, len(raw))
	for i, s := range raw {
		out[i] = shared.UserID(s)
	}
	return out
}
