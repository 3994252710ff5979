package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/studio-hub/studio-hub-elite/internal/domain/gaming"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GAMING REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

const matchColumns = `
	id, title, game_type, game_name, participants, winner_id, status,
	created_by, started_at, ended_at, created_at`

const scoreColumns = `
	id, match_id, user_id, score, kills, deaths, assists, rank_position,
	xp_earned, created_at`

// GamingRepository implements gaming.Repository on PostgreSQL.
type GamingRepository struct {
	conn *Connection
}

// NewGamingRepository creates the repository.
func NewGamingRepository(conn *Connection) *GamingRepository {
	return &GamingRepository{conn: conn}
}

// CreateMatch inserts a match.
func (r *GamingRepository) CreateMatch(ctx context.Context, match *gaming.Match) error {
	query := `
		INSERT INTO game_matches (
			id, title, game_type, game_name, participants, winner_id, status,
			created_by, started_at, ended_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.conn.Exec(ctx, query,
		match.MatchID,
		match.Title,
		match.GameType.String(),
		match.GameName,
		userIDsToStrings(match.Participants),
		userIDPtrToString(match.WinnerID),
		string(match.Status),
		string(match.CreatedBy),
		match.StartedAt,
		match.EndedAt,
		match.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create match: %w", err)
	}
	return nil
}

// FindMatch returns a match by id.
func (r *GamingRepository) FindMatch(ctx context.Context, matchID string) (*gaming.Match, error) {
	query := `SELECT` + matchColumns + ` FROM game_matches WHERE id = $1`
	return r.scanMatch(r.conn.QueryRow(ctx, query, matchID))
}

// UpdateMatch persists status, winner, and timestamps.
func (r *GamingRepository) UpdateMatch(ctx context.Context, match *gaming.Match) error {
	query := `
		UPDATE game_matches
		SET participants = $1, winner_id = $2, status = $3, started_at = $4, ended_at = $5
		WHERE id = $6`

	tag, err := r.conn.Exec(ctx, query,
		userIDsToStrings(match.Participants),
		userIDPtrToString(match.WinnerID),
		string(match.Status),
		match.StartedAt,
		match.EndedAt,
		match.MatchID,
	)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrMatchNotFound
	}
	return nil
}

// ListMatches returns matches, newest first, optionally filtered by status.
func (r *GamingRepository) ListMatches(ctx context.Context, status gaming.MatchStatus, limit int) ([]*gaming.Match, error) {
	var (
		rows pgx.Rows
		err  error
	)

	if status == "" {
		query := `SELECT` + matchColumns + ` FROM game_matches ORDER BY created_at DESC LIMIT $1`
		rows, err = r.conn.Query(ctx, query, limit)
	} else {
		query := `SELECT` + matchColumns + `
			FROM game_matches WHERE status = $1 ORDER BY created_at DESC LIMIT $2`
		rows, err = r.conn.Query(ctx, query, string(status), limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var matches []*gaming.Match
	for rows.Next() {
		match, err := r.scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

// CreateScore inserts a score row.
func (r *GamingRepository) CreateScore(ctx context.Context, score *gaming.Score) error {
	query := `
		INSERT INTO game_scores (
			id, match_id, user_id, score, kills, deaths, assists, rank_position,
			xp_earned, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.conn.Exec(ctx, query,
		score.ScoreID,
		score.MatchID,
		string(score.UserID),
		score.Score,
		score.Kills,
		score.Deaths,
		score.Assists,
		score.RankPosition,
		score.XPEarned,
		score.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrMatchNotFound
		}
		return fmt.Errorf("create score: %w", err)
	}
	return nil
}

// ListScores returns a match's scores, highest first.
func (r *GamingRepository) ListScores(ctx context.Context, matchID string) ([]*gaming.Score, error) {
	query := `SELECT` + scoreColumns + `
		FROM game_scores WHERE match_id = $1 ORDER BY score DESC, created_at`

	rows, err := r.conn.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var scores []*gaming.Score
	for rows.Next() {
		score, err := r.scanScore(rows)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// CountWinsByUser returns how many completed matches the member won.
func (r *GamingRepository) CountWinsByUser(ctx context.Context, userID shared.UserID) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM game_matches WHERE status = 'completed' AND winner_id = $1`,
		string(userID),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count wins: %w", err)
	}
	return count, nil
}

// CountScoresByUser returns how many score rows the member submitted.
func (r *GamingRepository) CountScoresByUser(ctx context.Context, userID shared.UserID) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM game_scores WHERE user_id = $1`,
		string(userID),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count scores: %w", err)
	}
	return count, nil
}

// AggregateInRange folds scores submitted within the window into
// per-member totals. A win is a score row with rank position 1.
func (r *GamingRepository) AggregateInRange(ctx context.Context, rng shared.TimeRange) (map[shared.UserID]gaming.Totals, error) {
	query := `
		SELECT user_id,
		       COUNT(*) FILTER (WHERE rank_position = 1),
		       COALESCE(SUM(score), 0),
		       COALESCE(SUM(kills), 0),
		       COALESCE(SUM(deaths), 0),
		       COUNT(*)
		FROM game_scores
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY user_id`

	rows, err := r.conn.Query(ctx, query, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("aggregate scores: %w", err)
	}
	defer rows.Close()

	result := make(map[shared.UserID]gaming.Totals)
	for rows.Next() {
		var (
			userID string
			totals gaming.Totals
		)
		err := rows.Scan(&userID, &totals.Wins, &totals.TotalScore,
			&totals.TotalKills, &totals.Deaths, &totals.Matches)
		if err != nil {
			return nil, fmt.Errorf("scan gaming totals: %w", err)
		}
		result[shared.UserID(userID)] = totals
	}
	return result, rows.Err()
}

// SumScoresByUser folds every score row into lifetime per-member sums.
func (r *GamingRepository) SumScoresByUser(ctx context.Context) (map[shared.UserID]int, error) {
	query := `SELECT user_id, COALESCE(SUM(score), 0) FROM game_scores GROUP BY user_id`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sum scores: %w", err)
	}
	defer rows.Close()

	result := make(map[shared.UserID]int)
	for rows.Next() {
		var (
			userID string
			total  int
		)
		if err := rows.Scan(&userID, &total); err != nil {
			return nil, fmt.Errorf("scan score sum: %w", err)
		}
		result[shared.UserID(userID)] = total
	}
	return result, rows.Err()
}

func (r *GamingRepository) scanMatch(row pgx.Row) (*gaming.Match, error) {
	var (
		m            gaming.Match
		gameType     string
		participants []string
		winnerID     *string
		status       string
		createdBy    string
		startedAt    *time.Time
		endedAt      *time.Time
	)

	err := row.Scan(
		&m.MatchID,
		&m.Title,
		&gameType,
		&m.GameName,
		&participants,
		&winnerID,
		&status,
		&createdBy,
		&startedAt,
		&endedAt,
		&m.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrMatchNotFound
		}
		return nil, fmt.Errorf("scan match: %w", err)
	}

	m.GameType = gaming.GameType(gameType)
	m.Participants = stringsToUserIDs(participants)
	m.Status = gaming.MatchStatus(status)
	m.CreatedBy = shared.UserID(createdBy)
	m.StartedAt = startedAt
	m.EndedAt = endedAt
	if winnerID != nil {
		id := shared.UserID(*winnerID)
		m.WinnerID = &id
	}
	return &m, nil
}

func (r *GamingRepository) scanScore(row pgx.Row) (*gaming.Score, error) {
	var (
		s      gaming.Score
		userID string
	)

	err := row.Scan(
		&s.ScoreID,
		&s.MatchID,
		&userID,
		&s.Score,
		&s.Kills,
		&s.Deaths,
		&s.Assists,
		&s.RankPosition,
		&s.XPEarned,
		&s.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.NewDomainError("gaming", "scan", shared.ErrNotFound, "score not found")
		}
		return nil, fmt.Errorf("scan score: %w", err)
	}

	s.UserID = shared.UserID(userID)
	return &s, nil
}

func userIDPtrToString(id *shared.UserID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}
