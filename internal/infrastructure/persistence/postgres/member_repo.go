package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MEMBER REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

const userColumns = `
	id, email, name, picture, roles, goals, onboarding_completed, is_admin,
	xp, level, streak_days, last_active_date, version, created_at, updated_at`

// MemberRepository implements member.Repository on PostgreSQL.
type MemberRepository struct {
	conn *Connection
}

// NewMemberRepository creates the repository.
func NewMemberRepository(conn *Connection) *MemberRepository {
	return &MemberRepository{conn: conn}
}

// Create inserts a new member.
func (r *MemberRepository) Create(ctx context.Context, user *member.User) error {
	query := `
		INSERT INTO users (
			id, email, name, picture, roles, goals, onboarding_completed, is_admin,
			xp, level, streak_days, last_active_date, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.conn.Exec(ctx, query,
		string(user.ID),
		user.Email,
		user.Name,
		user.Picture,
		user.Roles,
		user.Goals,
		user.OnboardingCompleted,
		user.IsAdmin,
		int(user.XP),
		user.Level.Int(),
		user.StreakDays,
		user.LastActiveDate,
		user.Version,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrMemberAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByID returns the member by id.
func (r *MemberRepository) FindByID(ctx context.Context, id shared.UserID) (*member.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.conn.QueryRow(ctx, query, string(id)))
}

// FindByEmail returns the member by email.
func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*member.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.conn.QueryRow(ctx, query, email))
}

// FindByIDs returns members keyed by id. Missing ids are absent.
func (r *MemberRepository) FindByIDs(ctx context.Context, ids []shared.UserID) (map[shared.UserID]*member.User, error) {
	result := make(map[shared.UserID]*member.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = string(id)
	}

	query := `SELECT` + userColumns + ` FROM users WHERE id = ANY($1)`
	rows, err := r.conn.Query(ctx, query, raw)
	if err != nil {
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		result[user.ID] = user
	}
	return result, rows.Err()
}

// UpdateProgress persists gamification fields with a compare-and-swap on
// Version. Zero affected rows means a concurrent writer won.
func (r *MemberRepository) UpdateProgress(ctx context.Context, user *member.User) error {
	query := `
		UPDATE users
		SET xp = $1, level = $2, streak_days = $3, last_active_date = $4,
		    version = version + 1, updated_at = $5
		WHERE id = $6 AND version = $7`

	tag, err := r.conn.Exec(ctx, query,
		int(user.XP),
		user.Level.Int(),
		user.StreakDays,
		user.LastActiveDate,
		user.UpdatedAt,
		string(user.ID),
		user.Version,
	)
	if err != nil {
		return fmt.Errorf("update user progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NewDomainError("member", "UpdateProgress", shared.ErrOptimisticLock,
			fmt.Sprintf("user %s changed concurrently", user.ID))
	}
	user.Version++
	return nil
}

// UpdateProfile persists identity and onboarding fields.
func (r *MemberRepository) UpdateProfile(ctx context.Context, user *member.User) error {
	query := `
		UPDATE users
		SET name = $1, picture = $2, roles = $3, goals = $4,
		    onboarding_completed = $5, is_admin = $6, updated_at = $7
		WHERE id = $8`

	tag, err := r.conn.Exec(ctx, query,
		user.Name,
		user.Picture,
		user.Roles,
		user.Goals,
		user.OnboardingCompleted,
		user.IsAdmin,
		user.UpdatedAt,
		string(user.ID),
	)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrMemberNotFound
	}
	return nil
}

// List returns members, newest first.
func (r *MemberRepository) List(ctx context.Context, p shared.Pagination) ([]*member.User, error) {
	query := `SELECT` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.conn.Query(ctx, query, p.Limit(), p.Offset())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*member.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Count returns the total number of members.
func (r *MemberRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (r *MemberRepository) scanUser(row pgx.Row) (*member.User, error) {
	var (
		u              member.User
		id             string
		xp             int
		level          int
		lastActiveDate *time.Time
	)

	err := row.Scan(
		&id,
		&u.Email,
		&u.Name,
		&u.Picture,
		&u.Roles,
		&u.Goals,
		&u.OnboardingCompleted,
		&u.IsAdmin,
		&xp,
		&level,
		&u.StreakDays,
		&lastActiveDate,
		&u.Version,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrMemberNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	u.ID = shared.UserID(id)
	u.XP = shared.XP(xp)
	u.Level = shared.Level(level)
	u.LastActiveDate = lastActiveDate
	return &u, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// SESSION REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// SessionRepository implements member.SessionRepository on PostgreSQL.
type SessionRepository struct {
	conn *Connection
}

// NewSessionRepository creates the repository.
func NewSessionRepository(conn *Connection) *SessionRepository {
	return &SessionRepository{conn: conn}
}

// Create stores a session, replacing previous sessions of the member.
func (r *SessionRepository) Create(ctx context.Context, session *member.Session) error {
	return r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM user_sessions WHERE user_id = $1`,
			string(session.UserID),
		); err != nil {
			return fmt.Errorf("delete previous sessions: %w", err)
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO user_sessions (token, user_id, created_at, expires_at)
			VALUES ($1, $2, $3, $4)`,
			session.Token,
			string(session.UserID),
			session.CreatedAt,
			session.ExpiresAt,
		)
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		return nil
	})
}

// FindByToken returns the session for the token.
func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*member.Session, error) {
	query := `SELECT token, user_id, created_at, expires_at FROM user_sessions WHERE token = $1`

	var (
		s      member.Session
		userID string
	)
	err := r.conn.QueryRow(ctx, query, token).Scan(&s.Token, &userID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	s.UserID = shared.UserID(userID)
	return &s, nil
}

// Delete removes a session by token.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM user_sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrSessionNotFound
	}
	return nil
}

// DeleteByUser removes all sessions of a member.
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID shared.UserID) error {
	if _, err := r.conn.Exec(ctx,
		`DELETE FROM user_sessions WHERE user_id = $1`, string(userID),
	); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int, error) {
	tag, err := r.conn.Exec(ctx, `DELETE FROM user_sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
