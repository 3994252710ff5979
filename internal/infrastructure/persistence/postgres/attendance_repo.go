package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/studio-hub/studio-hub-elite/internal/domain/attendance"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

const attendanceColumns = `
	id, user_id, session_id, check_in, check_out, duration_minutes, xp_earned`

// AttendanceRepository implements attendance.Repository on PostgreSQL.
type AttendanceRepository struct {
	conn *Connection
}

// NewAttendanceRepository creates the repository.
func NewAttendanceRepository(conn *Connection) *AttendanceRepository {
	return &AttendanceRepository{conn: conn}
}

// Create inserts a new visit record.
func (r *AttendanceRepository) Create(ctx context.Context, record *attendance.Record) error {
	query := `
		INSERT INTO attendance_records (
			id, user_id, session_id, check_in, check_out, duration_minutes, xp_earned
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.conn.Exec(ctx, query,
		record.AttendanceID,
		string(record.UserID),
		record.SessionID,
		record.CheckIn,
		record.CheckOut,
		record.DurationMinutes,
		record.XPEarned,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrAlreadyCheckedIn
		}
		return fmt.Errorf("create attendance record: %w", err)
	}
	return nil
}

// FindOpen returns the member's open visit.
func (r *AttendanceRepository) FindOpen(ctx context.Context, userID shared.UserID) (*attendance.Record, error) {
	query := `SELECT` + attendanceColumns + `
		FROM attendance_records WHERE user_id = $1 AND check_out IS NULL`

	record, err := r.scanRecord(r.conn.QueryRow(ctx, query, string(userID)))
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrNotCheckedIn
		}
		return nil, err
	}
	return record, nil
}

// Update persists the closed fields of a visit.
func (r *AttendanceRepository) Update(ctx context.Context, record *attendance.Record) error {
	query := `
		UPDATE attendance_records
		SET check_out = $1, duration_minutes = $2, xp_earned = $3
		WHERE id = $4`

	tag, err := r.conn.Exec(ctx, query,
		record.CheckOut,
		record.DurationMinutes,
		record.XPEarned,
		record.AttendanceID,
	)
	if err != nil {
		return fmt.Errorf("update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NewDomainError("attendance", "Update", shared.ErrNotFound,
			fmt.Sprintf("attendance record %s not found", record.AttendanceID))
	}
	return nil
}

// ListByUser returns the member's visits, newest first.
func (r *AttendanceRepository) ListByUser(ctx context.Context, userID shared.UserID, limit int) ([]*attendance.Record, error) {
	query := `SELECT` + attendanceColumns + `
		FROM attendance_records WHERE user_id = $1 ORDER BY check_in DESC LIMIT $2`

	rows, err := r.conn.Query(ctx, query, string(userID), limit)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	return r.scanRecords(rows)
}

// ListInRange returns the member's visits starting within the window.
func (r *AttendanceRepository) ListInRange(ctx context.Context, userID shared.UserID, rng shared.TimeRange) ([]*attendance.Record, error) {
	query := `SELECT` + attendanceColumns + `
		FROM attendance_records
		WHERE user_id = $1 AND check_in >= $2 AND check_in < $3
		ORDER BY check_in`

	rows, err := r.conn.Query(ctx, query, string(userID), rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("list attendance in range: %w", err)
	}
	defer rows.Close()

	return r.scanRecords(rows)
}

// CountByUser returns the member's total visit count.
func (r *AttendanceRepository) CountByUser(ctx context.Context, userID shared.UserID) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance_records WHERE user_id = $1`,
		string(userID),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}
	return count, nil
}

// AggregateInRange folds visits per member within the window. Open visits
// count as sessions with zero duration until they are closed.
func (r *AttendanceRepository) AggregateInRange(ctx context.Context, rng shared.TimeRange) (map[shared.UserID]attendance.Totals, error) {
	query := `
		SELECT user_id, COUNT(*), COALESCE(SUM(duration_minutes), 0)
		FROM attendance_records
		WHERE check_in >= $1 AND check_in < $2
		GROUP BY user_id`

	rows, err := r.conn.Query(ctx, query, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("aggregate attendance: %w", err)
	}
	defer rows.Close()

	result := make(map[shared.UserID]attendance.Totals)
	for rows.Next() {
		var (
			userID string
			totals attendance.Totals
		)
		if err := rows.Scan(&userID, &totals.Sessions, &totals.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scan attendance totals: %w", err)
		}
		result[shared.UserID(userID)] = totals
	}
	return result, rows.Err()
}

func (r *AttendanceRepository) scanRecord(row pgx.Row) (*attendance.Record, error) {
	var (
		rec      attendance.Record
		userID   string
		checkOut *time.Time
	)

	err := row.Scan(
		&rec.AttendanceID,
		&userID,
		&rec.SessionID,
		&rec.CheckIn,
		&checkOut,
		&rec.DurationMinutes,
		&rec.XPEarned,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.NewDomainError("attendance", "scan", shared.ErrNotFound,
				"attendance record not found")
		}
		return nil, fmt.Errorf("scan attendance record: %w", err)
	}

	rec.UserID = shared.UserID(userID)
	rec.CheckOut = checkOut
	return &rec, nil
}

func (r *AttendanceRepository) scanRecords(rows pgx.Rows) ([]*attendance.Record, error) {
	var records []*attendance.Record
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDIO SESSION REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// StudioSessionRepository implements attendance.SessionRepository on PostgreSQL.
type StudioSessionRepository struct {
	conn *Connection
}

// NewStudioSessionRepository creates the repository.
func NewStudioSessionRepository(conn *Connection) *StudioSessionRepository {
	return &StudioSessionRepository{conn: conn}
}

// Create inserts a scheduled session.
func (r *StudioSessionRepository) Create(ctx context.Context, session *attendance.StudioSession) error {
	query := `
		INSERT INTO studio_sessions (
			id, title, description, start_time, end_time,
			max_participants, session_type, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.conn.Exec(ctx, query,
		session.SessionID,
		session.Title,
		session.Description,
		session.StartTime,
		session.EndTime,
		session.MaxParticipants,
		session.SessionType,
		string(session.CreatedBy),
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create studio session: %w", err)
	}
	return nil
}

// FindByID returns the session.
func (r *StudioSessionRepository) FindByID(ctx context.Context, sessionID string) (*attendance.StudioSession, error) {
	query := `
		SELECT id, title, description, start_time, end_time,
		       max_participants, session_type, created_by, created_at
		FROM studio_sessions WHERE id = $1`

	return r.scanSession(r.conn.QueryRow(ctx, query, sessionID))
}

// ListUpcoming returns sessions starting after now, soonest first.
func (r *StudioSessionRepository) ListUpcoming(ctx context.Context, limit int) ([]*attendance.StudioSession, error) {
	query := `
		SELECT id, title, description, start_time, end_time,
		       max_participants, session_type, created_by, created_at
		FROM studio_sessions WHERE start_time > NOW()
		ORDER BY start_time LIMIT $1`

	rows, err := r.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*attendance.StudioSession
	for rows.Next() {
		session, err := r.scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *StudioSessionRepository) scanSession(row pgx.Row) (*attendance.StudioSession, error) {
	var (
		s         attendance.StudioSession
		createdBy string
	)

	err := row.Scan(
		&s.SessionID,
		&s.Title,
		&s.Description,
		&s.StartTime,
		&s.EndTime,
		&s.MaxParticipants,
		&s.SessionType,
		&createdBy,
		&s.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.NewDomainError("attendance", "FindByID", shared.ErrNotFound,
				"studio session not found")
		}
		return nil, fmt.Errorf("scan studio session: %w", err)
	}

	s.CreatedBy = shared.UserID(createdBy)
	return &s, nil
}
