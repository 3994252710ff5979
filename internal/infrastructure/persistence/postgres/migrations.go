package postgres

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: MEMBERS AND SESSIONS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Members with gamification progress and optimistic-lock version.
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    picture TEXT NOT NULL DEFAULT '',
    roles TEXT[] NOT NULL DEFAULT '{}',
    goals TEXT[] NOT NULL DEFAULT '{}',
    onboarding_completed BOOLEAN NOT NULL DEFAULT FALSE,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    xp INTEGER NOT NULL DEFAULT 0 CHECK (xp >= 0),
    level INTEGER NOT NULL DEFAULT 1 CHECK (level >= 1),
    streak_days INTEGER NOT NULL DEFAULT 0 CHECK (streak_days >= 0),
    last_active_date TIMESTAMP WITH TIME ZONE,
    version INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC);

-- Login sessions; at most one per member in practice, enforced by the
-- repository replacing old rows on login.
CREATE TABLE IF NOT EXISTS user_sessions (
    token TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    expires_at TIMESTAMP WITH TIME ZONE NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_user_sessions_user_id ON user_sessions(user_id);
CREATE INDEX IF NOT EXISTS idx_user_sessions_expires_at ON user_sessions(expires_at);
`

const migration001Down = `
DROP TABLE IF EXISTS user_sessions;
DROP TABLE IF EXISTS users;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: ATTENDANCE, MUSIC, GAMING
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- Studio visits. The partial unique index guarantees one open visit per
-- member.
CREATE TABLE IF NOT EXISTS attendance_records (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    session_id TEXT NOT NULL DEFAULT '',
    check_in TIMESTAMP WITH TIME ZONE NOT NULL,
    check_out TIMESTAMP WITH TIME ZONE,
    duration_minutes INTEGER NOT NULL DEFAULT 0 CHECK (duration_minutes >= 0),
    xp_earned INTEGER NOT NULL DEFAULT 0 CHECK (xp_earned >= 0)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_open_visit
    ON attendance_records(user_id) WHERE check_out IS NULL;
CREATE INDEX IF NOT EXISTS idx_attendance_user_checkin
    ON attendance_records(user_id, check_in DESC);
CREATE INDEX IF NOT EXISTS idx_attendance_checkin ON attendance_records(check_in);

-- Scheduled studio sessions created by admins.
CREATE TABLE IF NOT EXISTS studio_sessions (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    start_time TIMESTAMP WITH TIME ZONE NOT NULL,
    end_time TIMESTAMP WITH TIME ZONE NOT NULL,
    max_participants INTEGER NOT NULL DEFAULT 10 CHECK (max_participants > 0),
    session_type TEXT NOT NULL DEFAULT 'music',
    created_by TEXT NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_studio_sessions_start ON studio_sessions(start_time);

-- Published tracks with denormalized engagement counters.
CREATE TABLE IF NOT EXISTS tracks (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    genre TEXT NOT NULL DEFAULT '',
    duration_seconds INTEGER NOT NULL DEFAULT 0 CHECK (duration_seconds >= 0),
    cover_image TEXT NOT NULL DEFAULT '',
    audio_url TEXT NOT NULL DEFAULT '',
    created_by TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    contributors TEXT[] NOT NULL DEFAULT '{}',
    listens INTEGER NOT NULL DEFAULT 0 CHECK (listens >= 0),
    likes INTEGER NOT NULL DEFAULT 0 CHECK (likes >= 0),
    shares INTEGER NOT NULL DEFAULT 0 CHECK (shares >= 0),
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_tracks_created_at ON tracks(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_tracks_created_by ON tracks(created_by);

CREATE TABLE IF NOT EXISTS track_contributions (
    id TEXT PRIMARY KEY,
    track_id TEXT NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    contribution_type TEXT NOT NULL CHECK (contribution_type IN
        ('vocals', 'beat', 'mix', 'master', 'instrument', 'writing', 'production')),
    notes TEXT NOT NULL DEFAULT '',
    xp_earned INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_contributions_track ON track_contributions(track_id, created_at);
CREATE INDEX IF NOT EXISTS idx_contributions_user ON track_contributions(user_id);

-- Competitive matches and per-player results.
CREATE TABLE IF NOT EXISTS game_matches (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    game_type TEXT NOT NULL CHECK (game_type IN
        ('fps', 'fighting', 'racing', 'sports', 'strategy', 'battle_royale')),
    game_name TEXT NOT NULL DEFAULT '',
    participants TEXT[] NOT NULL DEFAULT '{}',
    winner_id TEXT,
    status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN
        ('pending', 'in_progress', 'completed')),
    created_by TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    started_at TIMESTAMP WITH TIME ZONE,
    ended_at TIMESTAMP WITH TIME ZONE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_matches_status ON game_matches(status, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_matches_created_at ON game_matches(created_at DESC);

CREATE TABLE IF NOT EXISTS game_scores (
    id TEXT PRIMARY KEY,
    match_id TEXT NOT NULL REFERENCES game_matches(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    score INTEGER NOT NULL CHECK (score >= 0 AND score <= 999999),
    kills INTEGER NOT NULL DEFAULT 0 CHECK (kills >= 0),
    deaths INTEGER NOT NULL DEFAULT 0 CHECK (deaths >= 0),
    assists INTEGER NOT NULL DEFAULT 0 CHECK (assists >= 0),
    rank_position INTEGER NOT NULL DEFAULT 0 CHECK (rank_position >= 0),
    xp_earned INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_scores_match ON game_scores(match_id, score DESC);
CREATE INDEX IF NOT EXISTS idx_scores_user ON game_scores(user_id, created_at);
`

const migration002Down = `
DROP TABLE IF EXISTS game_scores;
DROP TABLE IF EXISTS game_matches;
DROP TABLE IF EXISTS track_contributions;
DROP TABLE IF EXISTS tracks;
DROP TABLE IF EXISTS studio_sessions;
DROP TABLE IF EXISTS attendance_records;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 003: XP LEDGER AND BADGES
// ══════════════════════════════════════════════════════════════════════════════

const migration003Up = `
-- Append-only XP ledger. Rows are never updated except for the
-- moderation flag.
CREATE TABLE IF NOT EXISTS xp_events (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    amount INTEGER NOT NULL CHECK (amount > 0),
    category TEXT NOT NULL CHECK (category IN
        ('attendance', 'music', 'gaming', 'badge')),
    description TEXT NOT NULL DEFAULT '',
    level_after INTEGER NOT NULL DEFAULT 1 CHECK (level_after >= 1),
    flagged BOOLEAN NOT NULL DEFAULT FALSE,
    flag_reason TEXT NOT NULL DEFAULT '',
    flagged_by TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_xp_events_user ON xp_events(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_xp_events_category ON xp_events(category, created_at);

-- Badge catalog seeded at startup.
CREATE TABLE IF NOT EXISTS badges (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    icon TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    requirement_type TEXT NOT NULL,
    requirement_value INTEGER NOT NULL DEFAULT 0,
    xp_reward INTEGER NOT NULL DEFAULT 0 CHECK (xp_reward >= 0),
    rarity TEXT NOT NULL DEFAULT 'common'
);

-- Awards; the primary key makes every award idempotent.
CREATE TABLE IF NOT EXISTS user_badges (
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    badge_id TEXT NOT NULL REFERENCES badges(id) ON DELETE CASCADE,
    awarded_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, badge_id)
);

CREATE INDEX IF NOT EXISTS idx_user_badges_user ON user_badges(user_id, awarded_at DESC);
`

const migration003Down = `
DROP TABLE IF EXISTS user_badges;
DROP TABLE IF EXISTS badges;
DROP TABLE IF EXISTS xp_events;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 004: ACTIVITY TRAIL
// ══════════════════════════════════════════════════════════════════════════════

const migration004Up = `
-- Community feed shown on the dashboard.
CREATE TABLE IF NOT EXISTS activity_feed (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    user_name TEXT NOT NULL DEFAULT '',
    activity_type TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    metadata JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_activity_feed_created ON activity_feed(created_at DESC);

-- Admin action audit trail.
CREATE TABLE IF NOT EXISTS audit_logs (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    action TEXT NOT NULL,
    resource_type TEXT NOT NULL DEFAULT '',
    resource_id TEXT NOT NULL DEFAULT '',
    details JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC);
`

const migration004Down = `
DROP TABLE IF EXISTS audit_logs;
DROP TABLE IF EXISTS activity_feed;
`
