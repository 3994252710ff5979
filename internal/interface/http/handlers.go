package http

import (
	"net/http"
	"time"

	"github.com/studio-hub/studio-hub-elite/internal/application/command"
	"github.com/studio-hub/studio-hub-elite/internal/domain/attendance"
	"github.com/studio-hub/studio-hub-elite/internal/domain/gaming"
	"github.com/studio-hub/studio-hub-elite/internal/domain/leaderboard"
	"github.com/studio-hub/studio-hub-elite/internal/domain/music"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// AUTHENTICATION HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type authSessionRequest struct {
	SessionID string `json:"session_id"`
}

// handleAuthSession exchanges the one-time session id from the login
// redirect for a long-lived session cookie.
func (s *Server) handleAuthSession(w http.ResponseWriter, r *http.Request) {
	var req authSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	result, err := s.deps.Authenticate.Handle(r.Context(), command.AuthenticateCommand{SessionID: req.SessionID})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    result.Session.Token,
		Path:     "/",
		Expires:  result.Session.ExpiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"user":          result.User,
		"session_token": result.Session.Token,
		"is_new":        result.IsNew,
	})
}

func (s *Server) handleAuthMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r.Context()))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Logout.Handle(r.Context(), sessionToken(r)); err != nil {
		writeDomainError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// ══════════════════════════════════════════════════════════════════════════════
// MEMBER HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.deps.Profiles.Get(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type updateProfileRequest struct {
	Name  *string  `json:"name"`
	Roles []string `json:"roles"`
	Goals []string `json:"goals"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	user, err := s.deps.UpdateProfile.Handle(r.Context(), command.UpdateProfileCommand{
		UserID: currentUser(r.Context()).ID,
		Name:   req.Name,
		Roles:  req.Roles,
		Goals:  req.Goals,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type onboardingRequest struct {
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
	Goals []string `json:"goals"`
}

func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	var req onboardingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	user, err := s.deps.CompleteOnboarding.Handle(r.Context(), command.CompleteOnboardingCommand{
		UserID: currentUser(r.Context()).ID,
		Name:   req.Name,
		Roles:  req.Roles,
		Goals:  req.Goals,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleGamificationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deps.Gamification.GetStats(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleBadgeCatalog(w http.ResponseWriter, r *http.Request) {
	badges, err := s.deps.Gamification.ListBadges(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

func (s *Server) handleUserBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := s.deps.Gamification.ListEarnedBadges(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type checkInRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
			return
		}
	}

	result, err := s.deps.CheckIn.Handle(r.Context(), command.CheckInCommand{
		UserID:    currentUser(r.Context()).ID,
		SessionID: req.SessionID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"attendance":  result.Record,
		"streak_days": result.StreakDays,
	})
}

func (s *Server) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.CheckOut.Handle(r.Context(), command.CheckOutCommand{
		UserID: currentUser(r.Context()).ID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"attendance_id":    result.AttendanceID,
		"duration_minutes": result.DurationMinutes,
		"xp_earned":        result.XPEarned,
	})
}

func (s *Server) handleAttendanceStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.deps.Attendance.Status(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleAttendanceHistory(w http.ResponseWriter, r *http.Request) {
	limit := getQueryParamInt(r, "limit", 30)
	records, err := s.deps.Attendance.History(r.Context(), currentUser(r.Context()).ID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleAttendanceHeatmap(w http.ResponseWriter, r *http.Request) {
	heatmap, err := s.deps.Attendance.Heatmap(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, heatmap)
}

func (s *Server) handleUpcomingSessions(w http.ResponseWriter, r *http.Request) {
	limit := getQueryParamInt(r, "limit", 20)
	sessions, err := s.deps.Attendance.UpcomingSessions(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

type createSessionRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	MaxParticipants int       `json:"max_participants"`
	SessionType     string    `json:"session_type"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	createdBy := shared.UserID("system")
	if user := currentUser(r.Context()); user != nil {
		createdBy = user.ID
	}

	session, err := attendance.NewStudioSession(
		req.Title, req.Description, req.StartTime, req.EndTime,
		req.MaxParticipants, req.SessionType, createdBy,
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.deps.CreateSession.Handle(r.Context(), session); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// ══════════════════════════════════════════════════════════════════════════════
// MUSIC HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleListTracks(w http.ResponseWriter, r *http.Request) {
	p := shared.NewPagination(
		getQueryParamInt(r, "page", 1),
		getQueryParamInt(r, "page_size", shared.DefaultPageSize),
	)
	tracks, err := s.deps.Tracks.List(r.Context(), p)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

type createTrackRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Genre           string `json:"genre"`
	DurationSeconds int    `json:"duration_seconds"`
	CoverImage      string `json:"cover_image"`
}

func (s *Server) handleCreateTrack(w http.ResponseWriter, r *http.Request) {
	var req createTrackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	track, err := s.deps.CreateTrack.Handle(r.Context(), command.CreateTrackCommand{
		UserID:          currentUser(r.Context()).ID,
		Title:           req.Title,
		Description:     req.Description,
		Genre:           req.Genre,
		DurationSeconds: req.DurationSeconds,
		CoverImage:      req.CoverImage,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, track)
}

func (s *Server) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	track, err := s.deps.Tracks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, track)
}

type addContributionRequest struct {
	Type  string `json:"contribution_type"`
	Notes string `json:"notes"`
}

func (s *Server) handleAddContribution(w http.ResponseWriter, r *http.Request) {
	var req addContributionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	contribution, err := s.deps.AddContribution.Handle(r.Context(), command.AddContributionCommand{
		UserID:  currentUser(r.Context()).ID,
		TrackID: r.PathValue("id"),
		Type:    music.ContributionType(req.Type),
		Notes:   req.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contribution)
}

func (s *Server) handleTrackListen(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Engagement.RecordListen(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Listen recorded"})
}

func (s *Server) handleTrackLike(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Engagement.RecordLike(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Like recorded"})
}

// ══════════════════════════════════════════════════════════════════════════════
// GAMING HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	status := gaming.MatchStatus(r.URL.Query().Get("status"))
	switch status {
	case "", gaming.MatchPending, gaming.MatchInProgress, gaming.MatchCompleted:
	default:
		writeJSONError(w, http.StatusBadRequest, "validation_error", "Unknown match status")
		return
	}

	limit := getQueryParamInt(r, "limit", 50)
	matches, err := s.deps.Matches.List(r.Context(), status, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

type createMatchRequest struct {
	Title        string   `json:"title"`
	GameType     string   `json:"game_type"`
	GameName     string   `json:"game_name"`
	Participants []string `json:"participants"`
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	participants := make([]shared.UserID, 0, len(req.Participants))
	for _, p := range req.Participants {
		participants = append(participants, shared.UserID(p))
	}

	match, err := s.deps.CreateMatch.Handle(r.Context(), command.CreateMatchCommand{
		UserID:       currentUser(r.Context()).ID,
		Title:        req.Title,
		GameType:     gaming.GameType(req.GameType),
		GameName:     req.GameName,
		Participants: participants,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, match)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := s.deps.Matches.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (s *Server) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	err := s.deps.StartMatch.Handle(r.Context(), command.StartMatchCommand{
		UserID:  currentUser(r.Context()).ID,
		MatchID: r.PathValue("id"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Match started"})
}

type submitScoreRequest struct {
	Score        int `json:"score"`
	Kills        int `json:"kills"`
	Deaths       int `json:"deaths"`
	Assists      int `json:"assists"`
	RankPosition int `json:"rank_position"`
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req submitScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	score, err := s.deps.SubmitScore.Handle(r.Context(), command.SubmitScoreCommand{
		MatchID:      r.PathValue("id"),
		UserID:       currentUser(r.Context()).ID,
		Score:        req.Score,
		Kills:        req.Kills,
		Deaths:       req.Deaths,
		Assists:      req.Assists,
		RankPosition: req.RankPosition,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, score)
}

func (s *Server) handleCompleteMatch(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.CompleteMatch.Handle(r.Context(), command.CompleteMatchCommand{
		UserID:  currentUser(r.Context()).ID,
		MatchID: r.PathValue("id"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"winner_id": result.WinnerID})
}

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD AND FEED HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleLeaderboardCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Leaderboards.Catalog())
}

func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	category := leaderboard.Category(r.PathValue("category"))
	if !category.IsValid() {
		writeJSONError(w, http.StatusNotFound, "not_found", "Unknown leaderboard category")
		return
	}

	period := leaderboard.PeriodMonthly
	if p := r.URL.Query().Get("period"); p != "" {
		period = leaderboard.Period(p)
		if !period.IsValid() {
			writeJSONError(w, http.StatusBadRequest, "validation_error", "Unknown leaderboard period")
			return
		}
	}

	limit := getQueryParamInt(r, "limit", 0)
	board, err := s.deps.Leaderboards.Get(r.Context(), category, period, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (s *Server) handleActivityFeed(w http.ResponseWriter, r *http.Request) {
	limit := getQueryParamInt(r, "limit", 50)
	items, err := s.deps.Feed.Recent(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ══════════════════════════════════════════════════════════════════════════════
// ADMIN HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	p := shared.NewPagination(
		getQueryParamInt(r, "page", 1),
		getQueryParamInt(r, "page_size", shared.DefaultPageSize),
	)
	users, err := s.deps.Admin.Users(r.Context(), p)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleAdminAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := getQueryParamInt(r, "limit", 100)
	logs, err := s.deps.Admin.AuditLogs(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

type flagEventRequest struct {
	EventID string `json:"event_id"`
	Reason  string `json:"reason"`
}

func (s *Server) handleFlagEvent(w http.ResponseWriter, r *http.Request) {
	var req flagEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	adminID := shared.UserID("system")
	if user := currentUser(r.Context()); user != nil {
		adminID = user.ID
	}

	err := s.deps.FlagEvent.Handle(r.Context(), command.FlagEventCommand{
		AdminID: adminID,
		EventID: req.EventID,
		Reason:  req.Reason,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Event flagged for review"})
}
