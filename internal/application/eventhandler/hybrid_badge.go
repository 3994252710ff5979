// Package eventhandler contains asynchronous reactions to domain events.
package eventhandler

import (
	"context"
	"time"

	"github.com/studio-hub/studio-hub-elite/internal/application/command"
	"github.com/studio-hub/studio-hub-elite/internal/domain/attendance"
	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/gaming"
	"github.com/studio-hub/studio-hub-elite/internal/domain/music"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/logger"
)

// HybridBadgeHandler awards hybrid_hero once a member has been active in
// all three pillars: at least one studio visit, one track or contribution,
// and one submitted match score. It reacts to XP grants because every
// qualifying activity grants XP.
type HybridBadgeHandler struct {
	attendance attendance.Repository
	music      music.Repository
	gaming     gaming.Repository
	engine     *command.GamificationEngine
	log        *logger.Logger
	timeout    time.Duration
}

// NewHybridBadgeHandler creates the handler.
func NewHybridBadgeHandler(
	attendanceRepo attendance.Repository,
	musicRepo music.Repository,
	gamingRepo gaming.Repository,
	engine *command.GamificationEngine,
	log *logger.Logger,
) *HybridBadgeHandler {
	return &HybridBadgeHandler{
		attendance: attendanceRepo,
		music:      musicRepo,
		gaming:     gamingRepo,
		engine:     engine,
		log:        log.With(logger.Component("hybrid-badge-handler")),
		timeout:    10 * time.Second,
	}
}

// Register subscribes the handler on the bus.
func (h *HybridBadgeHandler) Register(bus shared.EventSubscriber) error {
	return bus.Subscribe(shared.EventXPGranted, h.Handle)
}

// Handle evaluates the hybrid badge for the member behind an XP grant.
// Evaluation is cheap (three counts) and the award is idempotent, so
// over-triggering is harmless.
func (h *HybridBadgeHandler) Handle(event shared.Event) error {
	granted, ok := event.(shared.XPGrantedEvent)
	if !ok {
		return nil
	}
	// Badge-reward grants cannot complete a pillar.
	if granted.Category == gamification.CategoryBadge.String() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	userID := shared.UserID(granted.UserID)
	qualified, err := h.qualifies(ctx, userID)
	if err != nil {
		h.log.Warn("hybrid badge evaluation failed", logger.UserID(granted.UserID), logger.Err(err))
		return nil
	}
	if !qualified {
		return nil
	}

	if _, err := h.engine.AwardBadge(ctx, userID, gamification.BadgeHybridHero); err != nil {
		h.log.Warn("hybrid badge award failed", logger.UserID(granted.UserID), logger.Err(err))
	}
	return nil
}

func (h *HybridBadgeHandler) qualifies(ctx context.Context, userID shared.UserID) (bool, error) {
	visits, err := h.attendance.CountByUser(ctx, userID)
	if err != nil || visits == 0 {
		return false, err
	}

	tracks, err := h.music.CountTracksByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	if tracks == 0 {
		contribs, err := h.music.CountContributionsByUser(ctx)
		if err != nil || contribs[userID] == 0 {
			return false, err
		}
	}

	scores, err := h.gaming.CountScoresByUser(ctx, userID)
	if err != nil || scores == 0 {
		return false, err
	}
	return true, nil
}
