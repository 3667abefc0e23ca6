package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tripwise/internal/domain"
)

func handoffKey(session, part string) string { return fmt.Sprintf("handoff:%s:%s", session, part) }

// HandoffService passes the chat summary to the next page. Entries are
// consumed on first read.
type HandoffService struct {
	store domain.Storage
	ttl   time.Duration
}

func NewHandoffService(s domain.Storage, ttl time.Duration) *HandoffService {
	return &HandoffService{store: s, ttl: ttl}
}

func (s *HandoffService) Put(ctx context.Context, session string, h domain.Handoff) error {
	if s.store == nil {
		return domain.ErrStorageUnavailable
	}
	if h.Preferences != nil {
		if err := s.store.Set(ctx, handoffKey(session, "preferences"), h.Preferences, s.ttl); err != nil {
			return fmt.Errorf("store preferences: %w", err)
		}
	}
	plans := h.Plans
	if plans == nil {
		plans = []domain.GeneratedPlan{}
	}
	if err := s.store.Set(ctx, handoffKey(session, "plans"), plans, s.ttl); err != nil {
		return fmt.Errorf("store plans: %w", err)
	}
	return nil
}

// Take returns the pending handoff and deletes it. ok is false when nothing
// was waiting.
func (s *HandoffService) Take(ctx context.Context, session string) (domain.Handoff, bool) {
	if s.store == nil {
		return domain.Handoff{}, false
	}
	var out domain.Handoff

	var prefs domain.TravelPreferences
	gotPrefs, err := s.store.Take(ctx, handoffKey(session, "preferences"), &prefs)
	if err != nil {
		log.Warn().Err(err).Str("session", session).Msg("handoff preferences unreadable")
		gotPrefs = false
	}
	if gotPrefs {
		out.Preferences = &prefs
	}

	gotPlans, err := s.store.Take(ctx, handoffKey(session, "plans"), &out.Plans)
	if err != nil {
		log.Warn().Err(err).Str("session", session).Msg("handoff plans unreadable")
		gotPlans = false
		out.Plans = nil
	}
	return out, gotPrefs || gotPlans
}
