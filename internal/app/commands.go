package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"tripwise/internal/domain"
)

// ChatService drives the conversation with the external chat endpoint and
// hands its summary over to the plans page.
type ChatService struct {
	chat    domain.ChatClient
	q       *QueryService
	setup   *TripSetupService
	handoff *HandoffService
}

// NewChatService accepts a nil client; Send and Summarize then report ErrChatUnavailable.
func NewChatService(c domain.ChatClient, q *QueryService, setup *TripSetupService, h *HandoffService) *ChatService {
	return &ChatService{chat: c, q: q, setup: setup, handoff: h}
}

// OpeningMessage greets the user with what they already entered on the setup page.
func (s *ChatService) OpeningMessage(ctx context.Context, session string) string {
	ts := s.setup.Load(ctx, session)

	var b strings.Builder
	b.WriteString("Hi! I'm your travel planner.")
	if ts.Destination != "" {
		fmt.Fprintf(&b, " I see you're thinking about %s", ts.Destination)
		if ts.FromDate != "" && ts.ToDate != "" {
			fmt.Fprintf(&b, " from %s to %s", ts.FromDate, ts.ToDate)
		}
		b.WriteString(".")
	} else if ts.UseNearMe && ts.UserLocation != nil {
		fmt.Fprintf(&b, " Let's find something near %s.", *ts.UserLocation)
	}
	if ts.Travelers > 1 {
		fmt.Fprintf(&b, " Planning for %d travelers.", ts.Travelers)
	}
	if ts.Budget != "" {
		fmt.Fprintf(&b, " Budget: %s %s.", ts.Budget, ts.Currency)
	}
	b.WriteString(" ")
	b.WriteString(s.q.BuildVerifiedContextSummary())
	b.WriteString(" What kind of trip are you dreaming of?")
	return b.String()
}

func (s *ChatService) Send(ctx context.Context, session, message string, history []domain.ChatMessage) (domain.ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return domain.ChatReply{}, &domain.ValidationError{Field: "message", Reason: "must not be empty"}
	}
	if s.chat == nil {
		return domain.ChatReply{}, domain.ErrChatUnavailable
	}
	reply, err := s.chat.Chat(ctx, message, history)
	if err != nil {
		log.Warn().Err(err).Str("session", session).Msg("chat call failed")
		return domain.ChatReply{}, fmt.Errorf("chat: %w", err)
	}
	return reply, nil
}

// Summarize asks the endpoint to extract preferences and plans from history
// and stores them for the next page.
func (s *ChatService) Summarize(ctx context.Context, session string, history []domain.ChatMessage) (domain.Handoff, error) {
	if len(history) == 0 {
		return domain.Handoff{}, &domain.ValidationError{Field: "conversationHistory", Reason: "must not be empty"}
	}
	if s.chat == nil {
		return domain.Handoff{}, domain.ErrChatUnavailable
	}
	h, err := s.chat.Summarize(ctx, history)
	if err != nil {
		return domain.Handoff{}, fmt.Errorf("summarize: %w", err)
	}
	if err := s.handoff.Put(ctx, session, h); err != nil {
		log.Warn().Err(err).Str("session", session).Msg("handoff not stored")
	}
	return h, nil
}
