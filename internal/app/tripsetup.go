package app

import (
	"context"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/currency"

	"tripwise/internal/domain"
)

// plainText strips markup from free-text fields before they are stored and
// echoed back into the chat greeting.
var plainText = bluemonday.StrictPolicy()

// stripMarkup decodes entities and sanitizes until the text is stable, so
// entity-encoded tags cannot come back as markup after decoding.
func stripMarkup(s string) string {
	for i := 0; i < 8; i++ {
		next := html.UnescapeString(plainText.Sanitize(html.UnescapeString(s)))
		if next == s {
			return strings.TrimSpace(s)
		}
		s = next
	}
	// still changing: keep the sanitizer's escaped output
	return strings.TrimSpace(plainText.Sanitize(html.UnescapeString(s)))
}

var supportedCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"AUD": true, "CAD": true, "IDR": true, "SGD": true,
}

func tripSetupKey(session string) string { return fmt.Sprintf("tripSetup:%s", session) }

// TripSetupService owns the persisted trip-setup record. It is the only writer
// of tripSetup:* keys.
type TripSetupService struct {
	store domain.Storage
	ttl   time.Duration

	mu sync.Mutex
}

// NewTripSetupService accepts a nil store; the service then always reports defaults.
func NewTripSetupService(s domain.Storage, ttl time.Duration) *TripSetupService {
	return &TripSetupService{store: s, ttl: ttl}
}

// Load never fails: missing, corrupt or unreachable records read as defaults.
func (s *TripSetupService) Load(ctx context.Context, session string) domain.TripSetup {
	if s.store == nil {
		return domain.DefaultTripSetup()
	}
	var ts domain.TripSetup
	ok, err := s.store.Get(ctx, tripSetupKey(session), &ts)
	if err != nil {
		log.Warn().Err(err).Str("session", session).Msg("trip setup unreadable, using defaults")
		return domain.DefaultTripSetup()
	}
	if !ok {
		return domain.DefaultTripSetup()
	}
	return ts
}

// Update validates patch, merges it into the stored record and persists the
// result. Invalid input is rejected with *domain.ValidationError and nothing is
// written. A failed write is logged; the merged record is still returned.
func (s *TripSetupService) Update(ctx context.Context, session string, patch domain.TripSetupPatch) (domain.TripSetup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.Load(ctx, session)
	np, err := NormalizePatch(patch)
	if err != nil {
		return cur, err
	}
	next := np.Apply(cur)
	if next.FromDate != "" && next.ToDate != "" && next.ToDate < next.FromDate {
		return cur, &domain.ValidationError{Field: "toDate", Reason: "must not be before fromDate"}
	}

	if s.store == nil {
		return next, nil
	}
	if err := s.store.Set(ctx, tripSetupKey(session), next, s.ttl); err != nil {
		log.Warn().Err(err).Str("session", session).Msg("trip setup not persisted")
	}
	return next, nil
}

// Clear removes the stored record and returns the defaults.
func (s *TripSetupService) Clear(ctx context.Context, session string) domain.TripSetup {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Del(ctx, tripSetupKey(session)); err != nil {
			log.Warn().Err(err).Str("session", session).Msg("trip setup not cleared")
		}
	}
	return domain.DefaultTripSetup()
}

// NormalizePatch clamps travelers, canonicalizes budget and currency, and
// checks date formats.
func NormalizePatch(p domain.TripSetupPatch) (domain.TripSetupPatch, error) {
	if p.Destination != nil {
		p.Destination = ptrTo(stripMarkup(*p.Destination))
	}
	if p.Travelers != nil && *p.Travelers < 1 {
		p.Travelers = ptrTo(1)
	}
	if p.Budget != nil {
		b, err := normalizeBudget(*p.Budget)
		if err != nil {
			return p, err
		}
		p.Budget = &b
	}
	if p.Currency != nil {
		c, err := normalizeCurrency(*p.Currency)
		if err != nil {
			return p, err
		}
		p.Currency = &c
	}
	for _, d := range []struct {
		field string
		val   *string
	}{{"fromDate", p.FromDate}, {"toDate", p.ToDate}} {
		if d.val == nil || *d.val == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, *d.val); err != nil {
			return p, &domain.ValidationError{Field: d.field, Reason: "must be YYYY-MM-DD"}
		}
	}
	if p.UserLocation != nil {
		p.UserLocation = ptrTo(stripMarkup(*p.UserLocation))
	}
	return p, nil
}

func normalizeCurrency(raw string) (string, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(raw)))
	if err != nil {
		return "", &domain.ValidationError{Field: "currency", Reason: fmt.Sprintf("%q is not an ISO 4217 code", raw)}
	}
	c := unit.String()
	if !supportedCurrencies[c] {
		return "", &domain.ValidationError{Field: "currency", Reason: fmt.Sprintf("unsupported currency %q", c)}
	}
	return c, nil
}

func normalizeBudget(raw string) (string, error) {
	b := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if b == "" {
		return "", nil
	}
	f, err := strconv.ParseFloat(b, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", &domain.ValidationError{Field: "budget", Reason: "must be a non-negative number"}
	}
	return b, nil
}

func ptrTo[T any](v T) *T { return &v }
