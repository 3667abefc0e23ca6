package catalog

import (
	"errors"
	"fmt"
	"time"

	"tripwise/internal/domain"
)

// Validate checks the invariants the query layer relies on and returns every
// violation joined together. A destination without an itinerary or a
// verification record is reported as *domain.IntegrityError.
func Validate(c *Catalog) error {
	var errs []error

	destIDs := make(map[string]bool, len(c.destinations))
	for _, d := range c.destinations {
		if d.ID == "" {
			errs = append(errs, errors.New("destination with empty id"))
			continue
		}
		if destIDs[d.ID] {
			errs = append(errs, fmt.Errorf("duplicate destination id %q", d.ID))
		}
		destIDs[d.ID] = true
		if d.ConfidenceScore < 0 || d.ConfidenceScore > 100 {
			errs = append(errs, fmt.Errorf("destination %q: confidence score %d out of range", d.ID, d.ConfidenceScore))
		}
	}

	itinCount := map[string]int{}
	for _, it := range c.itineraries {
		if !destIDs[it.DestinationID] {
			errs = append(errs, fmt.Errorf("itinerary %q references unknown destination %q", it.ID, it.DestinationID))
		}
		itinCount[it.DestinationID]++
		if it.EstBudget < 0 {
			errs = append(errs, fmt.Errorf("itinerary %q: negative budget", it.ID))
		}
		prev := 0
		for _, a := range it.DailyBreakdown {
			if a.Day <= prev {
				errs = append(errs, fmt.Errorf("itinerary %q: day %d out of order or repeated", it.ID, a.Day))
			}
			if a.EstimatedCost < 0 {
				errs = append(errs, fmt.Errorf("itinerary %q: day %d has negative cost", it.ID, a.Day))
			}
			prev = a.Day
		}
	}

	for _, tp := range c.tips {
		if _, ok := domain.ParsePlatform(string(tp.Platform)); !ok {
			errs = append(errs, fmt.Errorf("tip %q: unknown platform %q", tp.ID, tp.Platform))
		}
	}

	verCount := map[string]int{}
	for _, s := range c.sources {
		switch s.Type {
		case domain.SourceDestination, domain.SourceItinerary, domain.SourceInfluencer:
		default:
			errs = append(errs, fmt.Errorf("verified source %q: unknown type %q", s.SourceID, s.Type))
		}
		if s.ConfidenceScore < 0 || s.ConfidenceScore > 100 {
			errs = append(errs, fmt.Errorf("verified source %q: confidence score %d out of range", s.SourceID, s.ConfidenceScore))
		}
		if _, err := time.Parse(time.DateOnly, s.LastVerified); err != nil {
			errs = append(errs, fmt.Errorf("verified source %q: lastVerified %q is not YYYY-MM-DD", s.SourceID, s.LastVerified))
		}
		verCount[s.SourceID]++
	}

	for _, d := range c.destinations {
		switch n := itinCount[d.ID]; {
		case n == 0:
			errs = append(errs, &domain.IntegrityError{DestinationID: d.ID, Missing: "itinerary"})
		case n > 1:
			errs = append(errs, fmt.Errorf("destination %q has %d itineraries, want 1", d.ID, n))
		}
		switch n := verCount[d.ID]; {
		case n == 0:
			errs = append(errs, &domain.IntegrityError{DestinationID: d.ID, Missing: "verification"})
		case n > 1:
			errs = append(errs, fmt.Errorf("destination %q has %d verification records, want 1", d.ID, n))
		}
	}

	return errors.Join(errs...)
}
