package app

import (
	"fmt"
	"sort"
	"strings"

	"tripwise/internal/catalog"
	"tripwise/internal/domain"
)

// QueryService answers read-only questions about the catalog. Every method is
// a pure function of the catalog it was built from.
type QueryService struct {
	cat   *catalog.Catalog
	plans []domain.TripPlan
}

// NewQueryService builds the trip-plan list once so catalog authoring mistakes
// surface at startup instead of on the first request.
func NewQueryService(c *catalog.Catalog) (*QueryService, error) {
	s := &QueryService{cat: c}
	plans, err := s.BuildTripPlans()
	if err != nil {
		return nil, err
	}
	s.plans = plans
	return s, nil
}

// FilterDestinations matches q case-insensitively against city or country; empty q returns all.
func (s *QueryService) FilterDestinations(q string) []domain.CuratedDestination {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []domain.CuratedDestination{}
	for _, d := range s.cat.Destinations() {
		if q == "" ||
			strings.Contains(strings.ToLower(d.City), q) ||
			strings.Contains(strings.ToLower(d.Country), q) {
			out = append(out, d)
		}
	}
	return out
}

// GetDestination looks up a destination by id, wrapping domain.ErrNotFound when absent.
func (s *QueryService) GetDestination(id string) (domain.CuratedDestination, error) {
	for _, d := range s.cat.Destinations() {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.CuratedDestination{}, fmt.Errorf("destination %q: %w", id, domain.ErrNotFound)
}

// FilterItineraries returns itineraries matching every set field of q.
func (s *QueryService) FilterItineraries(q domain.ItineraryQuery) []domain.RecommendedItinerary {
	out := []domain.RecommendedItinerary{}
	for _, it := range s.cat.Itineraries() {
		if matchItinerary(it, q) {
			out = append(out, it)
		}
	}
	return out
}

func matchItinerary(it domain.RecommendedItinerary, q domain.ItineraryQuery) bool {
	if q.DestinationID != nil && *q.DestinationID != "" && it.DestinationID != *q.DestinationID {
		return false
	}
	if q.MaxBudget != nil && it.EstBudget > *q.MaxBudget {
		return false
	}
	if q.Tag != nil && *q.Tag != "" && !it.HasTag(*q.Tag) {
		return false
	}
	return true
}

// FilterTips returns tips published on platform; an empty platform returns all.
func (s *QueryService) FilterTips(platform string) []domain.InfluencerTip {
	platform = strings.TrimSpace(platform)
	out := []domain.InfluencerTip{}
	for _, tp := range s.cat.Tips() {
		if platform == "" || strings.EqualFold(string(tp.Platform), platform) {
			out = append(out, tp)
		}
	}
	return out
}

// BuildTripPlans joins every destination with its first itinerary, its first
// verification record and the tips assigned to it round-robin by index.
func (s *QueryService) BuildTripPlans() ([]domain.TripPlan, error) {
	dests := s.cat.Destinations()
	its := s.cat.Itineraries()
	tips := s.cat.Tips()
	srcs := s.cat.Sources()

	plans := make([]domain.TripPlan, 0, len(dests))
	for di, d := range dests {
		it, ok := firstItinerary(its, d.ID)
		if !ok {
			return nil, &domain.IntegrityError{DestinationID: d.ID, Missing: "itinerary"}
		}
		ver, ok := firstSource(srcs, d.ID)
		if !ok {
			return nil, &domain.IntegrityError{DestinationID: d.ID, Missing: "verification"}
		}
		assigned := []domain.InfluencerTip{}
		for ti, tp := range tips {
			if ti%len(dests) == di {
				assigned = append(assigned, tp)
			}
		}
		plans = append(plans, domain.TripPlan{
			Destination:  d,
			Itinerary:    it,
			Tips:         assigned,
			Verification: ver,
		})
	}
	return plans, nil
}

func firstItinerary(its []domain.RecommendedItinerary, destID string) (domain.RecommendedItinerary, bool) {
	for _, it := range its {
		if it.DestinationID == destID {
			return it, true
		}
	}
	return domain.RecommendedItinerary{}, false
}

func firstSource(srcs []domain.VerifiedSource, id string) (domain.VerifiedSource, bool) {
	for _, v := range srcs {
		if v.SourceID == id {
			return v, true
		}
	}
	return domain.VerifiedSource{}, false
}

// FilterTripPlans applies the itinerary filters to the pre-built plan list.
func (s *QueryService) FilterTripPlans(q domain.ItineraryQuery) []domain.TripPlan {
	out := []domain.TripPlan{}
	for _, p := range s.plans {
		if matchItinerary(p.Itinerary, q) {
			out = append(out, deepCopyTripPlan(p))
		}
	}
	return out
}

func deepCopyTripPlan(in domain.TripPlan) domain.TripPlan {
	out := in
	out.Itinerary = catalog.CloneItinerary(in.Itinerary)
	out.Tips = append([]domain.InfluencerTip{}, in.Tips...)
	return out
}

// GetConfidenceScore returns 0 for unknown destinations.
func (s *QueryService) GetConfidenceScore(destinationID string) int {
	d, err := s.GetDestination(destinationID)
	if err != nil {
		return 0
	}
	return d.ConfidenceScore
}

// BuildVerifiedContextSummary names the destination count and the three
// best-verified destinations. Ties keep catalog order.
func (s *QueryService) BuildVerifiedContextSummary() string {
	ds := s.cat.Destinations()
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].ConfidenceScore > ds[j].ConfidenceScore })
	if len(ds) > 3 {
		ds = ds[:3]
	}
	top := make([]string, 0, len(ds))
	for _, d := range ds {
		top = append(top, fmt.Sprintf("%s, %s (confidence %d/100)", d.City, d.Country, d.ConfidenceScore))
	}
	total := len(s.cat.Destinations())
	if len(top) == 0 {
		return fmt.Sprintf("%d verified destinations available.", total)
	}
	return fmt.Sprintf("%d verified destinations available. Top verified: %s.", total, strings.Join(top, "; "))
}
