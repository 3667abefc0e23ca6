// Package catalog holds the hand-authored destinations, itineraries, tips and
// verification records the product ships with.
package catalog

import "tripwise/internal/domain"

type Catalog struct {
	destinations []domain.CuratedDestination
	itineraries  []domain.RecommendedItinerary
	tips         []domain.InfluencerTip
	sources      []domain.VerifiedSource
}

func New(ds []domain.CuratedDestination, its []domain.RecommendedItinerary, tips []domain.InfluencerTip, srcs []domain.VerifiedSource) *Catalog {
	return &Catalog{
		destinations: append([]domain.CuratedDestination(nil), ds...),
		itineraries:  cloneItineraries(its),
		tips:         append([]domain.InfluencerTip(nil), tips...),
		sources:      append([]domain.VerifiedSource(nil), srcs...),
	}
}

func (c *Catalog) Destinations() []domain.CuratedDestination {
	return append([]domain.CuratedDestination(nil), c.destinations...)
}

func (c *Catalog) Itineraries() []domain.RecommendedItinerary { return cloneItineraries(c.itineraries) }

func (c *Catalog) Tips() []domain.InfluencerTip {
	return append([]domain.InfluencerTip(nil), c.tips...)
}

func (c *Catalog) Sources() []domain.VerifiedSource {
	return append([]domain.VerifiedSource(nil), c.sources...)
}

func cloneItineraries(in []domain.RecommendedItinerary) []domain.RecommendedItinerary {
	if in == nil {
		return nil
	}
	out := make([]domain.RecommendedItinerary, len(in))
	for i, it := range in {
		out[i] = CloneItinerary(it)
	}
	return out
}

// CloneItinerary copies the slices of it so callers cannot alias catalog data.
func CloneItinerary(it domain.RecommendedItinerary) domain.RecommendedItinerary {
	it.DailyBreakdown = append([]domain.DailyActivity(nil), it.DailyBreakdown...)
	it.Tags = append([]string(nil), it.Tags...)
	return it
}
