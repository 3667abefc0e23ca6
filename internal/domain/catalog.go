package domain

import "strings"

type CuratedDestination struct {
	ID                string `json:"id"`
	City              string `json:"city"`
	Country           string `json:"country"`
	ConfidenceScore   int    `json:"confidenceScore"` // 0..100
	VerificationNotes string `json:"verificationNotes"`
	ImageURL          string `json:"image"`
}

type DailyActivity struct {
	Day           int     `json:"day"` // 1-based
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	EstimatedCost float64 `json:"estimatedCost"`
}

type RecommendedItinerary struct {
	ID             string          `json:"id"`
	DestinationID  string          `json:"destinationId"`
	DailyBreakdown []DailyActivity `json:"dailyBreakdown"`
	EstBudget      float64         `json:"estBudget"`
	Tags           []string        `json:"tags"`
}

// HasTag reports whether tag is one of the itinerary tags, ignoring case.
func (it RecommendedItinerary) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformBlog      Platform = "blog"
)

// ParsePlatform normalizes p and reports whether it is a known platform.
func ParsePlatform(p string) (Platform, bool) {
	switch v := Platform(strings.ToLower(strings.TrimSpace(p))); v {
	case PlatformInstagram, PlatformTikTok, PlatformYouTube, PlatformBlog:
		return v, true
	}
	return "", false
}

type InfluencerTip struct {
	ID        string   `json:"id"`
	Handle    string   `json:"handle"`
	Platform  Platform `json:"platform"`
	Summary   string   `json:"summary"`
	ProofLink string   `json:"proofLink"`
}

type SourceType string

const (
	SourceDestination SourceType = "destination"
	SourceItinerary   SourceType = "itinerary"
	SourceInfluencer  SourceType = "influencer"
)

type VerifiedSource struct {
	Type            SourceType `json:"type"`
	SourceID        string     `json:"sourceId"`
	ConfidenceScore int        `json:"confidenceScore"`
	LastVerified    string     `json:"lastVerified"` // YYYY-MM-DD
}

// TripPlan is derived by joining a destination with its itinerary, tips and verification.
type TripPlan struct {
	Destination  CuratedDestination   `json:"destination"`
	Itinerary    RecommendedItinerary `json:"itinerary"`
	Tips         []InfluencerTip      `json:"influencerTips"`
	Verification VerifiedSource       `json:"verification"`
}

// ItineraryQuery filters itineraries and trip plans. Nil fields match everything.
type ItineraryQuery struct {
	DestinationID *string
	MaxBudget     *float64
	Tag           *string
}
