package catalog

import "tripwise/internal/domain"

// Default returns the catalog the product ships with.
func Default() *Catalog {
	return New(destinations, itineraries, tips, sources)
}

var destinations = []domain.CuratedDestination{
	{
		ID:                "dest-tokyo",
		City:              "Tokyo",
		Country:           "Japan",
		ConfidenceScore:   92,
		VerificationNotes: "Transit passes, opening hours and ryokan prices re-checked against official sources this month.",
		ImageURL:          "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf",
	},
	{
		ID:                "dest-paris",
		City:              "Paris",
		Country:           "France",
		ConfidenceScore:   88,
		VerificationNotes: "Museum booking rules and metro fares confirmed; some restaurant prices are from last season.",
		ImageURL:          "https://images.unsplash.com/photo-1502602898657-3e91760cbb34",
	},
	{
		ID:                "dest-bali",
		City:              "Bali",
		Country:           "Indonesia",
		ConfidenceScore:   85,
		VerificationNotes: "Retreat prices verified with operators; temple ceremony dates change yearly.",
		ImageURL:          "https://images.unsplash.com/photo-1537996194471-e657df975ab4",
	},
	{
		ID:                "dest-nyc",
		City:              "New York City",
		Country:           "United States",
		ConfidenceScore:   72,
		VerificationNotes: "Hotel rates move quickly; free-attraction list checked, Broadway lottery rules partially confirmed.",
		ImageURL:          "https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9",
	},
}

var itineraries = []domain.RecommendedItinerary{
	{
		ID:            "itin-tokyo-culture",
		DestinationID: "dest-tokyo",
		DailyBreakdown: []domain.DailyActivity{
			{Day: 1, Title: "Asakusa and Senso-ji", Description: "Morning at the temple, Nakamise street snacks, Sumida river walk.", EstimatedCost: 60},
			{Day: 2, Title: "Shibuya and Harajuku", Description: "Scramble crossing, Meiji Shrine, Takeshita street.", EstimatedCost: 90},
			{Day: 3, Title: "Tsukiji and Ginza", Description: "Outer market breakfast, teamLab, Ginza evening.", EstimatedCost: 140},
			{Day: 4, Title: "Day trip to Nikko", Description: "Toshogu shrine and Kegon falls by limited express.", EstimatedCost: 120},
		},
		EstBudget: 3200,
		Tags:      []string{"culture", "food", "city"},
	},
	{
		ID:            "itin-paris-art",
		DestinationID: "dest-paris",
		DailyBreakdown: []domain.DailyActivity{
			{Day: 1, Title: "Louvre and Tuileries", Description: "Timed-entry Louvre, picnic in the gardens.", EstimatedCost: 45},
			{Day: 2, Title: "Montmartre", Description: "Sacré-Cœur, Place du Tertre painters, bistro dinner.", EstimatedCost: 80},
			{Day: 3, Title: "Orsay and Seine cruise", Description: "Impressionists at Orsay, sunset river cruise.", EstimatedCost: 75},
		},
		EstBudget: 3500,
		Tags:      []string{"art", "romance", "food"},
	},
	{
		ID:            "itin-bali-wellness",
		DestinationID: "dest-bali",
		DailyBreakdown: []domain.DailyActivity{
			{Day: 1, Title: "Ubud arrival", Description: "Check in to a jungle retreat, evening yoga.", EstimatedCost: 70},
			{Day: 2, Title: "Rice terraces and spa", Description: "Tegallalang sunrise walk, Balinese massage.", EstimatedCost: 85},
			{Day: 3, Title: "Water temple", Description: "Tirta Empul purification, healthy cafe lunch.", EstimatedCost: 40},
			{Day: 4, Title: "Beach recovery", Description: "Uluwatu beach clubs and cliff temple at dusk.", EstimatedCost: 95},
		},
		EstBudget: 2200,
		Tags:      []string{"wellness", "beach", "nature"},
	},
	{
		ID:            "itin-nyc-budget",
		DestinationID: "dest-nyc",
		DailyBreakdown: []domain.DailyActivity{
			{Day: 1, Title: "Lower Manhattan on foot", Description: "Staten Island ferry, Brooklyn Bridge walk, DUMBO.", EstimatedCost: 25},
			{Day: 2, Title: "Central Park and museums", Description: "Pay-what-you-wish hours, park picnic.", EstimatedCost: 40},
			{Day: 3, Title: "High Line and Chelsea", Description: "High Line, Chelsea Market, Hudson Yards at night.", EstimatedCost: 55},
		},
		EstBudget: 1800,
		Tags:      []string{"budget", "city"},
	},
}

var tips = []domain.InfluencerTip{
	{ID: "tip-1", Handle: "@tokyofoodlog", Platform: domain.PlatformInstagram, Summary: "Buy a Suica on your phone before landing; queues at Narita are long.", ProofLink: "https://instagram.com/p/tokyofoodlog-suica"},
	{ID: "tip-2", Handle: "@parisonabudget", Platform: domain.PlatformTikTok, Summary: "First Sunday of the month many museums are free, book the slot anyway.", ProofLink: "https://tiktok.com/@parisonabudget/video/1"},
	{ID: "tip-3", Handle: "BaliSlowTravel", Platform: domain.PlatformYouTube, Summary: "Hire a driver for the day instead of ride-hailing around Ubud.", ProofLink: "https://youtube.com/watch?v=balislow01"},
	{ID: "tip-4", Handle: "nycfreebies.blog", Platform: domain.PlatformBlog, Summary: "Rush tickets and lotteries beat the TKTS booth for popular shows.", ProofLink: "https://nycfreebies.blog/broadway-lottery"},
	{ID: "tip-5", Handle: "@nihonrails", Platform: domain.PlatformYouTube, Summary: "The JR pass rarely pays off for Tokyo-only stays.", ProofLink: "https://youtube.com/watch?v=nihonrails7"},
	{ID: "tip-6", Handle: "@seinesideeats", Platform: domain.PlatformInstagram, Summary: "Order the formule du midi; dinner menus cost twice as much.", ProofLink: "https://instagram.com/p/seinesideeats-midi"},
}

var sources = []domain.VerifiedSource{
	{Type: domain.SourceDestination, SourceID: "dest-tokyo", ConfidenceScore: 92, LastVerified: "2024-05-02"},
	{Type: domain.SourceDestination, SourceID: "dest-paris", ConfidenceScore: 88, LastVerified: "2024-04-18"},
	{Type: domain.SourceDestination, SourceID: "dest-bali", ConfidenceScore: 85, LastVerified: "2024-04-27"},
	{Type: domain.SourceDestination, SourceID: "dest-nyc", ConfidenceScore: 72, LastVerified: "2024-03-09"},
	{Type: domain.SourceItinerary, SourceID: "itin-bali-wellness", ConfidenceScore: 80, LastVerified: "2024-04-27"},
	{Type: domain.SourceInfluencer, SourceID: "tip-4", ConfidenceScore: 65, LastVerified: "2024-02-14"},
}
