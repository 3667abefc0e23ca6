package domain

type ChatMessage struct {
	Role    string `json:"role"` // user|assistant
	Content string `json:"content"`
}

type ChatReply struct {
	Response string `json:"response"`
}

// TravelPreferences is the summary the summarize endpoint extracts from a conversation.
type TravelPreferences struct {
	Destination string   `json:"destination,omitempty"`
	Budget      string   `json:"budget,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Travelers   int      `json:"travelers,omitempty"`
	TravelStyle string   `json:"travelStyle,omitempty"`
	Interests   []string `json:"interests,omitempty"`
}

type GeneratedPlan struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Destination   string          `json:"destination"`
	Duration      string          `json:"duration,omitempty"`
	EstimatedCost float64         `json:"estimatedCost"`
	Highlights    []string        `json:"highlights,omitempty"`
	Itinerary     []DailyActivity `json:"itinerary,omitempty"`
}

// Handoff is what the chat page leaves behind for the plans page.
type Handoff struct {
	Preferences *TravelPreferences `json:"preferences"`
	Plans       []GeneratedPlan    `json:"plans"`
}
