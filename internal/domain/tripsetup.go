package domain

// TripSetup is the in-progress trip query a user fills in before chatting or browsing plans.
type TripSetup struct {
	Destination  string  `json:"destination"`
	FromDate     string  `json:"fromDate"`
	ToDate       string  `json:"toDate"`
	Travelers    int     `json:"travelers"`
	Budget       string  `json:"budget"`
	Currency     string  `json:"currency"`
	UseNearMe    bool    `json:"useNearMe"`
	UserLocation *string `json:"userLocation,omitempty"`
}

const DefaultCurrency = "USD"

func DefaultTripSetup() TripSetup {
	return TripSetup{Travelers: 1, Currency: DefaultCurrency}
}

// TripSetupPatch carries the fields of a partial update; nil means "keep".
type TripSetupPatch struct {
	Destination  *string `json:"destination,omitempty"`
	FromDate     *string `json:"fromDate,omitempty"`
	ToDate       *string `json:"toDate,omitempty"`
	Travelers    *int    `json:"travelers,omitempty"`
	Budget       *string `json:"budget,omitempty"`
	Currency     *string `json:"currency,omitempty"`
	UseNearMe    *bool   `json:"useNearMe,omitempty"`
	UserLocation *string `json:"userLocation,omitempty"`
}

// Apply returns ts with every non-nil patch field copied over.
// An empty UserLocation clears the stored location.
func (p TripSetupPatch) Apply(ts TripSetup) TripSetup {
	if p.Destination != nil {
		ts.Destination = *p.Destination
	}
	if p.FromDate != nil {
		ts.FromDate = *p.FromDate
	}
	if p.ToDate != nil {
		ts.ToDate = *p.ToDate
	}
	if p.Travelers != nil {
		ts.Travelers = *p.Travelers
	}
	if p.Budget != nil {
		ts.Budget = *p.Budget
	}
	if p.Currency != nil {
		ts.Currency = *p.Currency
	}
	if p.UseNearMe != nil {
		ts.UseNearMe = *p.UseNearMe
	}
	if p.UserLocation != nil {
		if *p.UserLocation == "" {
			ts.UserLocation = nil
		} else {
			loc := *p.UserLocation
			ts.UserLocation = &loc
		}
	}
	return ts
}
