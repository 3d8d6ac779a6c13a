package apifootball

// The shapes below cover only the fields persisted by the sync service.
// Everything else is passed through as raw JSON.

// LeagueItem is one element of /leagues.
type LeagueItem struct {
	League struct {
		ID   int64   `json:"id"`
		Name string  `json:"name"`
		Type *string `json:"type"`
		Logo *string `json:"logo"`
	} `json:"league"`
	Country struct {
		Name *string `json:"name"`
		Code *string `json:"code"`
		Flag *string `json:"flag"`
	} `json:"country"`
	Seasons []SeasonItem `json:"seasons"`
}

// SeasonItem is a season inside a LeagueItem.
type SeasonItem struct {
	Year    int     `json:"year"`
	Start   *string `json:"start"`
	End     *string `json:"end"`
	Current bool    `json:"current"`
}

// TeamItem is one element of /teams.
type TeamItem struct {
	Team struct {
		ID       int64   `json:"id"`
		Name     string  `json:"name"`
		Code     *string `json:"code"`
		Country  *string `json:"country"`
		Founded  *int64  `json:"founded"`
		National bool    `json:"national"`
		Logo     *string `json:"logo"`
	} `json:"team"`
	Venue *VenueItem `json:"venue"`
}

// VenueItem is the venue block of a TeamItem.
type VenueItem struct {
	ID       *int64  `json:"id"`
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Capacity *int64  `json:"capacity"`
	Surface  *string `json:"surface"`
}
