package teamstats

// TeamStats are derived counters for one team in one competition.
type TeamStats struct {
	TeamID        string `json:"teamId"`
	CompetitionID string `json:"competitionId"`
	TeamName      string `json:"teamName,omitempty"`
	Goals         int    `json:"goals"`
	YellowCards   int    `json:"yellowCards"`
	RedCards      int    `json:"redCards"`
	Wins          int    `json:"wins"`
	Draws         int    `json:"draws"`
	Losses        int    `json:"losses"`
}

// Delta is one atomic increment applied to a team's counters.
type Delta struct {
	Goals       int
	YellowCards int
	RedCards    int
	Wins        int
	Draws       int
	Losses      int
}

func (d Delta) IsZero() bool {
	return d == Delta{}
}
