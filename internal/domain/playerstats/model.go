package playerstats

// PlayerStats are derived counters for one player in one competition.
// Counters only ever increase; corrections happen by replaying the event
// log from empty state.
type PlayerStats struct {
	PlayerID         string `json:"playerId"`
	CompetitionID    string `json:"competitionId"`
	PlayerName       string `json:"playerName,omitempty"`
	Appearances      int    `json:"appearances"`
	Goals            int    `json:"goals"`
	Assists          int    `json:"assists"`
	YellowCards      int    `json:"yellowCards"`
	RedCards         int    `json:"redCards"`
	SubstitutionsOn  int    `json:"substitutionsOn"`
	SubstitutionsOff int    `json:"substitutionsOff"`
	PenaltiesScored  int    `json:"penaltiesScored"`
	PenaltiesMissed  int    `json:"penaltiesMissed"`
}

// Delta is one atomic increment applied to a player's counters.
type Delta struct {
	Appearances      int
	Goals            int
	Assists          int
	YellowCards      int
	RedCards         int
	SubstitutionsOn  int
	SubstitutionsOff int
	PenaltiesScored  int
	PenaltiesMissed  int
}

func (d Delta) IsZero() bool {
	return d == Delta{}
}
