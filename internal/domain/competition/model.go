package competition

import "github.com/cockroachdb/errors"

var (
	// ErrNotFound is returned when the competition itself does not exist.
	ErrNotFound = errors.New("competition not found")

	// ErrPhaseNotFound is returned when a request targets a phase the
	// competition does not have. Missing phases are errors, never silent
	// empty results.
	ErrPhaseNotFound = errors.New("competition phase not found")

	// ErrRoundNotFound is returned for a round number outside the league
	// phase's round list.
	ErrRoundNotFound = errors.New("round not found")

	// ErrRoundNotEmpty guards bulk match assignment: a round accepts a
	// batch only while it holds zero matches.
	ErrRoundNotEmpty = errors.New("round already contains matches")
)

// Competition holds one or two phases. Either pointer may be nil.
type Competition struct {
	ID       string
	Name     string
	Season   string
	League   *LeaguePhase
	Knockout *KnockoutPhase
}

type LeaguePhase struct {
	Rounds []Round
}

// Round groups the matches of one league matchday.
type Round struct {
	Number   int
	MatchIDs []string
}

type KnockoutPhase struct {
	Stages []Stage
}

// Stage is one knockout level, e.g. "SEMI_FINAL". Stages are ordered from
// the earliest to the final.
type Stage struct {
	Name string
	Ties []Tie
}

// Tie pairs two teams over one or two legs. SecondLegID is empty for
// single-leg ties.
type Tie struct {
	HomeTeamID  string
	AwayTeamID  string
	FirstLegID  string
	SecondLegID string
}

// TwoLegged reports whether the tie aggregates two matches.
func (t Tie) TwoLegged() bool {
	return t.SecondLegID != ""
}

// LeagueRound returns the round with the given number.
func (c Competition) LeagueRound(number int) (Round, error) {
	if c.League == nil {
		return Round{}, errors.Wrapf(ErrPhaseNotFound, "competition %s has no league phase", c.ID)
	}
	for _, round := range c.League.Rounds {
		if round.Number == number {
			return round, nil
		}
	}
	return Round{}, errors.Wrapf(ErrRoundNotFound, "competition %s round %d", c.ID, number)
}
