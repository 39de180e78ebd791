package x01

import (
	"errors"
	"fmt"
)

// Player identifies one of the two sides of a match.
type Player int

const (
	NoPlayer Player = 0
	Player1  Player = 1
	Player2  Player = 2
)

func (p Player) Other() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p Player) idx() int { return int(p) - 1 }

func (p Player) Valid() bool { return p == Player1 || p == Player2 }

// Format controls how many legs (or sets) are needed to win.
type Format string

const (
	BestOf  Format = "best-of"
	PlayAll Format = "play-all"
)

// StartMode is the entry requirement for a leg.
type StartMode string

const (
	StraightIn StartMode = "straight-in"
	DoubleIn   StartMode = "double-in"
)

// FinishMode is the checkout requirement for a leg.
type FinishMode string

const (
	StraightOut FinishMode = "straight-out"
	DoubleOut   FinishMode = "double-out"
)

// StarterPolicy selects who throws first in each leg.
type StarterPolicy string

const (
	AlternateStart StarterPolicy = "alternate"
	BullUpStart    StarterPolicy = "bull-up"
)

// Settings describe the rules of a match. They are fixed for the duration of
// a leg; changes requested mid-match are staged and applied at the next
// leg or set boundary.
type Settings struct {
	StartScore    int           `json:"startScore" toml:"start_score"`
	StartMode     StartMode     `json:"startMode" toml:"start_mode"`
	FinishMode    FinishMode    `json:"finishMode" toml:"finish_mode"`
	LegsFormat    Format        `json:"legsFormat" toml:"legs_format"`
	TotalLegs     int           `json:"totalLegs" toml:"total_legs"`
	SetsFormat    Format        `json:"setsFormat" toml:"sets_format"`
	TotalSets     int           `json:"totalSets" toml:"total_sets"`
	StarterPolicy StarterPolicy `json:"starterPolicy" toml:"starter_policy"`
	RandomStart   bool          `json:"randomStart" toml:"random_start"`
	BullLastLeg   bool          `json:"bullLastLeg" toml:"bull_last_leg"`
	FirstStarter  Player        `json:"firstStarter" toml:"first_starter"`
}

func DefaultSettings() Settings {
	return Settings{
		StartScore:    501,
		StartMode:     StraightIn,
		FinishMode:    DoubleOut,
		LegsFormat:    BestOf,
		TotalLegs:     3,
		SetsFormat:    BestOf,
		TotalSets:     1,
		StarterPolicy: AlternateStart,
		FirstStarter:  Player1,
	}
}

var ErrBadSettings = errors.New("invalid match settings")

func (s Settings) Validate() error {
	if s.StartScore < 2 {
		return fmt.Errorf("%w: start score %d", ErrBadSettings, s.StartScore)
	}
	if s.TotalLegs < 1 || s.TotalSets < 1 {
		return fmt.Errorf("%w: need at least one leg and one set", ErrBadSettings)
	}
	if !s.FirstStarter.Valid() {
		return fmt.Errorf("%w: first starter must be player 1 or 2", ErrBadSettings)
	}
	return nil
}

// LegsToWin returns how many leg wins take the set.
func (s Settings) LegsToWin() int {
	if s.LegsFormat == PlayAll {
		return s.TotalLegs
	}
	return s.TotalLegs/2 + 1
}

// SetsToWin returns how many set wins take the match.
func (s Settings) SetsToWin() int {
	if s.SetsFormat == PlayAll {
		return s.TotalSets
	}
	return s.TotalSets/2 + 1
}
