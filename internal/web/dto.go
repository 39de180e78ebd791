package web

import (
	"errors"
	"strconv"

	"dartserver/internal/x01"

	"github.com/google/uuid"
)

type createMatch struct {
	Home     uuid.UUID    `json:"homeId"`
	Away     uuid.UUID    `json:"awayId"`
	Settings x01.Settings `json:"settings"`
}

var (
	ErrMissingPlayer = errors.New("both players must be picked")
	ErrSamePlayer    = errors.New("a player cannot play against themselves")
)

func (c createMatch) Validate() error {
	if c.Home.ID() == 0 || c.Away.ID() == 0 {
		return ErrMissingPlayer
	}
	if c.Home == c.Away {
		return ErrSamePlayer
	}
	return nil
}

// gameInput is one scorer action on a running match. Action picks the
// operation; the remaining fields carry its arguments.
type gameInput struct {
	Action   string        `json:"action"`
	Digit    string        `json:"digit,omitempty"`
	Total    int           `json:"total,omitempty"`
	Darts    int           `json:"darts,omitempty"`
	OnDouble bool          `json:"onDouble,omitempty"`
	Player   int           `json:"player,omitempty"`
	Turn     int           `json:"turn,omitempty"`
	Draw     bool          `json:"draw,omitempty"`
	Settings *x01.Settings `json:"settings,omitempty"`
}

const (
	actionDigit     = "digit"
	actionDart      = "dart"
	actionMultiply  = "multiply"
	actionZero      = "zero"
	actionMiss      = "miss"
	actionConfirm   = "confirm"
	actionQuick     = "quick"
	actionCheckout  = "checkout"
	actionBust      = "bust"
	actionUndo      = "undo"
	actionEdit      = "edit"
	actionApplyEdit = "apply-edit"
	actionContinue  = "continue"
	actionForfeit   = "forfeit"
	actionSettings  = "settings"
	actionStarter   = "leg-starter"
)

var ErrUnknownAction = errors.New("unknown game action")

func (g gameInput) Validate() error {
	switch g.Action {
	case actionDigit:
		if len(g.Digit) != 1 {
			return errors.New("digit action needs a single digit")
		}
		if _, err := strconv.Atoi(g.Digit); err != nil {
			return errors.New("digit action needs a single digit")
		}
	case actionQuick:
		if g.Total < 0 || g.Total > 180 {
			return errors.New("quick score must be between 0 and 180")
		}
	case actionCheckout:
		if g.Darts < 1 || g.Darts > 3 {
			return errors.New("checkout needs 1 to 3 darts")
		}
	case actionEdit:
		if !g.player().Valid() {
			return errors.New("edit needs a player")
		}
		if g.Turn < 0 {
			return errors.New("edit needs a turn index")
		}
	case actionForfeit:
		if !g.Draw && !g.player().Valid() {
			return errors.New("forfeit needs the quitting player or a draw")
		}
	case actionStarter:
		if !g.player().Valid() {
			return errors.New("leg starter needs a player")
		}
	case actionSettings:
		if g.Settings == nil {
			return errors.New("settings action needs settings")
		}
	case actionDart, actionMultiply, actionZero, actionMiss, actionConfirm,
		actionBust, actionUndo, actionApplyEdit, actionContinue:
	default:
		return ErrUnknownAction
	}
	return nil
}

func (g gameInput) player() x01.Player {
	return x01.Player(g.Player)
}

func (g gameInput) digit() rune {
	return rune(g.Digit[0])
}
