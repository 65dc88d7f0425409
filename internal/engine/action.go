package engine

import (
	"fmt"

	"github.com/beastbrawl/beastbrawl/internal/game"
)

// Action priorities: lower values resolve first within a round. Moves are
// slower than the default actions, offset further by their own speed.
const (
	defaultActionPriority    = 0
	speedBasedActionPriority = 1
)

// Narrative messages shared by the action implementations.
const (
	fleeSuccessMessage = "Got away safely!"
	fleeFailureMessage = "Unable to escape a trainer battle."

	captureInvalidBattleMessage = "Capture orbs have no effect in trainer battles."
	captureEscapedMessage       = "It was so close, but %s escaped!"
	captureSuccessMessage       = "%s was caught!"
	captureFullRosterMessage    = "%s was caught, but there was no more room."
)

// Action is anything that takes up a turn in battle: applying one moves the
// battle from one state to the next.
type Action interface {
	// Priority orders actions within a round; lower resolves first.
	Priority() int
	// IsValid reports whether the action could be applied by the side under
	// the current battle state. A RosterEmpty condition is returned as an
	// error rather than a false result.
	IsValid(b *Battle, side Side) (bool, error)
	// Apply mutates the battle state and returns the narrative summary.
	Apply(b *Battle, side Side) (*game.Summary, error)
}

// baseValid is the validity every action shares: the battle is not over and
// the turn is either unset or waiting on the acting side.
func baseValid(b *Battle, side Side) bool {
	if b.IsOver() {
		return false
	}
	return b.turn == TurnUnset || b.turn == waitingOn(side)
}

// Flee is an attempt to run away from the battle. It is a valid (turn
// consuming) action even in trainer battles, where it merely fails.
type Flee struct{}

func (Flee) Priority() int { return defaultActionPriority }

func (Flee) IsValid(b *Battle, side Side) (bool, error) {
	active, err := b.Trainer(side).ActiveCreature()
	if err != nil {
		return false, err
	}
	return baseValid(b, side) && !active.HasFainted(), nil
}

func (Flee) Apply(b *Battle, side Side) (*game.Summary, error) {
	b.AttemptEndEarly()
	if b.IsTrainerBattle() {
		return game.NewSummary(fleeFailureMessage), nil
	}
	return game.NewSummary(fleeSuccessMessage), nil
}

// Switch changes the acting side's active creature to the given roster index.
type Switch struct {
	Index int
}

func (Switch) Priority() int { return defaultActionPriority }

func (a Switch) IsValid(b *Battle, side Side) (bool, error) {
	if !baseValid(b, side) {
		return false, nil
	}
	return b.Trainer(side).CanSwitchTo(a.Index), nil
}

func (a Switch) Apply(b *Battle, side Side) (*game.Summary, error) {
	trainer := b.Trainer(side)
	previous, err := trainer.ActiveCreature()
	if err != nil {
		return nil, err
	}
	next := trainer.Creatures()[a.Index]
	trainer.SwitchTo(a.Index)

	summary := game.NewSummary()
	if side == SideFirst && !previous.HasFainted() {
		summary.Add(fmt.Sprintf("%s, return!", previous.Name()))
	}
	summary.Add(fmt.Sprintf("%s switched to %s.", trainer.Name(), next.Name()))
	return summary, nil
}
