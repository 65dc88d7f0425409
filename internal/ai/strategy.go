package ai

import (
	"strings"

	"github.com/beastbrawl/beastbrawl/internal/engine"
	"github.com/beastbrawl/beastbrawl/internal/game"
)

// Strategy decides the next action for a side without ever mutating the
// battle. Implementations must only return actions that would pass their own
// validity check under the current state.
type Strategy interface {
	NextAction(b *engine.Battle, side engine.Side) (engine.Action, error)
}

// switchToNextCreature returns a switch to the first non-fainted roster
// member, or nil if none remains.
func switchToNextCreature(trainer *game.Trainer) engine.Action {
	for i, c := range trainer.Creatures() {
		if !c.HasFainted() {
			return engine.Switch{Index: i}
		}
	}
	return nil
}

// firstUsableMove returns the first known move with uses remaining, in the
// creature's name-sorted move order, or nil.
func firstUsableMove(c *game.Creature) engine.Action {
	for _, mu := range c.MoveInfo() {
		if mu.Uses == 0 {
			continue
		}
		if act, ok := mu.Move.(engine.Action); ok {
			return act
		}
	}
	return nil
}

// Basic is a competent default policy: replace a fainted creature, use the
// first move with uses, and flee when nothing else is possible.
type Basic struct{}

func (Basic) NextAction(b *engine.Battle, side engine.Side) (engine.Action, error) {
	trainer := b.Trainer(side)
	active, err := trainer.ActiveCreature()
	if err != nil {
		return nil, err
	}
	if active.HasFainted() {
		if sw := switchToNextCreature(trainer); sw != nil {
			return sw, nil
		}
		return engine.Flee{}, nil
	}
	if mv := firstUsableMove(active); mv != nil {
		return mv, nil
	}
	return engine.Flee{}, nil
}

// Skittish always attempts to flee, switching to the next available creature
// only when the current one faints.
type Skittish struct{}

func (Skittish) NextAction(b *engine.Battle, side engine.Side) (engine.Action, error) {
	trainer := b.Trainer(side)
	active, err := trainer.ActiveCreature()
	if err != nil {
		return nil, err
	}
	if active.HasFainted() {
		if sw := switchToNextCreature(trainer); sw != nil {
			return sw, nil
		}
	}
	return engine.Flee{}, nil
}

// Rogue is a scripted antagonist policy:
//  1. switch to the next available creature if the current one faints;
//  2. flee any wild battle;
//  3. throw capture orbs at an enemy creature matching the target name,
//     if any are in the inventory;
//  4. otherwise use the first usable move that is super-effective against
//     the defender's type;
//  5. otherwise use the first usable move;
//  6. flee as a last resort.
type Rogue struct {
	// TargetName is the creature the rogue wants to capture on sight.
	TargetName string
}

func (r Rogue) NextAction(b *engine.Battle, side engine.Side) (engine.Action, error) {
	trainer := b.Trainer(side)
	active, err := trainer.ActiveCreature()
	if err != nil {
		return nil, err
	}
	if active.HasFainted() {
		if sw := switchToNextCreature(trainer); sw != nil {
			return sw, nil
		}
		return engine.Flee{}, nil
	}
	if !b.IsTrainerBattle() {
		return engine.Flee{}, nil
	}

	enemy, err := b.Trainer(side.Opponent()).ActiveCreature()
	if err != nil {
		return nil, err
	}

	// Inventory iteration follows insertion order; which orb wins when
	// several are held is reproducible but not a documented contract.
	if r.TargetName != "" && strings.EqualFold(enemy.Name(), r.TargetName) {
		for _, entry := range trainer.Inventory() {
			if orb, ok := entry.Item.(*engine.CaptureOrb); ok {
				return orb, nil
			}
		}
	}

	for _, mu := range active.MoveInfo() {
		if mu.Uses == 0 {
			continue
		}
		if b.Effectiveness(mu.Move.ElementType(), enemy.ElementType()) > 1 {
			if act, ok := mu.Move.(engine.Action); ok {
				return act, nil
			}
		}
	}

	if mv := firstUsableMove(active); mv != nil {
		return mv, nil
	}
	return engine.Flee{}, nil
}
