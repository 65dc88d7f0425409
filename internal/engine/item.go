package engine

import (
	"fmt"

	"github.com/beastbrawl/beastbrawl/internal/game"
)

// itemSpec carries what every consumable shares: a name. Items are
// identified by instance, matching how inventories track them.
type itemSpec struct {
	name string
}

func (i *itemSpec) Name() string  { return i.name }
func (i *itemSpec) Priority() int { return defaultActionPriority }

// itemValid is the validity shared by all items: base action validity, the
// acting creature has not fainted, and the item is present in the acting
// side's inventory with at least one use left.
func itemValid(b *Battle, side Side, item game.Item) (bool, error) {
	active, err := b.Trainer(side).ActiveCreature()
	if err != nil {
		return false, err
	}
	if !baseValid(b, side) || active.HasFainted() {
		return false, nil
	}
	return b.Trainer(side).HasItem(item), nil
}

// CaptureOrb attempts to catch the opposing active creature in a wild
// battle. A use is consumed no matter the outcome, and capture has no
// effect in trainer battles.
type CaptureOrb struct {
	itemSpec
	catchChance float64
}

// NewCaptureOrb builds a capture orb with the given catch probability.
func NewCaptureOrb(name string, catchChance float64) *CaptureOrb {
	return &CaptureOrb{itemSpec: itemSpec{name: name}, catchChance: catchChance}
}

func (o *CaptureOrb) CatchChance() float64 { return o.catchChance }

func (o *CaptureOrb) IsValid(b *Battle, side Side) (bool, error) {
	return itemValid(b, side, o)
}

func (o *CaptureOrb) Apply(b *Battle, side Side) (*game.Summary, error) {
	capturer := b.Trainer(side)
	capturer.ConsumeItem(o)

	if b.IsTrainerBattle() {
		return game.NewSummary(captureInvalidBattleMessage), nil
	}

	target, err := b.Trainer(side.Opponent()).ActiveCreature()
	if err != nil {
		return nil, err
	}
	if !b.Roll(o.catchChance) {
		return game.NewSummary(fmt.Sprintf(captureEscapedMessage, target.Name())), nil
	}

	var summary *game.Summary
	if capturer.CanAdd(target) {
		capturer.Add(target)
		summary = game.NewSummary(fmt.Sprintf(captureSuccessMessage, target.Name()))
	} else {
		summary = game.NewSummary(fmt.Sprintf(captureFullRosterMessage, target.Name()))
	}
	b.AttemptEndEarly()
	return summary, nil
}

// Snack restores a fixed amount of health to the acting side's active
// creature.
type Snack struct {
	itemSpec
	healthRestored int
}

// NewSnack builds a restorative item healing the given amount.
func NewSnack(name string, healthRestored int) *Snack {
	return &Snack{itemSpec: itemSpec{name: name}, healthRestored: healthRestored}
}

func (s *Snack) HealthRestored() int { return s.healthRestored }

func (s *Snack) IsValid(b *Battle, side Side) (bool, error) {
	return itemValid(b, side, s)
}

func (s *Snack) Apply(b *Battle, side Side) (*game.Summary, error) {
	trainer := b.Trainer(side)
	active, err := trainer.ActiveCreature()
	if err != nil {
		return nil, err
	}
	active.AdjustHealth(s.healthRestored)
	trainer.ConsumeItem(s)
	return game.NewSummary(fmt.Sprintf("%s ate %s.", active.Name(), s.name)), nil
}
