package game

import (
	"math"
	"sort"
)

// MaximumMoveSlots is the most moves a creature can know at once.
const MaximumMoveSlots = 4

// Move is the view of a learnable move the domain model needs in order to
// track what a creature knows. The concrete move behaviour (priority,
// validity, application) lives in the engine package.
type Move interface {
	Name() string
	ElementType() string
	MaxUses() int
}

// MoveUses pairs a known move with its remaining uses.
type MoveUses struct {
	Move Move
	Uses int
}

type moveSlot struct {
	move Move
	uses int
}

type timedModifier struct {
	modifier StatModifier
	rounds   int
}

// Creature is a single combatant: base stats, temporary modifiers, health,
// experience and a learned-move set. A creature's level is derived from its
// experience via level = floor(experience^(1/3)).
type Creature struct {
	name        string
	elementType string
	stats       Stats
	level       int
	experience  int
	health      int
	moves       []moveSlot
	modifiers   []timedModifier
}

// NewCreature builds a creature at the given level with full health. Moves
// beyond the slot limit (or duplicates) are silently skipped.
func NewCreature(name string, stats Stats, elementType string, moves []Move, level int) *Creature {
	c := &Creature{
		name:        name,
		elementType: elementType,
		stats:       stats,
		level:       level,
		experience:  level * level * level,
		health:      stats.MaxHealth(),
	}
	for _, m := range moves {
		if c.CanLearn(m) {
			c.Learn(m)
		}
	}
	return c
}

func (c *Creature) Name() string        { return c.name }
func (c *Creature) ElementType() string { return c.elementType }
func (c *Creature) Health() int         { return c.health }
func (c *Creature) Level() int          { return c.level }
func (c *Creature) Experience() int     { return c.experience }

// MaxHealth is the creature's maximum health before modifiers are applied.
func (c *Creature) MaxHealth() int { return c.stats.MaxHealth() }

// NextLevelExperience is the total experience required to be one level higher.
func (c *Creature) NextLevelExperience() int {
	n := c.level + 1
	return n * n * n
}

// EffectiveStats folds every active modifier onto the base stats, in the
// order the modifiers were applied.
func (c *Creature) EffectiveStats() Stats {
	result := c.stats
	for _, tm := range c.modifiers {
		result = result.ApplyModifier(tm.modifier)
	}
	return result
}

// AdjustHealth applies a health change, clamping the result between 0 and
// the effective max health.
func (c *Creature) AdjustHealth(delta int) {
	max := c.EffectiveStats().MaxHealth()
	c.health = maxInt(0, minInt(c.health+delta, max))
}

// HasFainted reports whether the creature is out of the fight.
func (c *Creature) HasFainted() bool { return c.health == 0 }

// GrantExperience adds experience and levels the creature up once per whole
// level crossed, so a large award can trigger several level-ups at once.
func (c *Creature) GrantExperience(amount int) {
	c.experience += amount
	target := int(math.Cbrt(float64(c.experience)))
	for c.level < target {
		c.levelUp()
	}
}

// levelUp grows the base stats and raises current health by exactly the max
// health increase, so an existing health deficit is preserved.
func (c *Creature) levelUp() {
	c.level++
	oldMax := c.stats.MaxHealth()
	c.stats = c.stats.LevelUp()
	c.AdjustHealth(c.stats.MaxHealth() - oldMax)
}

// ExperienceReward is the experience granted to whatever defeats this
// creature: floor(200 * level / 7).
func (c *Creature) ExperienceReward() int {
	return 200 * c.level / 7
}

// CanLearn reports whether the creature has a free move slot and does not
// already know the move.
func (c *Creature) CanLearn(m Move) bool {
	if len(c.moves) >= MaximumMoveSlots {
		return false
	}
	return c.slotOf(m) < 0
}

// Learn adds the move with its uses set to the move's maximum.
func (c *Creature) Learn(m Move) {
	c.moves = append(c.moves, moveSlot{move: m, uses: m.MaxUses()})
}

// Forget removes the move if it is known.
func (c *Creature) Forget(m Move) {
	if i := c.slotOf(m); i >= 0 {
		c.moves = append(c.moves[:i], c.moves[i+1:]...)
	}
}

// RemainingUses returns the uses left for a known move, or 0 for an unknown one.
func (c *Creature) RemainingUses(m Move) int {
	if i := c.slotOf(m); i >= 0 {
		return c.moves[i].uses
	}
	return 0
}

// HasUsableMove reports whether any learned move still has uses.
func (c *Creature) HasUsableMove() bool {
	for _, s := range c.moves {
		if s.uses > 0 {
			return true
		}
	}
	return false
}

// ReduceUses decrements the remaining uses for a known move, flooring at 0.
func (c *Creature) ReduceUses(m Move) {
	if i := c.slotOf(m); i >= 0 {
		c.moves[i].uses = maxInt(0, c.moves[i].uses-1)
	}
}

// MoveInfo returns the known moves and their remaining uses, sorted by name.
func (c *Creature) MoveInfo() []MoveUses {
	out := make([]MoveUses, 0, len(c.moves))
	for _, s := range c.moves {
		out = append(out, MoveUses{Move: s.move, Uses: s.uses})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Move.Name() < out[j].Move.Name() })
	return out
}

// AddTimedModifier appends a stat modifier active for the given number of
// rounds. Health is re-clamped immediately so a max-health debuff can never
// leave current health above the new cap.
func (c *Creature) AddTimedModifier(modifier StatModifier, rounds int) {
	c.modifiers = append(c.modifiers, timedModifier{modifier: modifier, rounds: rounds})
	c.AdjustHealth(0)
}

// TickModifiers decrements every active modifier's remaining rounds, evicts
// the expired ones and re-clamps health. It must run once per side at the
// end of every round.
func (c *Creature) TickModifiers() {
	kept := c.modifiers[:0]
	for _, tm := range c.modifiers {
		if tm.rounds > 1 {
			tm.rounds--
			kept = append(kept, tm)
		}
	}
	c.modifiers = kept
	c.AdjustHealth(0)
}

// Rest fully heals the creature, clears active modifiers and restores every
// learned move's uses to its maximum.
func (c *Creature) Rest() {
	c.modifiers = nil
	c.health = c.stats.MaxHealth()
	for i := range c.moves {
		c.moves[i].uses = c.moves[i].move.MaxUses()
	}
}

func (c *Creature) slotOf(m Move) int {
	for i, s := range c.moves {
		if s.move == m {
			return i
		}
	}
	return -1
}
