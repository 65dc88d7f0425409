package engine

import (
	"fmt"

	"github.com/beastbrawl/beastbrawl/internal/game"
)

// moveSpec carries what every learnable move shares. Moves resolve after
// default-priority actions, ordered among themselves by speed (lower is
// faster).
type moveSpec struct {
	name        string
	elementType string
	maxUses     int
	speed       int
}

func (m *moveSpec) Name() string        { return m.name }
func (m *moveSpec) ElementType() string { return m.elementType }
func (m *moveSpec) MaxUses() int        { return m.maxUses }
func (m *moveSpec) Speed() int          { return m.speed }
func (m *moveSpec) Priority() int       { return speedBasedActionPriority + m.speed }

// moveValid is the validity shared by all moves: base action validity, the
// acting creature has not fainted, knows the move and has uses left for it.
func moveValid(b *Battle, side Side, m game.Move) (bool, error) {
	active, err := b.Trainer(side).ActiveCreature()
	if err != nil {
		return false, err
	}
	if !baseValid(b, side) || active.HasFainted() {
		return false, nil
	}
	return active.RemainingUses(m) != 0, nil
}

// applyMove runs a move's shared application protocol: a "used" message
// first, then ally-directed effect messages, then enemy-directed ones, in
// that fixed order, and finally the use decrement on the acting creature.
func applyMove(b *Battle, side Side, m game.Move,
	allyEffects func(ally *game.Creature) (*game.Summary, error),
	enemyEffects func(ally, enemy *game.Creature) (*game.Summary, error),
) (*game.Summary, error) {
	ally, err := b.Trainer(side).ActiveCreature()
	if err != nil {
		return nil, err
	}
	enemy, err := b.Trainer(side.Opponent()).ActiveCreature()
	if err != nil {
		return nil, err
	}

	summary := game.NewSummary(fmt.Sprintf("%s used %s.", ally.Name(), m.Name()))
	if allyEffects != nil {
		s, err := allyEffects(ally)
		if err != nil {
			return nil, err
		}
		summary.Combine(s)
	}
	if enemyEffects != nil {
		s, err := enemyEffects(ally, enemy)
		if err != nil {
			return nil, err
		}
		summary.Combine(s)
	}
	ally.ReduceUses(m)
	return summary, nil
}

// AttackMove is a damaging move. Damage is computed from the move's base
// damage, the element effectiveness against the defender, and the two
// creatures' effective attack and defense stats.
type AttackMove struct {
	moveSpec
	baseDamage int
	hitChance  float64
}

// NewAttackMove builds a damaging move.
func NewAttackMove(name, elementType string, maxUses, speed, baseDamage int, hitChance float64) *AttackMove {
	return &AttackMove{
		moveSpec:   moveSpec{name: name, elementType: elementType, maxUses: maxUses, speed: speed},
		baseDamage: baseDamage,
		hitChance:  hitChance,
	}
}

func (a *AttackMove) BaseDamage() int        { return a.baseDamage }
func (a *AttackMove) BaseHitChance() float64 { return a.hitChance }

func (a *AttackMove) IsValid(b *Battle, side Side) (bool, error) {
	return moveValid(b, side, a)
}

func (a *AttackMove) Apply(b *Battle, side Side) (*game.Summary, error) {
	return applyMove(b, side, a, nil, func(ally, enemy *game.Creature) (*game.Summary, error) {
		// Hit roll: the attacker's effective hit chance scales the move's own.
		if !b.Roll(ally.EffectiveStats().HitChance() * a.hitChance) {
			return game.NewSummary(fmt.Sprintf("%s missed!", ally.Name())), nil
		}

		damage := a.Damage(b, ally, enemy)
		enemy.AdjustHealth(-damage)

		summary := game.NewSummary()
		if enemy.HasFainted() {
			exp := enemy.ExperienceReward()
			ally.GrantExperience(exp)
			summary.Add(fmt.Sprintf("%s has fainted.", enemy.Name()))
			summary.Add(fmt.Sprintf("%s gained %d exp.", ally.Name(), exp))
		}
		return summary, nil
	})
}

// Damage is the damage this move would deal if it hit:
// floor(base * effectiveness * attack / (defense + 1)). The +1 denominator
// structurally guards against division by zero.
func (a *AttackMove) Damage(b *Battle, attacker, defender *game.Creature) int {
	effectiveness := b.Effectiveness(a.elementType, defender.ElementType())
	attack := attacker.EffectiveStats().Attack()
	defense := defender.EffectiveStats().Defense()
	return int(float64(a.baseDamage) * effectiveness * float64(attack) / float64(defense+1))
}

// BuffMove applies a timed stat modifier to the acting side's active creature.
type BuffMove struct {
	moveSpec
	modifier game.StatModifier
	rounds   int
}

// NewBuffMove builds a self-targeted timed stat modifier move.
func NewBuffMove(name, elementType string, maxUses, speed int, modifier game.StatModifier, rounds int) *BuffMove {
	return &BuffMove{
		moveSpec: moveSpec{name: name, elementType: elementType, maxUses: maxUses, speed: speed},
		modifier: modifier,
		rounds:   rounds,
	}
}

func (m *BuffMove) IsValid(b *Battle, side Side) (bool, error) {
	return moveValid(b, side, m)
}

func (m *BuffMove) Apply(b *Battle, side Side) (*game.Summary, error) {
	return applyMove(b, side, m, func(ally *game.Creature) (*game.Summary, error) {
		ally.AddTimedModifier(m.modifier, m.rounds)
		return game.NewSummary(fmt.Sprintf("%s was buffed for %d turns.", ally.Name(), m.rounds)), nil
	}, nil)
}

// DebuffMove applies a timed stat modifier to the opposing side's active
// creature.
type DebuffMove struct {
	moveSpec
	modifier game.StatModifier
	rounds   int
}

// NewDebuffMove builds an enemy-targeted timed stat modifier move.
func NewDebuffMove(name, elementType string, maxUses, speed int, modifier game.StatModifier, rounds int) *DebuffMove {
	return &DebuffMove{
		moveSpec: moveSpec{name: name, elementType: elementType, maxUses: maxUses, speed: speed},
		modifier: modifier,
		rounds:   rounds,
	}
}

func (m *DebuffMove) IsValid(b *Battle, side Side) (bool, error) {
	return moveValid(b, side, m)
}

func (m *DebuffMove) Apply(b *Battle, side Side) (*game.Summary, error) {
	return applyMove(b, side, m, nil, func(ally, enemy *game.Creature) (*game.Summary, error) {
		enemy.AddTimedModifier(m.modifier, m.rounds)
		return game.NewSummary(fmt.Sprintf("%s was debuffed for %d turns.", enemy.Name(), m.rounds)), nil
	})
}
