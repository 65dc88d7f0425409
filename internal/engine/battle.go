package engine

import (
	"sort"

	"github.com/beastbrawl/beastbrawl/internal/game"
)

// Side identifies one of the two parties in a battle. The first side is
// conventionally the player, the second the enemy.
type Side int

const (
	SideFirst Side = iota
	SideSecond
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideFirst {
		return SideSecond
	}
	return SideFirst
}

func (s Side) String() string {
	if s == SideFirst {
		return "first"
	}
	return "second"
}

// TurnState tracks who may still act in the current round. It starts each
// round Unset; after one side acts it waits on the other; when both have
// acted it returns to Unset and the round is over.
type TurnState int

const (
	TurnUnset TurnState = iota
	TurnWaitingOnFirst
	TurnWaitingOnSecond
)

func (t TurnState) String() string {
	switch t {
	case TurnWaitingOnFirst:
		return "waiting_on_first"
	case TurnWaitingOnSecond:
		return "waiting_on_second"
	default:
		return "unset"
	}
}

func waitingOn(s Side) TurnState {
	if s == SideFirst {
		return TurnWaitingOnFirst
	}
	return TurnWaitingOnSecond
}

type queuedAction struct {
	action Action
	side   Side
}

// Battle is the round-based combat state machine. Both sides submit one
// action per round through QueueAction; ResolveNext applies them one at a
// time in ascending priority order. Although submissions are logically
// simultaneous, the turn state enforces a strict alternating protocol once
// the round has a first mover.
type Battle struct {
	first  *game.Trainer
	second *game.Trainer

	// trainerBattle marks a sanctioned duel between two owners: fleeing
	// fails narratively and capture items have no effect.
	trainerBattle bool
	endedEarly    bool

	turn  TurnState
	queue []queuedAction

	elements *game.ElementRegistry
	rng      game.Roller
}

// New creates a battle between two trainers. The element registry and roller
// are injected so effectiveness tables stay configuration-owned and tests
// can force roll outcomes.
func New(first, second *game.Trainer, trainerBattle bool, elements *game.ElementRegistry, rng game.Roller) *Battle {
	if elements == nil {
		elements = game.NewElementRegistry()
	}
	return &Battle{
		first:         first,
		second:        second,
		trainerBattle: trainerBattle,
		elements:      elements,
		rng:           rng,
	}
}

// NewEncounter creates a wild battle: the lone wild creature is wrapped in
// an anonymous trainer on the second side.
func NewEncounter(trainer *game.Trainer, wild *game.Creature, elements *game.ElementRegistry, rng game.Roller) *Battle {
	anonymous := game.NewTrainer("")
	anonymous.Add(wild)
	return New(trainer, anonymous, false, elements, rng)
}

// Trainer returns the trainer fighting on the given side.
func (b *Battle) Trainer(side Side) *game.Trainer {
	if side == SideFirst {
		return b.first
	}
	return b.second
}

// Turn returns the current turn state.
func (b *Battle) Turn() TurnState { return b.turn }

// IsTrainerBattle reports whether this is a sanctioned duel between owners.
func (b *Battle) IsTrainerBattle() bool { return b.trainerBattle }

// Effectiveness looks up the damage multiplier for the attacking element
// against the defending one.
func (b *Battle) Effectiveness(attacking, defending string) float64 {
	return b.elements.Effectiveness(attacking, defending)
}

// Roll performs the probability-threshold roll that is the engine's only
// source of randomness.
func (b *Battle) Roll(chance float64) bool {
	return b.rng.Succeeds(chance)
}

// AttemptEndEarly ends the battle early unless it is a trainer battle.
// Once set, the flag is never cleared.
func (b *Battle) AttemptEndEarly() {
	if !b.trainerBattle {
		b.endedEarly = true
	}
}

// QueueFull reports whether both sides have an action queued.
func (b *Battle) QueueFull() bool { return len(b.queue) == 2 }

// QueueEmpty reports whether neither side has an action queued.
func (b *Battle) QueueEmpty() bool { return len(b.queue) == 0 }

// HasQueuedAction reports whether the given side already has an action queued.
func (b *Battle) HasQueuedAction(side Side) bool {
	for _, q := range b.queue {
		if q.side == side {
			return true
		}
	}
	return false
}

// IsReady reports whether the next action can be resolved: with the turn
// unset the queue must be full; otherwise the side being waited on must have
// an action queued.
func (b *Battle) IsReady() bool {
	switch b.turn {
	case TurnUnset:
		return b.QueueFull()
	case TurnWaitingOnFirst:
		return b.HasQueuedAction(SideFirst)
	default:
		return b.HasQueuedAction(SideSecond)
	}
}

// QueueAction attempts to queue the action for the side. The submission is
// declined silently (no state change, nil error) when the side already has
// an action queued, the battle is ready to resolve, or the action is invalid
// for the current state. A RosterEmpty condition raised while validating is
// propagated since it indicates a setup bug.
func (b *Battle) QueueAction(action Action, side Side) error {
	if b.HasQueuedAction(side) || b.IsReady() {
		return nil
	}
	ok, err := action.IsValid(b, side)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	b.queue = append(b.queue, queuedAction{action: action, side: side})
	return nil
}

// ResolveNext performs the next queued action, if any, and returns the
// summary of its effects. A nil summary with nil error means nothing was
// resolved: either the queue was empty, or the head action had become stale
// (invalid since it was queued) and was discarded without effect.
//
// When the resolved action completes the round (the turn state reverts to
// Unset), both sides' active creatures run their round-boundary upkeep —
// exactly once per round, never after the first action.
func (b *Battle) ResolveNext() (*game.Summary, error) {
	if b.QueueEmpty() {
		return nil, nil
	}

	// With both actions pending, order the round by ascending priority.
	// The sort is stable so equal priorities keep submission order.
	if b.QueueFull() {
		sort.SliceStable(b.queue, func(i, j int) bool {
			return b.queue[i].action.Priority() < b.queue[j].action.Priority()
		})
	}

	next := b.queue[0]
	b.queue = b.queue[1:]

	// Re-validate: the state may have changed since the action was queued,
	// e.g. the actor fainted from the other side's action this round. Stale
	// actions are discarded with no effect and no log.
	ok, err := next.action.IsValid(b, next.side)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	summary, err := next.action.Apply(b, next.side)
	if err != nil {
		return nil, err
	}

	if b.turn == TurnUnset {
		b.turn = waitingOn(next.side.Opponent())
	} else {
		b.turn = TurnUnset
		if err := b.postRound(); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

// postRound runs end-of-round upkeep on both active creatures.
func (b *Battle) postRound() error {
	for _, t := range []*game.Trainer{b.first, b.second} {
		c, err := t.ActiveCreature()
		if err != nil {
			return err
		}
		c.TickModifiers()
	}
	return nil
}

// IsOver reports whether the battle has ended: it ended early, or either
// side's creatures have all fainted.
func (b *Battle) IsOver() bool {
	return b.endedEarly || b.first.AllFainted() || b.second.AllFainted()
}

// EndedEarly reports whether the battle was cut short by a flee or capture.
func (b *Battle) EndedEarly() bool { return b.endedEarly }
