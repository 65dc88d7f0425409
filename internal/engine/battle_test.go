package engine

import (
	"testing"

	"github.com/beastbrawl/beastbrawl/internal/game"
)

// fixedRoller forces every probability roll to the same outcome.
type fixedRoller struct{ succeed bool }

func (r fixedRoller) Succeeds(float64) bool { return r.succeed }

func testCreature(name string, health, attack, defense int, moves ...game.Move) *game.Creature {
	return game.NewCreature(name, game.NewStats(1, health, attack, defense), "normal", moves, 5)
}

func testTrainer(name string, creatures ...*game.Creature) *game.Trainer {
	t := game.NewTrainer(name)
	for _, c := range creatures {
		t.Add(c)
	}
	return t
}

func mustResolve(t *testing.T, b *Battle) *game.Summary {
	t.Helper()
	s, err := b.ResolveNext()
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
	return s
}

func mustQueue(t *testing.T, b *Battle, a Action, side Side) {
	t.Helper()
	if err := b.QueueAction(a, side); err != nil {
		t.Fatalf("unexpected queue error: %v", err)
	}
	if !b.HasQueuedAction(side) {
		t.Fatalf("action for %v was declined", side)
	}
}

func TestQueueAction_DeclinesSilently(t *testing.T) {
	scratch := NewAttackMove("Scratch", "normal", 35, 2, 40, 1)
	b := New(
		testTrainer("Ash", testCreature("Flarix", 100, 70, 50, scratch)),
		testTrainer("Misty", testCreature("Aquarn", 100, 70, 50, scratch)),
		true, nil, fixedRoller{succeed: true},
	)

	// An invalid action is declined with no error and no state change.
	if err := b.QueueAction(Switch{Index: 5}, SideFirst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.HasQueuedAction(SideFirst) {
		t.Fatalf("invalid switch should not have been queued")
	}

	mustQueue(t, b, scratch, SideFirst)

	// Second submission by the same side is declined.
	if err := b.QueueAction(Flee{}, SideFirst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.QueueFull() {
		t.Fatalf("duplicate submission should have been declined")
	}

	mustQueue(t, b, scratch, SideSecond)

	// Battle is ready: any further submission is declined.
	if !b.IsReady() {
		t.Fatalf("expected battle to be ready with a full queue")
	}
}

func TestQueueAction_PropagatesEmptyRoster(t *testing.T) {
	b := New(
		testTrainer("Nobody"),
		testTrainer("Misty", testCreature("Aquarn", 100, 70, 50)),
		true, nil, fixedRoller{succeed: true},
	)
	if err := b.QueueAction(Flee{}, SideFirst); err != game.ErrNoCreature {
		t.Fatalf("expected ErrNoCreature, got %v", err)
	}
}

func TestResolveNext_OrdersByPriority(t *testing.T) {
	scratch := NewAttackMove("Scratch", "normal", 35, 2, 40, 1)
	ash := testTrainer("Ash",
		testCreature("Flarix", 100, 70, 50, scratch),
		testCreature("Aquarn", 100, 70, 50, scratch),
	)
	misty := testTrainer("Misty", testCreature("Verdil", 100, 70, 50, scratch))
	b := New(ash, misty, true, nil, fixedRoller{succeed: true})

	// The enemy's attack is submitted first, but the switch (priority 0)
	// must still resolve before the move (priority 3).
	mustQueue(t, b, scratch, SideSecond)
	mustQueue(t, b, Switch{Index: 1}, SideFirst)

	first := mustResolve(t, b)
	if first.Messages()[len(first.Messages())-1] != "Ash switched to Aquarn." {
		t.Fatalf("expected the switch to resolve first, got %v", first.Messages())
	}
	if b.Turn() != TurnWaitingOnSecond {
		t.Fatalf("expected turn to wait on the second side, got %v", b.Turn())
	}

	second := mustResolve(t, b)
	if second.Messages()[0] != "Verdil used Scratch." {
		t.Fatalf("expected the attack to resolve second, got %v", second.Messages())
	}
	if b.Turn() != TurnUnset {
		t.Fatalf("expected turn to reset after the round, got %v", b.Turn())
	}

	// The attack landed on the creature switched in, not the one that left.
	creatures := ash.Creatures()
	if creatures[0].Health() != 100 {
		t.Fatalf("benched creature should be untouched, health %d", creatures[0].Health())
	}
	if creatures[1].Health() == 100 {
		t.Fatalf("switched-in creature should have taken the hit")
	}
}

func TestResolveNext_EqualPriorityKeepsSubmissionOrder(t *testing.T) {
	scratch := NewAttackMove("Scratch", "normal", 35, 2, 40, 1)
	b := New(
		testTrainer("Ash", testCreature("Flarix", 100, 70, 50, scratch)),
		testTrainer("Misty", testCreature("Aquarn", 100, 70, 50, scratch)),
		true, nil, fixedRoller{succeed: true},
	)
	mustQueue(t, b, scratch, SideSecond)
	mustQueue(t, b, scratch, SideFirst)

	first := mustResolve(t, b)
	if first.Messages()[0] != "Aquarn used Scratch." {
		t.Fatalf("equal priorities must keep submission order, got %v", first.Messages())
	}
}

func TestResolveNext_DiscardsStaleAction(t *testing.T) {
	slam := NewAttackMove("Slam", "normal", 10, 0, 500, 1)
	scratch := NewAttackMove("Scratch", "normal", 35, 2, 40, 1)
	ash := testTrainer("Ash", testCreature("Flarix", 100, 200, 50, slam))
	misty := testTrainer("Misty",
		testCreature("Aquarn", 50, 70, 0, scratch),
		testCreature("Verdil", 100, 70, 50, scratch),
	)
	b := New(ash, misty, true, nil, fixedRoller{succeed: true})

	mustQueue(t, b, scratch, SideSecond)
	mustQueue(t, b, slam, SideFirst)

	// The faster slam resolves first and faints Aquarn.
	mustResolve(t, b)
	target, _ := misty.ActiveCreature()
	if !target.HasFainted() {
		t.Fatalf("expected Aquarn to faint")
	}
	if b.Turn() != TurnWaitingOnSecond {
		t.Fatalf("expected turn waiting on second, got %v", b.Turn())
	}

	// Aquarn's queued attack is now stale: it is discarded with no effect
	// and the turn state does not advance.
	s := mustResolve(t, b)
	if s != nil {
		t.Fatalf("stale action must resolve to nothing, got %v", s.Messages())
	}
	if !b.QueueEmpty() {
		t.Fatalf("stale action must be removed from the queue")
	}
	if b.Turn() != TurnWaitingOnSecond {
		t.Fatalf("discarding a stale action must not advance the turn, got %v", b.Turn())
	}
}

func TestResolveNext_UpkeepRunsOncePerRound(t *testing.T) {
	scratch := NewAttackMove("Scratch", "normal", 35, 2, 40, 1)
	harden := NewBuffMove("Harden", "normal", 20, 0, game.StatModifier{Defense: 15}, 1)
	flarix := testCreature("Flarix", 100, 70, 50, scratch, harden)
	aquarn := testCreature("Aquarn", 100, 70, 50, scratch)
	b := New(testTrainer("Ash", flarix), testTrainer("Misty", aquarn), true, nil, fixedRoller{succeed: true})

	mustQueue(t, b, harden, SideFirst)
	mustQueue(t, b, scratch, SideSecond)

	// The buff resolves first and stays active for the rest of the round.
	mustResolve(t, b)
	if got := flarix.EffectiveStats().Defense(); got != 65 {
		t.Fatalf("expected buffed defense 65 mid-round, got %d", got)
	}

	// The round ends with the second resolution; a one-round buff expires
	// at that boundary.
	mustResolve(t, b)
	if b.Turn() != TurnUnset {
		t.Fatalf("expected the round to be over")
	}
	if got := flarix.EffectiveStats().Defense(); got != 50 {
		t.Fatalf("expected buff evicted at round end, got defense %d", got)
	}
}

func TestIsOver(t *testing.T) {
	scratch := NewAttackMove("Scratch", "normal", 35, 2, 40, 1)
	flarix := testCreature("Flarix", 100, 70, 50, scratch)
	aquarn := testCreature("Aquarn", 100, 70, 50, scratch)
	b := New(testTrainer("Ash", flarix), testTrainer("Misty", aquarn), true, nil, fixedRoller{succeed: true})

	if b.IsOver() {
		t.Fatalf("fresh battle should not be over")
	}
	aquarn.AdjustHealth(-1000)
	if !b.IsOver() {
		t.Fatalf("battle should be over once a side has all fainted")
	}
}

func TestNewEncounter_WrapsWildCreature(t *testing.T) {
	wild := testCreature("Plainling", 70, 45, 40)
	b := NewEncounter(testTrainer("Ash", testCreature("Flarix", 100, 70, 50)), wild, nil, fixedRoller{succeed: true})

	if b.IsTrainerBattle() {
		t.Fatalf("an encounter is not a trainer battle")
	}
	active, err := b.Trainer(SideSecond).ActiveCreature()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active != wild {
		t.Fatalf("the wild creature should fight on the second side")
	}
	if b.Trainer(SideSecond).Name() != "" {
		t.Fatalf("the wild side has no named trainer")
	}
}
