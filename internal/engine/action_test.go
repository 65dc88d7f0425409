package engine

import "testing"

func TestFlee_WildBattleEndsEarly(t *testing.T) {
	wild := testCreature("Plainling", 70, 45, 40)
	b := NewEncounter(testTrainer("Ash", testCreature("Flarix", 100, 70, 50)), wild, nil, fixedRoller{succeed: true})

	s, err := Flee{}.Apply(b, SideFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Messages()[0] != "Got away safely!" {
		t.Fatalf("unexpected message: %v", s.Messages())
	}
	if !b.EndedEarly() || !b.IsOver() {
		t.Fatalf("fleeing a wild battle must end it early")
	}
}

func TestFlee_TrainerBattleFails(t *testing.T) {
	b := New(
		testTrainer("Ash", testCreature("Flarix", 100, 70, 50)),
		testTrainer("Misty", testCreature("Aquarn", 100, 70, 50)),
		true, nil, fixedRoller{succeed: true},
	)

	s, err := Flee{}.Apply(b, SideFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Messages()[0] != "Unable to escape a trainer battle." {
		t.Fatalf("unexpected message: %v", s.Messages())
	}
	if b.EndedEarly() || b.IsOver() {
		t.Fatalf("fleeing must not end a trainer battle")
	}
}

func TestFlee_InvalidWhenActiveFainted(t *testing.T) {
	flarix := testCreature("Flarix", 100, 70, 50)
	flarix.AdjustHealth(-1000)
	b := New(
		testTrainer("Ash", flarix, testCreature("Aquarn", 100, 70, 50)),
		testTrainer("Misty", testCreature("Verdil", 100, 70, 50)),
		true, nil, fixedRoller{succeed: true},
	)
	ok, err := Flee{}.IsValid(b, SideFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("a fainted active creature cannot flee")
	}
}

func TestSwitch_MessagesBySide(t *testing.T) {
	ash := testTrainer("Ash",
		testCreature("Flarix", 100, 70, 50),
		testCreature("Aquarn", 100, 70, 50),
	)
	misty := testTrainer("Misty",
		testCreature("Verdil", 100, 70, 50),
		testCreature("Plainling", 70, 45, 40),
	)
	b := New(ash, misty, true, nil, fixedRoller{succeed: true})

	s, err := Switch{Index: 1}.Apply(b, SideFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Flarix, return!", "Ash switched to Aquarn."}
	got := s.Messages()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected player switch messages: %v", got)
	}

	// The enemy side does not announce the recall.
	s, err = Switch{Index: 1}.Apply(b, SideSecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got = s.Messages()
	if len(got) != 1 || got[0] != "Misty switched to Plainling." {
		t.Fatalf("unexpected enemy switch messages: %v", got)
	}
}

func TestSwitch_SkipsRecallForFaintedCreature(t *testing.T) {
	flarix := testCreature("Flarix", 100, 70, 50)
	flarix.AdjustHealth(-1000)
	ash := testTrainer("Ash", flarix, testCreature("Aquarn", 100, 70, 50))
	b := New(ash, testTrainer("Misty", testCreature("Verdil", 100, 70, 50)), true, nil, fixedRoller{succeed: true})

	ok, err := Switch{Index: 1}.IsValid(b, SideFirst)
	if err != nil || !ok {
		t.Fatalf("switching away from a fainted creature must be valid, ok=%v err=%v", ok, err)
	}
	s, err := Switch{Index: 1}.Apply(b, SideFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := s.Messages()
	if len(got) != 1 || got[0] != "Ash switched to Aquarn." {
		t.Fatalf("fainted creature must not be recalled aloud: %v", got)
	}
}

func TestCaptureOrb_TrainerBattleConsumesWithoutEffect(t *testing.T) {
	orb := NewCaptureOrb("Capture Orb", 1)
	ash := testTrainer("Ash", testCreature("Flarix", 100, 70, 50))
	ash.AddItem(orb, 1)
	b := New(ash, testTrainer("Misty", testCreature("Aquarn", 100, 70, 50)), true, nil, fixedRoller{succeed: true})

	s, err := orb.Apply(b, SideFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Messages()[0] != "Capture orbs have no effect in trainer battles." {
		t.Fatalf("unexpected message: %v", s.Messages())
	}
	if ash.HasItem(orb) {
		t.Fatalf("a use is consumed even when the orb has no effect")
	}
	if b.IsOver() {
		t.Fatalf("trainer battle must not end from a capture attempt")
	}
}

func TestCaptureOrb_EscapeConsumesUse(t *testing.T) {
	orb := NewCaptureOrb("Capture Orb", 0.5)
	ash := testTrainer("Ash", testCreature("Flarix", 100, 70, 50))
	ash.AddItem(orb, 2)
	wild := testCreature("Plainling", 70, 45, 40)
	b := NewEncounter(ash, wild, nil, fixedRoller{succeed: false})

	s, err := orb.Apply(b, SideFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Messages()[0] != "It was so close, but Plainling escaped!" {
		t.Fatalf("unexpected message: %v", s.Messages())
	}
	if b.IsOver() {
		t.Fatalf("a failed capture must not end the battle")
	}
	if got := ash.Inventory()[0].Count; got != 1 {
		t.Fatalf("expected 1 orb left, got %d", got)
	}
}

func TestCaptureOrb_SuccessAddsCreatureAndEndsBattle(t *testing.T) {
	orb := NewCaptureOrb("Capture Orb", 0.5)
	ash := testTrainer("Ash", testCreature("Flarix", 100, 70, 50))
	ash.AddItem(orb, 1)
	wild := testCreature("Plainling", 70, 45, 40)
	b := NewEncounter(ash, wild, nil, fixedRoller{succeed: true})

	s, err := orb.Apply(b, SideFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Messages()[0] != "Plainling was caught!" {
		t.Fatalf("unexpected message: %v", s.Messages())
	}
	if !b.EndedEarly() {
		t.Fatalf("a capture ends the battle early")
	}
	creatures := ash.Creatures()
	if len(creatures) != 2 || creatures[1] != wild {
		t.Fatalf("the wild creature should join the roster")
	}
}

func TestCaptureOrb_FullRosterStillEndsBattle(t *testing.T) {
	orb := NewCaptureOrb("Capture Orb", 0.5)
	ash := testTrainer("Ash",
		testCreature("A", 10, 1, 1), testCreature("B", 10, 1, 1), testCreature("C", 10, 1, 1),
		testCreature("D", 10, 1, 1), testCreature("E", 10, 1, 1), testCreature("F", 10, 1, 1),
	)
	ash.AddItem(orb, 1)
	wild := testCreature("Plainling", 70, 45, 40)
	b := NewEncounter(ash, wild, nil, fixedRoller{succeed: true})

	s, err := orb.Apply(b, SideFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Messages()[0] != "Plainling was caught, but there was no more room." {
		t.Fatalf("unexpected message: %v", s.Messages())
	}
	if !b.EndedEarly() {
		t.Fatalf("the battle still ends when the roster is full")
	}
	if len(ash.Creatures()) != 6 {
		t.Fatalf("the roster must not grow past its cap")
	}
}

func TestSnack_HealsAndConsumes(t *testing.T) {
	snack := NewSnack("Berry Snack", 40)
	flarix := testCreature("Flarix", 100, 70, 50)
	flarix.AdjustHealth(-60)
	ash := testTrainer("Ash", flarix)
	ash.AddItem(snack, 1)
	b := New(ash, testTrainer("Misty", testCreature("Aquarn", 100, 70, 50)), true, nil, fixedRoller{succeed: true})

	s, err := snack.Apply(b, SideFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Messages()[0] != "Flarix ate Berry Snack." {
		t.Fatalf("unexpected message: %v", s.Messages())
	}
	if flarix.Health() != 80 {
		t.Fatalf("expected health 80, got %d", flarix.Health())
	}
	if ash.HasItem(snack) {
		t.Fatalf("the snack should be consumed")
	}
}

func TestItem_InvalidWithoutInventory(t *testing.T) {
	snack := NewSnack("Berry Snack", 40)
	b := New(
		testTrainer("Ash", testCreature("Flarix", 100, 70, 50)),
		testTrainer("Misty", testCreature("Aquarn", 100, 70, 50)),
		true, nil, fixedRoller{succeed: true},
	)
	ok, err := snack.IsValid(b, SideFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("an item the trainer does not carry must be invalid")
	}
}
