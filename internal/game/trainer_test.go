package game

import "testing"

type stubItem struct{ name string }

func (i *stubItem) Name() string { return i.name }

func TestTrainer_ActiveCreature(t *testing.T) {
	tr := NewTrainer("Ash")
	if _, err := tr.ActiveCreature(); err != ErrNoCreature {
		t.Fatalf("expected ErrNoCreature on empty roster, got %v", err)
	}

	first := newTestCreature(5)
	tr.Add(first)
	active, err := tr.ActiveCreature()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active != first {
		t.Fatalf("first added creature should be active")
	}

	// Later additions do not steal the active slot.
	tr.Add(newTestCreature(3))
	active, _ = tr.ActiveCreature()
	if active != first {
		t.Fatalf("active creature changed by a later add")
	}
}

func TestTrainer_RosterCapAndDuplicates(t *testing.T) {
	tr := NewTrainer("Ash")
	c := newTestCreature(5)
	tr.Add(c)
	if tr.CanAdd(c) {
		t.Fatalf("same instance must not be addable twice")
	}
	for i := 1; i < MaximumRoster; i++ {
		tr.Add(newTestCreature(1))
	}
	extra := newTestCreature(1)
	if tr.CanAdd(extra) {
		t.Fatalf("roster of %d must refuse a seventh creature", MaximumRoster)
	}
}

func TestTrainer_SwitchValidation(t *testing.T) {
	tr := NewTrainer("Ash")
	tr.Add(newTestCreature(5))
	fainted := newTestCreature(3)
	fainted.AdjustHealth(-1000)
	tr.Add(fainted)
	tr.Add(newTestCreature(4))

	if tr.CanSwitchTo(0) {
		t.Fatalf("switching to the active creature must be invalid")
	}
	if tr.CanSwitchTo(1) {
		t.Fatalf("switching to a fainted creature must be invalid")
	}
	if tr.CanSwitchTo(3) || tr.CanSwitchTo(-1) {
		t.Fatalf("out-of-bounds switches must be invalid")
	}
	if !tr.CanSwitchTo(2) {
		t.Fatalf("switching to a healthy benched creature must be valid")
	}

	tr.SwitchTo(2)
	active, _ := tr.ActiveCreature()
	if active.Level() != 4 {
		t.Fatalf("switch did not select the requested creature")
	}
}

func TestTrainer_AllFainted(t *testing.T) {
	empty := NewTrainer("Nobody")
	if !empty.AllFainted() {
		t.Fatalf("an empty roster counts as all fainted")
	}

	tr := NewTrainer("Ash")
	a := newTestCreature(5)
	b := newTestCreature(5)
	tr.Add(a)
	tr.Add(b)
	a.AdjustHealth(-1000)
	if tr.AllFainted() {
		t.Fatalf("one conscious creature left, not all fainted")
	}
	b.AdjustHealth(-1000)
	if !tr.AllFainted() {
		t.Fatalf("expected all fainted")
	}
}

func TestTrainer_InventoryBookkeeping(t *testing.T) {
	tr := NewTrainer("Ash")
	orb := &stubItem{name: "Capture Orb"}
	snack := &stubItem{name: "Berry Snack"}

	tr.AddItem(orb, 2)
	tr.AddItem(snack, 1)
	tr.AddItem(orb, 1) // merges into the existing entry

	inv := tr.Inventory()
	if len(inv) != 2 || inv[0].Item != orb || inv[0].Count != 3 {
		t.Fatalf("unexpected inventory: %+v", inv)
	}

	tr.ConsumeItem(snack)
	if tr.HasItem(snack) {
		t.Fatalf("entry should be removed when its count reaches zero")
	}
	tr.ConsumeItem(snack) // absent: no-op
	if len(tr.Inventory()) != 1 {
		t.Fatalf("consuming an absent item must not change the inventory")
	}
}

func TestTrainer_InventoryPreservesInsertionOrder(t *testing.T) {
	tr := NewTrainer("Ash")
	names := []string{"Zephyr Orb", "Amber Orb", "Mist Orb"}
	for _, n := range names {
		tr.AddItem(&stubItem{name: n}, 1)
	}
	for i, e := range tr.Inventory() {
		if e.Item.Name() != names[i] {
			t.Fatalf("expected %s at position %d, got %s", names[i], i, e.Item.Name())
		}
	}
}
