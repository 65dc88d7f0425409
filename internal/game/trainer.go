package game

import "errors"

// MaximumRoster is the most creatures a trainer can carry.
const MaximumRoster = 6

// ErrNoCreature is returned when a trainer's active creature is requested
// but no creature was ever added to the roster. It signals a setup bug in
// the caller and is always propagated, never swallowed.
var ErrNoCreature = errors.New("trainer has no creatures")

// Item is the view of a consumable the domain model needs for inventory
// bookkeeping. Concrete item behaviour lives in the engine package.
type Item interface {
	Name() string
}

// ItemCount pairs an inventory item with its remaining count.
type ItemCount struct {
	Item  Item
	Count int
}

// Trainer owns an ordered roster of creatures, the index of the currently
// active one, and a consumable inventory. The inventory preserves insertion
// order so that scripted strategies iterate it reproducibly.
type Trainer struct {
	name      string
	creatures []*Creature
	active    int
	inventory []ItemCount
}

// NewTrainer creates an empty trainer. The active index stays unset until
// the first creature is added.
func NewTrainer(name string) *Trainer {
	return &Trainer{name: name, active: -1}
}

func (t *Trainer) Name() string { return t.name }

// ActiveCreature returns the currently selected creature, or ErrNoCreature
// if the roster was never populated.
func (t *Trainer) ActiveCreature() (*Creature, error) {
	if t.active < 0 {
		return nil, ErrNoCreature
	}
	return t.creatures[t.active], nil
}

// Creatures returns a defensive copy of the roster in insertion order.
func (t *Trainer) Creatures() []*Creature {
	out := make([]*Creature, len(t.creatures))
	copy(out, t.creatures)
	return out
}

// CanAdd reports whether the creature can join the roster: the same instance
// may not be added twice, and the roster is capped at MaximumRoster.
func (t *Trainer) CanAdd(c *Creature) bool {
	for _, existing := range t.creatures {
		if existing == c {
			return false
		}
	}
	return len(t.creatures) < MaximumRoster
}

// Add appends the creature to the roster. The first creature ever added
// becomes the active one.
func (t *Trainer) Add(c *Creature) {
	t.creatures = append(t.creatures, c)
	if t.active < 0 {
		t.active = 0
	}
}

// CanSwitchTo reports whether switching to the roster index would be valid:
// in bounds, not the current selection and not fainted.
func (t *Trainer) CanSwitchTo(index int) bool {
	if index < 0 || index >= len(t.creatures) {
		return false
	}
	if index == t.active {
		return false
	}
	return !t.creatures[index].HasFainted()
}

// SwitchTo selects the creature at index. The caller must have validated the
// switch with CanSwitchTo.
func (t *Trainer) SwitchTo(index int) {
	t.active = index
}

// AllFainted reports whether every roster member has fainted. An empty
// roster counts as fainted.
func (t *Trainer) AllFainted() bool {
	for _, c := range t.creatures {
		if !c.HasFainted() {
			return false
		}
	}
	return true
}

// RestAll rests every creature in the roster.
func (t *Trainer) RestAll() {
	for _, c := range t.creatures {
		c.Rest()
	}
}

// AddItem adds count uses of the item to the inventory.
func (t *Trainer) AddItem(item Item, count int) {
	for i := range t.inventory {
		if t.inventory[i].Item == item {
			t.inventory[i].Count += count
			return
		}
	}
	t.inventory = append(t.inventory, ItemCount{Item: item, Count: count})
}

// HasItem reports whether the item is present with at least one use left.
func (t *Trainer) HasItem(item Item) bool {
	for _, e := range t.inventory {
		if e.Item == item {
			return true
		}
	}
	return false
}

// ConsumeItem decrements the item's count, removing the entry entirely when
// it reaches zero. Consuming an absent item is a no-op.
func (t *Trainer) ConsumeItem(item Item) {
	for i := range t.inventory {
		if t.inventory[i].Item == item {
			t.inventory[i].Count--
			if t.inventory[i].Count == 0 {
				t.inventory = append(t.inventory[:i], t.inventory[i+1:]...)
			}
			return
		}
	}
}

// Inventory returns a copy of the inventory in insertion order.
func (t *Trainer) Inventory() []ItemCount {
	out := make([]ItemCount, len(t.inventory))
	copy(out, t.inventory)
	return out
}
