package api

import (
	"github.com/beastbrawl/beastbrawl/internal/engine"
	"github.com/beastbrawl/beastbrawl/internal/game"
	"github.com/beastbrawl/beastbrawl/internal/service"
)

// BattleSnapshot is the full battle view returned to clients. Both rosters
// are visible; the engine holds no hidden information beyond future rolls.
type BattleSnapshot struct {
	ID            string   `json:"id"`
	PlayerName    string   `json:"player_name"`
	EnemyName     string   `json:"enemy_name"`
	TrainerBattle bool     `json:"trainer_battle"`
	Turn          string   `json:"turn"`
	PlayerQueued  bool     `json:"player_queued"`
	EnemyQueued   bool     `json:"enemy_queued"`
	Rounds        int      `json:"rounds"`
	Over          bool     `json:"over"`
	EndedEarly    bool     `json:"ended_early"`
	Winner        string   `json:"winner,omitempty"`
	Player        SideView `json:"player"`
	Enemy         SideView `json:"enemy"`
	Log           []string `json:"log"`
}

// SideView is one trainer's roster and inventory.
type SideView struct {
	Name      string         `json:"name"`
	Creatures []CreatureView `json:"creatures"`
	Inventory []ItemView     `json:"inventory"`
}

type CreatureView struct {
	Name        string     `json:"name"`
	ElementType string     `json:"element_type"`
	Level       int        `json:"level"`
	Health      int        `json:"health"`
	MaxHealth   int        `json:"max_health"`
	Experience  int        `json:"experience"`
	NextLevelAt int        `json:"next_level_at"`
	HitChance   float64    `json:"hit_chance"`
	Attack      int        `json:"attack"`
	Defense     int        `json:"defense"`
	Fainted     bool       `json:"fainted"`
	Active      bool       `json:"active"`
	Moves       []MoveView `json:"moves"`
}

type MoveView struct {
	Name        string `json:"name"`
	ElementType string `json:"element_type"`
	Uses        int    `json:"uses"`
	MaxUses     int    `json:"max_uses"`
}

type ItemView struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// snapshotSession builds the client view of a session. All battle state is
// read under the session lock so concurrent action submissions cannot be
// observed mid-mutation.
func snapshotSession(sess *service.Session) BattleSnapshot {
	var snap BattleSnapshot
	sess.Inspect(func(b *engine.Battle, rounds int, log []string) {
		winner := ""
		if b.IsOver() && !b.EndedEarly() {
			if b.Trainer(engine.SideSecond).AllFainted() {
				winner = sess.PlayerName
			} else if b.Trainer(engine.SideFirst).AllFainted() && sess.TrainerBattle {
				winner = sess.EnemyName
			}
		}

		snap = BattleSnapshot{
			ID:            sess.ID,
			PlayerName:    sess.PlayerName,
			EnemyName:     sess.EnemyName,
			TrainerBattle: sess.TrainerBattle,
			Turn:          b.Turn().String(),
			PlayerQueued:  b.HasQueuedAction(engine.SideFirst),
			EnemyQueued:   b.HasQueuedAction(engine.SideSecond),
			Rounds:        rounds,
			Over:          b.IsOver(),
			EndedEarly:    b.EndedEarly(),
			Winner:        winner,
			Player:        snapshotSide(b.Trainer(engine.SideFirst)),
			Enemy:         snapshotSide(b.Trainer(engine.SideSecond)),
			Log:           log,
		}
	})
	return snap
}

func snapshotSide(t *game.Trainer) SideView {
	active, _ := t.ActiveCreature()

	view := SideView{Name: t.Name()}
	for _, c := range t.Creatures() {
		view.Creatures = append(view.Creatures, snapshotCreature(c, c == active))
	}
	for _, ic := range t.Inventory() {
		view.Inventory = append(view.Inventory, ItemView{Name: ic.Item.Name(), Count: ic.Count})
	}
	return view
}

func snapshotCreature(c *game.Creature, active bool) CreatureView {
	effective := c.EffectiveStats()
	view := CreatureView{
		Name:        c.Name(),
		ElementType: c.ElementType(),
		Level:       c.Level(),
		Health:      c.Health(),
		MaxHealth:   effective.MaxHealth(),
		Experience:  c.Experience(),
		NextLevelAt: c.NextLevelExperience(),
		HitChance:   effective.HitChance(),
		Attack:      effective.Attack(),
		Defense:     effective.Defense(),
		Fainted:     c.HasFainted(),
		Active:      active,
	}
	for _, mu := range c.MoveInfo() {
		view.Moves = append(view.Moves, MoveView{
			Name:        mu.Move.Name(),
			ElementType: mu.Move.ElementType(),
			Uses:        mu.Uses,
			MaxUses:     mu.Move.MaxUses(),
		})
	}
	return view
}
