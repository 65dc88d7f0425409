package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/beastbrawl/beastbrawl/internal/ai"
	"github.com/beastbrawl/beastbrawl/internal/engine"
	"github.com/beastbrawl/beastbrawl/internal/game"

	"gopkg.in/yaml.v3"
)

// Move kinds and item kinds accepted by the data file.
const (
	MoveKindAttack = "attack"
	MoveKindBuff   = "buff"
	MoveKindDebuff = "debuff"

	ItemKindCapture = "capture"
	ItemKindRestore = "restore"
)

type elementEntry struct {
	Attacker   string  `json:"attacker" yaml:"attacker"`
	Defender   string  `json:"defender" yaml:"defender"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

type moveEntry struct {
	Name       string            `json:"name" yaml:"name"`
	Kind       string            `json:"kind" yaml:"kind"`
	Element    string            `json:"element" yaml:"element"`
	MaxUses    int               `json:"max_uses" yaml:"max_uses"`
	Speed      int               `json:"speed" yaml:"speed"`
	BaseDamage int               `json:"base_damage" yaml:"base_damage"`
	HitChance  float64           `json:"hit_chance" yaml:"hit_chance"`
	Rounds     int               `json:"rounds" yaml:"rounds"`
	Modifier   game.StatModifier `json:"modifier" yaml:"modifier"`
}

type itemEntry struct {
	Name           string  `json:"name" yaml:"name"`
	Kind           string  `json:"kind" yaml:"kind"`
	CatchChance    float64 `json:"catch_chance" yaml:"catch_chance"`
	HealthRestored int     `json:"health_restored" yaml:"health_restored"`
}

type statsEntry struct {
	HitChance float64 `json:"hit_chance" yaml:"hit_chance"`
	MaxHealth int     `json:"max_health" yaml:"max_health"`
	Attack    int     `json:"attack" yaml:"attack"`
	Defense   int     `json:"defense" yaml:"defense"`
}

type creatureEntry struct {
	Name    string     `json:"name" yaml:"name"`
	Element string     `json:"element" yaml:"element"`
	Stats   statsEntry `json:"stats" yaml:"stats"`
	Level   int        `json:"level" yaml:"level"`
	Moves   []string   `json:"moves" yaml:"moves"`
}

type inventoryEntry struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

type trainerEntry struct {
	Name      string           `json:"name" yaml:"name"`
	Creatures []string         `json:"creatures" yaml:"creatures"`
	Items     []inventoryEntry `json:"items" yaml:"items"`
	Strategy  string           `json:"strategy" yaml:"strategy"`
	Target    string           `json:"target" yaml:"target"`
}

type rawConfig struct {
	Server *struct {
		Address string `json:"address" yaml:"address"`
	} `json:"server" yaml:"server"`
	Database *struct {
		Path string `json:"path" yaml:"path"`
	} `json:"database" yaml:"database"`
	Session *struct {
		TTLMinutes int `json:"ttl_minutes" yaml:"ttl_minutes"`
	} `json:"session" yaml:"session"`
	Elements  []elementEntry  `json:"elements" yaml:"elements"`
	Moves     []moveEntry     `json:"moves" yaml:"moves"`
	Items     []itemEntry     `json:"items" yaml:"items"`
	Creatures []creatureEntry `json:"creatures" yaml:"creatures"`
	Trainers  []trainerEntry  `json:"trainers" yaml:"trainers"`
}

// LoadedConfig holds the parsed static battle data plus server settings.
// Battles receive the element registry by reference; creatures and trainers
// are built fresh per session so battle mutations never leak between games.
type LoadedConfig struct {
	ServerAddress string
	DBPath        string
	SessionTTL    time.Duration

	Elements *game.ElementRegistry

	moves     map[string]game.Move
	items     map[string]game.Item
	creatures map[string]creatureEntry
	trainers  map[string]trainerEntry

	// TrainerNames preserves declaration order for listings.
	TrainerNames []string
}

// LoadConfig reads the data file at path (JSON, or YAML for .yaml/.yml) and
// validates it.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &rc)
	default:
		err = json.Unmarshal(b, &rc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg, err := build(&rc)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func build(rc *rawConfig) (*LoadedConfig, error) {
	cfg := &LoadedConfig{
		ServerAddress: ":8080",
		DBPath:        "./data/beastbrawl.db",
		SessionTTL:    30 * time.Minute,
		Elements:      game.NewElementRegistry(),
		moves:         make(map[string]game.Move),
		items:         make(map[string]game.Item),
		creatures:     make(map[string]creatureEntry),
		trainers:      make(map[string]trainerEntry),
	}
	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		cfg.DBPath = rc.Database.Path
	}
	if rc.Session != nil && rc.Session.TTLMinutes > 0 {
		cfg.SessionTTL = time.Duration(rc.Session.TTLMinutes) * time.Minute
	}

	for _, e := range rc.Elements {
		if e.Attacker == "" || e.Defender == "" {
			return nil, fmt.Errorf("element entry missing attacker or defender")
		}
		if e.Multiplier <= 0 {
			return nil, fmt.Errorf("element %s->%s: multiplier must be positive", e.Attacker, e.Defender)
		}
		cfg.Elements.Register(e.Attacker, e.Defender, e.Multiplier)
	}

	for _, m := range rc.Moves {
		if m.Name == "" {
			return nil, fmt.Errorf("move entry missing 'name'")
		}
		if _, dup := cfg.moves[m.Name]; dup {
			return nil, fmt.Errorf("duplicate move name '%s'", m.Name)
		}
		if m.MaxUses <= 0 {
			return nil, fmt.Errorf("move '%s': max_uses must be positive", m.Name)
		}
		switch m.Kind {
		case MoveKindAttack:
			if m.HitChance < 0 || m.HitChance > 1 {
				return nil, fmt.Errorf("move '%s': hit_chance must be within [0,1]", m.Name)
			}
			cfg.moves[m.Name] = engine.NewAttackMove(m.Name, m.Element, m.MaxUses, m.Speed, m.BaseDamage, m.HitChance)
		case MoveKindBuff:
			if m.Rounds <= 0 {
				return nil, fmt.Errorf("move '%s': rounds must be positive", m.Name)
			}
			cfg.moves[m.Name] = engine.NewBuffMove(m.Name, m.Element, m.MaxUses, m.Speed, m.Modifier, m.Rounds)
		case MoveKindDebuff:
			if m.Rounds <= 0 {
				return nil, fmt.Errorf("move '%s': rounds must be positive", m.Name)
			}
			cfg.moves[m.Name] = engine.NewDebuffMove(m.Name, m.Element, m.MaxUses, m.Speed, m.Modifier, m.Rounds)
		default:
			return nil, fmt.Errorf("move '%s': unknown kind '%s'", m.Name, m.Kind)
		}
	}

	for _, it := range rc.Items {
		if it.Name == "" {
			return nil, fmt.Errorf("item entry missing 'name'")
		}
		if _, dup := cfg.items[it.Name]; dup {
			return nil, fmt.Errorf("duplicate item name '%s'", it.Name)
		}
		switch it.Kind {
		case ItemKindCapture:
			if it.CatchChance < 0 || it.CatchChance > 1 {
				return nil, fmt.Errorf("item '%s': catch_chance must be within [0,1]", it.Name)
			}
			cfg.items[it.Name] = engine.NewCaptureOrb(it.Name, it.CatchChance)
		case ItemKindRestore:
			if it.HealthRestored <= 0 {
				return nil, fmt.Errorf("item '%s': health_restored must be positive", it.Name)
			}
			cfg.items[it.Name] = engine.NewSnack(it.Name, it.HealthRestored)
		default:
			return nil, fmt.Errorf("item '%s': unknown kind '%s'", it.Name, it.Kind)
		}
	}

	for _, c := range rc.Creatures {
		if c.Name == "" {
			return nil, fmt.Errorf("creature entry missing 'name'")
		}
		if _, dup := cfg.creatures[c.Name]; dup {
			return nil, fmt.Errorf("duplicate creature name '%s'", c.Name)
		}
		if len(c.Moves) > game.MaximumMoveSlots {
			return nil, fmt.Errorf("creature '%s': knows more than %d moves", c.Name, game.MaximumMoveSlots)
		}
		for _, mv := range c.Moves {
			if _, ok := cfg.moves[mv]; !ok {
				return nil, fmt.Errorf("creature '%s': unknown move '%s'", c.Name, mv)
			}
		}
		if c.Level < 1 {
			return nil, fmt.Errorf("creature '%s': level must be at least 1", c.Name)
		}
		cfg.creatures[c.Name] = c
	}

	for _, t := range rc.Trainers {
		if t.Name == "" {
			return nil, fmt.Errorf("trainer entry missing 'name'")
		}
		if _, dup := cfg.trainers[t.Name]; dup {
			return nil, fmt.Errorf("duplicate trainer name '%s'", t.Name)
		}
		if len(t.Creatures) == 0 || len(t.Creatures) > game.MaximumRoster {
			return nil, fmt.Errorf("trainer '%s': roster must hold between 1 and %d creatures", t.Name, game.MaximumRoster)
		}
		for _, cn := range t.Creatures {
			if _, ok := cfg.creatures[cn]; !ok {
				return nil, fmt.Errorf("trainer '%s': unknown creature '%s'", t.Name, cn)
			}
		}
		for _, ie := range t.Items {
			if _, ok := cfg.items[ie.Name]; !ok {
				return nil, fmt.Errorf("trainer '%s': unknown item '%s'", t.Name, ie.Name)
			}
			if ie.Count <= 0 {
				return nil, fmt.Errorf("trainer '%s': item '%s' count must be positive", t.Name, ie.Name)
			}
		}
		switch t.Strategy {
		case "", "basic", "skittish", "rogue":
		default:
			return nil, fmt.Errorf("trainer '%s': unknown strategy '%s'", t.Name, t.Strategy)
		}
		cfg.trainers[t.Name] = t
		cfg.TrainerNames = append(cfg.TrainerNames, t.Name)
	}

	return cfg, nil
}

// Move returns the configured move by name.
func (c *LoadedConfig) Move(name string) (game.Move, bool) {
	m, ok := c.moves[name]
	return m, ok
}

// Item returns the configured item by name.
func (c *LoadedConfig) Item(name string) (game.Item, bool) {
	it, ok := c.items[name]
	return it, ok
}

// BuildCreature constructs a fresh creature from its configured definition.
func (c *LoadedConfig) BuildCreature(name string) (*game.Creature, error) {
	entry, ok := c.creatures[name]
	if !ok {
		return nil, fmt.Errorf("unknown creature '%s'", name)
	}
	stats := game.NewStats(entry.Stats.HitChance, entry.Stats.MaxHealth, entry.Stats.Attack, entry.Stats.Defense)
	moves := make([]game.Move, 0, len(entry.Moves))
	for _, mv := range entry.Moves {
		moves = append(moves, c.moves[mv])
	}
	return game.NewCreature(entry.Name, stats, entry.Element, moves, entry.Level), nil
}

// BuildTrainer constructs a fresh trainer with its roster and inventory.
func (c *LoadedConfig) BuildTrainer(name string) (*game.Trainer, error) {
	entry, ok := c.trainers[name]
	if !ok {
		return nil, fmt.Errorf("unknown trainer '%s'", name)
	}
	t := game.NewTrainer(entry.Name)
	for _, cn := range entry.Creatures {
		cr, err := c.BuildCreature(cn)
		if err != nil {
			return nil, err
		}
		t.Add(cr)
	}
	for _, ie := range entry.Items {
		t.AddItem(c.items[ie.Name], ie.Count)
	}
	return t, nil
}

// StrategyFor returns the decision policy configured for the trainer.
// Trainers without an explicit strategy default to the basic one.
func (c *LoadedConfig) StrategyFor(name string) (ai.Strategy, error) {
	entry, ok := c.trainers[name]
	if !ok {
		return nil, fmt.Errorf("unknown trainer '%s'", name)
	}
	switch entry.Strategy {
	case "", "basic":
		return ai.Basic{}, nil
	case "skittish":
		return ai.Skittish{}, nil
	case "rogue":
		return ai.Rogue{TargetName: entry.Target}, nil
	default:
		return nil, fmt.Errorf("unknown strategy '%s'", entry.Strategy)
	}
}
