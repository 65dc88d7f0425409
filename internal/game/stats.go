package game

// Stats is an immutable snapshot of a creature's combat statistics. All
// transformations return a new value; fields never go below zero.
type Stats struct {
	hitChance float64
	maxHealth int
	attack    int
	defense   int
}

// StatModifier is an elementwise delta applied to Stats. Fields are exported
// because modifiers arrive from configuration (buff/debuff move definitions).
type StatModifier struct {
	HitChance float64 `json:"hit_chance" yaml:"hit_chance"`
	MaxHealth int     `json:"max_health" yaml:"max_health"`
	Attack    int     `json:"attack" yaml:"attack"`
	Defense   int     `json:"defense" yaml:"defense"`
}

// levelUpStatGrowth is the per-level multiplier for health, attack and defense.
const levelUpStatGrowth = 1.05

// NewStats builds a Stats value. Inputs are assumed non-negative; they come
// from validated configuration.
func NewStats(hitChance float64, maxHealth, attack, defense int) Stats {
	return Stats{hitChance: hitChance, maxHealth: maxHealth, attack: attack, defense: defense}
}

func (s Stats) HitChance() float64 { return s.hitChance }
func (s Stats) MaxHealth() int     { return s.maxHealth }
func (s Stats) Attack() int        { return s.attack }
func (s Stats) Defense() int       { return s.defense }

// ApplyModifier returns the elementwise sum of s and m, with every field
// clamped to be non-negative.
func (s Stats) ApplyModifier(m StatModifier) Stats {
	return Stats{
		hitChance: maxFloat(0, s.hitChance+m.HitChance),
		maxHealth: maxInt(0, s.maxHealth+m.MaxHealth),
		attack:    maxInt(0, s.attack+m.Attack),
		defense:   maxInt(0, s.defense+m.Defense),
	}
}

// LevelUp returns the stats grown for one level: health, attack and defense
// grow by 5% (truncated toward zero) and the hit chance resets to exactly 1.
func (s Stats) LevelUp() Stats {
	return Stats{
		hitChance: 1,
		maxHealth: int(float64(s.maxHealth) * levelUpStatGrowth),
		attack:    int(float64(s.attack) * levelUpStatGrowth),
		defense:   int(float64(s.defense) * levelUpStatGrowth),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
