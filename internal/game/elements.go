package game

// ElementRegistry holds the damage multipliers between elemental types.
// It is populated once from configuration before any battle begins and is
// shared (read-only) by every battle that needs to compute effectiveness.
type ElementRegistry struct {
	effectiveness map[string]map[string]float64
}

func NewElementRegistry() *ElementRegistry {
	return &ElementRegistry{effectiveness: make(map[string]map[string]float64)}
}

// Register records the damage multiplier applied when a move of the attacking
// type hits a creature of the defending type.
func (r *ElementRegistry) Register(attacking, defending string, multiplier float64) {
	m, ok := r.effectiveness[attacking]
	if !ok {
		m = make(map[string]float64)
		r.effectiveness[attacking] = m
	}
	m[defending] = multiplier
}

// Effectiveness returns the registered multiplier, or 1.0 for any pair that
// was never registered.
func (r *ElementRegistry) Effectiveness(attacking, defending string) float64 {
	if m, ok := r.effectiveness[attacking]; ok {
		if e, ok := m[defending]; ok {
			return e
		}
	}
	return 1.0
}
