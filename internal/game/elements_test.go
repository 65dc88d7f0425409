package game

import "testing"

func TestEffectiveness_DefaultsToNeutral(t *testing.T) {
	r := NewElementRegistry()
	if got := r.Effectiveness("fire", "water"); got != 1.0 {
		t.Fatalf("expected neutral 1.0 for unregistered pairing, got %v", got)
	}
}

func TestEffectiveness_RegisteredPairings(t *testing.T) {
	r := NewElementRegistry()
	r.Register("fire", "grass", 2.0)
	r.Register("fire", "water", 0.5)

	if got := r.Effectiveness("fire", "grass"); got != 2.0 {
		t.Fatalf("expected 2.0, got %v", got)
	}
	if got := r.Effectiveness("fire", "water"); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
	// Direction matters: the reverse pairing stays neutral.
	if got := r.Effectiveness("grass", "fire"); got != 1.0 {
		t.Fatalf("expected reverse pairing to default to 1.0, got %v", got)
	}
}

func TestEffectiveness_LatestRegistrationWins(t *testing.T) {
	r := NewElementRegistry()
	r.Register("water", "fire", 2.0)
	r.Register("water", "fire", 1.5)
	if got := r.Effectiveness("water", "fire"); got != 1.5 {
		t.Fatalf("expected re-registration to override, got %v", got)
	}
}
