package storage

// Repository is the persistence surface consumed by the service and API
// layers. Battles themselves live in memory; only finished outcomes and
// aggregate trainer stats are stored.
type Repository interface {
	// SaveBattleRecord persists the outcome of a finished session.
	SaveBattleRecord(rec *BattleRecord) error
	// RecentBattles returns the most recently finished battles, newest first.
	RecentBattles(limit int) ([]BattleRecord, error)

	// UpsertProfile creates or refreshes a trainer profile by display name.
	UpsertProfile(name string) (*TrainerProfile, error)
	// GetProfileByName returns the profile for a trainer display name, or
	// nil when the trainer has never finished a battle.
	GetProfileByName(name string) (*TrainerProfile, error)
	// UpdateStatsOnBattleEnd folds a finished battle into both trainers'
	// aggregate stats. Anonymous (wild) sides are skipped.
	UpdateStatsOnBattleEnd(rec *BattleRecord, captured bool) error
	// TopTrainers returns the leaderboard ordered by wins.
	TopTrainers(limit int) ([]TrainerProfile, error)
}
