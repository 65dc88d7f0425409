package storage

import "gorm.io/gorm"

// TrainerProfile stores unique trainer identity and aggregate stats.
type TrainerProfile struct {
	gorm.Model
	ProfileKey    string `json:"-" gorm:"uniqueIndex"`
	Name          string `json:"name"`
	BattlesPlayed int    `json:"battles_played"`
	Wins          int    `json:"wins"`
	Escapes       int    `json:"escapes"`
	Captures      int    `json:"captures"`
}

// Unify the profiles table name as "trainer_profiles"
func (TrainerProfile) TableName() string { return "trainer_profiles" }

// BattleRecord is the persisted outcome of one finished battle session.
type BattleRecord struct {
	gorm.Model
	SessionID     string `json:"session_id" gorm:"index"`
	PlayerName    string `json:"player_name"`
	EnemyName     string `json:"enemy_name"`
	TrainerBattle bool   `json:"trainer_battle"`
	// Winner is the victorious trainer's name, or empty when the battle
	// ended early (flee, capture) or was abandoned.
	Winner     string `json:"winner"`
	Rounds     int    `json:"rounds"`
	EndedEarly bool   `json:"ended_early"`
	Abandoned  bool   `json:"abandoned"`
	// Transcript holds the battle's full effect log, one message per line.
	Transcript string `json:"transcript" gorm:"type:text"`
}

func (BattleRecord) TableName() string { return "battle_records" }
