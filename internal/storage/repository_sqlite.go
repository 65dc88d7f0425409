package storage

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/beastbrawl/beastbrawl/internal/dedupe"
	"github.com/beastbrawl/beastbrawl/internal/keys"

	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository wraps a migrated gorm DB in the Repository interface.
func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) SaveBattleRecord(rec *BattleRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) RecentBattles(limit int) ([]BattleRecord, error) {
	var out []BattleRecord
	err := r.db.Order("created_at desc").Limit(limit).Find(&out).Error
	return out, err
}

func (r *sqliteRepository) UpsertProfile(name string) (*TrainerProfile, error) {
	key := keys.ProfileKeyFromName(name)
	if key == "" {
		return nil, fmt.Errorf("empty trainer name")
	}
	var p TrainerProfile
	err := r.db.Where("profile_key = ?", key).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = TrainerProfile{ProfileKey: key, Name: name}
		if err := r.db.Create(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}
	// keep the latest display casing
	if p.Name != name {
		p.Name = name
		if err := r.db.Save(&p).Error; err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (r *sqliteRepository) GetProfileByName(name string) (*TrainerProfile, error) {
	key := keys.ProfileKeyFromName(name)
	// Collapse concurrent lookups for the same trainer into one query.
	v, err, _ := dedupe.ProfileGroup.Do(key, func() (interface{}, error) {
		var p TrainerProfile
		err := r.db.Where("profile_key = ?", key).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return (*TrainerProfile)(nil), nil
		}
		if err != nil {
			return nil, err
		}
		return &p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*TrainerProfile), nil
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(rec *BattleRecord, captured bool) error {
	update := func(name string) error {
		if name == "" {
			return nil
		}
		p, err := r.UpsertProfile(name)
		if err != nil {
			return err
		}
		p.BattlesPlayed++
		if rec.Winner != "" && rec.Winner == name {
			p.Wins++
		}
		if rec.EndedEarly && name == rec.PlayerName {
			if captured {
				p.Captures++
			} else {
				p.Escapes++
			}
		}
		return r.db.Save(p).Error
	}
	if err := update(rec.PlayerName); err != nil {
		return err
	}
	// Wild creatures do not hold trainer profiles.
	if !rec.TrainerBattle {
		return nil
	}
	return update(rec.EnemyName)
}

func (r *sqliteRepository) TopTrainers(limit int) ([]TrainerProfile, error) {
	v, err, _ := dedupe.LeaderboardGroup.Do(strconv.Itoa(limit), func() (interface{}, error) {
		var out []TrainerProfile
		err := r.db.Order("wins desc, battles_played asc").Limit(limit).Find(&out).Error
		return out, err
	})
	if err != nil {
		return nil, err
	}
	return v.([]TrainerProfile), nil
}
