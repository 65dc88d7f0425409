package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beastbrawl/beastbrawl/internal/constants"
	"github.com/beastbrawl/beastbrawl/internal/engine"
	"github.com/beastbrawl/beastbrawl/internal/logging"
	"github.com/beastbrawl/beastbrawl/internal/storage"
)

// Player action kinds accepted by SubmitAction.
const (
	ActionMove   = "move"
	ActionItem   = "item"
	ActionSwitch = "switch"
	ActionFlee   = "flee"
)

var (
	ErrUnknownActionKind = errors.New("unknown action kind")
	ErrUnknownMove       = errors.New("active creature does not know that move")
	ErrUnknownItem       = errors.New("trainer does not carry that item")
)

// ActionRequest is a player's choice for the current round.
type ActionRequest struct {
	Kind  string `json:"kind"`
	Move  string `json:"move,omitempty"`
	Item  string `json:"item,omitempty"`
	Index int    `json:"index,omitempty"`
}

// RoundResult carries everything that happened after the player's submission:
// the resolved messages (possibly spanning several resolutions) and whether
// the battle finished.
type RoundResult struct {
	Messages []string `json:"messages"`
	Over     bool     `json:"over"`
	Winner   string   `json:"winner,omitempty"`
}

// SubmitAction queues the player's action, lets the enemy strategy respond,
// and resolves actions until the round settles or the battle ends. The
// resulting messages are appended to the session log and broadcast to
// watchers.
func (m *Manager) SubmitAction(sessionID string, req ActionRequest) (*RoundResult, error) {
	sess, ok := m.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	b := sess.battle
	if b.IsOver() {
		return nil, ErrBattleOver
	}

	action, err := buildAction(b, req)
	if err != nil {
		return nil, err
	}
	if err := b.QueueAction(action, engine.SideFirst); err != nil {
		return nil, err
	}
	if !b.HasQueuedAction(engine.SideFirst) {
		return nil, ErrInvalidAction
	}

	msgs, err := m.advanceLocked(sess)
	if err != nil {
		return nil, err
	}
	sess.lastActivity = time.Now()
	sess.log = append(sess.log, msgs...)
	sess.broadcast(msgs)

	result := &RoundResult{Messages: msgs, Over: b.IsOver()}
	if b.IsOver() {
		result.Winner = sess.winner()
		if err := m.finalizeLocked(sess, false); err != nil {
			logging.Error("failed to persist finished battle", err, logging.Fields{
				constants.LogFieldBattleID: sess.ID,
			})
		}
	}
	return result, nil
}

// buildAction maps an API request onto a concrete battle action for the
// player's side.
func buildAction(b *engine.Battle, req ActionRequest) (engine.Action, error) {
	switch strings.ToLower(strings.TrimSpace(req.Kind)) {
	case ActionFlee:
		return engine.Flee{}, nil
	case ActionSwitch:
		return engine.Switch{Index: req.Index}, nil
	case ActionMove:
		active, err := b.Trainer(engine.SideFirst).ActiveCreature()
		if err != nil {
			return nil, err
		}
		for _, mu := range active.MoveInfo() {
			if strings.EqualFold(mu.Move.Name(), req.Move) {
				act, ok := mu.Move.(engine.Action)
				if !ok {
					return nil, fmt.Errorf("move %q is not usable in battle", req.Move)
				}
				return act, nil
			}
		}
		return nil, ErrUnknownMove
	case ActionItem:
		for _, ic := range b.Trainer(engine.SideFirst).Inventory() {
			if strings.EqualFold(ic.Item.Name(), req.Item) {
				act, ok := ic.Item.(engine.Action)
				if !ok {
					return nil, fmt.Errorf("item %q is not usable in battle", req.Item)
				}
				return act, nil
			}
		}
		return nil, ErrUnknownItem
	default:
		return nil, ErrUnknownActionKind
	}
}

// advanceLocked drives the battle forward: it prompts the enemy strategy
// whenever the protocol expects the second side to act, and resolves queued
// actions while the battle is ready, stopping once the round settles with an
// empty queue. Callers hold sess.mu.
func (m *Manager) advanceLocked(sess *Session) ([]string, error) {
	b := sess.battle
	var msgs []string
	for !b.IsOver() {
		if enemyShouldAct(b) {
			action, err := sess.enemy.NextAction(b, engine.SideSecond)
			if err != nil {
				return msgs, err
			}
			if err := b.QueueAction(action, engine.SideSecond); err != nil {
				return msgs, err
			}
			if !b.HasQueuedAction(engine.SideSecond) {
				return msgs, ErrEnemyAction
			}
		}
		if !b.IsReady() {
			break
		}
		before := b.Turn()
		summary, err := b.ResolveNext()
		if err != nil {
			return msgs, err
		}
		if before != engine.TurnUnset && b.Turn() == engine.TurnUnset {
			sess.rounds++
		}
		if summary != nil {
			msgs = append(msgs, summary.Messages()...)
		}
		if b.QueueEmpty() && b.Turn() == engine.TurnUnset {
			break
		}
	}
	return msgs, nil
}

// enemyShouldAct reports whether the protocol is waiting on the second side:
// either explicitly, or because the round just opened with the player's
// action already queued.
func enemyShouldAct(b *engine.Battle) bool {
	if b.HasQueuedAction(engine.SideSecond) {
		return false
	}
	switch b.Turn() {
	case engine.TurnWaitingOnSecond:
		return true
	case engine.TurnUnset:
		return b.HasQueuedAction(engine.SideFirst)
	default:
		return false
	}
}

// winner names the side whose opponent has no conscious creatures left, or
// returns empty when the battle ended early or is undecided. Callers hold
// sess.mu.
func (s *Session) winner() string {
	b := s.battle
	if b.EndedEarly() {
		return ""
	}
	if b.Trainer(engine.SideSecond).AllFainted() {
		return s.PlayerName
	}
	if b.Trainer(engine.SideFirst).AllFainted() {
		return s.enemyWinnerName()
	}
	return ""
}

// enemyWinnerName only credits named trainers; wild creatures do not hold a
// profile.
func (s *Session) enemyWinnerName() string {
	if !s.TrainerBattle {
		return ""
	}
	return s.EnemyName
}

// finalizeLocked persists the battle outcome and aggregate stats exactly
// once. Callers hold sess.mu.
func (m *Manager) finalizeLocked(sess *Session, abandoned bool) error {
	if sess.recorded || m.repo == nil {
		return nil
	}
	sess.recorded = true

	b := sess.battle
	captured := b.EndedEarly() &&
		len(b.Trainer(engine.SideFirst).Creatures()) > sess.startRoster

	rec := &storage.BattleRecord{
		SessionID:     sess.ID,
		PlayerName:    sess.PlayerName,
		EnemyName:     sess.EnemyName,
		TrainerBattle: sess.TrainerBattle,
		Winner:        sess.winner(),
		Rounds:        sess.rounds,
		EndedEarly:    b.EndedEarly(),
		Abandoned:     abandoned,
		Transcript:    strings.Join(sess.log, "\n"),
	}
	if err := m.repo.SaveBattleRecord(rec); err != nil {
		return err
	}
	if abandoned {
		return nil
	}
	return m.repo.UpdateStatsOnBattleEnd(rec, captured)
}
