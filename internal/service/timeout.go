package service

import (
	"time"

	"github.com/beastbrawl/beastbrawl/internal/constants"
	"github.com/beastbrawl/beastbrawl/internal/logging"
)

// ExpireIdleSessions removes sessions that have seen no player activity for
// longer than ttl. Unfinished battles are recorded as abandoned so they still
// show up in history, without counting toward trainer stats. Returns the
// number of sessions removed.
func (m *Manager) ExpireIdleSessions(ttl time.Duration) int {
	now := time.Now()
	expired := 0
	for _, sess := range m.List() {
		sess.mu.Lock()
		idle := now.Sub(sess.lastActivity)
		if idle <= ttl {
			sess.mu.Unlock()
			continue
		}
		if err := m.finalizeLocked(sess, !sess.battle.IsOver()); err != nil {
			logging.Error("failed to record expired battle", err, logging.Fields{
				constants.LogFieldBattleID: sess.ID,
			})
		}
		sess.closeWatchers()
		sess.mu.Unlock()

		m.mu.Lock()
		delete(m.sessions, sess.ID)
		m.mu.Unlock()

		logging.Info("expired idle battle session", logging.Fields{
			constants.LogFieldBattleID: sess.ID,
			"idle":                     idle.String(),
		})
		expired++
	}
	return expired
}

// StartExpiryLoop runs ExpireIdleSessions on a fixed interval until the stop
// channel closes.
func (m *Manager) StartExpiryLoop(interval, ttl time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.ExpireIdleSessions(ttl)
		case <-stop:
			return
		}
	}
}
