package service

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/beastbrawl/beastbrawl/internal/ai"
	"github.com/beastbrawl/beastbrawl/internal/config"
	"github.com/beastbrawl/beastbrawl/internal/engine"
	"github.com/beastbrawl/beastbrawl/internal/game"
	"github.com/beastbrawl/beastbrawl/internal/storage"
)

var (
	ErrSessionNotFound = errors.New("battle session not found")
	ErrBattleOver      = errors.New("battle is already over")
	ErrInvalidAction   = errors.New("action rejected by the battle")
	ErrUnknownTrainer  = errors.New("unknown trainer")
	ErrUnknownCreature = errors.New("unknown wild creature")
	ErrEnemyAction     = errors.New("enemy strategy produced an invalid action")
)

const sessionIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const sessionIDLength = 8

// Session is one in-memory battle between the player (first side) and a
// policy-driven enemy (second side).
type Session struct {
	ID            string
	PlayerName    string
	EnemyName     string
	TrainerBattle bool

	mu           sync.Mutex
	battle       *engine.Battle
	enemy        ai.Strategy
	rounds       int
	log          []string
	lastActivity time.Time
	recorded     bool

	// startRoster is the player's roster size at creation; growth after an
	// early end means the wild creature was captured.
	startRoster int

	watchers map[chan []string]struct{}
}

// Inspect runs fn with the session lock held, handing it a consistent view of
// the battle, the completed round count and a copy of the effect log.
// SubmitAction mutates the battle under the same lock, so fn must treat the
// battle as read-only and must not retain it past the call.
func (s *Session) Inspect(fn func(b *engine.Battle, rounds int, log []string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := make([]string, len(s.log))
	copy(log, s.log)
	fn(s.battle, s.rounds, log)
}

// Rounds returns the number of completed rounds so far.
func (s *Session) Rounds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rounds
}

// Log returns a copy of the session's full effect log.
func (s *Session) Log() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}

// Subscribe registers a watcher channel receiving each resolved batch of
// messages. The channel is buffered; slow watchers miss batches rather than
// stalling resolution.
func (s *Session) Subscribe() chan []string {
	ch := make(chan []string, 16)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes and closes a watcher channel.
func (s *Session) Unsubscribe(ch chan []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watchers[ch]; ok {
		delete(s.watchers, ch)
		close(ch)
	}
}

// broadcast fans a message batch out to watchers. Callers hold s.mu.
func (s *Session) broadcast(msgs []string) {
	if len(msgs) == 0 {
		return
	}
	for ch := range s.watchers {
		select {
		case ch <- msgs:
		default:
		}
	}
}

// closeWatchers closes every watcher channel. Callers hold s.mu.
func (s *Session) closeWatchers() {
	for ch := range s.watchers {
		close(ch)
		delete(s.watchers, ch)
	}
}

// Manager owns the in-memory battle sessions and the persistence of their
// outcomes.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	cfg  *config.LoadedConfig
	repo storage.Repository
	rnd  *rand.Rand
}

// NewManager creates a session manager over the loaded configuration and
// repository.
func NewManager(cfg *config.LoadedConfig, repo storage.Repository) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		repo:     repo,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateBattleRequest describes a new battle: the player fights either a
// configured enemy trainer (a sanctioned trainer battle) or a single wild
// creature. A non-zero seed makes the battle deterministic.
type CreateBattleRequest struct {
	PlayerTrainer string
	EnemyTrainer  string
	WildCreature  string
	Seed          int64
}

// CreateBattle builds a fresh battle session from configured definitions.
func (m *Manager) CreateBattle(req CreateBattleRequest) (*Session, error) {
	player, err := m.cfg.BuildTrainer(req.PlayerTrainer)
	if err != nil {
		return nil, ErrUnknownTrainer
	}
	player.RestAll()

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := game.NewRoller(seed)

	var (
		battle   *engine.Battle
		enemy    ai.Strategy
		enemyRef string
	)
	switch {
	case req.WildCreature != "":
		wild, err := m.cfg.BuildCreature(req.WildCreature)
		if err != nil {
			return nil, ErrUnknownCreature
		}
		battle = engine.NewEncounter(player, wild, m.cfg.Elements, rng)
		enemy = ai.Basic{}
		enemyRef = wild.Name()
	case req.EnemyTrainer != "":
		enemyTrainer, err := m.cfg.BuildTrainer(req.EnemyTrainer)
		if err != nil {
			return nil, ErrUnknownTrainer
		}
		enemyTrainer.RestAll()
		strategy, err := m.cfg.StrategyFor(req.EnemyTrainer)
		if err != nil {
			return nil, err
		}
		battle = engine.New(player, enemyTrainer, true, m.cfg.Elements, rng)
		enemy = strategy
		enemyRef = enemyTrainer.Name()
	default:
		return nil, ErrUnknownTrainer
	}

	sess := &Session{
		ID:            m.newSessionID(),
		PlayerName:    player.Name(),
		EnemyName:     enemyRef,
		TrainerBattle: battle.IsTrainerBattle(),
		battle:        battle,
		enemy:         enemy,
		lastActivity:  time.Now(),
		startRoster:   len(player.Creatures()),
		watchers:      make(map[chan []string]struct{}),
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[strings.ToUpper(strings.TrimSpace(id))]
	return s, ok
}

// List returns all live sessions.
func (m *Manager) List() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

func (m *Manager) newSessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		b := make([]byte, sessionIDLength)
		for i := range b {
			b[i] = sessionIDCharset[m.rnd.Intn(len(sessionIDCharset))]
		}
		id := string(b)
		if _, taken := m.sessions[id]; !taken {
			return id
		}
	}
}
