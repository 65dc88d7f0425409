package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/beastbrawl/beastbrawl/internal/config"
	"github.com/beastbrawl/beastbrawl/internal/service"

	"github.com/gin-gonic/gin"
)

const handlerConfigJSON = `{
  "moves": [
    { "name": "Scratch", "kind": "attack", "element": "normal", "max_uses": 35, "speed": 2, "base_damage": 40, "hit_chance": 1.0 }
  ],
  "creatures": [
    { "name": "Flarix", "element": "fire", "level": 5,
      "stats": { "hit_chance": 1.0, "max_health": 100, "attack": 70, "defense": 50 },
      "moves": ["Scratch"] },
    { "name": "Plainling", "element": "normal", "level": 3,
      "stats": { "hit_chance": 1.0, "max_health": 70, "attack": 45, "defense": 40 },
      "moves": ["Scratch"] }
  ],
  "trainers": [
    { "name": "Ash", "creatures": ["Flarix"] }
  ]
}`

func newTestHandler(t *testing.T) (*BattleHandler, *service.Manager) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(handlerConfigJSON), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	manager := service.NewManager(cfg, nil)
	return NewBattleHandler(manager, nil, cfg), manager
}

func newBattleRouter(h *BattleHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/battles/:battleID", h.GetBattle)
	router.POST("/api/battles/:battleID/action", h.SubmitAction)
	return router
}

func postAction(router *gin.Engine, id, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/battles/"+id+"/action", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitActionHandler_UnknownBattle(t *testing.T) {
	h, _ := newTestHandler(t)
	router := newBattleRouter(h)

	if w := postAction(router, "AAAAAAAA", `{"kind":"flee"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSubmitActionHandler_ReturnsResultAndSnapshot(t *testing.T) {
	h, manager := newTestHandler(t)
	router := newBattleRouter(h)

	sess, err := manager.CreateBattle(service.CreateBattleRequest{
		PlayerTrainer: "Ash",
		WildCreature:  "Plainling",
		Seed:          1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := postAction(router, sess.ID, `{"kind":"flee"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Result   service.RoundResult `json:"result"`
		Snapshot BattleSnapshot      `json:"snapshot"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Result.Over || !resp.Snapshot.Over {
		t.Fatalf("fleeing a wild battle must end it, got %+v", resp)
	}
	if resp.Snapshot.ID != sess.ID {
		t.Fatalf("snapshot must describe the submitted battle")
	}
}

func TestSnapshotSurvivesSessionExpiry(t *testing.T) {
	h, manager := newTestHandler(t)
	router := newBattleRouter(h)

	sess, err := manager.CreateBattle(service.CreateBattleRequest{
		PlayerTrainer: "Ash",
		WildCreature:  "Plainling",
		Seed:          1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Drop the session from the manager the way the expiry scanner would.
	if n := manager.ExpireIdleSessions(-time.Second); n != 1 {
		t.Fatalf("expected the session to expire, got %d", n)
	}

	// A pointer retained before removal still snapshots cleanly.
	snap := snapshotSession(sess)
	if snap.ID != sess.ID {
		t.Fatalf("unexpected snapshot after expiry: %+v", snap)
	}

	// New requests no longer find the battle.
	if w := postAction(router, sess.ID, `{"kind":"flee"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after expiry, got %d", w.Code)
	}
}
