package api

import (
	"net/http"
	"time"

	"github.com/beastbrawl/beastbrawl/internal/constants"
	"github.com/beastbrawl/beastbrawl/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const watchWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Watching is read-only and battles hold no secrets, so any origin may
	// subscribe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// watchEvent is one websocket frame pushed to watchers: the new messages and
// the snapshot after they resolved.
type watchEvent struct {
	Messages []string       `json:"messages"`
	Snapshot BattleSnapshot `json:"snapshot"`
}

// WatchBattle upgrades the connection to a websocket and streams each
// resolved batch of battle messages until the battle ends or the client
// disconnects.
func (h *BattleHandler) WatchBattle(c *gin.Context) {
	id := normalizeBattleID(c.Param("battleID"))
	if id == "" || !battleIDRegex.MatchString(id) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sess, ok := h.manager.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, logging.Fields{
			constants.LogFieldBattleID: id,
			constants.LogFieldAddr:     c.ClientIP(),
		})
		return
	}
	defer conn.Close()

	updates := sess.Subscribe()
	defer sess.Unsubscribe(updates)

	// Drain client frames so pings and close messages are processed; the
	// stream is one-way.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Initial frame carries the current state so late watchers catch up.
	first := watchEvent{Messages: sess.Log(), Snapshot: snapshotSession(sess)}
	conn.SetWriteDeadline(time.Now().Add(watchWriteTimeout))
	if err := conn.WriteJSON(first); err != nil {
		return
	}

	for {
		select {
		case msgs, open := <-updates:
			if !open {
				conn.SetWriteDeadline(time.Now().Add(watchWriteTimeout))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "battle closed"))
				return
			}
			event := watchEvent{Messages: msgs, Snapshot: snapshotSession(sess)}
			conn.SetWriteDeadline(time.Now().Add(watchWriteTimeout))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
