package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"qsim/internal/service/progress"
)

// ProgressWSHandler streams progress snapshots for a running simulation over
// a websocket. Clients that prefer polling use GET /simulations/{simID}/progress
// instead.
type ProgressWSHandler struct {
	progress *progress.Store
}

func NewProgressWSHandler(prog *progress.Store) *ProgressWSHandler {
	return &ProgressWSHandler{progress: prog}
}

const (
	progressWSWriteWait = 10 * time.Second
	progressWSPongWait  = 60 * time.Second
	progressWSPingEvery = (progressWSPongWait * 9) / 10
)

var progressWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

func (h *ProgressWSHandler) HandleProgressWS(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("sim_id"))
	simID, err := parseSimID(raw)
	if err != nil || simID <= 0 {
		http.Error(w, "sim_id is required", http.StatusBadRequest)
		return
	}

	conn, err := progressWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(progressWSPongWait)); err != nil {
		log.Printf("progress ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(progressWSPongWait))
	})

	writeCh := make(chan progress.Snapshot, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(progressWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(progressWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(snap); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(progressWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	subCh := h.progress.Subscribe(ctx, simID)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-subCh:
				if !ok {
					cancel()
					return
				}
				pushProgressWS(writeCh, snap)
			}
		}
	}()

	// The read loop only services control frames and detects disconnects;
	// no inbound messages are expected.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			cancel()
			<-writerDone
			return
		}
	}
}

func pushProgressWS(writeCh chan progress.Snapshot, snap progress.Snapshot) {
	select {
	case writeCh <- snap:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- snap:
	default:
	}
}
