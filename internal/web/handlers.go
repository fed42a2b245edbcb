package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.checkConnectionLimit() {
		http.Error(w, "Maximum connections reached", http.StatusServiceUnavailable)
		return
	}
	defer s.releaseConnection()

	logger.Info("WebSocket connection attempt",
		"remote", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	opts := &websocket.AcceptOptions{
		OriginPatterns: s.config.AllowOrigins,
	}
	if len(s.config.AllowOrigins) == 0 {
		opts.OriginPatterns = []string{"*"}
	}

	conn, err := websocket.Accept(w, r, opts)
	if err != nil {
		logger.Error("WebSocket accept failed", "err", err, "remote", r.RemoteAddr)
		return
	}
	defer func() { _ = conn.CloseNow() }()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	session := NewSession(s.config.Geometry)
	s.sessions.Store(session.ID, session)
	defer func() {
		session.Close()
		s.sessions.Delete(session.ID)
		logger.Info("WebSocket session ended",
			"session", session.ID,
			"remote", r.RemoteAddr,
			"duration", time.Since(session.startTime).Round(time.Second),
		)
	}()

	logger.Info("WebSocket session started",
		"session", session.ID,
		"remote", r.RemoteAddr,
	)

	if err := wsjson.Write(ctx, conn, session.Snapshot()); err != nil {
		logger.Debug("initial snapshot failed", "session", session.ID, "err", err)
		return
	}

	s.serveSession(ctx, conn, session)
	_ = conn.Close(websocket.StatusNormalClosure, "")
}

// serveSession applies client messages in order and answers each one with a
// snapshot.
func (s *Server) serveSession(ctx context.Context, conn *websocket.Conn, session *Session) {
	var msgCount int64
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				if !errors.Is(err, context.Canceled) {
					logger.Debug("WebSocket read error", "session", session.ID, "err", err)
				}
			}
			logger.Debug("WebSocket input stopped", "session", session.ID, "messages", msgCount)
			return
		}
		msgCount++

		var msg ClientMessage
		if err = json.Unmarshal(data, &msg); err != nil {
			err = fmt.Errorf("decode message: %w", err)
		} else {
			err = session.Apply(msg)
		}
		snap := session.Snapshot()
		if err != nil {
			logger.Warn("invalid message", "session", session.ID, "type", msg.Type, "err", err)
			snap.Error = err.Error()
		}

		if err := wsjson.Write(ctx, conn, snap); err != nil {
			logger.Debug("WebSocket write error", "session", session.ID, "err", err)
			return
		}
	}
}
