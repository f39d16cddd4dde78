package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	maxMsgSize      = 4 << 10
	defaultInterval = time.Second
	maxInterval     = 10 * time.Second
)

const (
	wsTypeEntries = "entries"
	wsTypeError   = "error"
)

type wsEnvelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// entryStream pushes the entry list to one client, skipping polls where
// nothing changed.
type entryStream struct {
	h        *Handler
	conn     *websocket.Conn
	interval time.Duration
	last     []byte
}

// @Summary      Stream config entries
// @Description  Sends the entry list on connect and whenever it changes.
// @Tags         entries
// @Param        interval  query  string  false  "Poll interval: Go duration or milliseconds (max 10s)"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	s := &entryStream{h: h, conn: conn, interval: interval}
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(s.drain)
	g.Go(func() error {
		defer func() { _ = conn.Close() }()
		return s.push(ctx)
	})
	if err := g.Wait(); err != nil && h.log != nil {
		h.log.Infow("ws_stream_closed", "err", err)
	}
}

// parseInterval reads ?interval as a duration ("250ms") or plain
// milliseconds ("250"). Missing or out of range values fall back to the
// configured stream interval.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	fallback := h.streamInterval
	if fallback <= 0 || fallback > maxInterval {
		fallback = defaultInterval
	}

	raw := c.Query("interval")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		ms, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return fallback
		}
		d = time.Duration(ms) * time.Millisecond
	}
	if d <= 0 || d > maxInterval {
		return fallback
	}
	return d
}

var errStreamDone = errors.New("client went away")

// drain consumes client frames so control messages are processed.
func (s *entryStream) drain() error {
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return errors.Join(errStreamDone, err)
		}
	}
}

func (s *entryStream) push(ctx context.Context) error {
	if err := s.sendIfChanged(ctx); err != nil {
		s.closeWith(websocket.CloseInternalServerErr, "entries unavailable")
		return err
	}

	poll := time.NewTicker(s.interval)
	ping := time.NewTicker(pingPeriod)
	defer poll.Stop()
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ping.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		case <-poll.C:
			err := s.sendIfChanged(ctx)
			var listErr *listError
			if errors.As(err, &listErr) {
				if werr := s.write(wsEnvelope{Type: wsTypeError, Error: errInternal}); werr != nil {
					return werr
				}
				continue
			}
			if err != nil {
				return err
			}
		}
	}
}

type listError struct{ err error }

func (e *listError) Error() string { return "list entries: " + e.err.Error() }
func (e *listError) Unwrap() error { return e.err }

func (s *entryStream) sendIfChanged(ctx context.Context) error {
	entries, err := s.h.services.ListEntries(ctx)
	if err != nil {
		if s.h.log != nil {
			s.h.log.Errorw("ws_list_entries_failed", "err", err)
		}
		s.last = nil
		return &listError{err: err}
	}
	snapshot, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if s.last != nil && bytes.Equal(snapshot, s.last) {
		return nil
	}
	s.last = snapshot
	return s.write(wsEnvelope{Type: wsTypeEntries, Data: json.RawMessage(snapshot)})
}

func (s *entryStream) write(env wsEnvelope) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(env)
}

func (s *entryStream) closeWith(code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
