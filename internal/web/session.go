package web

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tomz197/pinball/internal/loop/server"
	"github.com/tomz197/pinball/internal/pinball"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
	frameRate      = 60
	sendBuffer     = 32
)

// session is one browser table.
type session struct {
	conn   *websocket.Conn
	tables Tables
	handle *server.ClientHandle
	send   chan []byte
	done   chan struct{}
	fade   time.Duration
	logger *log.Logger
}

// HandleWebSocket upgrades the request and runs a table until the socket closes.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.originAllowed,
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("WebSocket upgrade failed", "err", err)
		return
	}

	handle, err := h.tables.RegisterClient(server.ClientConfig{Username: c.ClientIP()})
	if err != nil {
		log.Error("Register table", "err", err)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "table unavailable"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}

	s := &session{
		conn:   conn,
		tables: h.tables,
		handle: handle,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		fade:   h.opts.FadeDuration,
		logger: log.With("client", handle.ID, "remote", c.ClientIP()),
	}
	s.logger.Info("Table opened")

	s.queue(layoutMessage{Type: "layout", Layout: h.tables.Layout()})
	go s.writePump()
	s.readPump()

	h.tables.UnregisterClient(handle.ID)
	s.logger.Info("Table closed")
}

// queue marshals v and queues it for the write pump. A full buffer drops it.
func (s *session) queue(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("Marshal message", "err", err)
		return
	}
	select {
	case s.send <- data:
	default:
		s.logger.Debug("Send buffer full, dropping message")
	}
}

// readPump applies inbound messages until the connection fails.
func (s *session) readPump() {
	defer func() {
		close(s.done)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket closed unexpectedly", "err", err)
			}
			return
		}
		msg, err := decodeMessage(data)
		if err != nil {
			s.logger.Debug("Ignoring message", "err", err)
			continue
		}
		s.apply(msg)
	}
}

// apply turns a decoded message into table input or commands.
func (s *session) apply(msg clientMessage) {
	id := s.handle.ID
	switch msg.Type {
	case msgInput:
		s.tables.SendInput(id, msg.raw())
	case msgLaunch:
		s.tables.SendCommand(id, server.CommandLaunch)
	case msgReset:
		if msg.fullReset() {
			s.tables.SendCommand(id, server.CommandReset)
		} else {
			s.tables.SendCommand(id, server.CommandRelaunch)
		}
	case msgVisibility:
		if *msg.Active {
			s.tables.SendCommand(id, server.CommandResume)
		} else {
			s.tables.SendInput(id, pinball.RawInput{})
			s.tables.SendCommand(id, server.CommandPause)
		}
	}
}

// writePump sends frames, events and pings until the read side ends or the
// server drops the table.
func (s *session) writePump() {
	frames := time.NewTicker(time.Second / frameRate)
	pings := time.NewTicker(pingPeriod)
	defer func() {
		frames.Stop()
		pings.Stop()
		s.conn.Close()
	}()

	var lastTick uint64
	lastActive := true
	sentAny := false
	wasDrained := false

	for {
		select {
		case <-s.done:
			return

		case data := <-s.send:
			if !s.write(websocket.TextMessage, data) {
				return
			}

		case ev, ok := <-s.handle.EventsCh:
			if !ok {
				s.closeWith(websocket.CloseGoingAway, "table closed")
				return
			}
			switch ev.Type {
			case server.EventTable:
				s.queue(newEvents(ev.Result))
			case server.EventServerShutdown:
				data, _ := json.Marshal(typeMessage{Type: "shutdown"})
				s.write(websocket.TextMessage, data)
				s.closeWith(websocket.CloseGoingAway, "server shutting down")
				return
			}

		case now := <-frames.C:
			snap := s.handle.Snapshot()
			if sentAny && snap.Tick == lastTick && snap.Active == lastActive && !s.fading(snap, now) {
				continue
			}
			sentAny, lastTick, lastActive = true, snap.Tick, snap.Active

			if snap.Drained && !wasDrained {
				s.queue(typeMessage{Type: "drained"})
			}
			wasDrained = snap.Drained

			data, err := json.Marshal(newFrame(snap, s.tables.Players(), now, s.fade))
			if err != nil {
				s.logger.Error("Marshal frame", "err", err)
				continue
			}
			if !s.write(websocket.TextMessage, data) {
				return
			}

		case <-pings.C:
			if !s.write(websocket.PingMessage, nil) {
				return
			}
		}
	}
}

// fading reports whether any consumed bumper icon is still fading in, so
// frames keep flowing while the table itself is still.
func (s *session) fading(snap *pinball.Snapshot, now time.Time) bool {
	for _, b := range snap.Bumpers {
		if !b.Active && b.FadeIn(now, s.fade) < 1 {
			return true
		}
	}
	return false
}

func (s *session) write(messageType int, data []byte) bool {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(messageType, data); err != nil {
		s.logger.Debug("WebSocket write failed", "err", err)
		return false
	}
	return true
}

func (s *session) closeWith(code int, reason string) {
	s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
}
