package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/pinball/internal/pinball"
)

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and other transports.
type GameServer interface {
	RegisterClient(cfg ClientConfig) (*ClientHandle, error)
	UnregisterClient(clientID int)
	SendInput(clientID int, input pinball.RawInput)
	SendCommand(clientID int, cmd Command)
	Players() int
}

// Server owns one table per client and ticks all of them from a single
// goroutine. Clients only see snapshots and events.
type Server struct {
	cfg          pinball.Config
	layout       pinball.Layout
	simOpts      []pinball.Option
	tickTime     time.Duration
	clients      map[int]*ClientHandle
	nextClientID int
	inputChan    chan ClientInput
	commandCh    chan ClientCommand
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// NewServer creates a server whose tables use cfg. The tick period is
// cfg.TickSeconds.
func NewServer(cfg pinball.Config, opts ...pinball.Option) (*Server, error) {
	sample, err := pinball.NewSimulation(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("new server: %w", err)
	}
	return &Server{
		cfg:          cfg,
		layout:       sample.Layout(),
		simOpts:      opts,
		tickTime:     time.Duration(cfg.TickSeconds * float64(time.Second)),
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		inputChan:    make(chan ClientInput, 256),
		commandCh:    make(chan ClientCommand, 64),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
	}, nil
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		s.step()

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < s.tickTime {
			time.Sleep(s.tickTime - elapsed)
		}
	}
}

// step runs one server tick: registrations, inputs, commands, then every table.
func (s *Server) step() {
	s.processRegistrations()
	s.collectInputs()
	s.applyCommands()
	s.tickTables()
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if s.Players() == 0 {
				return
			}
		}
	}
}

// RegisterClient creates a table for a new client and returns its handle.
// The handle's snapshot is valid immediately.
func (s *Server) RegisterClient(cfg ClientConfig) (*ClientHandle, error) {
	table, err := pinball.NewSimulation(s.cfg, s.simOpts...)
	if err != nil {
		return nil, fmt.Errorf("register client: %w", err)
	}
	if cfg.StartPaused {
		table.Pause()
	}

	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: cfg.Username,
		EventsCh: make(chan ClientEvent, 64),
		layout:   table.Layout(),
		table:    table,
	}
	handle.publish()

	s.registerCh <- handle
	return handle, nil
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendInput sends the latest held-key state of a client. Newer input
// replaces older input not yet applied.
func (s *Server) SendInput(clientID int, input pinball.RawInput) {
	select {
	case s.inputChan <- ClientInput{ClientID: clientID, Input: input}:
	default:
		// Input channel full, drop input
	}
}

// SendCommand queues a command for a client's table.
func (s *Server) SendCommand(clientID int, cmd Command) {
	select {
	case s.commandCh <- ClientCommand{ClientID: clientID, Command: cmd}:
	default:
		log.Warn("Command dropped", "client", clientID, "command", cmd)
	}
}

// Layout returns the static geometry shared by every table.
func (s *Server) Layout() pinball.Layout {
	return s.layout
}

// Players returns the number of connected clients.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			log.Debug("Client registered", "client", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
			}
			s.mu.Unlock()
			log.Debug("Client unregistered", "client", clientID)
		default:
			return
		}
	}
}

// collectInputs gathers all pending inputs from clients.
func (s *Server) collectInputs() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		select {
		case ci := <-s.inputChan:
			if handle, ok := s.clients[ci.ClientID]; ok {
				handle.input = ci.Input
			}
		default:
			return
		}
	}
}

// applyCommands applies queued commands in arrival order.
func (s *Server) applyCommands() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		select {
		case cc := <-s.commandCh:
			handle, ok := s.clients[cc.ClientID]
			if !ok {
				continue
			}
			switch cc.Command {
			case CommandReset:
				handle.table.Reset(true)
				handle.buttons.Reset()
			case CommandRelaunch:
				handle.table.Reset(false)
			case CommandPause:
				handle.table.Pause()
			case CommandResume:
				handle.table.Resume()
				handle.buttons.Reset()
			case CommandLaunch:
				handle.launchPulse = true
			}
		default:
			return
		}
	}
}

// tickTables advances every table by one tick and publishes its snapshot.
func (s *Server) tickTables() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, handle := range s.clients {
		raw := handle.input
		if handle.launchPulse {
			raw.Launch = true
			handle.launchPulse = false
		}

		res := handle.table.Tick(handle.buttons.Resolve(raw))
		if len(res.Events) > 0 {
			select {
			case handle.EventsCh <- ClientEvent{Type: EventTable, Result: res}:
			default:
			}
		}
		handle.publish()
	}
}
