// Package net exposes the presenter to remote controllers: a websocket
// control endpoint, its share link and mDNS discovery.
package net

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"InkOverlay/internal/applog"
	"InkOverlay/internal/engine"
	"InkOverlay/internal/state"
)

// ControlPath is where the websocket endpoint is mounted.
const ControlPath = "/control"

var ErrUnknownCommand = errors.New("unknown command")

// Command is one request from a controller. Value carries the argument of
// draw_mode (on/off), tool and color.
type Command struct {
	Op    string `json:"op"`
	Value string `json:"value,omitempty"`
}

// Reply answers a command and is also what gets broadcast on change.
type Reply struct {
	OK    bool            `json:"ok"`
	Error string          `json:"error,omitempty"`
	State engine.Snapshot `json:"state"`
}

// Controller is the part of the engine a remote may drive.
type Controller interface {
	SetDrawingMode(on bool)
	ToggleDrawingMode() bool
	SetTool(t state.Tool) error
	SetColor(name string) error
	Undo() bool
	Clear()
	Snapshot() engine.Snapshot
}

// Dispatcher runs f on the goroutine that owns the engine and returns once
// f has completed.
type Dispatcher func(f func())

// Direct runs f on the calling goroutine.
func Direct(f func()) { f() }

// Apply executes cmd against c. The state op changes nothing.
func Apply(c Controller, cmd Command) error {
	switch strings.ToLower(cmd.Op) {
	case "draw_mode":
		on, err := parseSwitch(cmd.Value)
		if err != nil {
			return err
		}
		c.SetDrawingMode(on)
	case "toggle":
		c.ToggleDrawingMode()
	case "tool":
		t, err := state.ParseTool(cmd.Value)
		if err != nil {
			return err
		}
		return c.SetTool(t)
	case "color":
		return c.SetColor(cmd.Value)
	case "undo":
		c.Undo()
	case "clear":
		c.Clear()
	case "state":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Op)
	}
	return nil
}

func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b, nil
	}
	return false, fmt.Errorf("draw_mode expects on or off, got %q", v)
}

type peer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (p *peer) send(r Reply) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return p.conn.WriteJSON(r)
}

const writeTimeout = 5 * time.Second

// Server is the websocket control endpoint. Every connected controller gets
// the current state on connect and after any change, whoever made it.
type Server struct {
	ctrl     Controller
	dispatch Dispatcher
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	peers map[*peer]struct{}

	// executing is set while a remote command runs on the engine goroutine,
	// so Changed can tell remote changes from local ones.
	executing atomic.Bool
}

func NewServer(ctrl Controller, dispatch Dispatcher) *Server {
	if dispatch == nil {
		dispatch = Direct
	}
	return &Server{
		ctrl:     ctrl,
		dispatch: dispatch,
		// Controllers are phones and laptops on the LAN, not browsers on
		// this origin.
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		peers:    make(map[*peer]struct{}),
	}
}

// Peers returns the number of connected controllers.
func (s *Server) Peers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.peers)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger().Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	p := &peer{conn: conn}
	s.add(p)
	defer s.remove(p)

	if err := p.send(Reply{OK: true, State: s.snapshot()}); err != nil {
		return
	}

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger().Debug("controller read", "remote", r.RemoteAddr, "err", err)
			}
			return
		}
		reply := s.execute(cmd)
		logger().Info("command", "remote", r.RemoteAddr, "op", cmd.Op, "value", cmd.Value, "ok", reply.OK)
		if err := p.send(reply); err != nil {
			return
		}
		if reply.OK && !strings.EqualFold(cmd.Op, "state") {
			s.broadcast(reply, p)
		}
	}
}

func (s *Server) execute(cmd Command) Reply {
	var (
		err  error
		snap engine.Snapshot
	)
	s.dispatch(func() {
		s.executing.Store(true)
		defer s.executing.Store(false)
		err = Apply(s.ctrl, cmd)
		snap = s.ctrl.Snapshot()
	})
	if err != nil {
		return Reply{Error: err.Error(), State: snap}
	}
	return Reply{OK: true, State: snap}
}

func (s *Server) snapshot() engine.Snapshot {
	var snap engine.Snapshot
	s.dispatch(func() { snap = s.ctrl.Snapshot() })
	return snap
}

// Broadcast pushes snap to every controller.
func (s *Server) Broadcast(snap engine.Snapshot) {
	s.broadcast(Reply{OK: true, State: snap}, nil)
}

// Changed is the engine change hook; call it on the engine goroutine. Local
// changes are pushed to every controller in the background. Changes made by
// a remote command are skipped: the command handler already replies to the
// sender and broadcasts to the others.
func (s *Server) Changed(snap engine.Snapshot) {
	if s.executing.Load() {
		return
	}
	go s.Broadcast(snap)
}

func (s *Server) broadcast(r Reply, except *peer) {
	s.mu.RLock()
	targets := make([]*peer, 0, len(s.peers))
	for p := range s.peers {
		if p != except {
			targets = append(targets, p)
		}
	}
	s.mu.RUnlock()

	for _, p := range targets {
		if err := p.send(r); err != nil {
			logger().Debug("broadcast failed", "remote", p.conn.RemoteAddr(), "err", err)
		}
	}
}

func (s *Server) add(p *peer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.peers[p] = struct{}{}
	logger().Info("controller connected", "remote", p.conn.RemoteAddr())
}

func (s *Server) remove(p *peer) {
	s.mu.Lock()
	delete(s.peers, p)
	s.mu.Unlock()
	p.conn.Close()
	logger().Info("controller disconnected", "remote", p.conn.RemoteAddr())
}

// ListenAndServe serves the control endpoint on port until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", port, err)
	}
	mux := http.NewServeMux()
	mux.Handle(ControlPath, s)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger().Info("remote control listening", "port", port, "path", ControlPath)
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Send connects to a presenter at addr (host:port), runs one command and
// returns the presenter's reply.
func Send(ctx context.Context, addr string, cmd Command) (Reply, error) {
	url := "ws://" + addr + ControlPath
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return Reply{}, fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	// The first message is the state on connect.
	var hello Reply
	if err := conn.ReadJSON(&hello); err != nil {
		return Reply{}, fmt.Errorf("read greeting: %w", err)
	}
	if err := conn.WriteJSON(cmd); err != nil {
		return Reply{}, fmt.Errorf("send %s: %w", cmd.Op, err)
	}
	var reply Reply
	if err := conn.ReadJSON(&reply); err != nil {
		return Reply{}, fmt.Errorf("read reply: %w", err)
	}
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if !reply.OK {
		return reply, fmt.Errorf("%s: %s", cmd.Op, reply.Error)
	}
	return reply, nil
}

func logger() *slog.Logger { return applog.For("remote") }
