package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/scorpionlabs/tictac/pkg/board"
	"github.com/scorpionlabs/tictac/pkg/config"
	"github.com/scorpionlabs/tictac/pkg/peer"
	"github.com/scorpionlabs/tictac/pkg/pipeline"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

const shutdownTimeout = 5 * time.Second

// Server holds the layout and board exposed by the API.
type Server struct {
	cfg     config.Config
	layout  *waterfall.Layout
	board   *board.Board
	runner  *pipeline.Runner
	session *peer.Session
	logger  *log.Logger
}

// Option configures a [Server].
type Option func(*Server)

// WithRunner sets the pipeline runner used by /render.
func WithRunner(r *pipeline.Runner) Option { return func(s *Server) { s.runner = r } }

// WithSession publishes accepted moves to peers.
func WithSession(sess *peer.Session) Option { return func(s *Server) { s.session = sess } }

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// New builds a server for cfg. When cfg has explicit sections the board is
// absent and move endpoints report UNSUPPORTED.
func New(cfg config.Config, opts ...Option) *Server {
	s := &Server{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}

	m := cfg.Metrics()
	if b, ok := m.(*board.Board); ok {
		s.board = b
	}
	s.layout = waterfall.New(m, append(cfg.LayoutOptions(), waterfall.WithLogger(s.logger))...)
	return s
}

// Layout returns the served layout.
func (s *Server) Layout() *waterfall.Layout { return s.layout }

// Board returns the served board, or nil.
func (s *Server) Board() *board.Board { return s.board }

// ApplyRemote marks a move received from a peer. Moves on occupied or
// unknown cells are logged and dropped.
func (s *Server) ApplyRemote(_ context.Context, m peer.Move) {
	if s.board == nil {
		return
	}
	p, err := s.board.Tap(m.Index)
	if err != nil {
		s.logger.Warn("ignoring peer move", "from", m.Originator, "index", m.Index, "error", err)
		return
	}
	s.logger.Info("peer move", "from", m.Originator, "index", m.Index, "player", p)
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
