package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/scorpionlabs/tictac/pkg/board"
	"github.com/scorpionlabs/tictac/pkg/buildinfo"
	"github.com/scorpionlabs/tictac/pkg/errors"
	"github.com/scorpionlabs/tictac/pkg/peer"
	"github.com/scorpionlabs/tictac/pkg/pipeline"
	"github.com/scorpionlabs/tictac/pkg/render"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

type sizeResponse struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Generation uint64  `json:"generation"`
}

type recordsResponse struct {
	Query      waterfall.Rect     `json:"query"`
	Generation uint64             `json:"generation"`
	Records    []waterfall.Record `json:"records"`
}

type boundsRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type boundsResponse struct {
	Invalidated bool           `json:"invalidated"`
	Bounds      waterfall.Size `json:"bounds"`
}

type paramsRequest struct {
	Columns *int     `json:"columns,omitempty"`
	Padding *float64 `json:"padding,omitempty"`
}

type boardResponse struct {
	Cells []board.Player `json:"cells"`
	Next  board.Player   `json:"next"`
	Full  bool           `json:"full"`
}

type moveRequest struct {
	Index  *int          `json:"index"`
	Player *board.Player `json:"player,omitempty"`
}

type moveResponse struct {
	Index     int          `json:"index"`
	Player    board.Player `json:"player"`
	Published bool         `json:"published"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg)
}

func (s *Server) handleContentSize(w http.ResponseWriter, _ *http.Request) {
	snap := s.layout.Snapshot()
	size := snap.ContentSize()
	writeJSON(w, http.StatusOK, sizeResponse{Width: size.Width, Height: size.Height, Generation: snap.Generation})
}

// handleRecords answers a viewport query. Missing coordinates default to the
// whole content area.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	snap := s.layout.Snapshot()
	size := snap.ContentSize()

	q := waterfall.Rect{Width: size.Width, Height: size.Height}
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"x", &q.X}, {"y", &q.Y}, {"w", &q.Width}, {"h", &q.Height},
	} {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not a number", p.name, raw))
			return
		}
		*p.dst = v
	}

	records := snap.Query(q)
	if records == nil {
		records = []waterfall.Record{}
	}
	writeJSON(w, http.StatusOK, recordsResponse{Query: q, Generation: snap.Generation, Records: records})
}

func (s *Server) handleInvalidate(w http.ResponseWriter, _ *http.Request) {
	s.layout.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	var req boundsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Width < 0 || req.Height < 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "bounds must not be negative"))
		return
	}
	size := waterfall.Size{Width: req.Width, Height: req.Height}
	changed := s.layout.SetBounds(size)
	writeJSON(w, http.StatusOK, boundsResponse{Invalidated: changed, Bounds: size})
}

func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	var req paramsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Columns != nil && *req.Columns < 1 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "columns must be at least 1, got %d", *req.Columns))
		return
	}
	if req.Padding != nil && *req.Padding < 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "padding must not be negative, got %g", *req.Padding))
		return
	}
	if req.Columns != nil {
		s.layout.SetColumns(*req.Columns)
	}
	if req.Padding != nil {
		s.layout.SetPadding(*req.Padding)
	}
	writeJSON(w, http.StatusOK, s.layout.Params())
}

func (s *Server) handleBoard(w http.ResponseWriter, _ *http.Request) {
	if s.board == nil {
		writeError(w, errNoBoard())
		return
	}
	writeJSON(w, http.StatusOK, boardResponse{Cells: s.board.Cells(), Next: s.board.Next(), Full: s.board.Full()})
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	if s.board == nil {
		writeError(w, errNoBoard())
		return
	}
	s.board.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// handleMove places a mark. Without an explicit player the local marker is
// used and flipped. Accepted moves are published when a session is set; a
// move that cannot be delivered is removed from the board again.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if s.board == nil {
		writeError(w, errNoBoard())
		return
	}
	var req moveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Index == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "index is required"))
		return
	}

	var (
		p   board.Player
		err error
	)
	tapped := req.Player == nil
	if tapped {
		p, err = s.board.Tap(*req.Index)
	} else {
		p = *req.Player
		err = s.board.Mark(*req.Index, p)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	resp := moveResponse{Index: *req.Index, Player: p}
	if s.session != nil {
		if err := s.session.SendWithRetry(r.Context(), peer.Move{Index: *req.Index}); err != nil {
			// An undelivered move is taken back so the caller can retry it.
			if tapped {
				s.board.Untap(*req.Index, p)
			} else {
				s.board.Unmark(*req.Index, p)
			}
			s.logger.Warn("move not delivered", "index", *req.Index, "error", err)
			writeError(w, err)
			return
		}
		resp.Published = true
	}
	writeJSON(w, http.StatusOK, resp)
}

var contentTypes = map[string]string{
	render.FormatSVG:  "image/svg+xml",
	render.FormatPNG:  "image/png",
	render.FormatJSON: "application/json",
	render.FormatText: "text/plain; charset=utf-8",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := render.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	snap := s.layout.Snapshot()
	opts := pipeline.Options{Formats: []string{format}, Labels: r.URL.Query().Has("labels")}
	if raw := r.URL.Query().Get("scale"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "scale: %q is not a positive number", raw))
			return
		}
		opts.Scale = v
	}
	if s.board != nil {
		opts.Cells = s.board.Cells()
	}

	artifacts, err := s.runner.Render(r.Context(), snap, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func errNoBoard() error {
	return errors.New(errors.ErrCodeUnsupported, "no board: the layout is built from explicit sections")
}
