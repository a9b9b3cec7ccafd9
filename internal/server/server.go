// Package server exposes the footprint generator over HTTP.
//
// Routes:
//
//	GET /parameters   parameter table as JSON, with default values
//	GET /footprint    .kicad_mod for the parameters given in the query
//	GET /preview.png  PNG preview for the same parameters
//
// Query keys are parameter keys (width, edge-segments-x, drill-hole, ...).
// The preview also takes size=WxH and theme.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/pcb"
	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/renderer"
	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/trackpad"
)

// MaxPreviewSize bounds each preview dimension in pixels
const MaxPreviewSize = 4096

const shutdownWait = 5 * time.Second

// Server serves footprints generated from a base configuration
type Server struct {
	base   trackpad.Config
	logger *log.Logger
	router chi.Router
}

// New returns a server whose requests start from base
func New(base trackpad.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{base: base, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/parameters", s.handleParameters)
	r.Get("/footprint", s.handleFootprint)
	r.Get("/preview.png", s.handlePreview)
	s.router = r
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

type parameterInfo struct {
	trackpad.Param
	Default string `json:"default"`
}

func (s *Server) handleParameters(w http.ResponseWriter, r *http.Request) {
	cfg := s.base
	var out []parameterInfo
	for _, p := range trackpad.Parameters() {
		v, err := trackpad.ParamValue(&cfg, p.Key)
		if err != nil {
			s.fail(w, err)
			return
		}
		out = append(out, parameterInfo{Param: p, Default: v})
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		s.logger.Error("encode parameters", "err", err)
	}
}

func (s *Server) handleFootprint(w http.ResponseWriter, r *http.Request) {
	fp, ok := s.build(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := pcb.WriteFootprint(&buf, fp); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fp.Name+".kicad_mod"))
	w.Write(buf.Bytes())
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	opts := renderer.DefaultOptions()
	q := r.URL.Query()

	if size := q.Get("size"); size != "" {
		width, height, err := renderer.ParseSize(size, MaxPreviewSize)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		opts.Width, opts.Height = width, height
	}
	if name := q.Get("theme"); name != "" {
		theme, err := renderer.ThemeByName(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		opts.Theme = theme
	}

	fp, ok := s.build(w, r, "size", "theme")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := renderer.RenderPNG(&buf, fp, opts); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// build generates the footprint for the request query. On failure the
// response has been written and ok is false.
func (s *Server) build(w http.ResponseWriter, r *http.Request, reserved ...string) (*pcb.Footprint, bool) {
	cfg, err := s.configFromQuery(r, reserved...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	fp, err := pcb.Build(cfg, trackpad.WithLogger(s.logger))
	if err != nil {
		if trackpad.IsConfigError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		} else {
			s.fail(w, err)
		}
		return nil, false
	}
	return fp, true
}

func (s *Server) configFromQuery(r *http.Request, reserved ...string) (trackpad.Config, error) {
	cfg := s.base
	for key, values := range r.URL.Query() {
		if contains(reserved, key) {
			continue
		}
		if len(values) != 1 {
			return cfg, fmt.Errorf("parameter %q given %d times", key, len(values))
		}
		if err := trackpad.SetParam(&cfg, key, values[0]); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
