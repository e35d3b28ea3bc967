// SPDX-License-Identifier: GPL-3.0-or-later

package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/willyd61/grafana-customTables-panel/logger"
	"github.com/willyd61/grafana-customTables-panel/pkg/gridapi"
	"github.com/willyd61/grafana-customTables-panel/pkg/pseudocss"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/panel"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/settings"
)

// Page is the last drawn page.
type Page interface {
	Last() []byte
}

// Server serves a panel over HTTP:
//
//	GET  /             last drawn page
//	GET  /style.json   translated pseudo-CSS
//	GET  /schema.json  settings JSON schema
//	GET  /export.csv   CSV export
//	POST /refresh      fetch and draw
type Server struct {
	*logger.Logger

	Addr string

	panel *panel.Panel
	page  Page
}

func New(addr string, p *panel.Panel, page Page) *Server {
	return &Server{
		Logger: logger.New().With(
			slog.String("component", "http server"),
			slog.String("addr", addr),
		),
		Addr:  addr,
		panel: p,
		page:  page,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /style.json", s.handleStyle)
	mux.HandleFunc("GET /schema.json", s.handleSchema)
	mux.HandleFunc("GET /export.csv", s.handleExport)
	mux.HandleFunc("POST /refresh", s.handleRefresh)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, gridapi.NotFoundResponse(r.URL.Path))
	})
	return mux
}

// Run serves until the context is done.
func (s *Server) Run(ctx context.Context) error {
	s.Info("instance is started")
	defer func() { s.Info("instance is stopped") }()

	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	bs := s.page.Last()
	if len(bs) == 0 {
		s.writeError(w, gridapi.UnavailableResponse("the panel has not been drawn yet"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(bs)
}

func (s *Server) handleStyle(w http.ResponseWriter, _ *http.Request) {
	cfg := s.panel.Settings()
	style, err := pseudocss.Translate(cfg.PseudoCSS)
	if err != nil {
		s.writeError(w, gridapi.NewErrorResponse(http.StatusUnprocessableEntity, "%s", err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(style))
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	bs, err := settings.Schema()
	if err != nil {
		s.writeError(w, gridapi.NewErrorResponse(http.StatusInternalServerError, "generate schema: %v", err))
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write(bs)
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	filename, err := s.panel.ExportCSV(&buf)
	if err != nil {
		s.writeError(w, gridapi.NewErrorResponse(http.StatusInternalServerError, "export: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.panel.Refresh(r.Context()); err != nil {
		s.Warningf("refresh: %v", err)
		s.writeError(w, gridapi.NewErrorResponse(http.StatusBadGateway, "refresh: %v", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeError(w http.ResponseWriter, resp *gridapi.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Bytes())
}
