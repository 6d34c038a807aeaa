// Package server exposes the lookup over HTTP: the page, the output region
// fragment, static assets and the search RPC.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"countrylookup/internal/assert"
	"countrylookup/internal/components/telemetry"
	"countrylookup/internal/render/html"
	"countrylookup/internal/serviceutil"
	"countrylookup/internal/view"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	report_server_render = "server.render"
	report_server_write  = "server.write"
)

// Fetcher is implemented by *dispatch.Dispatcher.
type Fetcher interface {
	FetchCountryData(ctx context.Context, rawInput string, sink view.Sink) view.ResultView
}

// each request renders the view its dispatch returns, so intermediate views
// have nowhere to go.
var discard = view.SinkFunc(func(view.ResultView) {})

type Server struct {
	fetcher  Fetcher
	renderer *html.Renderer
	tel      telemetry.API
}

func NewServer(fetcher Fetcher, renderer *html.Renderer, tel telemetry.API) *Server {
	assert.NotNil(fetcher)
	assert.NotNil(renderer)
	assert.NotNil(tel)
	return &Server{
		fetcher:  fetcher,
		renderer: renderer,
		tel:      telemetry.NewScopedAPI("server", tel),
	}
}

// Handler returns the routes of the server.
func (s *Server) Handler() (http.Handler, error) {
	otelInterceptor, err := serviceutil.NewConnectOtelInterceptor()
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /search", s.handleFragment)
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(html.AssetsFS())))
	mux.Handle(s.searchHandler(connect.WithInterceptors(otelInterceptor)))
	return mux, nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page := html.Page{}
	if r.URL.Query().Has("name") {
		page.Query = r.URL.Query().Get("name")
		result := s.fetcher.FetchCountryData(r.Context(), page.Query, discard)
		page.View = &result
	}

	w.Header().Set("content-type", "text/html; charset=utf-8")
	err := s.renderer.RenderPage(w, page)
	if err != nil {
		s.tel.ReportBroken(report_server_render, err)
	}
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	result := s.fetcher.FetchCountryData(r.Context(), r.URL.Query().Get("name"), discard)

	fragment, err := s.renderer.Fragment(result)
	if err != nil {
		s.tel.ReportBroken(report_server_render, err)
		http.Error(w, "failed to render result", http.StatusInternalServerError)
		return
	}

	w.Header().Set("content-type", "text/html; charset=utf-8")
	_, err = w.Write([]byte(fragment))
	if err != nil {
		s.tel.ReportWarning(report_server_write, err)
	}
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("content-type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// ListenAndServe serves handler on addr over HTTP/1.1 and h2c until ctx is
// done, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("listening...", "addr", addr)
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
		slog.Info("shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
