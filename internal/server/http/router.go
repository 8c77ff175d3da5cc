package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"kniazhych/internal/server/game"
)

// Server bundles the API handler and the static UI behind one listener.
type Server struct {
	h     http.Handler
	games *game.Manager

	srvMu sync.Mutex
	srv   *http.Server
}

// NewServer mounts /api/ and the static routes. mobileDir may be empty.
func NewServer(webDir, mobileDir string) *Server {
	games := game.NewManager()
	mux := http.NewServeMux()
	mux.Handle("/api/", NewHandler(games))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	RegisterStaticRoutes(mux, webDir, mobileDir)
	return &Server{h: mux, games: games}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.h.ServeHTTP(w, r)
}

// Listen blocks until the server stops. A graceful Close is not an error.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	log.Printf("HTTP listening on %s", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
