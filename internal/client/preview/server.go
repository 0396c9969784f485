// Package preview serves the latest generated site over loopback HTTP so it
// can be opened in a browser.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/sitegen/internal/client/models"
	"github.com/dmitrijs2005/sitegen/internal/common"
	"github.com/dmitrijs2005/sitegen/internal/logging"
	"github.com/gorilla/mux"
)

const noArtifactMessage = "Сайт ещё не создан"

type Server struct {
	mu       sync.RWMutex
	artifact *models.Artifact
	fileName string
	logger   logging.Logger

	srv *http.Server
	url string
}

func NewServer(fileName string, logger logging.Logger) *Server {
	if fileName == "" {
		fileName = common.DefaultArtifactFileName
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Server{fileName: fileName, logger: logger}
}

func (s *Server) SetArtifact(a *models.Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifact = a
}

func (s *Server) Clear() { s.SetArtifact(nil) }

func (s *Server) current() *models.Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.artifact
}

// Handler returns the preview router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/download", s.handleDownload).Methods(http.MethodGet)
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	a := s.current()
	if a == nil {
		http.Error(w, noArtifactMessage, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(a.HTML))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	a := s.current()
	if a == nil {
		http.Error(w, noArtifactMessage, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.fileName))
	_, _ = w.Write([]byte(a.HTML))
}

// Start listens on addr and serves in the background. It returns the base
// URL. Calling Start on a running server returns its URL.
func (s *Server) Start(ctx context.Context, addr string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return s.url, nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("preview listen %s: %w", addr, err)
	}

	s.srv = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	s.url = "http://" + ln.Addr().String() + "/"

	srv := s.srv
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(ctx, "preview server stopped", "error", err)
		}
	}()

	s.logger.Info(ctx, "preview server started", "url", s.url)
	return s.url, nil
}

// Shutdown stops a running server. It is a no-op when not started.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv, s.url = nil, ""
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
