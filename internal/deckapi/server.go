package deckapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/randutil"
)

// MaxDecks caps deck_count on /new.
const MaxDecks = deck.MaxRemoteDecks

// Server is an in-memory card-supply service
type Server struct {
	addr       string
	seed       int64
	opened     int
	decks      map[string]*deck.Supply
	httpServer *http.Server
	logger     *log.Logger
	mu         sync.Mutex
}

// NewServer creates a card-supply server. A seed of 0 picks a time-based seed.
func NewServer(addr string, seed int64, logger *log.Logger) *Server {
	return &Server{
		addr:   addr,
		seed:   randutil.Resolve(seed),
		decks:  make(map[string]*deck.Supply),
		logger: logger.WithPrefix("deckd"),
	}
}

// Handler returns the HTTP routes of the service
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/new", s.handleNew)
	r.Get("/{id}/draw", s.handleDraw)
	r.Get("/{id}/shuffle", s.handleShuffle)
	return r
}

// Start serves the card-supply API on the configured address. It returns
// http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.logger.Info("Starting card-supply server", "addr", s.addr, "seed", s.seed)
	return srv.ListenAndServe()
}

// Shutdown stops a running server, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Decks returns the number of open decks
func (s *Server) Decks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.decks)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	count := 1
	if v := r.URL.Query().Get("deck_count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxDecks {
			s.writeError(w, http.StatusBadRequest, "deck_count must be between 1 and "+strconv.Itoa(MaxDecks))
			return
		}
		count = n
	}
	shuffle := r.URL.Query().Has("shuffle")
	if v := r.URL.Query().Get("shuffle"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "shuffle must be a boolean")
			return
		}
		shuffle = b
	}

	s.mu.Lock()
	s.opened++
	id := uuid.NewString()[:12]
	supply := deck.NewSupply(count, shuffle,
		deck.WithRNG(randutil.New(randutil.Derive(s.seed, s.opened))),
		deck.WithLogger(s.logger))
	s.decks[id] = supply
	s.mu.Unlock()

	s.logger.Debug("Opened deck", "id", id, "decks", count, "shuffled", shuffle)
	s.writeJSON(w, http.StatusOK, NewDeckResponse{
		Success:   true,
		DeckID:    id,
		Remaining: supply.Remaining(),
		Shuffled:  supply.IsShuffled(),
	})
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	count := 1
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, "count must be a positive integer")
			return
		}
		count = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	supply, ok := s.decks[id]
	if !ok {
		s.writeError(w, http.StatusNotFound, "deck "+id+" not found")
		return
	}

	resp := DrawResponse{Success: true, DeckID: id, Cards: []WireCard{}}
	for i := 0; i < count; i++ {
		c, ok := supply.Draw(false)
		if !ok {
			resp.Success = false
			break
		}
		resp.Cards = append(resp.Cards, WireCardFromDeck(c))
	}
	resp.Remaining = supply.Remaining()
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	supply, ok := s.decks[id]
	if !ok {
		s.writeError(w, http.StatusNotFound, "deck "+id+" not found")
		return
	}
	supply.Shuffle()
	s.writeJSON(w, http.StatusOK, ShuffleResponse{
		Success:   true,
		DeckID:    id,
		Shuffled:  true,
		Remaining: supply.Remaining(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Success: false, Error: msg})
}
