package status

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/jsphweid/maestro/file"
	"github.com/jsphweid/maestro/player"
	"github.com/rs/cors"
)

// Tracker keeps the latest playback snapshot for readers on other
// goroutines.
type Tracker struct {
	mu      sync.RWMutex
	current player.Snapshot
	played  int
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) Observe(s player.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s.State == player.Finished {
		t.played++
	}
	t.current = s
}

func (t *Tracker) Current() player.Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

type Response struct {
	player.Snapshot
	PiecesPlayed int `json:"pieces_played"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

func (t *Tracker) response() Response {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Response{Snapshot: t.current, PiecesPlayed: t.played}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("writing response", "err", err)
	}
}

// NewRouter serves GET /status and GET /pieces. pieces may be nil.
func NewRouter(t *Tracker, pieces func() []file.Entry) http.Handler {
	router := mux.NewRouter().StrictSlash(true)

	router.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, t.response())
	}).Methods(http.MethodGet)

	router.HandleFunc("/pieces", func(w http.ResponseWriter, r *http.Request) {
		if pieces == nil {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "no piece library loaded"})
			return
		}
		entries := pieces()
		if entries == nil {
			entries = []file.Entry{}
		}
		writeJSON(w, http.StatusOK, entries)
	}).Methods(http.MethodGet)

	return cors.Default().Handler(router)
}
