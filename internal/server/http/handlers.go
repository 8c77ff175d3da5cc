package httpserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kniazhych/internal/kniazhych"
	"kniazhych/internal/server/game"
)

const maxJSONBodyBytes int64 = 1 << 20

const apiCSP = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"

// Handler implements http.Handler for the /api/* routes.
type Handler struct {
	games *game.Manager
}

func NewHandler(games *game.Manager) *Handler {
	if games == nil {
		games = game.NewManager()
	}
	return &Handler{games: games}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var fn func(http.ResponseWriter, *http.Request)
	switch r.URL.Path {
	case "/api/new_game":
		fn = h.handleNewGame
	case "/api/load":
		fn = h.handleLoad
	case "/api/state":
		fn = h.handleState
	case "/api/suggest":
		fn = h.handleSuggest
	case "/api/play":
		fn = h.handlePlay
	case "/api/promote":
		fn = h.handlePromote
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Security-Policy", apiCSP)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if r.Body != nil && r.Body != http.NoBody {
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	}
	fn(w, r)
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	g := h.games.NewGame()
	log.Printf("new game %s", g.ID)
	h.writeState(w, g)
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest
	if !decodeBody(w, r, &req) {
		return
	}
	g := h.games.Load(req.Share)
	log.Printf("loaded game %s (%s)", g.ID, g.State.Status())
	h.writeState(w, g)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	h.writeState(w, g)
}

func (h *Handler) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if !decodeBody(w, r, &req) {
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	resp := SuggestResponse{From: req.From, Targets: []int{}}
	if validCell(req.From) {
		for _, c := range kniazhych.LegalDestinations(g.State, cellOf(req.From)) {
			resp.Targets = append(resp.Targets, c.Index())
		}
	}
	writeJSON(w, resp)
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validCell(req.Move.From) || !validCell(req.Move.To) {
		writeError(w, http.StatusBadRequest, "illegal move")
		return
	}
	g, err := h.games.Update(req.GameID, func(s *kniazhych.GameState) (*kniazhych.GameState, error) {
		return kniazhych.ApplyMove(s, cellOf(req.Move.From), cellOf(req.Move.To))
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if c := g.State.Conclusion; c != nil {
		log.Printf("game %s: %s wins by %s", g.ID, c.Winner, c.Kind)
	}
	h.writeState(w, g)
}

func (h *Handler) handlePromote(w http.ResponseWriter, r *http.Request) {
	var req PromoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	kind, ok := kniazhych.ParsePieceKind(req.Kind)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid promotion choice")
		return
	}
	g, err := h.games.Update(req.GameID, func(s *kniazhych.GameState) (*kniazhych.GameState, error) {
		return kniazhych.ResolvePromotion(s, kind)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	h.writeState(w, g)
}

func (h *Handler) writeState(w http.ResponseWriter, g game.GameState) {
	resp, err := newStateResponse(g.ID, g.State)
	if err != nil {
		log.Printf("encode game %s: %v", g.ID, err)
		writeError(w, http.StatusInternalServerError, "encode failed")
		return
	}
	writeJSON(w, resp)
}

// ---- JSON helpers ----

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "bad json")
		return false
	}
	return true
}

func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, kniazhych.ErrIllegalMove):
		writeError(w, http.StatusBadRequest, "illegal move")
	case errors.Is(err, kniazhych.ErrIllegalPromotion):
		writeError(w, http.StatusBadRequest, "illegal promotion choice")
	case errors.Is(err, kniazhych.ErrNoPendingPromotion):
		writeError(w, http.StatusConflict, "no pending promotion")
	default:
		log.Printf("api error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": msg})
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
