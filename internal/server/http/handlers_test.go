package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"kniazhych/internal/kniazhych"
)

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeState(t *testing.T, rr *httptest.ResponseRecorder) StateResponse {
	t.Helper()
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=%d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
	var resp StateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestNewGame(t *testing.T) {
	h := NewHandler(nil)
	resp := decodeState(t, post(t, h, "/api/new_game", ""))
	if resp.GameID == "" {
		t.Fatalf("missing game id")
	}
	if resp.ToMove != "w" || resp.Status != "ongoing" {
		t.Fatalf("to_move=%s status=%s", resp.ToMove, resp.Status)
	}
	if len(resp.LegalMoves) != 22 {
		t.Fatalf("legal moves: got=%d want=22", len(resp.LegalMoves))
	}
	if len(resp.State.Board) != kniazhych.NumSquares {
		t.Fatalf("board cells: got=%d", len(resp.State.Board))
	}
	s, err := kniazhych.DecodeShare(resp.Share)
	if err != nil {
		t.Fatalf("share token: %v", err)
	}
	if s.ActiveSide != kniazhych.First {
		t.Fatalf("share token side: %s", s.ActiveSide)
	}
}

func TestMethodAndRouting(t *testing.T) {
	h := NewHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/new_game", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET: got=%d want=%d", rr.Code, http.StatusMethodNotAllowed)
	}
	if rr := post(t, h, "/api/ai_move", "{}"); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown route: got=%d want=%d", rr.Code, http.StatusNotFound)
	}
	if rr := post(t, h, "/api/state", `{"game_id":"nope"}`); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown game: got=%d want=%d", rr.Code, http.StatusNotFound)
	}
	if rr := post(t, h, "/api/state", `{`); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad json: got=%d want=%d", rr.Code, http.StatusBadRequest)
	}
	big := `{"share":"` + strings.Repeat("a", int(maxJSONBodyBytes)+1) + `"}`
	if rr := post(t, h, "/api/load", big); rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("large body: got=%d want=%d", rr.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestSuggestAndPlay(t *testing.T) {
	h := NewHandler(nil)
	g := decodeState(t, post(t, h, "/api/new_game", ""))

	rr := post(t, h, "/api/suggest", mustJSON(t, SuggestRequest{GameID: g.GameID, From: 1}))
	if rr.Code != http.StatusOK {
		t.Fatalf("suggest: %d %s", rr.Code, rr.Body.String())
	}
	var sug SuggestResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &sug); err != nil {
		t.Fatal(err)
	}
	if want := []int{18, 20}; !slices.Equal(sug.Targets, want) {
		t.Fatalf("targets: got=%v want=%v", sug.Targets, want)
	}

	illegal := PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 0, To: 45}}
	if rr := post(t, h, "/api/play", mustJSON(t, illegal)); rr.Code != http.StatusBadRequest {
		t.Fatalf("illegal move: got=%d want=%d", rr.Code, http.StatusBadRequest)
	}
	offBoard := PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 13, To: 99}}
	if rr := post(t, h, "/api/play", mustJSON(t, offBoard)); rr.Code != http.StatusBadRequest {
		t.Fatalf("off-board move: got=%d want=%d", rr.Code, http.StatusBadRequest)
	}

	play := PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 13, To: 31}}
	after := decodeState(t, post(t, h, "/api/play", mustJSON(t, play)))
	if after.ToMove != "b" {
		t.Fatalf("to_move: got=%s want=b", after.ToMove)
	}
	if after.Version == g.Version {
		t.Fatalf("version unchanged after a move")
	}

	cur := decodeState(t, post(t, h, "/api/state", mustJSON(t, StateRequest{GameID: g.GameID})))
	if cur.Share != after.Share {
		t.Fatalf("state endpoint does not return the stored position")
	}

	if rr := post(t, h, "/api/promote", mustJSON(t, PromoteRequest{GameID: g.GameID, Kind: "gt"})); rr.Code != http.StatusConflict {
		t.Fatalf("promote without pending: got=%d want=%d", rr.Code, http.StatusConflict)
	}
}

func TestLoadShare(t *testing.T) {
	h := NewHandler(nil)
	g := decodeState(t, post(t, h, "/api/new_game", ""))
	played := decodeState(t, post(t, h, "/api/play", mustJSON(t, PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 13, To: 31}})))

	loaded := decodeState(t, post(t, h, "/api/load", mustJSON(t, LoadRequest{Share: played.Share})))
	if loaded.GameID == g.GameID {
		t.Fatalf("load reused the game id")
	}
	if loaded.Share != played.Share || loaded.ToMove != "b" {
		t.Fatalf("loaded state differs from the shared one")
	}

	fallback := decodeState(t, post(t, h, "/api/load", `{"share":"%%%"}`))
	if fallback.Share != g.Share {
		t.Fatalf("malformed share did not give the initial position")
	}
}

func TestPromotionFlow(t *testing.T) {
	b, err := kniazhych.ParseBoard(`
....K....
.........
.........
.........
....+....
.........
.........
L.R......
......k..`)
	if err != nil {
		t.Fatal(err)
	}
	s := &kniazhych.GameState{Board: b, ActiveSide: kniazhych.First, Moved: kniazhych.MoveRecord{}}
	share, err := s.EncodeShare()
	if err != nil {
		t.Fatal(err)
	}

	h := NewHandler(nil)
	g := decodeState(t, post(t, h, "/api/load", mustJSON(t, LoadRequest{Share: share})))
	pending := decodeState(t, post(t, h, "/api/play", mustJSON(t, PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 65, To: 74}})))
	if pending.Status != "promotion" {
		t.Fatalf("status: got=%s want=promotion", pending.Status)
	}
	if want := []string{"g", "v", "gt", "kc"}; !slices.Equal(pending.Missing, want) {
		t.Fatalf("missing: got=%v want=%v", pending.Missing, want)
	}
	if len(pending.LegalMoves) != 0 {
		t.Fatalf("moves offered during promotion: %v", pending.LegalMoves)
	}

	if rr := post(t, h, "/api/promote", mustJSON(t, PromoteRequest{GameID: g.GameID, Kind: "l"})); rr.Code != http.StatusBadRequest {
		t.Fatalf("tower promotion: got=%d want=%d", rr.Code, http.StatusBadRequest)
	}
	if rr := post(t, h, "/api/promote", mustJSON(t, PromoteRequest{GameID: g.GameID, Kind: "queen"})); rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown kind: got=%d want=%d", rr.Code, http.StatusBadRequest)
	}

	done := decodeState(t, post(t, h, "/api/promote", mustJSON(t, PromoteRequest{GameID: g.GameID, Kind: "marshal"})))
	if done.Status != "immobilization" || done.Winner != "w" {
		t.Fatalf("status=%s winner=%s, want immobilization by w", done.Status, done.Winner)
	}
	if !done.Check {
		t.Fatalf("mated side not reported in check")
	}
	if done.State.Conclusion == nil {
		t.Fatalf("snapshot lacks the conclusion")
	}
}
