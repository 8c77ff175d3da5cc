package httpserver

import (
	"fmt"

	"kniazhych/internal/kniazhych"
)

// Cells are addressed by index y*9+x on the wire, as in the snapshot.
type MoveDTO struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func movesToDTO(ms []kniazhych.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = MoveDTO{From: m.From, To: m.To}
	}
	return out
}

func cellOf(sq int) kniazhych.Coordinate { return kniazhych.CoordinateOf(sq) }

func validCell(sq int) bool { return sq >= 0 && sq < kniazhych.NumSquares }

// StateRequest is sent when the page reloads and asks for the current position.
type StateRequest struct {
	GameID string `json:"game_id"`
}

type LoadRequest struct {
	Share string `json:"share"`
}

type SuggestRequest struct {
	GameID string `json:"game_id"`
	From   int    `json:"from"`
}

type SuggestResponse struct {
	From    int   `json:"from"`
	Targets []int `json:"targets"`
}

type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

type PromoteRequest struct {
	GameID string `json:"game_id"`
	Kind   string `json:"kind"` // "g", "v", "l", "gt", "kc" or the kind name
}

// StateResponse is returned by every endpoint that changes or reads a game.
type StateResponse struct {
	GameID     string             `json:"game_id"`
	State      kniazhych.Snapshot `json:"state"`
	Share      string             `json:"share"`
	Version    string             `json:"version"`
	ToMove     string             `json:"to_move"`
	Status     string             `json:"status"` // "ongoing" / "promotion" / "throne" / "immobilization"
	Winner     string             `json:"winner,omitempty"`
	Check      bool               `json:"check"`
	Missing    []string           `json:"missing,omitempty"` // promotion choices while status is "promotion"
	LegalMoves []MoveDTO          `json:"legal"`
}

func newStateResponse(id string, s *kniazhych.GameState) (StateResponse, error) {
	share, err := s.EncodeShare()
	if err != nil {
		return StateResponse{}, err
	}
	resp := StateResponse{
		GameID:     id,
		State:      s.Snapshot(),
		Share:      share,
		Version:    fmt.Sprintf("%016x%s", s.Board.Hash(), s.ActiveSide),
		ToMove:     s.ActiveSide.String(),
		Status:     s.Status(),
		Check:      kniazhych.IsUnderCheck(&s.Board, s.ActiveSide),
		LegalMoves: movesToDTO(s.GenerateLegalMoves()),
	}
	if s.Conclusion != nil {
		resp.Winner = s.Conclusion.Winner.String()
	}
	for _, k := range kniazhych.LegalPromotions(s) {
		resp.Missing = append(resp.Missing, k.Letter())
	}
	return resp, nil
}
