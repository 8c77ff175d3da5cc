package kniazhych

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrIllegalMove        = errors.New("illegal move")
	ErrNoPendingPromotion = errors.New("no pending promotion")
	ErrIllegalPromotion   = errors.New("illegal promotion choice")
)

// LegalDestinations is empty when origin is empty, holds an opponent piece,
// or the game is over or waiting for a promotion choice.
func LegalDestinations(s *GameState, origin Coordinate) []Coordinate {
	if !origin.Valid() {
		return nil
	}
	targets := newEvaluator().legalTargets(s, origin.Index())
	out := make([]Coordinate, len(targets))
	for i, sq := range targets {
		out[i] = CoordinateOf(sq)
	}
	return out
}

func IsLegal(s *GameState, from, to Coordinate) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	return slices.Contains(newEvaluator().legalTargets(s, from.Index()), to.Index())
}

// ApplyMove validates the move again and returns the following state. s is
// left untouched.
func ApplyMove(s *GameState, from, to Coordinate) (*GameState, error) {
	if !from.Valid() || !to.Valid() {
		return nil, fmt.Errorf("%w: %v -> %v off board", ErrIllegalMove, from, to)
	}
	e := newEvaluator()
	f, t := from.Index(), to.Index()
	if !slices.Contains(e.legalTargets(s, f), t) {
		return nil, fmt.Errorf("%w: %v -> %v", ErrIllegalMove, from, to)
	}

	mover := s.ActiveSide
	o := resolveMotion(&s.Board, mover, planMotion(&s.Board, f, t))
	next := &GameState{
		Board:      o.board,
		ActiveSide: mover,
		Moved:      s.Moved.with(o.moved...),
		Coronation: o.crowned,
	}
	switch {
	case o.extinct:
		next.Conclusion = &Conclusion{Kind: ConclusionImmobilization, Winner: mover}
	case o.promote != -1:
		next.Promotion = &PendingPromotion{Cell: o.promote, Side: mover}
	default:
		if !o.crowned {
			next.ActiveSide = opposite(mover)
		}
		next.Conclusion = e.conclude(s, next, mover)
	}
	return next, nil
}

// ResolvePromotion replaces the waiting footman with kind and finishes the turn.
func ResolvePromotion(s *GameState, kind PieceKind) (*GameState, error) {
	if s.Promotion == nil || s.Conclusion != nil {
		return nil, ErrNoPendingPromotion
	}
	e := newEvaluator()
	p := *s.Promotion
	if !slices.Contains(e.legalPromotions(&s.Board, s.Moved, p.Cell, p.Side), kind) {
		return nil, fmt.Errorf("%w: %s", ErrIllegalPromotion, kind)
	}

	next := s.clone()
	var id PieceID
	next.Board, id = promoted(s.Board, s.Moved, p.Cell, p.Side, kind)
	next.Moved = s.Moved.with(id)
	next.Promotion = nil
	if !s.Coronation {
		next.ActiveSide = opposite(p.Side)
	}
	// the pending state still shows the throne as it was before the footman moved
	next.Conclusion = e.conclude(s, next, p.Side)
	return next, nil
}

// Status is a one-word summary for clients.
func (s *GameState) Status() string {
	switch {
	case s.Conclusion != nil:
		return s.Conclusion.Kind.String()
	case s.Promotion != nil:
		return "promotion"
	default:
		return "ongoing"
	}
}
