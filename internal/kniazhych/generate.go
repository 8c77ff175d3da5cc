package kniazhych

import "slices"

// candidates appends the raw destinations of the piece on from. With probing
// set it answers "what does this piece threaten" instead.
func candidates(b *Board, moved MoveRecord, from int, probing bool, out []int) []int {
	pc := b.Squares[from]
	switch pc.Kind {
	case Footman:
		return genFootmanMoves(b, moved, from, probing, out)
	case Cannon:
		return genCannonMoves(b, from, probing, out)
	case Rider:
		return genRiderMoves(b, from, probing, out)
	case Tower:
		return genTowerMoves(b, from, probing, out)
	case Marshal:
		return genMarshalMoves(b, from, probing, out)
	case Heir:
		return genHeirMoves(b, from, probing, out)
	case Monarch:
		return genMonarchMoves(b, moved, from, probing, out)
	}
	return out
}

// throneUnchallenged: the opponent of mover holds the throne and mover does not attack it.
func (e *evaluator) throneUnchallenged(b *Board, mover Side) bool {
	return b.throneHolder(opposite(mover)) && !e.attacked(b, mover).Has(Throne)
}

// allows runs the speculative checks for one raw candidate of the side to move.
func (e *evaluator) allows(s *GameState, from, to int) bool {
	side := s.ActiveSide
	opp := opposite(side)
	m := planMotion(&s.Board, from, to)

	if len(m.Transit) > 0 {
		threats := e.attacked(&s.Board, opp)
		for _, sq := range m.Transit {
			if threats.Has(sq) {
				return false
			}
		}
	}

	o := resolveMotion(&s.Board, side, m)
	if o.extinct {
		// the last royal piece of the opponent falls: nothing else matters
		return true
	}
	if !o.board.hasMonarch(side) {
		return false
	}
	threats := e.attacked(&o.board, opp)
	if isUnderCheck(&o.board, side, threats) {
		return false
	}
	if throneExposed(&o.board, side, threats) {
		return false
	}
	if o.promote != -1 {
		moved := s.Moved.with(o.moved...)
		return len(e.legalPromotions(&o.board, moved, o.promote, side)) > 0
	}
	return !e.throneUnchallenged(&o.board, side)
}

func (e *evaluator) legalTargets(s *GameState, from int) []int {
	if s.Conclusion != nil || s.Promotion != nil {
		return nil
	}
	if from < 0 || from >= NumSquares {
		return nil
	}
	if !s.Board.Squares[from].Of(s.ActiveSide) {
		return nil
	}
	raw := candidates(&s.Board, s.Moved, from, false, nil)
	out := make([]int, 0, len(raw))
	for _, to := range raw {
		if slices.Contains(out, to) {
			continue
		}
		if e.allows(s, from, to) {
			out = append(out, to)
		}
	}
	slices.Sort(out)
	return out
}

func (e *evaluator) hasLegalMove(s *GameState) bool {
	for sq, pc := range s.Board.Squares {
		if !pc.Of(s.ActiveSide) {
			continue
		}
		if len(e.legalTargets(s, sq)) > 0 {
			return true
		}
	}
	return false
}

// GenerateLegalMoves lists every legal (from, to) pair of the side to move.
func (s *GameState) GenerateLegalMoves() []Move {
	e := newEvaluator()
	var moves []Move
	for sq, pc := range s.Board.Squares {
		if !pc.Of(s.ActiveSide) {
			continue
		}
		for _, to := range e.legalTargets(s, sq) {
			moves = append(moves, Move{From: sq, To: to})
		}
	}
	return moves
}
