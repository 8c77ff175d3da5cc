package kniazhych

// promotable lists the kinds a footman may become, in offer order.
var promotable = [...]PieceKind{Cannon, Rider, Tower, Marshal, Heir}

// MissingPieceKinds returns one entry per promotable kind of which side has no
// instance on the board.
func MissingPieceKinds(b *Board, side Side) []PieceKind {
	var present [Monarch + 1]bool
	for _, pc := range b.Squares {
		if pc.Of(side) {
			present[pc.Kind] = true
		}
	}
	var out []PieceKind
	for _, k := range promotable {
		if !present[k] {
			out = append(out, k)
		}
	}
	return out
}

// promoted places a fresh piece of kind on cell.
func promoted(b Board, moved MoveRecord, cell int, side Side, kind PieceKind) (Board, PieceID) {
	id := PieceID{Side: side, Kind: kind}
	id.Instance = b.freshInstance(side, kind, moved)
	b.Squares[cell] = id
	return b, id
}

// legalPromotions filters the missing kinds down to those that do not leave the
// opponent's royal piece sitting unchallenged on the throne.
func (e *evaluator) legalPromotions(b *Board, moved MoveRecord, cell int, side Side) []PieceKind {
	var out []PieceKind
	for _, k := range MissingPieceKinds(b, side) {
		nb, _ := promoted(*b, moved, cell, side, k)
		if !e.throneUnchallenged(&nb, side) {
			out = append(out, k)
		}
	}
	return out
}

// LegalPromotions lists the replacement kinds accepted by ResolvePromotion.
func LegalPromotions(s *GameState) []PieceKind {
	if s.Promotion == nil || s.Conclusion != nil {
		return nil
	}
	return newEvaluator().legalPromotions(&s.Board, s.Moved, s.Promotion.Cell, s.Promotion.Side)
}
