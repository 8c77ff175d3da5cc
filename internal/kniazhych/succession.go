package kniazhych

// succeed crowns side's Heir when its Monarch has been captured. extinct means
// there was no Heir to crown.
func succeed(b Board, side Side) (nb Board, crowned, extinct bool) {
	if b.hasMonarch(side) {
		return b, false, false
	}
	sq := b.find(side, Heir)
	if sq == -1 {
		return b, false, true
	}
	b.Squares[sq] = PieceID{Side: side, Kind: Monarch}
	return b, true, false
}

// outcome is the board after a motion and the automatic succession that follows it.
type outcome struct {
	board   Board
	moved   []PieceID
	crowned bool
	extinct bool
	// promote is the cell of a footman waiting for its replacement, or -1.
	promote int
}

func resolveMotion(b *Board, mover Side, m Motion) outcome {
	nb, moved := m.apply(*b)
	o := outcome{moved: moved, promote: -1}
	o.board, o.crowned, o.extinct = succeed(nb, opposite(mover))
	if o.crowned {
		// the new Monarch never castles
		o.moved = append(o.moved, PieceID{Side: opposite(mover), Kind: Monarch})
	}

	last := m.Steps[0].To
	pc := o.board.Squares[last]
	if pc.Kind == Footman && yOf(last) == promotionRank(mover) && len(MissingPieceKinds(&o.board, mover)) > 0 {
		o.promote = last
	}
	return o
}
