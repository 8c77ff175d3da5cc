package kniazhych

// Motion is a validated (from, to) request expanded into board relocations.
type Motion struct {
	Steps []Move
	// Transit lists the cells a castling Monarch starts on, crosses and lands
	// on. None of them may be attacked.
	Transit []int
}

func planMotion(b *Board, from, to int) Motion {
	m := Motion{Steps: []Move{{From: from, To: to}}}
	pc := b.Squares[from]
	dx := xOf(to) - xOf(from)
	if pc.Kind != Monarch || yOf(to) != yOf(from) || (dx != castlingStep && dx != -castlingStep) {
		return m
	}

	y := yOf(from)
	dir, corner := 1, Size-1
	if dx < 0 {
		dir, corner = -1, 0
	}
	m.Steps = append(m.Steps, Move{From: indexOf(corner, y), To: indexOf(corner-2*dir, y)})
	for x := xOf(from); x != xOf(to)+dir; x += dir {
		m.Transit = append(m.Transit, indexOf(x, y))
	}
	return m
}

// apply returns the relocated board and the pieces that moved.
func (m Motion) apply(b Board) (Board, []PieceID) {
	moved := make([]PieceID, 0, len(m.Steps))
	for _, st := range m.Steps {
		pc := b.Squares[st.From]
		if pc.Empty() {
			continue
		}
		moved = append(moved, pc)
		b = b.WithMove(st.From, st.To)
	}
	return b, moved
}
