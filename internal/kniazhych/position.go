package kniazhych

func (b *Board) find(side Side, kind PieceKind) int {
	for sq, pc := range b.Squares {
		if pc.Kind == kind && pc.Side == side {
			return sq
		}
	}
	return -1
}

func (b *Board) hasMonarch(side Side) bool { return b.find(side, Monarch) != -1 }

func (b *Board) hasHeir(side Side) bool { return b.find(side, Heir) != -1 }

// throneHolder reports whether side has its Monarch or Heir on the throne.
func (b *Board) throneHolder(side Side) bool {
	pc := b.Squares[Throne]
	return pc.Of(side) && pc.Kind.royal()
}

func (b *Board) monarchInPalace(side Side) bool {
	sq := b.find(side, Monarch)
	return sq != -1 && inPalace(sq)
}

// freshInstance returns the smallest instance number of kind that is neither on
// the board nor remembered in the move record.
func (b *Board) freshInstance(side Side, kind PieceKind, moved MoveRecord) uint8 {
	if kind.unique() {
		return 0
	}
	used := make(map[uint8]bool)
	for _, pc := range b.Squares {
		if pc.Side == side && pc.Kind == kind {
			used[pc.Instance] = true
		}
	}
	for id := range moved {
		if id.Side == side && id.Kind == kind {
			used[id.Instance] = true
		}
	}
	for n := uint8(1); ; n++ {
		if !used[n] {
			return n
		}
	}
}
