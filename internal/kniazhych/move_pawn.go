package kniazhych

// Footman: one step forward onto an empty cell other than the throne, two from
// its starting rank, and diagonal-forward captures. A probe reports the two
// diagonal cells it guards and none of its pushes.
func genFootmanMoves(b *Board, moved MoveRecord, from int, probing bool, out []int) []int {
	pc := b.Squares[from]
	side := pc.Side
	x, y := xOf(from), yOf(from)
	dir := forward(side)
	ny := y + dir
	if !onBoard(x, ny) {
		return out
	}

	if probing {
		for _, dx := range [2]int{-1, 1} {
			if !onBoard(x+dx, ny) {
				continue
			}
			to := indexOf(x+dx, ny)
			if !b.Squares[to].Of(side) {
				out = append(out, to)
			}
		}
		return out
	}

	step := indexOf(x, ny)
	if b.Squares[step].Empty() && step != Throne {
		out = append(out, step)
		if y == footmanRank(side) && !moved[pc] && onBoard(x, y+2*dir) {
			jump := indexOf(x, y+2*dir)
			if b.Squares[jump].Empty() && jump != Throne {
				out = append(out, jump)
			}
		}
	}

	for _, dx := range [2]int{-1, 1} {
		if !onBoard(x+dx, ny) {
			continue
		}
		to := indexOf(x+dx, ny)
		if b.Squares[to].Of(opposite(side)) {
			out = append(out, to)
		}
	}
	return out
}
