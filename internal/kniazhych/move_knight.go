package kniazhych

var riderLeaps = [8][2]int{
	{-1, -2}, {1, -2},
	{-2, -1}, {2, -1},
	{-2, 1}, {2, 1},
	{-1, 2}, {1, 2},
}

// Rider leaps like a knight. It never lands on the throne, but threatens it.
func genRiderMoves(b *Board, from int, probing bool, out []int) []int {
	x, y := xOf(from), yOf(from)
	side := b.Squares[from].Side
	for _, l := range riderLeaps {
		nx, ny := x+l[0], y+l[1]
		if !onBoard(nx, ny) {
			continue
		}
		to := indexOf(nx, ny)
		if to == Throne && !probing {
			continue
		}
		if b.Squares[to].Of(side) {
			continue
		}
		out = append(out, to)
	}
	return out
}
