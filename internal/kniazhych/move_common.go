package kniazhych

var (
	towerDirs  = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	cannonDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

const unlimited = -1

// slide scans each direction cell by cell up to limit steps. The scan stops at
// the board edge and at the first occupied cell, which is included when it holds
// an enemy.
func slide(b *Board, from int, dirs [4][2]int, limit int, policy ThronePolicy, probing bool, out []int) []int {
	x, y := xOf(from), yOf(from)
	side := b.Squares[from].Side
	for _, d := range dirs {
	scan:
		for i := 1; limit == unlimited || i <= limit; i++ {
			nx, ny := x+i*d[0], y+i*d[1]
			if !onBoard(nx, ny) {
				break
			}
			to := indexOf(nx, ny)
			dst := b.Squares[to]
			if to == Throne {
				var act throneAction
				out, act = policy.atThrone(dst, side, probing, out)
				switch act {
				case throneContinue:
					continue scan
				case throneStop:
					break scan
				}
			}
			if dst.Of(side) {
				break
			}
			out = append(out, to)
			if !dst.Empty() {
				break
			}
		}
	}
	return out
}

func genTowerMoves(b *Board, from int, probing bool, out []int) []int {
	return slide(b, from, towerDirs, unlimited, PolicyBlock, probing, out)
}

func genCannonMoves(b *Board, from int, probing bool, out []int) []int {
	return slide(b, from, cannonDirs, unlimited, PolicyBlock, probing, out)
}

func genMarshalMoves(b *Board, from int, probing bool, out []int) []int {
	out = slide(b, from, towerDirs, unlimited, PolicyBlock, probing, out)
	return slide(b, from, cannonDirs, unlimited, PolicyBlock, probing, out)
}

// Heir: two cells in any straight line. It may stand on the throne only while
// its own Monarch is inside the palace; otherwise it passes over it.
func genHeirMoves(b *Board, from int, probing bool, out []int) []int {
	side := b.Squares[from].Side
	policy := PolicySkip
	if b.monarchInPalace(side) {
		policy = PolicyStep
	}
	out = slide(b, from, towerDirs, 2, policy, probing, out)
	return slide(b, from, cannonDirs, 2, policy, probing, out)
}

// Monarch: one cell in any direction, throne included, plus castling while it
// has never moved.
func genMonarchMoves(b *Board, moved MoveRecord, from int, probing bool, out []int) []int {
	out = slide(b, from, towerDirs, 1, PolicyStep, probing, out)
	out = slide(b, from, cannonDirs, 1, PolicyStep, probing, out)
	if probing || moved[b.Squares[from]] {
		return out
	}
	return genCastling(b, moved, from, out)
}

// Castling moves the Monarch three files towards an unmoved corner Tower with
// nothing in between.
func genCastling(b *Board, moved MoveRecord, from int, out []int) []int {
	x, y := xOf(from), yOf(from)
	side := b.Squares[from].Side
	for _, corner := range [2]int{0, Size - 1} {
		dir := 1
		if corner < x {
			dir = -1
		}
		if (corner-x)*dir <= castlingStep {
			continue
		}
		rook := b.Squares[indexOf(corner, y)]
		if rook.Kind != Tower || rook.Side != side || moved[rook] {
			continue
		}
		clear := true
		for cx := x + dir; cx != corner; cx += dir {
			if !b.Squares[indexOf(cx, y)].Empty() {
				clear = false
				break
			}
		}
		if clear {
			out = append(out, indexOf(x+dir*castlingStep, y))
		}
	}
	return out
}
