package kniazhych

import "math/rand/v2"

// SquareSet is a bitset over the 81 cells.
type SquareSet [2]uint64

func (s SquareSet) Has(sq int) bool { return s[sq>>6]&(1<<uint(sq&63)) != 0 }

func (s *SquareSet) Add(sq int) { s[sq>>6] |= 1 << uint(sq&63) }

// attackMap collects every cell bySide threatens. It only uses probing
// generators, so it never recurses into the legality filter.
func attackMap(b *Board, bySide Side) SquareSet {
	var set SquareSet
	buf := make([]int, 0, 32)
	for sq, pc := range b.Squares {
		if !pc.Of(bySide) {
			continue
		}
		buf = candidates(b, nil, sq, true, buf[:0])
		for _, to := range buf {
			set.Add(to)
		}
	}
	return set
}

// IsAttacked reports whether bySide threatens sq.
func (b *Board) IsAttacked(sq int, bySide Side) bool {
	buf := make([]int, 0, 32)
	for s, pc := range b.Squares {
		if !pc.Of(bySide) {
			continue
		}
		buf = candidates(b, nil, s, true, buf[:0])
		for _, to := range buf {
			if to == sq {
				return true
			}
		}
	}
	return false
}

// isUnderCheck is false while the side still keeps an Heir in reserve: losing
// the Monarch then only triggers succession.
func isUnderCheck(b *Board, side Side, threats SquareSet) bool {
	if b.hasHeir(side) {
		return false
	}
	sq := b.find(side, Monarch)
	if sq == -1 {
		return false
	}
	return threats.Has(sq)
}

// throneExposed: side sits on the throne and the opponent attacks it.
func throneExposed(b *Board, side Side, threats SquareSet) bool {
	return b.throneHolder(side) && threats.Has(Throne)
}

// placementKeys gives every (side, kind, cell) a fixed random word; a board's
// key is the xor over its occupied cells. The seed is fixed so keys stay
// stable across runs.
var placementKeys = func() (keys [2][Monarch + 1][NumSquares]uint64) {
	rng := rand.New(rand.NewPCG(81, 40))
	for side := range keys {
		for k := Footman; k <= Monarch; k++ {
			for sq := range keys[side][k] {
				keys[side][k][sq] = rng.Uint64()
			}
		}
	}
	return keys
}()

// Hash keys the placement of kinds on the board. Instance numbers and the move
// record are not part of it: attack maps do not depend on them.
func (b *Board) Hash() uint64 {
	var h uint64
	for sq, pc := range b.Squares {
		if pc.Of(First) || pc.Of(Second) {
			h ^= placementKeys[pc.Side][pc.Kind][sq]
		}
	}
	return h
}

type attackKey struct {
	hash uint64
	side Side
}

// evaluator caches attack maps for the duration of one engine call.
type evaluator struct {
	attacks map[attackKey]SquareSet
}

func newEvaluator() *evaluator {
	return &evaluator{attacks: make(map[attackKey]SquareSet)}
}

func (e *evaluator) attacked(b *Board, bySide Side) SquareSet {
	k := attackKey{hash: b.Hash(), side: bySide}
	if set, ok := e.attacks[k]; ok {
		return set
	}
	set := attackMap(b, bySide)
	e.attacks[k] = set
	return set
}

// IsUnderCheck reports the check condition for side on the given board.
func IsUnderCheck(b *Board, side Side) bool {
	return isUnderCheck(b, side, attackMap(b, opposite(side)))
}
