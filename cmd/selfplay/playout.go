package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"kniazhych/internal/kniazhych"
)

type result struct {
	Conclusion  *kniazhych.Conclusion // nil when abandoned
	Plies       int
	Promotions  int
	Coronations int
	Elapsed     time.Duration
}

func (r result) String() string {
	if r.Conclusion == nil {
		return "abandoned"
	}
	return fmt.Sprintf("%s wins by %s", r.Conclusion.Winner, r.Conclusion.Kind)
}

// playGame plays uniformly random legal moves and promotion choices.
func playGame(ctx context.Context, seed uint64, maxPlies int) (result, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	start := time.Now()
	s := kniazhych.InitialState()
	var res result

	for res.Plies < maxPlies && s.Conclusion == nil {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if s.Promotion != nil {
			kinds := kniazhych.LegalPromotions(s)
			if len(kinds) == 0 {
				return res, fmt.Errorf("no promotion choice at ply %d", res.Plies)
			}
			next, err := kniazhych.ResolvePromotion(s, kinds[rng.IntN(len(kinds))])
			if err != nil {
				return res, err
			}
			s = next
			res.Promotions++
			continue
		}

		moves := s.GenerateLegalMoves()
		if len(moves) == 0 {
			return res, fmt.Errorf("ongoing game without legal moves at ply %d:\n%s", res.Plies, s.Board.String())
		}
		m := moves[rng.IntN(len(moves))]
		next, err := kniazhych.ApplyMove(s, kniazhych.CoordinateOf(m.From), kniazhych.CoordinateOf(m.To))
		if err != nil {
			return res, err
		}
		if next.Coronation {
			res.Coronations++
		}
		s = next
		res.Plies++
	}

	res.Conclusion = s.Conclusion
	res.Elapsed = time.Since(start)
	return res, nil
}

type tally struct {
	games       int
	abandoned   int
	wins        [2]map[kniazhych.ConclusionKind]int
	plies       int
	promotions  int
	coronations int
	elapsed     time.Duration
}

func (t *tally) add(r result) {
	t.games++
	t.plies += r.Plies
	t.promotions += r.Promotions
	t.coronations += r.Coronations
	t.elapsed += r.Elapsed
	if r.Conclusion == nil {
		t.abandoned++
		return
	}
	w := r.Conclusion.Winner
	if t.wins[w] == nil {
		t.wins[w] = make(map[kniazhych.ConclusionKind]int)
	}
	t.wins[w][r.Conclusion.Kind]++
}

func (t *tally) print(w io.Writer) {
	for _, side := range [2]kniazhych.Side{kniazhych.First, kniazhych.Second} {
		fmt.Fprintf(w, "%s: throne %d, immobilization %d\n", side,
			t.wins[side][kniazhych.ConclusionThrone], t.wins[side][kniazhych.ConclusionImmobilization])
	}
	fmt.Fprintf(w, "abandoned: %d\n", t.abandoned)
	fmt.Fprintf(w, "promotions: %d, coronations: %d\n", t.promotions, t.coronations)
	if t.plies > 0 {
		fmt.Fprintf(w, "avg ply time: %v\n", (t.elapsed / time.Duration(t.plies)).Round(time.Microsecond))
	}
}
