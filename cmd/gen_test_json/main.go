package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"kniazhych/internal/kniazhych"
)

// TestCase is one move-generation sample for the browser UI: the origins it
// must offer (stage 0) and the destinations of one chosen origin (stage 1).
type TestCase struct {
	State   kniazhych.Snapshot `json:"state"`
	Stage   int                `json:"stage"`
	From    int                `json:"from"`
	Mask    []int8             `json:"mask"`
	Missing []string           `json:"missing,omitempty"`
}

func main() {
	numGames := flag.Int("games", 10, "random games to sample")
	maxPlies := flag.Int("maxplies", 300, "plies per game")
	out := flag.String("o", "move_gen_test_data.json", "output file")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	flag.Parse()

	rng := rand.New(rand.NewPCG(*seed, 1))
	var testCases []TestCase
	for g := 0; g < *numGames; g++ {
		s := kniazhych.InitialState()
		for ply := 0; ply < *maxPlies && s.Conclusion == nil; ply++ {
			snap := s.Snapshot()
			if s.Promotion != nil {
				kinds := kniazhych.LegalPromotions(s)
				tc := TestCase{State: snap, Stage: 2, From: s.Promotion.Cell}
				for _, k := range kinds {
					tc.Missing = append(tc.Missing, k.Letter())
				}
				testCases = append(testCases, tc)
				next, err := kniazhych.ResolvePromotion(s, kinds[rng.IntN(len(kinds))])
				if err != nil {
					log.Fatalf("game %d ply %d: %v", g, ply, err)
				}
				s = next
				continue
			}

			legalMoves := s.GenerateLegalMoves()
			if len(legalMoves) == 0 {
				break
			}

			mask0 := make([]int8, kniazhych.NumSquares)
			for _, mv := range legalMoves {
				mask0[mv.From] = 1
			}
			testCases = append(testCases, TestCase{State: snap, Stage: 0, From: -1, Mask: mask0})

			chosen := legalMoves[rng.IntN(len(legalMoves))]
			mask1 := make([]int8, kniazhych.NumSquares)
			for _, mv := range legalMoves {
				if mv.From == chosen.From {
					mask1[mv.To] = 1
				}
			}
			testCases = append(testCases, TestCase{State: snap, Stage: 1, From: chosen.From, Mask: mask1})

			next, err := kniazhych.ApplyMove(s, kniazhych.CoordinateOf(chosen.From), kniazhych.CoordinateOf(chosen.To))
			if err != nil {
				log.Fatalf("game %d ply %d: %v", g, ply, err)
			}
			s = next
		}
	}

	file, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*out, file, 0644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(testCases), *numGames, *out)
}
