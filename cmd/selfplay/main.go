package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	totalGames := flag.Int("games", 20, "number of games to play")
	workers := flag.Int("workers", runtime.NumCPU(), "games played in parallel")
	maxPlies := flag.Int("maxplies", 400, "plies before a game is abandoned")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	pprofAddr := flag.String("pprof", "", "serve pprof on this address, e.g. localhost:6060")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof listening on %s", *pprofAddr)
			if err := http.ListenAndServe(*pprofAddr, nil); err != nil {
				log.Printf("pprof failed: %v", err)
			}
		}()
	}

	var (
		mu    sync.Mutex
		score tally
	)
	start := time.Now()
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)
	for i := 0; i < *totalGames; i++ {
		g.Go(func() error {
			res, err := playGame(ctx, *seed+uint64(i), *maxPlies)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			fmt.Printf("game %d: %s after %d plies, %d promotions, %d coronations (%v)\n",
				i+1, res, res.Plies, res.Promotions, res.Coronations, res.Elapsed.Round(time.Millisecond))
			mu.Lock()
			score.add(res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("selfplay: %v", err)
	}

	fmt.Printf("\n=== %d games in %v (seed %d) ===\n", *totalGames, time.Since(start).Round(time.Millisecond), *seed)
	score.print(os.Stdout)
}
