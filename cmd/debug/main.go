package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"kniazhych/internal/kniazhych"
)

func main() {
	share := flag.String("share", "", "decode a share token instead of using the initial position")
	from := flag.String("from", "", "list legal destinations of the piece on x,y")
	flag.Parse()

	s := kniazhych.InitialState()
	if *share != "" {
		var err error
		s, err = kniazhych.DecodeShare(*share)
		if err != nil {
			log.Fatalf("share token: %v", err)
		}
	}

	fmt.Println(s.Board.String())
	data, err := s.Encode()
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	fmt.Println("Snapshot:", string(data))
	fmt.Println("To move:", s.ActiveSide, "status:", s.Status())
	fmt.Println("In check:", kniazhych.IsUnderCheck(&s.Board, s.ActiveSide))
	fmt.Println("Legal moves:", len(s.GenerateLegalMoves()))
	if kinds := kniazhych.LegalPromotions(s); len(kinds) > 0 {
		fmt.Println("Promotion choices:", kinds)
	}

	if *from != "" {
		c, err := parseCoordinate(*from)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Destinations of %v: %v\n", c, kniazhych.LegalDestinations(s, c))
	}
}

func parseCoordinate(v string) (kniazhych.Coordinate, error) {
	xs, ys, ok := strings.Cut(v, ",")
	if !ok {
		return kniazhych.Coordinate{}, fmt.Errorf("coordinate %q: want x,y", v)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return kniazhych.Coordinate{}, fmt.Errorf("coordinate %q: %v", v, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return kniazhych.Coordinate{}, fmt.Errorf("coordinate %q: %v", v, err)
	}
	c := kniazhych.Coordinate{X: x, Y: y}
	if !c.Valid() {
		return c, fmt.Errorf("coordinate %v is off the board", c)
	}
	return c, nil
}
