package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"labyrinth-server/internal/engine"
	"labyrinth-server/internal/render"
	"labyrinth-server/pkg/maze"
)

// mazegen печатает сгенерированные уровни и проверяет связность.
//
//	mazegen -seed 42 -count 3 -w 15 -h 15 -d 1
func main() {
	var (
		seed       int64
		count      int
		width      int
		height     int
		difficulty int
		wanderers  int
		treasures  int
	)
	flag.Int64Var(&seed, "seed", 1, "First seed")
	flag.IntVar(&count, "count", 1, "Number of levels (seed, seed+1, ...)")
	flag.IntVar(&width, "w", maze.DefaultWidth, "Width")
	flag.IntVar(&height, "h", maze.DefaultHeight, "Height")
	flag.IntVar(&difficulty, "d", 0, "Difficulty")
	flag.IntVar(&wanderers, "wanderers", 1, "Wanderers per level")
	flag.IntVar(&treasures, "treasures", 1, "Treasures per level")
	flag.Parse()

	failed := 0
	for i := 0; i < count; i++ {
		s := seed + int64(i)
		rng := rand.New(rand.NewSource(s))

		b := maze.NewLevel(fmt.Sprintf("SEED %d", s), rng).
			WithSize(width, height).
			WithDifficulty(difficulty).
			SpawnWanderers(wanderers).
			PlaceTreasures(treasures)
		level, err := b.Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed %d: %v\n", s, err)
			os.Exit(1)
		}

		res := b.Result()
		open := maze.OpenCells(res.Width, res.Height, res.Walls)
		reach := maze.Reachable(res.Width, res.Height, res.Walls, res.Start, nil)
		status := "ok"
		if reach.Size() != len(open) {
			status = fmt.Sprintf("DISCONNECTED %d/%d", reach.Size(), len(open))
			failed++
		}

		w := engine.NewWorld(level, rng)
		fmt.Printf("%s  halls %d  adversaries %d  %s\n", level.Name(), len(res.Halls), level.AdversaryCount(), status)
		fmt.Println(render.ASCII(w.Snapshot()))
		fmt.Println()
	}

	if failed > 0 {
		os.Exit(1)
	}
}
