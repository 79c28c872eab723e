/*
Example code comparing the sequential and parallel suppression backends over
randomly generated boxes
*/
package main

import (
	"flag"
	"github.com/dtrn/go-nms"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"log"
	"runtime"
	"time"
)

const (
	// Frame size the random boxes are placed in
	FrameWidth  = 600
	FrameHeight = 800
	// Range of box edge lengths
	MinEdge = 32
	MaxEdge = 512
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	count := flag.Int("n", 5000, "Number of random boxes to generate")
	seed := flag.Uint64("s", 42, "Random number generator seed")
	workers := flag.Int("w", runtime.NumCPU(), "Number of parallel suppression workers")
	threshold := flag.Float64("t", 0.45, "IoU threshold at or above which boxes are suppressed")
	rounds := flag.Int("r", 5, "Number of times to repeat the comparison")

	flag.Parse()

	boxes, scores := generateBoxes(*count, *seed)

	seq := nms.NewSequential()
	par := nms.NewParallel(nms.ParallelParams{Workers: *workers})

	defer par.Close()

	params := nms.DefaultParams()
	params.Threshold = float32(*threshold)

	for i := 0; i < *rounds; i++ {

		start := time.Now()
		seqPicked, err := seq.Select(boxes, scores, params)
		seqTime := time.Since(start)

		if err != nil {
			log.Fatalf("Error running sequential backend: %v\n", err)
		}

		start = time.Now()
		parPicked, err := par.Select(boxes, scores, params)
		parTime := time.Since(start)

		if err != nil {
			log.Fatalf("Error running parallel backend: %v\n", err)
		}

		if len(seqPicked) != len(parPicked) {
			log.Fatalf("Backends disagree, sequential kept %d, parallel kept %d\n",
				len(seqPicked), len(parPicked))
		}

		log.Printf("Round %d: kept %d of %d boxes, sequential %s, parallel %s\n",
			i+1, len(seqPicked), *count, seqTime, parTime)
	}

	// element by element verification of both backends
	if err := nms.CrossCheck(seq, par, boxes, scores, params); err != nil {
		log.Fatalf("Backend verification failed: %v\n", err)
	}

	log.Println("Backends returned identical selections")
}

// generateBoxes creates random boxes and scores inside the frame
func generateBoxes(n int, seed uint64) ([]nms.Box, []float32) {

	src := rand.NewSource(seed)

	x := distuv.Uniform{Min: 0, Max: FrameWidth, Src: src}
	y := distuv.Uniform{Min: 0, Max: FrameHeight, Src: src}
	edge := distuv.Uniform{Min: MinEdge, Max: MaxEdge, Src: src}
	score := distuv.Uniform{Min: 0, Max: 100, Src: src}

	boxes := make([]nms.Box, n)
	scores := make([]float32, n)

	for i := 0; i < n; i++ {

		x1 := float32(x.Rand())
		y1 := float32(y.Rand())

		boxes[i] = nms.Box{
			X1: x1,
			Y1: y1,
			X2: x1 + float32(edge.Rand()),
			Y2: y1 + float32(edge.Rand()),
		}

		scores[i] = float32(score.Rand())
	}

	return boxes, scores
}
