package nms

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"testing"
)

// generateBoxes makes n random boxes inside a frame of the given size with
// edge lengths between minLen and maxLen, the shape of typical detector
// output
func generateBoxes(src rand.Source, n int, width, height, minLen, maxLen float64) []Box {

	xDist := distuv.Uniform{Min: 0, Max: width, Src: src}
	yDist := distuv.Uniform{Min: 0, Max: height, Src: src}
	edge := distuv.Uniform{Min: minLen, Max: maxLen, Src: src}

	boxes := make([]Box, n)

	for i := range boxes {
		x1 := xDist.Rand()
		y1 := yDist.Rand()

		boxes[i] = Box{
			X1: float32(x1),
			Y1: float32(y1),
			X2: float32(x1 + edge.Rand()),
			Y2: float32(y1 + edge.Rand()),
		}
	}

	return boxes
}

// generateScores makes n random confidence scores
func generateScores(src rand.Source, n int) []float32 {

	dist := distuv.Uniform{Min: 0, Max: 100, Src: src}

	scores := make([]float32, n)

	for i := range scores {
		scores[i] = float32(dist.Rand())
	}

	return scores
}

func TestPriorityOrder(t *testing.T) {

	// without scores the order is the input order
	order := priorityOrder(nil, 4)

	for i, idx := range order {
		if int(idx) != i {
			t.Errorf("position %d: expected input order without scores, got %d", i, idx)
		}
	}

	// scores rank descending
	order = priorityOrder([]float32{0.2, 0.8, 0.4, 0.6}, 4)

	if want := []int32{1, 3, 2, 0}; !selectionEqual(order, want) {
		t.Errorf("expected order %v, got %v", want, order)
	}

	// equal scores keep their input order
	order = priorityOrder([]float32{0.5, 0.9, 0.5, 0.9, 0.5}, 5)

	if want := []int32{1, 3, 0, 2, 4}; !selectionEqual(order, want) {
		t.Errorf("expected stable tie ordering %v, got %v", want, order)
	}
}

func TestThresholdLimitingCases(t *testing.T) {

	src := rand.NewSource(13)

	n := 200
	boxes := generateBoxes(src, n, 600, 800, 32, 512)
	scores := generateScores(src, n)

	for _, backend := range testBackends(t) {
		// random boxes hold no exact duplicates, so at threshold 1 no IoU
		// reaches the bound and every box survives
		got, err := backend.Select(boxes, scores, Params{Threshold: 1, Limit: NoLimit})

		if err != nil {
			t.Fatalf("%s: unexpected error: %v", backend.Name(), err)
		}

		if len(got) != n {
			t.Errorf("%s: expected all %d boxes at threshold 1, got %d",
				backend.Name(), n, len(got))
		}

		// at threshold 0 every IoU qualifies, only the top priority box
		// survives
		got, err = backend.Select(boxes, scores, Params{Threshold: 0, Limit: NoLimit})

		if err != nil {
			t.Fatalf("%s: unexpected error: %v", backend.Name(), err)
		}

		if len(got) != 1 {
			t.Errorf("%s: expected a single box at threshold 0, got %d",
				backend.Name(), len(got))
		}

		// thresholds outside [0, 1] are accepted, a negative one behaves
		// like 0
		got, err = backend.Select(boxes, scores, Params{Threshold: -0.5, Limit: NoLimit})

		if err != nil {
			t.Fatalf("%s: unexpected error: %v", backend.Name(), err)
		}

		if len(got) != 1 {
			t.Errorf("%s: expected a single box at a negative threshold, got %d",
				backend.Name(), len(got))
		}

		// and one above 1 is out of reach of any IoU so nothing is
		// suppressed
		got, err = backend.Select(boxes, scores, Params{Threshold: 1.5, Limit: NoLimit})

		if err != nil {
			t.Fatalf("%s: unexpected error: %v", backend.Name(), err)
		}

		if len(got) != n {
			t.Errorf("%s: expected all %d boxes at a threshold above 1, got %d",
				backend.Name(), n, len(got))
		}
	}
}

func TestBackendEquivalenceRandom(t *testing.T) {

	seq := NewSequential()
	par := NewParallel(ParallelParams{Workers: 4, MinChunk: 16})
	defer par.Close()

	sizes := []int{1, 2, 3, 7, 33, 150, 700}
	thresholds := []float32{0, 0.45, 0.9}
	limits := []int{NoLimit, 5}

	var seed uint64 = 1

	for _, n := range sizes {
		for _, thr := range thresholds {
			for _, limit := range limits {
				for _, scored := range []bool{false, true} {

					src := rand.NewSource(seed)
					seed++

					boxes := generateBoxes(src, n, 600, 800, 32, 512)

					var scores []float32

					if scored {
						scores = generateScores(src, n)
					}

					p := Params{Threshold: thr, Limit: limit}

					err := CrossCheck(seq, par, boxes, scores, p)

					if err != nil {
						t.Errorf("n=%d threshold=%v limit=%d scored=%v: %v",
							n, thr, limit, scored, err)
					}
				}
			}
		}
	}
}

func TestBackendEquivalenceLarge(t *testing.T) {

	if testing.Short() {
		t.Skip("skipping large equivalence test in short mode")
	}

	seq := NewSequential()
	par := NewParallel(DefaultParallelParams())
	defer par.Close()

	src := rand.NewSource(42)

	n := 6000
	boxes := generateBoxes(src, n, 600, 800, 32, 512)
	scores := generateScores(src, n)

	for _, thr := range []float32{0.3, 0.5, 0.7} {
		err := CrossCheck(seq, par, boxes, scores, Params{Threshold: thr, Limit: NoLimit})

		if err != nil {
			t.Errorf("threshold %v: %v", thr, err)
		}
	}

	// a tight limit must cut both backends at the same point
	err := CrossCheck(seq, par, boxes, scores, Params{Threshold: 0.5, Limit: 100})

	if err != nil {
		t.Errorf("limited selection: %v", err)
	}
}

func benchmarkSelect(b *testing.B, backend Backend, n int) {

	src := rand.NewSource(7)

	boxes := generateBoxes(src, n, 600, 800, 32, 512)
	scores := generateScores(src, n)
	params := Params{Threshold: 0.5, Limit: NoLimit}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := backend.Select(boxes, scores, params); err != nil {
			b.Fatalf("Select failed: %v", err)
		}
	}
}

func BenchmarkSequential500(b *testing.B) {
	benchmarkSelect(b, NewSequential(), 500)
}

func BenchmarkSequential5000(b *testing.B) {
	benchmarkSelect(b, NewSequential(), 5000)
}

func BenchmarkParallel500(b *testing.B) {

	par := NewParallel(DefaultParallelParams())
	defer par.Close()

	benchmarkSelect(b, par, 500)
}

func BenchmarkParallel5000(b *testing.B) {

	par := NewParallel(DefaultParallelParams())
	defer par.Close()

	benchmarkSelect(b, par, 5000)
}
