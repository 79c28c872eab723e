package nms

import (
	"runtime"
	"sync"
)

// DefaultMinChunk is the smallest candidate range worth handing to a worker
const DefaultMinChunk = 512

// ParallelParams configures the parallel selection backend
type ParallelParams struct {
	// Workers is the number of goroutines scoring overlaps.  Zero or less
	// uses the number of CPUs.
	Workers int
	// MinChunk is the smallest candidate range dispatched to a worker in
	// one suppression round.  Rounds with fewer candidates run inline to
	// avoid dispatch overhead.  Zero or less uses DefaultMinChunk.
	MinChunk int
}

// DefaultParallelParams returns a parallel backend configuration using all
// CPUs
func DefaultParallelParams() ParallelParams {
	return ParallelParams{
		Workers:  runtime.NumCPU(),
		MinChunk: DefaultMinChunk,
	}
}

// chunkJob is one slice of the candidate range to score against the winner
// box of the current suppression round
type chunkJob struct {
	boxes      []Box
	order      []int32
	suppressed []uint8
	winner     Box
	threshold  float32
	lo         int
	hi         int
	done       *sync.WaitGroup
}

// Parallel is the data parallel selection backend.  A fixed pool of workers
// scores candidate chunks against the current winner box, one suppression
// round at a time.  Rounds are strictly ordered, the next winner is only
// chosen after all of a round's flags have been merged, which keeps
// selections identical to the sequential backend.  A Parallel instance is
// safe for concurrent use, every Select call owns its own flags and round
// barrier.
type Parallel struct {
	params  ParallelParams
	jobs    chan chunkJob
	workers sync.WaitGroup
	flags   *flagPool
	mu      sync.Mutex
	closed  bool
	close   sync.Once
}

// NewParallel starts the worker pool and returns the backend.  Call Close
// to release the workers once finished with it.
func NewParallel(p ParallelParams) *Parallel {

	if p.Workers <= 0 {
		p.Workers = runtime.NumCPU()
	}

	if p.MinChunk <= 0 {
		p.MinChunk = DefaultMinChunk
	}

	pl := &Parallel{
		params: p,
		jobs:   make(chan chunkJob, p.Workers),
		flags:  newFlagPool(),
	}

	pl.workers.Add(p.Workers)

	for i := 0; i < p.Workers; i++ {
		go pl.worker()
	}

	return pl
}

// worker consumes chunk jobs until the jobs channel closes
func (p *Parallel) worker() {

	defer p.workers.Done()

	for job := range p.jobs {
		suppressOverlaps(job.boxes, job.order, job.suppressed, job.winner,
			job.threshold, job.lo, job.hi)
		job.done.Done()
	}
}

// Name identifies the backend
func (p *Parallel) Name() string {
	return "parallel"
}

// Area returns the area of a box
func (p *Parallel) Area(b Box) float32 {
	return b.Area()
}

// IoU returns the Intersection over Union value of two boxes
func (p *Parallel) IoU(a, b Box) float32 {
	return IoU(a, b)
}

// Select runs greedy suppression over the boxes and returns the same
// selection as the sequential backend.  Each round fixes the current winner
// and fans the remaining candidates out to the worker pool in chunks, the
// round barrier merges all suppression flags before the next winner is
// picked.
func (p *Parallel) Select(boxes []Box, scores []float32, prm Params) ([]int32, error) {

	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()

	if closed {
		return nil, ErrClosed
	}

	if err := validateInputs(boxes, scores); err != nil {
		return nil, err
	}

	n := len(boxes)

	if n == 0 || prm.Limit <= 0 {
		return []int32{}, nil
	}

	order := priorityOrder(scores, n)

	suppressed := p.flags.Get(n)
	defer p.flags.Put(suppressed)

	keep := make([]int32, 0, min(n, prm.Limit))

	for i := 0; i < n; i++ {
		win := order[i]

		if suppressed[win] == 1 {
			continue
		}

		keep = append(keep, win)

		if len(keep) >= prm.Limit {
			break
		}

		p.suppressRound(boxes, order, suppressed, boxes[win], prm.Threshold, i+1, n)
	}

	return keep, nil
}

// suppressRound scores the candidates order[lo:hi] against the winner box.
// Small ranges run inline, larger ranges are split into chunks across the
// worker pool.  Each candidate writes only its own flag byte so chunk
// results merge without locking, and the barrier wait keeps rounds strictly
// ordered.
func (p *Parallel) suppressRound(boxes []Box, order []int32, suppressed []uint8,
	winner Box, thr float32, lo, hi int) {

	remaining := hi - lo

	if remaining <= p.params.MinChunk {
		suppressOverlaps(boxes, order, suppressed, winner, thr, lo, hi)
		return
	}

	chunk := (remaining + p.params.Workers - 1) / p.params.Workers

	if chunk < p.params.MinChunk {
		chunk = p.params.MinChunk
	}

	var done sync.WaitGroup

	for start := lo; start < hi; start += chunk {
		end := start + chunk

		if end > hi {
			end = hi
		}

		done.Add(1)

		p.jobs <- chunkJob{
			boxes:      boxes,
			order:      order,
			suppressed: suppressed,
			winner:     winner,
			threshold:  thr,
			lo:         start,
			hi:         end,
			done:       &done,
		}
	}

	done.Wait()
}

// Close stops the worker pool.  Close is idempotent but must only be called
// after all Select calls have returned.  Select on a closed backend returns
// ErrClosed.
func (p *Parallel) Close() {
	p.close.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()

		// stop workers
		close(p.jobs)
		p.workers.Wait()
	})
}
