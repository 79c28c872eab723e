package nms

import (
	"fmt"
	"math"
	"sort"
)

// NoLimit disables the selection cap in Params
const NoLimit = math.MaxInt

// Params holds the selection parameters passed to a Backend
type Params struct {
	// Threshold is the IoU value at or above which a box is suppressed by a
	// higher priority box.  Conceptually in the range [0, 1], values outside
	// that range act as limiting cases and are not rejected.
	Threshold float32
	// Limit caps the number of indices selected.  A Limit of zero or less
	// selects nothing, use NoLimit for an uncapped selection.  Values
	// larger than the box count have no effect.
	Limit int
}

// DefaultParams returns selection parameters with the commonly used
// detection overlap threshold and no result cap
func DefaultParams() Params {
	return Params{
		Threshold: 0.45,
		Limit:     NoLimit,
	}
}

// Backend is a concrete execution strategy for box selection.  All backends
// implement the same contract and return identical selections for identical
// inputs, so the caller picks one explicitly and results never depend on
// the choice.
type Backend interface {
	// Name identifies the backend
	Name() string
	// Area returns the area of a box
	Area(b Box) float32
	// IoU returns the Intersection over Union value of two boxes
	IoU(a, b Box) float32
	// Select returns the indices of the boxes surviving suppression, in
	// priority order.  A nil or empty scores slice means priority is the
	// input order, otherwise boxes are ranked by descending score with ties
	// broken by ascending input index.
	Select(boxes []Box, scores []float32, p Params) ([]int32, error)
}

// validateInputs checks the score slice matches the box count
func validateInputs(boxes []Box, scores []float32) error {

	if len(scores) > 0 && len(scores) != len(boxes) {
		return fmt.Errorf("%w: %d scores for %d boxes",
			ErrScoreCount, len(scores), len(boxes))
	}

	return nil
}

// priorityOrder returns box indices ranked from highest to lowest priority.
// Without scores this is the input order.  With scores it is a stable
// descending sort, equal scores keep their relative input order so repeated
// runs always rank the same way.
func priorityOrder(scores []float32, n int) []int32 {

	order := make([]int32, n)

	for i := range order {
		order[i] = int32(i)
	}

	if len(scores) == 0 {
		return order
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	return order
}

// suppressOverlaps marks every unsuppressed candidate in order[lo:hi] whose
// IoU with the winner box reaches thr.  Flags are indexed by box index and
// each candidate only ever writes its own flag byte, so disjoint ranges can
// run concurrently.
func suppressOverlaps(boxes []Box, order []int32, suppressed []uint8,
	winner Box, thr float32, lo, hi int) {

	for k := lo; k < hi; k++ {
		bi := order[k]

		if suppressed[bi] == 1 {
			continue
		}

		if IoU(winner, boxes[bi]) >= thr {
			suppressed[bi] = 1
		}
	}
}
