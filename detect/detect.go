// Package detect holds the detection record helpers layered around the
// suppression core, covering what a detector post processing pipeline needs
// before and after selection.
package detect

import (
	"github.com/chewxy/math32"
	"github.com/dtrn/go-nms"
	"image"
	"sort"
	"sync"
)

// Detection defines the attributes of a single object detected
type Detection struct {
	// Box is the bounding box of the object location
	Box nms.Box
	// Score is the confidence of the detection
	Score float32
	// ID is a unique ID assigned to the detection
	ID int64
}

// IDGenerator is a struct to hold a counter for generating the next
// incremental ID number
type IDGenerator struct {
	id int64
	sync.Mutex
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// GetNext returns the next incremental number
func (g *IDGenerator) GetNext() int64 {
	g.Lock()
	defer g.Unlock()
	g.id++
	return g.id
}

// Boxes returns the detection boxes in input order
func Boxes(dets []Detection) []nms.Box {

	boxes := make([]nms.Box, len(dets))

	for i, det := range dets {
		boxes[i] = det.Box
	}

	return boxes
}

// Scores returns the detection scores in input order
func Scores(dets []Detection) []float32 {

	scores := make([]float32, len(dets))

	for i, det := range dets {
		scores[i] = det.Score
	}

	return scores
}

// Bounds returns the smallest integer pixel rectangle enclosing every
// detection box, mins rounded down and maxes rounded up.  An empty input
// returns the zero rectangle.
func Bounds(dets []Detection) image.Rectangle {

	if len(dets) == 0 {
		return image.Rectangle{}
	}

	b := dets[0].Box

	for _, det := range dets[1:] {
		b = b.Union(det.Box)
	}

	return image.Rect(int(math32.Floor(b.X1)), int(math32.Floor(b.Y1)),
		int(math32.Ceil(b.X2)), int(math32.Ceil(b.Y2)))
}

// Apply runs suppression over the detections on the given backend and
// returns the surviving detections in selection order
func Apply(b nms.Backend, dets []Detection, p nms.Params) ([]Detection, error) {

	picked, err := b.Select(Boxes(dets), Scores(dets), p)

	if err != nil {
		return nil, err
	}

	kept := make([]Detection, 0, len(picked))

	for _, idx := range picked {
		kept = append(kept, dets[idx])
	}

	return kept, nil
}

// TopK returns the k highest scored detections in descending score order,
// ties keeping their input order.  Detector pipelines use it to cap the
// candidate count before suppression.  A k of len(dets) or more returns all
// detections, a k of zero or less returns none.
func TopK(dets []Detection, k int) []Detection {

	if k <= 0 {
		return []Detection{}
	}

	top := append([]Detection(nil), dets...)

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Score > top[j].Score
	})

	if k < len(top) {
		top = top[:k]
	}

	return top
}
