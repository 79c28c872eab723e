package nms

// Sequential is the single threaded selection backend.  It holds no state
// and is safe for concurrent use.
type Sequential struct{}

// NewSequential returns a sequential selection backend
func NewSequential() *Sequential {
	return &Sequential{}
}

// Name identifies the backend
func (s *Sequential) Name() string {
	return "sequential"
}

// Area returns the area of a box
func (s *Sequential) Area(b Box) float32 {
	return b.Area()
}

// IoU returns the Intersection over Union value of two boxes
func (s *Sequential) IoU(a, b Box) float32 {
	return IoU(a, b)
}

// Select runs greedy suppression over the boxes.  It walks the priority
// order, keeps the highest priority box still standing, suppresses every
// later candidate overlapping it at or above the threshold, and repeats
// until the order is exhausted or the limit is reached.
func (s *Sequential) Select(boxes []Box, scores []float32, p Params) ([]int32, error) {

	if err := validateInputs(boxes, scores); err != nil {
		return nil, err
	}

	n := len(boxes)

	if n == 0 || p.Limit <= 0 {
		return []int32{}, nil
	}

	order := priorityOrder(scores, n)
	suppressed := make([]uint8, n)
	keep := make([]int32, 0, min(n, p.Limit))

	for i := 0; i < n; i++ {
		win := order[i]

		if suppressed[win] == 1 {
			continue
		}

		keep = append(keep, win)

		if len(keep) >= p.Limit {
			break
		}

		suppressOverlaps(boxes, order, suppressed, boxes[win], p.Threshold, i+1, n)
	}

	return keep, nil
}
