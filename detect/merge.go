package detect

import (
	flatbush "github.com/bmharper/flatbush-go"
	"github.com/dtrn/go-nms"
	"sort"
)

// Merge collapses duplicate detections of the same object, as produced by
// overlapping inference tiles or by running an ensemble of models over the
// same frame.  Detections whose IoU reaches minIoU are folded into the
// highest scored one of their group, the survivor growing to the union of
// the group's boxes while keeping its own score and ID.  A spatial index
// avoids comparing every pair of detections.
//
// Survivors are returned in descending score order.  Merging differs from
// suppression, which discards overlapping boxes outright instead of
// combining their extents.
func Merge(dets []Detection, minIoU float32) []Detection {

	if len(dets) < 2 {
		return append([]Detection(nil), dets...)
	}

	fb := flatbush.NewFlatbush[float32]()
	fb.Reserve(len(dets))

	for _, det := range dets {
		fb.Add(det.Box.X1, det.Box.Y1, det.Box.X2, det.Box.Y2)
	}

	fb.Finish()

	// visit the highest scored detection first so the best one in each
	// group absorbs its duplicates
	order := make([]int, len(dets))

	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(i, j int) bool {
		return dets[order[i]].Score > dets[order[j]].Score
	})

	consumed := make([]bool, len(dets))
	merged := make([]Detection, 0, len(dets))

	for _, i := range order {

		if consumed[i] {
			continue
		}

		consumed[i] = true
		out := dets[i]

		// the union box can reach new duplicates, so keep absorbing until
		// a pass makes no change
		for changed := true; changed; {
			changed = false

			for _, j := range fb.Search(out.Box.X1, out.Box.Y1, out.Box.X2, out.Box.Y2) {

				if consumed[j] {
					continue
				}

				if nms.IoU(out.Box, dets[j].Box) >= minIoU {
					out.Box = out.Box.Union(dets[j].Box)
					consumed[j] = true
					changed = true
				}
			}
		}

		merged = append(merged, out)
	}

	return merged
}
