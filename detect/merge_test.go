package detect

import (
	"github.com/dtrn/go-nms"
	"testing"
)

func TestMergeDuplicates(t *testing.T) {

	// three views of the same object plus one unrelated detection
	dets := []Detection{
		{Box: nms.Box{X1: 0, Y1: 0, X2: 4, Y2: 4}, Score: 0.9, ID: 1},
		{Box: nms.Box{X1: 0.5, Y1: 0.5, X2: 4.5, Y2: 4.5}, Score: 0.7, ID: 2},
		{Box: nms.Box{X1: 1, Y1: 0, X2: 5, Y2: 4}, Score: 0.6, ID: 3},
		{Box: nms.Box{X1: 10, Y1: 10, X2: 12, Y2: 12}, Score: 0.8, ID: 4},
	}

	merged := Merge(dets, 0.5)

	want := []Detection{
		{Box: nms.Box{X1: 0, Y1: 0, X2: 5, Y2: 4.5}, Score: 0.9, ID: 1},
		{Box: nms.Box{X1: 10, Y1: 10, X2: 12, Y2: 12}, Score: 0.8, ID: 4},
	}

	if len(merged) != len(want) {
		t.Fatalf("expected %d detections, got %d", len(want), len(merged))
	}

	for i := range want {
		if merged[i] != want[i] {
			t.Errorf("detection %d: expected %+v, got %+v", i, want[i], merged[i])
		}
	}
}

func TestMergeGrownBoxAbsorbs(t *testing.T) {

	// the sliver only overlaps the union of the first two boxes, not the
	// top scored box on its own
	dets := []Detection{
		{Box: nms.Box{X1: 0, Y1: 0, X2: 4, Y2: 4}, Score: 0.9, ID: 1},
		{Box: nms.Box{X1: 1, Y1: 0, X2: 5, Y2: 4}, Score: 0.5, ID: 2},
		{Box: nms.Box{X1: 4.5, Y1: 0, X2: 5.5, Y2: 4}, Score: 0.4, ID: 3},
	}

	merged := Merge(dets, 0.05)

	if len(merged) != 1 {
		t.Fatalf("expected 1 detection, got %d", len(merged))
	}

	want := Detection{Box: nms.Box{X1: 0, Y1: 0, X2: 5.5, Y2: 4}, Score: 0.9, ID: 1}

	if merged[0] != want {
		t.Errorf("expected %+v, got %+v", want, merged[0])
	}
}

func TestMergeDisjoint(t *testing.T) {

	dets := []Detection{
		{Box: nms.Box{X1: 0, Y1: 0, X2: 1, Y2: 1}, Score: 0.2, ID: 1},
		{Box: nms.Box{X1: 5, Y1: 5, X2: 6, Y2: 6}, Score: 0.8, ID: 2},
		{Box: nms.Box{X1: 10, Y1: 10, X2: 11, Y2: 11}, Score: 0.5, ID: 3},
	}

	merged := Merge(dets, 0.5)

	if len(merged) != 3 {
		t.Fatalf("expected 3 detections, got %d", len(merged))
	}

	// disjoint boxes come back untouched, ordered by descending score
	wantIDs := []int64{2, 3, 1}

	for i, id := range wantIDs {
		if merged[i].ID != id {
			t.Errorf("detection %d: expected ID %d, got %d", i, id, merged[i].ID)
		}
	}
}

func TestMergeFewDetections(t *testing.T) {

	if merged := Merge(nil, 0.5); len(merged) != 0 {
		t.Errorf("expected no detections, got %d", len(merged))
	}

	dets := []Detection{
		{Box: nms.Box{X1: 0, Y1: 0, X2: 4, Y2: 4}, Score: 0.9, ID: 1},
	}

	merged := Merge(dets, 0.5)

	if len(merged) != 1 || merged[0] != dets[0] {
		t.Errorf("expected single detection unchanged, got %+v", merged)
	}

	// the result is a copy, not a view of the input
	merged[0].Score = 0

	if dets[0].Score != 0.9 {
		t.Errorf("expected input unchanged, got score %v", dets[0].Score)
	}
}
