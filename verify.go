package nms

import (
	"fmt"
)

// CrossCheck runs the same selection on two backends and compares the
// results.  Any disagreement is a correctness bug in one of the backends
// and is reported as an ErrBackendMismatch naming the first differing
// position.  It exists for tests and verification tools, production
// callers use a single backend directly.
func CrossCheck(a, b Backend, boxes []Box, scores []float32, p Params) error {

	selA, err := a.Select(boxes, scores, p)

	if err != nil {
		return fmt.Errorf("%s backend: %w", a.Name(), err)
	}

	selB, err := b.Select(boxes, scores, p)

	if err != nil {
		return fmt.Errorf("%s backend: %w", b.Name(), err)
	}

	if len(selA) != len(selB) {
		return fmt.Errorf("%w: %s selected %d boxes, %s selected %d",
			ErrBackendMismatch, a.Name(), len(selA), b.Name(), len(selB))
	}

	for i := range selA {
		if selA[i] != selB[i] {
			return fmt.Errorf("%w: position %d: %s selected box %d, %s selected box %d",
				ErrBackendMismatch, i, a.Name(), selA[i], b.Name(), selB[i])
		}
	}

	return nil
}
