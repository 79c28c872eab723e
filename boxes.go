package nms

import (
	"fmt"
)

// BoxesFromSlice converts a flat buffer of coordinates laid out as
// [x1, y1, x2, y2, x1, y1, ...] into boxes, the layout detector output
// tensors commonly use.  A buffer whose length is not a multiple of four
// returns ErrMalformedBox.
func BoxesFromSlice(buf []float32) ([]Box, error) {

	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of 4",
			ErrMalformedBox, len(buf))
	}

	boxes := make([]Box, 0, len(buf)/4)

	for i := 0; i < len(buf); i += 4 {
		boxes = append(boxes, Box{
			X1: buf[i],
			Y1: buf[i+1],
			X2: buf[i+2],
			Y2: buf[i+3],
		})
	}

	return boxes, nil
}
