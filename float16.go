package nms

import (
	"fmt"
	"github.com/x448/float16"
)

var f16LookupTable [65536]float32

func init() {
	// precompute float16 lookup table for faster conversion to float32
	for i := range f16LookupTable {
		f16 := float16.Frombits(uint16(i))
		f16LookupTable[i] = f16.Float32()
	}
}

// BoxesFromFloat16 converts a raw float16 tensor buffer laid out as
// [x1, y1, x2, y2, x1, y1, ...] into boxes.  Values are the IEEE 754
// half precision bit patterns as read from the tensor.  A buffer whose
// length is not a multiple of four returns ErrMalformedBox.
func BoxesFromFloat16(buf []uint16) ([]Box, error) {

	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of 4",
			ErrMalformedBox, len(buf))
	}

	boxes := make([]Box, 0, len(buf)/4)

	for i := 0; i < len(buf); i += 4 {
		boxes = append(boxes, Box{
			X1: f16LookupTable[buf[i]],
			Y1: f16LookupTable[buf[i+1]],
			X2: f16LookupTable[buf[i+2]],
			Y2: f16LookupTable[buf[i+3]],
		})
	}

	return boxes, nil
}

// ScoresFromFloat16 converts a raw float16 tensor buffer of confidence
// scores to float32
func ScoresFromFloat16(buf []uint16) []float32 {

	scores := make([]float32, len(buf))

	for i, val := range buf {
		scores[i] = f16LookupTable[val]
	}

	return scores
}
