package detect

import (
	"bufio"
	"fmt"
	"github.com/dtrn/go-nms"
	"os"
	"strconv"
	"strings"
)

// LoadDetections reads detections from the given text file.  Each line
// holds one detection as whitespace separated values "x1 y1 x2 y2 score",
// with the score optional and defaulting to 1.0.  Blank lines and lines
// starting with # are skipped.
func LoadDetections(file string) ([]Detection, error) {

	// open the file
	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	defer f.Close()

	idGen := NewIDGenerator()

	// create a scanner to read the file.
	scanner := bufio.NewScanner(f)

	var dets []Detection
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)

		if len(fields) != 4 && len(fields) != 5 {
			return nil, fmt.Errorf("line %d: expected 4 or 5 values, got %d",
				lineNum, len(fields))
		}

		vals := make([]float32, len(fields))

		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 32)

			if err != nil {
				return nil, fmt.Errorf("line %d: invalid value %q: %w",
					lineNum, field, err)
			}

			vals[i] = float32(v)
		}

		det := Detection{
			Box:   nms.Box{X1: vals[0], Y1: vals[1], X2: vals[2], Y2: vals[3]},
			Score: 1.0,
			ID:    idGen.GetNext(),
		}

		if len(vals) == 5 {
			det.Score = vals[4]
		}

		dets = append(dets, det)
	}

	// check for errors during scanning
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return dets, nil
}
