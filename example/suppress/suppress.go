/*
Example code showing how to run non-maximum suppression over a detections
file and render the result on an image
*/
package main

import (
	"flag"
	"github.com/dtrn/go-nms"
	"github.com/dtrn/go-nms/detect"
	"github.com/dtrn/go-nms/render"
	"gocv.io/x/gocv"
	"log"
)

// canvasPad is the pixel margin added around the detections when rendering
// on a blank canvas
const canvasPad = 16

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	imgFile := flag.String("i", "", "Image file the detections were made on, leave empty to render on a blank canvas")
	detFile := flag.String("d", "../data/detections.txt", "Detections file with one \"x1 y1 x2 y2 score\" line per box")
	backendName := flag.String("b", "sequential", "Suppression backend to use, sequential or parallel")
	threshold := flag.Float64("t", 0.45, "IoU threshold at or above which boxes are suppressed")
	limit := flag.Int("l", 0, "Maximum number of boxes to keep, 0 keeps them all")
	saveFile := flag.String("o", "./result.jpg", "Output image file to save the rendered result to")

	flag.Parse()

	// load detections
	dets, err := detect.LoadDetections(*detFile)

	if err != nil {
		log.Fatalf("Error loading detections: %v\n", err)
	}

	log.Printf("Loaded %d detections\n", len(dets))

	// pick the suppression backend
	var backend nms.Backend

	switch *backendName {
	case "sequential":
		backend = nms.NewSequential()

	case "parallel":
		par := nms.NewParallel(nms.DefaultParallelParams())
		defer par.Close()
		backend = par

	default:
		log.Fatalf("Unknown backend %q, use sequential or parallel\n", *backendName)
	}

	params := nms.DefaultParams()
	params.Threshold = float32(*threshold)

	if *limit > 0 {
		params.Limit = *limit
	}

	picked, err := backend.Select(detect.Boxes(dets), detect.Scores(dets), params)

	if err != nil {
		log.Fatalf("Error running suppression: %v\n", err)
	}

	log.Printf("Kept %d of %d boxes using the %s backend\n", len(picked),
		len(dets), backend.Name())

	// load the image, or size a blank canvas to the detections when no
	// image was given
	var img gocv.Mat

	if *imgFile == "" {
		frame := detect.Bounds(dets)
		img = gocv.NewMatWithSize(frame.Max.Y+canvasPad, frame.Max.X+canvasPad,
			gocv.MatTypeCV8UC3)
	} else {
		img = gocv.IMRead(*imgFile, gocv.IMReadColor)

		if img.Empty() {
			log.Fatalf("Error reading image from: %s\n", *imgFile)
		}
	}

	defer img.Close()

	// render surviving boxes over the suppressed ones
	render.SelectionBoxes(&img, dets, picked, render.DefaultFont(), 2)

	if ok := gocv.IMWrite(*saveFile, img); !ok {
		log.Fatalf("Failed to save the result to %s\n", *saveFile)
	}

	log.Printf("Saved the result to %s\n", *saveFile)
}
