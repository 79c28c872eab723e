package render

import (
	"fmt"
	"github.com/dtrn/go-nms"
	"github.com/dtrn/go-nms/detect"
	"gocv.io/x/gocv"
	"image"
	"image/color"
)

// boxLabel holds the rendering details of a box label
type boxLabel struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

// boxRect converts box coordinates to an image rectangle in pixel space
func boxRect(b nms.Box) image.Rectangle {
	return image.Rect(int(b.X1), int(b.Y1), int(b.X2), int(b.Y2))
}

// makeLabel lays out the label text relative to the top edge of the box
// rectangle using the font padding and alignment
func makeLabel(rect image.Rectangle, text string, clr color.RGBA, font Font,
	lineThickness int) boxLabel {

	textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

	// Calculate the alignment of text label
	var centerX int

	switch font.Alignment {
	case Center:
		centerX = (rect.Min.X + rect.Max.X) / 2

	case Right:
		centerX = rect.Max.X - (textSize.X / 2) - font.RightPad + (lineThickness / 2)

	case Left:
		fallthrough
	default:
		centerX = rect.Min.X + (textSize.X / 2) + font.LeftPad - (lineThickness / 2)
	}

	// Adjust the label position so the text is centered horizontally
	labelPosition := image.Pt(centerX-textSize.X/2, rect.Min.Y-font.BottomPad)

	// create box for placing text on
	bRect := image.Rect(centerX-textSize.X/2-font.LeftPad,
		rect.Min.Y-textSize.Y-font.TopPad-font.BottomPad,
		centerX+textSize.X/2+font.RightPad, rect.Min.Y)

	return boxLabel{
		rect:    bRect,
		clr:     clr,
		text:    text,
		textPos: labelPosition,
	}
}

// drawLabels renders the precalculated box labels so they are the top most
// layer on the image and don't get overlapped by box lines
func drawLabels(img *gocv.Mat, boxLabels []boxLabel, font Font) {

	for _, box := range boxLabels {
		// draw box text gets written on
		gocv.Rectangle(img, box.rect, box.clr, -1)

		// Draw the label over box
		gocv.PutTextWithParams(img, box.text, box.textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}

// Boxes renders the bounding box of every detection with its score as the
// label
func Boxes(img *gocv.Mat, dets []detect.Detection, font Font,
	lineThickness int) {

	// keep a record of all box labels for later rendering
	boxLabels := make([]boxLabel, 0, len(dets))

	for i, det := range dets {

		// Get the color for this box
		useClr := boxColors[i%len(boxColors)]

		// draw rectangle around the detection
		rect := boxRect(det.Box)
		gocv.Rectangle(img, rect, useClr, lineThickness)

		// create text for label
		text := fmt.Sprintf("%.2f", det.Score)
		boxLabels = append(boxLabels, makeLabel(rect, text, useClr, font, lineThickness))
	}

	// draw all precalculated box labels so they are the top most layer on
	// the image
	drawLabels(img, boxLabels, font)
}

// SelectionBoxes renders a suppression result, drawing the surviving
// detections in palette colors with score labels over the suppressed ones
// in gray
func SelectionBoxes(img *gocv.Mat, dets []detect.Detection, picked []int32,
	font Font, lineThickness int) {

	kept := make(map[int32]bool, len(picked))

	for _, idx := range picked {
		kept[idx] = true
	}

	// gray out the suppressed boxes first so the survivors stay visible
	// where boxes overlap
	for i, det := range dets {

		if kept[int32(i)] {
			continue
		}

		gocv.Rectangle(img, boxRect(det.Box), Gray, lineThickness)
	}

	// keep a record of all box labels for later rendering
	boxLabels := make([]boxLabel, 0, len(picked))

	for n, idx := range picked {

		det := dets[idx]

		// Get the color for this box
		useClr := boxColors[n%len(boxColors)]

		// draw rectangle around the surviving detection
		rect := boxRect(det.Box)
		gocv.Rectangle(img, rect, useClr, lineThickness)

		// create text for label
		text := fmt.Sprintf("%.2f", det.Score)
		boxLabels = append(boxLabels, makeLabel(rect, text, useClr, font, lineThickness))
	}

	// draw all precalculated box labels so they are the top most layer on
	// the image
	drawLabels(img, boxLabels, font)
}
