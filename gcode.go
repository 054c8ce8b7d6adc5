package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"honnef.co/go/curve"
)

// minMoveMM is the shortest G1 move emitted; closer points are merged.
const minMoveMM = 0.01

// WriteGCode traces every contour of region as a closed cutting path.
// Coordinates are converted from pixels to millimetres with mmPerPx.
func WriteGCode(w io.Writer, region Region, mmPerPx float64) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("G21\nG90\nM5\nG0 F3000\nG1 F1500\n")

	for _, contour := range region.Contours() {
		path := simplifyPath(contour, mmPerPx)
		if len(path) < 3 {
			continue
		}

		bw.WriteString("M5\n")
		for i, pt := range path {
			x, y := pt.X*mmPerPx, pt.Y*mmPerPx
			if i == 0 {
				fmt.Fprintf(bw, "G0 X%.3f Y%.3f\nM3 S1000\n", x, y)
			} else {
				fmt.Fprintf(bw, "G1 X%.3f Y%.3f\n", x, y)
			}
		}
		fmt.Fprintf(bw, "G1 X%.3f Y%.3f\n", path[0].X*mmPerPx, path[0].Y*mmPerPx)
	}

	bw.WriteString("M5\nG0 X0 Y0\n")
	return bw.Flush()
}

func WriteGCodeFile(path string, region Region, mmPerPx float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteGCode(f, region, mmPerPx); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// simplifyPath drops points closer than minMoveMM to the last kept point.
func simplifyPath(points []curve.Point, mmPerPx float64) []curve.Point {
	if len(points) < 3 {
		return points
	}

	tolerance := minMoveMM / mmPerPx
	result := []curve.Point{points[0]}
	prev := points[0]

	for _, current := range points[1:] {
		if current.Distance(prev) > tolerance {
			result = append(result, current)
			prev = current
		}
	}

	return result
}
