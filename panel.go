package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"honnef.co/go/curve"
)

// Panel is one physical tile of the sheet. Region is in panel-local pixels,
// with the panel's top-left corner at the origin.
type Panel struct {
	Index  int
	Col    int
	Row    int
	Bounds curve.Rect
	Region Region
}

// SlicePanels cuts region into the sheet's panels in row-major order. Empty
// panels are left out; a failed intersection aborts the slicing.
func SlicePanels(engine GeometryEngine, region Region, sheet Sheet) ([]Panel, error) {
	var panels []Panel
	index := 1
	for row := 0; row < sheet.Layout.Rows; row++ {
		for col := 0; col < sheet.Layout.Cols; col++ {
			bounds := sheet.PanelBounds(col, row)

			clipped, err := engine.Intersect(region, engine.Rect(bounds))
			if err != nil {
				return nil, fmt.Errorf("panel %d: %w", index, err)
			}

			if clipped.Empty() {
				Logger().Info("panel empty, skipped", "panel", index)
			} else {
				panels = append(panels, Panel{
					Index:  index,
					Col:    col,
					Row:    row,
					Bounds: bounds,
					Region: clipped.
						Translate(curve.Vec(-bounds.X0, -bounds.Y0)).
						Clamp(curve.Rect{X1: bounds.Width(), Y1: bounds.Height()}),
				})
			}
			index++
		}
	}
	return panels, nil
}

// PanelDir is the output path without its extension.
func PanelDir(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output))
}

// WritePanels writes panel_<index>.svg for every panel into dir, and a
// matching .gcode file when gcode is set.
func WritePanels(dir string, panels []Panel, sheet Sheet, gcode bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	size := sheet.PanelSizePx()
	var written []string
	for _, p := range panels {
		name := filepath.Join(dir, fmt.Sprintf("panel_%d.svg", p.Index))
		doc := Document{
			WidthPx:  size,
			HeightPx: size,
			WidthMM:  sheet.Physical.PanelSizeMM,
			HeightMM: sheet.Physical.PanelSizeMM,
			Region:   p.Region,
		}
		if err := WriteSVGFile(name, doc); err != nil {
			return written, fmt.Errorf("panel %d: %w", p.Index, err)
		}
		written = append(written, name)

		if gcode {
			name := filepath.Join(dir, fmt.Sprintf("panel_%d.gcode", p.Index))
			if err := WriteGCodeFile(name, p.Region, 1/sheet.Scale()); err != nil {
				return written, fmt.Errorf("panel %d: %w", p.Index, err)
			}
			written = append(written, name)
		}
		Logger().Info("panel written", "panel", p.Index, "path", name)
	}
	return written, nil
}
