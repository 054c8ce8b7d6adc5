package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Document is a region together with the sizes its SVG declares: the
// physical size in millimetres and the pixel view box of the coordinates.
type Document struct {
	WidthPx  float64
	HeightPx float64
	WidthMM  float64
	HeightMM float64
	Region   Region
}

func SheetDocument(sheet Sheet, region Region) Document {
	return Document{
		WidthPx:  float64(sheet.Width),
		HeightPx: float64(sheet.Height),
		WidthMM:  sheet.WidthMM(),
		HeightMM: sheet.HeightMM(),
		Region:   region,
	}
}

func WriteSVG(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("<?xml version=\"1.0\" ?>\n")
	fmt.Fprintf(bw, "<svg xmlns=\"http://www.w3.org/2000/svg\" baseProfile=\"full\" height=\"%smm\" width=\"%smm\" viewBox=\"0 0 %s %s\" version=\"1.1\">\n",
		formatFloat(doc.HeightMM), formatFloat(doc.WidthMM), formatFloat(doc.WidthPx), formatFloat(doc.HeightPx))

	if d := pathData(doc.Region); d != "" {
		fmt.Fprintf(bw, "<path d=\"%s\" fill=\"black\"/>\n", d)
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

func WriteSVGFile(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSVG(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// pathData emits one "M x,y L x,y ... Z" subpath per contour with two
// decimals.
func pathData(region Region) string {
	var buf []byte
	for _, contour := range region.Contours() {
		for i, pt := range contour {
			if i == 0 {
				buf = append(buf, "M "...)
			} else {
				buf = append(buf, "L "...)
			}
			buf = strconv.AppendFloat(buf, pt.X, 'f', 2, 64)
			buf = append(buf, ',')
			buf = strconv.AppendFloat(buf, pt.Y, 'f', 2, 64)
			buf = append(buf, ' ')
		}
		buf = append(buf, "Z "...)
	}
	if len(buf) > 0 {
		buf = buf[:len(buf)-1]
	}
	return string(buf)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
