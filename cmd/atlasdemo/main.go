// Command atlasdemo renders a small terminal frame through the soft
// backend and writes it to a PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/termatlas"
	"github.com/gogpu/termatlas/backend"
	"github.com/gogpu/termatlas/backend/soft"
	"github.com/gogpu/termatlas/font"
	"github.com/gogpu/termatlas/shape"
)

func main() {
	var (
		cols   = flag.Int("cols", 60, "terminal columns")
		rows   = flag.Int("rows", 12, "terminal rows")
		output = flag.String("output", "atlasdemo.png", "output file")
	)
	flag.Parse()

	src, err := font.NewSource(goregular.TTF, font.WithName("Go Regular"))
	if err != nil {
		log.Fatalf("Failed to parse font: %v", err)
	}
	res := font.NewResource(src, nil)
	face := font.NewHandle(res)

	const (
		cellW = 9
		cellH = 20
	)

	settings := termatlas.DirtySettings()
	s := settings.Write()
	s.CellCount = termatlas.Size{X: *cols, Y: *rows}
	s.TargetSize = termatlas.Size{X: *cols * cellW, Y: *rows * cellH}
	f := s.Font.Write()
	f.Faces = []*font.Source{src}
	f.Name = src.Name()
	f.Size = 15
	f.CellSize = termatlas.Size{X: cellW, Y: cellH}
	f.Baseline = 15
	f.UnderlinePos = 2
	f.UnderlineWidth = 1
	f.StrikethroughPos = -5
	f.StrikethroughWidth = 1
	f.DoubleUnderlinePos = [2]int{1, 3}
	f.ThinLineWidth = 1
	m := s.Misc.Write()
	m.BackgroundColor = 0xff2b1a0f
	m.SelectionColor = 0x80ff9b45

	payload := termatlas.NewRenderingPayload(settings,
		termatlas.WithWarningCallback(func(err error) {
			log.Printf("warning: %v", err)
		}))
	payload.FillBackground(0xff2b1a0f)

	shaper := shape.NewShaper(shape.WithCache(shape.NewRunCache(0)))
	lines := demoLines(*rows)
	for y, line := range lines {
		if y >= payload.Grid.Rows() {
			break
		}
		row := payload.Grid.Row(y)
		run := shape.Run{
			Text:  line,
			From:  0,
			To:    len(line),
			Color: 0xffe8e8e8,
			Face:  face,
			Size:  15,
		}
		if err := shaper.ShapeRow(row, []shape.Run{run}, cellW); err != nil {
			log.Printf("shape row %d: %v", y, err)
		}
	}

	// Decorations on row 3, a selection on row 5, cursor at (2, 1).
	if payload.Grid.Rows() > 5 {
		payload.Grid.Row(3).GridLineRanges = append(payload.Grid.Row(3).GridLineRanges,
			termatlas.GridLineRange{
				Lines: termatlas.GridLineUnderline, Color: 0xff45b8ff, From: 0, To: 20,
			})
		payload.Grid.Row(5).SelectionFrom = 4
		payload.Grid.Row(5).SelectionTo = 24
	}
	payload.CursorRect = termatlas.Rect{Left: 2, Top: 1, Right: 3, Bottom: 2}

	b := backend.Get(backend.BackendSoft)
	if b == nil {
		log.Fatal("soft backend not registered")
	}
	payload.HandleSettingsUpdate()
	if err := b.Render(payload); err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	sb := b.(*soft.Soft)
	out, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *output, err)
	}
	defer out.Close()
	if err := png.Encode(out, sb.Target().Image()); err != nil {
		log.Fatalf("Failed to encode: %v", err)
	}

	stats := shaper.Cache().Stats()
	log.Printf("Demo saved to %s (%dx%d cells, cache %d entries)",
		*output, *cols, *rows, stats.Len)
}

func demoLines(rows int) []string {
	lines := []string{
		"termatlas soft backend demo",
		"",
		"The quick brown fox jumps over the lazy dog",
		"underlined decoration range",
		"",
		"selected text renders with a tint",
	}
	for len(lines) < rows {
		lines = append(lines, fmt.Sprintf("row %02d", len(lines)))
	}
	return lines[:rows]
}
