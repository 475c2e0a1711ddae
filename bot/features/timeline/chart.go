package timeline

import (
	"bytes"
	"errors"
	"fmt"

	"ladder/bot/common"
	"ladder/models"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrEmptyTimeline is returned when there are no players to plot
var ErrEmptyTimeline = errors.New("timeline has no players")

// ChartStyle defines the layout of the rank movement chart
type ChartStyle struct {
	Width       int
	MinHeight   int
	Padding     int
	LabelWidth  int
	RowHeight   int
	TitleHeight int
	LineWidth   float64
	PointRadius float64
}

// ChartGenerator renders timelines to PNG
type ChartGenerator struct {
	style   ChartStyle
	palette [][3]float64
}

// NewChartGenerator creates a chart generator with the default style
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{
		style: ChartStyle{
			Width:       720,
			MinHeight:   240,
			Padding:     20,
			LabelWidth:  130,
			RowHeight:   28,
			TitleHeight: 30,
			LineWidth:   2.5,
			PointRadius: 3.5,
		},
		palette: [][3]float64{
			{0.35, 0.40, 0.95},
			{0.95, 0.45, 0.35},
			{0.30, 0.80, 0.50},
			{0.95, 0.80, 0.25},
			{0.70, 0.40, 0.90},
			{0.25, 0.80, 0.90},
			{0.95, 0.50, 0.75},
			{0.60, 0.75, 0.30},
		},
	}
}

// point is one plotted position of a player
type point struct {
	column int
	rank   int
}

// columnCount gives two columns per swap event and one for the present-day ranking
func columnCount(t *models.Timeline) int {
	columns := 0
	for _, event := range t.Events {
		if event.IsCurrent {
			columns++
		} else {
			columns += 2
		}
	}
	return columns
}

// playerPaths collects every defined position of each player in column order
func playerPaths(t *models.Timeline) [][]point {
	paths := make([][]point, len(t.Players))
	column := 0
	for _, event := range t.Events {
		if event.IsCurrent {
			for slot, rank := range event.After {
				if rank != models.NoRank {
					paths[slot] = append(paths[slot], point{column: column, rank: rank})
				}
			}
			column++
			continue
		}

		for slot := range t.Players {
			if event.Before[slot] != models.NoRank {
				paths[slot] = append(paths[slot], point{column: column, rank: event.Before[slot]})
			}
			if event.After[slot] != models.NoRank {
				paths[slot] = append(paths[slot], point{column: column + 1, rank: event.After[slot]})
			}
		}
		column += 2
	}
	return paths
}

// Render draws the timeline as a rank-over-time chart, rank 1 at the top
func (g *ChartGenerator) Render(t *models.Timeline) ([]byte, error) {
	if t == nil || len(t.Players) == 0 {
		return nil, ErrEmptyTimeline
	}

	players := len(t.Players)
	height := g.style.TitleHeight + 2*g.style.Padding + players*g.style.RowHeight
	if height < g.style.MinHeight {
		height = g.style.MinHeight
	}

	dc := gg.NewContext(g.style.Width, height)
	dc.SetRGB(0.07, 0.08, 0.11)
	dc.Clear()

	titleFace, err := loadFont(gobold.TTF, 14)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	labelFace, err := loadFont(goregular.TTF, 11)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	dc.SetFontFace(titleFace)
	dc.SetRGB(1, 1, 1)
	dc.DrawString("Ladder movement", float64(g.style.Padding), float64(g.style.Padding)+8)

	top := float64(g.style.TitleHeight + g.style.Padding)
	left := float64(g.style.Padding)
	right := float64(g.style.Width - g.style.LabelWidth - g.style.Padding)
	rowY := func(rank int) float64 {
		return top + (float64(rank)-0.5)*float64(g.style.RowHeight)
	}

	columns := columnCount(t)
	colX := func(column int) float64 {
		if columns <= 1 {
			return right
		}
		return left + float64(column)*(right-left)/float64(columns-1)
	}

	// Rank gridlines
	dc.SetFontFace(labelFace)
	dc.SetLineWidth(1)
	for rank := 1; rank <= players; rank++ {
		y := rowY(rank)
		dc.SetRGBA(1, 1, 1, 0.08)
		dc.DrawLine(left, y, right, y)
		dc.Stroke()
	}

	for slot, path := range playerPaths(t) {
		c := g.palette[slot%len(g.palette)]
		dc.SetRGB(c[0], c[1], c[2])
		dc.SetLineWidth(g.style.LineWidth)

		for idx, p := range path {
			x, y := colX(p.column), rowY(p.rank)
			if idx == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()

		for _, p := range path {
			dc.DrawCircle(colX(p.column), rowY(p.rank), g.style.PointRadius)
			dc.Fill()
		}

		if len(path) > 0 {
			last := path[len(path)-1]
			label := fmt.Sprintf("#%d %s", last.rank, common.TruncateName(t.DisplayNames[slot], 16))
			dc.DrawStringAnchored(label, right+10, rowY(last.rank), 0, 0.35)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return buf.Bytes(), nil
}

func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
