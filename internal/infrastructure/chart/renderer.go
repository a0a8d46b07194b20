// Package chart renders bar charts and the city map as PNG images.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/ports"
)

const (
	barHeight   = 26
	barGap      = 8
	margin      = 24
	titleHeight = 48
	labelWidth  = 0.38
)

var (
	background = color.White
	foreground = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	barColor   = color.NRGBA{R: 0x3B, G: 0x75, B: 0xAF, A: 0xFF}
	gridColor  = color.NRGBA{R: 0xDD, G: 0xDD, B: 0xDD, A: 0xFF}
	pointColor = color.NRGBA{R: 0xC0, G: 0x39, B: 0x2B, A: 0xB4}
)

// Renderer draws charts with gg.
type Renderer struct {
	width int
	face  font.Face
}

var _ ports.Visualizer = (*Renderer)(nil)

// NewRenderer uses the TrueType font at fontPath, or a built-in bitmap face
// when fontPath is empty.
func NewRenderer(width int, fontPath string) (*Renderer, error) {
	if width <= 0 {
		width = 1200
	}
	r := &Renderer{width: width, face: basicfont.Face7x13}
	if fontPath == "" {
		return r, nil
	}
	face, err := loadFontFace(fontPath, 14)
	if err != nil {
		return nil, err
	}
	r.face = face
	return r, nil
}

// BarChart draws horizontal bars in the given order, longest scale at the largest value.
func (r *Renderer) BarChart(w io.Writer, c domain.BarChart) error {
	height := titleHeight + 2*margin + len(c.Bars)*(barHeight+barGap) + barHeight
	dc := gg.NewContext(r.width, height)
	dc.SetColor(background)
	dc.Clear()
	dc.SetFontFace(r.face)

	dc.SetColor(foreground)
	dc.DrawStringAnchored(c.Title, float64(r.width)/2, titleHeight/2, 0.5, 0.5)

	maxValue := 0.0
	for _, b := range c.Bars {
		maxValue = math.Max(maxValue, b.Value)
	}
	left := float64(r.width)*labelWidth + margin
	span := float64(r.width) - left - 2*margin - 60
	top := float64(titleHeight + margin)

	dc.SetColor(gridColor)
	dc.DrawLine(left, top, left, top+float64(len(c.Bars)*(barHeight+barGap)))
	dc.Stroke()

	for i, b := range c.Bars {
		y := top + float64(i*(barHeight+barGap))
		length := 0.0
		if maxValue > 0 {
			length = span * b.Value / maxValue
		}
		dc.SetColor(barColor)
		dc.DrawRectangle(left, y, length, barHeight)
		dc.Fill()

		dc.SetColor(foreground)
		dc.DrawStringAnchored(b.Label, left-8, y+barHeight/2, 1, 0.5)
		dc.DrawStringAnchored(formatValue(b.Value), left+length+6, y+barHeight/2, 0, 0.5)
	}

	if c.XLabel != "" {
		dc.DrawStringAnchored(c.XLabel, left+span/2, float64(height-margin), 0.5, 0.5)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// CityMap draws one circle per point, area proportional to Value, over an
// optional background scaled to the canvas.
func (r *Renderer) CityMap(w io.Writer, m domain.CityMap) error {
	b := m.Bounds
	if b.MaxLon <= b.MinLon || b.MaxLat <= b.MinLat {
		return fmt.Errorf("invalid map bounds %+v", b)
	}
	width := r.width
	height := int(float64(width) * (b.MaxLat - b.MinLat) / (b.MaxLon - b.MinLon))

	dc := gg.NewContext(width, height)
	dc.SetColor(background)
	dc.Clear()
	if m.Background != nil {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), m.Background, m.Background.Bounds(), draw.Over, nil)
		dc.DrawImage(dst, 0, 0)
	}
	dc.SetFontFace(r.face)

	maxValue := 0.0
	for _, p := range m.Points {
		maxValue = math.Max(maxValue, p.Value)
	}
	for _, p := range m.Points {
		if p.Value <= 0 || maxValue <= 0 {
			continue
		}
		x := (p.Lon - b.MinLon) / (b.MaxLon - b.MinLon) * float64(width)
		y := (b.MaxLat - p.Lat) / (b.MaxLat - b.MinLat) * float64(height)
		radius := 4 + 36*math.Sqrt(p.Value/maxValue)

		dc.SetColor(pointColor)
		dc.DrawCircle(x, y, radius)
		dc.Fill()
		dc.SetColor(foreground)
		dc.DrawStringAnchored(p.Label, x, y-radius-6, 0.5, 0)
	}

	dc.SetColor(foreground)
	dc.DrawStringAnchored(m.Title, float64(width)/2, margin, 0.5, 0.5)

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", fontPath, err)
	}
	parsed, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", fontPath, err)
	}
	return truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
